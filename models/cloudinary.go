package models

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryService() (*CloudinaryService, error) {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		if cldURL := os.Getenv("CLOUDINARY_URL"); cldURL != "" {
			cld, err := cloudinary.NewFromURL(cldURL)
			if err != nil {
				return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
			}
			return &CloudinaryService{cld: cld}, nil
		}
		return nil, errors.New("cloudinary credentials not configured")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

func (s *CloudinaryService) UploadImage(ctx context.Context, file multipart.File, filename, folder string) (ImageRef, error) {
	timestamp := time.Now().Unix()
	publicID := fmt.Sprintf("%d_%s", timestamp, strings.ReplaceAll(filename, " ", "_"))
	publicID = strings.TrimSuffix(publicID, filepath.Ext(publicID))

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         folder,
		ResourceType:   "image",
		Transformation: "q_auto,f_auto",
	})

	if err != nil {
		return ImageRef{}, fmt.Errorf("failed to upload to cloudinary: %w", err)
	}

	return ImageRef{URL: uploadResult.SecureURL, PublicID: uploadResult.PublicID}, nil
}

func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})

	if err != nil {
		return fmt.Errorf("failed to delete from cloudinary: %w", err)
	}

	return nil
}

// UploadMultipleImages uploads a batch; if one file fails, already-uploaded
// files from the same batch are destroyed so callers never see a partial set.
func (s *CloudinaryService) UploadMultipleImages(ctx context.Context, files []*multipart.FileHeader, folder string) ([]ImageRef, error) {
	results := []ImageRef{}

	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}

		ref, err := s.UploadImage(ctx, file, fileHeader.Filename, folder)
		file.Close()
		if err != nil {
			for _, uploaded := range results {
				s.DeleteImage(ctx, uploaded.PublicID)
			}
			return nil, err
		}

		results = append(results, ref)
	}

	return results, nil
}
