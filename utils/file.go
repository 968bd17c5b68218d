package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"proshop/config"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > config.AppConfig.MaxUploadSize {
		return errors.New("file size exceeds maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return errors.New("invalid file type. Only jpg, jpeg, png, webp allowed")
	}

	return nil
}

// UploadFile stores the file under the configured upload directory and
// returns the public /uploads/... path the file is served from.
func UploadFile(c *gin.Context, fileHeader *multipart.FileHeader, subDir string) (string, error) {
	if err := ValidateImageFile(fileHeader); err != nil {
		return "", err
	}

	uploadPath := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	filePath := filepath.Join(uploadPath, filename)

	if err := c.SaveUploadedFile(fileHeader, filePath); err != nil {
		return "", err
	}

	return "/uploads/" + subDir + "/" + filename, nil
}

// DeleteFile unlinks a file previously stored by UploadFile, addressed by
// its public /uploads/... path. A missing file is not an error.
func DeleteFile(urlPath string) error {
	rel := strings.TrimPrefix(urlPath, "/uploads/")
	if rel == "" {
		return nil
	}

	fullPath := filepath.Join(config.AppConfig.UploadDir, filepath.Clean("/"+rel))
	if _, err := os.Stat(fullPath); err == nil {
		return os.Remove(fullPath)
	}
	return nil
}
