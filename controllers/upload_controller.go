package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"

	"proshop/config"
	"proshop/models"
	"proshop/utils"
)

// cloudinaryFolder groups uploads in the remote storage account.
const cloudinaryFolder = "proshop"

// maxFilesPerUpload matches the multipart field limit of the admin form.
const maxFilesPerUpload = 3

var (
	cldOnce    sync.Once
	cldService *models.CloudinaryService
	cldErr     error
)

func getCloudinary() (*models.CloudinaryService, error) {
	cldOnce.Do(func() {
		cldService, cldErr = models.NewCloudinaryService()
	})
	return cldService, cldErr
}

type UploadController struct{}

func NewUploadController() *UploadController {
	return &UploadController{}
}

// @Summary Upload images
// @Description Upload up to 3 images; stored on disk or Cloudinary per server config (Admin)
// @Tags Admin - Upload
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param images formData file true "Image files"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/upload [post]
func (ctrl *UploadController) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "No files uploaded"})
		return
	}
	if len(files) > maxFilesPerUpload {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Too many files, maximum 3 per upload"})
		return
	}

	for _, fh := range files {
		if err := utils.ValidateImageFile(fh); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
			return
		}
	}

	var images []models.ImageRef

	switch config.AppConfig.UploadDriver {
	case "cloudinary":
		cld, err := getCloudinary()
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Image storage not configured"})
			return
		}
		images, err = cld.UploadMultipleImages(c.Request.Context(), files, cloudinaryFolder)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Error processing uploaded files"})
			return
		}
	default:
		for _, fh := range files {
			path, err := utils.UploadFile(c, fh, "products")
			if err != nil {
				c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Error processing uploaded files"})
				return
			}
			images = append(images, models.ImageRef{URL: path})
		}
	}

	c.JSON(http.StatusOK, models.UploadResponse{Images: images})
}

// @Summary Delete uploaded image
// @Description Delete a remotely stored image by its public_id (Admin)
// @Tags Admin - Upload
// @Security BearerAuth
// @Produce json
// @Param public_id path string true "Cloudinary public ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/upload/{public_id} [delete]
func (ctrl *UploadController) DeleteUploadedImage(c *gin.Context) {
	publicID := strings.TrimPrefix(c.Param("public_id"), "/")
	if publicID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "public_id is required"})
		return
	}

	cld, err := getCloudinary()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Image storage not configured"})
		return
	}

	if err := cld.DeleteImage(c.Request.Context(), publicID); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Error deleting image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully", "public_id": publicID})
}

// removeStoredImage releases one stored image, whichever backend holds
// it. Failures are logged and swallowed: the owning document is already
// gone and the caller reports success regardless.
func removeStoredImage(ctx context.Context, img models.ImageRef) {
	if img.PublicID != "" {
		cld, err := getCloudinary()
		if err != nil {
			log.Printf("image cleanup skipped for %s: %v", img.PublicID, err)
			return
		}
		if err := cld.DeleteImage(ctx, img.PublicID); err != nil {
			log.Printf("failed to delete remote image %s: %v", img.PublicID, err)
		}
		return
	}

	if strings.HasPrefix(img.URL, "/uploads/") {
		if err := utils.DeleteFile(img.URL); err != nil {
			log.Printf("failed to delete local image %s: %v", img.URL, err)
		}
	}
}
