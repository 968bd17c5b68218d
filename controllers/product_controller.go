package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"proshop/config"
	"proshop/models"
	"proshop/services"
)

type ProductController struct {
	svc *services.ProductService
}

func NewProductController(svc *services.ProductService) *ProductController {
	return &ProductController{svc: svc}
}

func getProductCacheKey(keyword string, page int) string {
	return fmt.Sprintf("products_list_k%s_p%d", keyword, page)
}

var invalidateProductCache = func() {
	if config.RedisClient == nil {
		return
	}
	ctx := context.Background()
	iter := config.RedisClient.Scan(ctx, 0, "products_list_*", 0).Iterator()
	for iter.Next(ctx) {
		config.RedisClient.Del(ctx, iter.Val())
	}
}

// @Summary List products
// @Description Paginated catalog page, optionally filtered by name keyword
// @Tags Products
// @Produce json
// @Param keyword query string false "Filter by product name"
// @Param pageNumber query int false "Page number" default(1)
// @Success 200 {object} models.ProductListResponse
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	keyword := c.Query("keyword")
	page, _ := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	if page < 1 {
		page = 1
	}

	cacheKey := getProductCacheKey(keyword, page)
	if config.RedisClient != nil {
		cached, err := config.RedisClient.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}
	}

	resp, err := ctrl.svc.List(c.Request.Context(), keyword, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch products"})
		return
	}

	if config.RedisClient != nil {
		if jsonData, err := json.Marshal(resp); err == nil {
			config.RedisClient.Set(c.Request.Context(), cacheKey, string(jsonData), 5*time.Minute)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Top rated products
// @Description Best-rated products for the home carousel
// @Tags Products
// @Produce json
// @Success 200 {array} models.Product
// @Router /api/products/top [get]
func (ctrl *ProductController) GetTopProducts(c *gin.Context) {
	products, err := ctrl.svc.Top(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary Get product by ID
// @Tags Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [get]
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	product, err := ctrl.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Resource not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to fetch product"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// @Summary Create product
// @Description Create a placeholder product to be edited afterwards (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Success 201 {object} models.Product
// @Router /api/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	adminID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Not authorized, token failed"})
		return
	}

	product, err := ctrl.svc.CreateSample(c.Request.Context(), adminID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to create product"})
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusCreated, product)
}

// @Summary Update product
// @Description Replace product fields; omit images to keep the stored list (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.UpdateProductRequest true "Product fields"
// @Success 200 {object} models.Product
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid request body"})
		return
	}

	product, err := ctrl.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
		case errors.Is(err, services.ErrTooManyImages):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to update product"})
		}
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, product)
}

// @Summary Delete product
// @Description Delete product and release its stored images (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	product, err := ctrl.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete product"})
		return
	}

	// Storage cleanup is best effort: failures are logged, the deletion
	// is already committed.
	for _, img := range product.Images {
		removeStoredImage(c.Request.Context(), img)
	}
	// Older products hold their uploaded file in the legacy image field.
	// removeStoredImage only touches /uploads/ paths, so static assets
	// like the placeholder pass through untouched.
	if product.Image != "" {
		removeStoredImage(c.Request.Context(), models.ImageRef{URL: product.Image})
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Product removed"})
}

// @Summary Add review
// @Description Add a review to a product; one review per user per product
// @Tags Products
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.CreateReviewRequest true "Review"
// @Success 201 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id}/reviews [post]
func (ctrl *ProductController) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Invalid review payload"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Not authorized, token failed"})
		return
	}

	_, err = ctrl.svc.AddReview(c.Request.Context(), c.Param("id"), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
		case errors.Is(err, services.ErrAlreadyReviewed):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Product already reviewed"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "Not authorized, token failed"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to add review"})
		}
		return
	}

	// The cached list pages carry rating and numReviews.
	invalidateProductCache()
	c.JSON(http.StatusCreated, models.MessageResponse{Message: "Review added"})
}

// @Summary Delete review
// @Description Remove a review and recompute rating and numReviews (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Param reviewId path string true "Review ID"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id}/reviews/{reviewId} [delete]
func (ctrl *ProductController) DeleteReview(c *gin.Context) {
	_, err := ctrl.svc.DeleteReview(c.Request.Context(), c.Param("id"), c.Param("reviewId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
		case errors.Is(err, services.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Review not found"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete review"})
		}
		return
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Review removed"})
}

// @Summary Delete product image
// @Description Remove image entries matching the filename and release the files (Admin)
// @Tags Admin - Products
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Param imageName path string true "Image filename fragment"
// @Success 200 {object} models.MessageResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/products/{id}/images/{imageName} [delete]
func (ctrl *ProductController) DeleteProductImage(c *gin.Context) {
	removed, err := ctrl.svc.RemoveImage(c.Request.Context(), c.Param("id"), c.Param("imageName"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Product not found"})
		case errors.Is(err, services.ErrImageNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Image not found"})
		default:
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Failed to delete image"})
		}
		return
	}

	for _, img := range removed {
		removeStoredImage(c.Request.Context(), img)
	}

	invalidateProductCache()
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Image removed"})
}
