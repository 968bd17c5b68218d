package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"proshop/models"
)

// MaxProductImages caps the image list per product. The cap used to live
// only in the admin UI; the API enforces it too.
const MaxProductImages = 4

// TopProductsLimit is how many products the carousel endpoint returns.
const TopProductsLimit = 9

type ProductRepository interface {
	Search(ctx context.Context, keyword string, skip, limit int) ([]models.Product, int, error)
	TopRated(ctx context.Context, limit int) ([]models.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushReview(ctx context.Context, id primitive.ObjectID, review models.Review) (bool, error)
	UpdateAggregates(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error
	SetReviews(ctx context.Context, id primitive.ObjectID, reviews []models.Review, rating float64, numReviews int) error
	SetImages(ctx context.Context, id primitive.ObjectID, images []models.ImageRef) error
}

// UserFinder is the slice of the user repository the catalog needs: the
// reviewer's name is snapshotted onto the review.
type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type ProductService struct {
	productRepo ProductRepository
	users       UserFinder
	pageSize    int
}

func NewProductService(productRepo ProductRepository, users UserFinder, pageSize int) *ProductService {
	if pageSize < 1 {
		pageSize = 4
	}
	return &ProductService{
		productRepo: productRepo,
		users:       users,
		pageSize:    pageSize,
	}
}

// List returns one catalog page. keyword filters by case-insensitive name
// substring; page is 1-based. An empty result is not an error: products is
// an empty list and pages is 0.
func (s *ProductService) List(ctx context.Context, keyword string, page int) (*models.ProductListResponse, error) {
	if page < 1 {
		page = 1
	}

	skip := (page - 1) * s.pageSize
	products, total, err := s.productRepo.Search(ctx, keyword, skip, s.pageSize)
	if err != nil {
		return nil, err
	}

	for i := range products {
		products[i].Image = products[i].DisplayImage()
	}

	return &models.ProductListResponse{
		Products: products,
		Page:     page,
		Pages:    int(math.Ceil(float64(total) / float64(s.pageSize))),
	}, nil
}

func (s *ProductService) Top(ctx context.Context) ([]models.Product, error) {
	products, err := s.productRepo.TopRated(ctx, TopProductsLimit)
	if err != nil {
		return nil, err
	}
	for i := range products {
		products[i].Image = products[i].DisplayImage()
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	product, err := s.productRepo.FindByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	return product, err
}

// CreateSample inserts a placeholder product owned by the acting admin.
// The admin UI creates first and edits afterwards.
func (s *ProductService) CreateSample(ctx context.Context, adminID primitive.ObjectID) (*models.Product, error) {
	product := &models.Product{
		User:         adminID,
		Name:         "Sample name",
		Price:        0,
		Image:        models.PlaceholderImage,
		Images:       []models.ImageRef{},
		Brand:        "Sample brand",
		Category:     "Sample category",
		CountInStock: 0,
		Description:  "Sample description",
		Reviews:      []models.Review{},
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update replaces the scalar fields from the request as provided. A nil
// Images keeps the stored list; a non-nil one replaces it entirely.
func (s *ProductService) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Description = req.Description
	product.Image = req.Image
	product.Brand = req.Brand
	product.Category = req.Category
	product.CountInStock = req.CountInStock

	if req.Images != nil {
		if len(*req.Images) > MaxProductImages {
			return nil, ErrTooManyImages
		}
		product.Images = *req.Images
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// Delete removes the product and returns the deleted document so the
// caller can release its stored image files.
func (s *ProductService) Delete(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// AddReview appends a review and recomputes the aggregates. The append is
// conditional on the user not having reviewed the product yet, so two
// concurrent submissions from the same user cannot both land.
func (s *ProductService) AddReview(ctx context.Context, productID string, userID primitive.ObjectID, req models.CreateReviewRequest) (*models.Product, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	review := models.Review{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	pushed, err := s.productRepo.PushReview(ctx, product.ID, review)
	if err != nil {
		return nil, err
	}
	if !pushed {
		return nil, ErrAlreadyReviewed
	}

	return s.recalcAggregates(ctx, product.ID)
}

// DeleteReview removes one review by id and recomputes the aggregates
// from the remaining list.
func (s *ProductService) DeleteReview(ctx context.Context, productID, reviewID string) (*models.Product, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	rid, err := primitive.ObjectIDFromHex(reviewID)
	if err != nil {
		return nil, ErrReviewNotFound
	}

	remaining := make([]models.Review, 0, len(product.Reviews))
	found := false
	for _, r := range product.Reviews {
		if r.ID == rid {
			found = true
			continue
		}
		remaining = append(remaining, r)
	}
	if !found {
		return nil, ErrReviewNotFound
	}

	product.Reviews = remaining
	product.RecalcAggregates()

	if err := s.productRepo.SetReviews(ctx, product.ID, product.Reviews, product.Rating, product.NumReviews); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// RemoveImage drops every image whose URL contains the filename fragment
// and returns the removed entries so the caller can clean up storage.
func (s *ProductService) RemoveImage(ctx context.Context, productID, imageName string) ([]models.ImageRef, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	remaining := make([]models.ImageRef, 0, len(product.Images))
	removed := []models.ImageRef{}
	for _, img := range product.Images {
		if strings.Contains(img.URL, imageName) {
			removed = append(removed, img)
			continue
		}
		remaining = append(remaining, img)
	}
	if len(removed) == 0 {
		return nil, ErrImageNotFound
	}

	if err := s.productRepo.SetImages(ctx, product.ID, remaining); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return removed, nil
}

func (s *ProductService) recalcAggregates(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.RecalcAggregates()
	if err := s.productRepo.UpdateAggregates(ctx, id, product.Rating, product.NumReviews); err != nil {
		return nil, err
	}
	return product, nil
}
