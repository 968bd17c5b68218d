package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"proshop/models"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) Search(ctx context.Context, keyword string, skip, limit int) ([]models.Product, int, error) {
	args := m.Called(ctx, keyword, skip, limit)
	return args.Get(0).([]models.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepo) TopRated(ctx context.Context, limit int) ([]models.Product, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepo) Create(ctx context.Context, p *models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) Update(ctx context.Context, p *models.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepo) PushReview(ctx context.Context, id primitive.ObjectID, review models.Review) (bool, error) {
	args := m.Called(ctx, id, review)
	return args.Bool(0), args.Error(1)
}

func (m *mockProductRepo) UpdateAggregates(ctx context.Context, id primitive.ObjectID, rating float64, numReviews int) error {
	args := m.Called(ctx, id, rating, numReviews)
	return args.Error(0)
}

func (m *mockProductRepo) SetReviews(ctx context.Context, id primitive.ObjectID, reviews []models.Review, rating float64, numReviews int) error {
	args := m.Called(ctx, id, reviews, rating, numReviews)
	return args.Error(0)
}

func (m *mockProductRepo) SetImages(ctx context.Context, id primitive.ObjectID, images []models.ImageRef) error {
	args := m.Called(ctx, id, images)
	return args.Error(0)
}

type mockUserFinder struct {
	mock.Mock
}

func (m *mockUserFinder) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newProductService(repo *mockProductRepo, users *mockUserFinder) *ProductService {
	return NewProductService(repo, users, 4)
}

func TestListPagination(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	repo.On("Search", mock.Anything, "", 4, 4).
		Return([]models.Product{{Name: "Camera"}}, 9, nil)

	resp, err := svc.List(context.Background(), "", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, 3, resp.Pages)
	require.Len(t, resp.Products, 1)
	repo.AssertExpectations(t)
}

func TestListClampsPage(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	repo.On("Search", mock.Anything, "phone", 0, 4).
		Return([]models.Product{}, 0, nil)

	resp, err := svc.List(context.Background(), "phone", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 0, resp.Pages)
	assert.Empty(t, resp.Products)
}

func TestListNormalizesDisplayImage(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	repo.On("Search", mock.Anything, "", 0, 4).Return([]models.Product{
		{Name: "New", Images: []models.ImageRef{{URL: "/uploads/new.jpg"}}},
		{Name: "Legacy", Image: "/uploads/legacy.jpg"},
		{Name: "Bare"},
	}, 3, nil)

	resp, err := svc.List(context.Background(), "", 1)
	require.NoError(t, err)

	assert.Equal(t, "/uploads/new.jpg", resp.Products[0].Image)
	assert.Equal(t, "/uploads/legacy.jpg", resp.Products[1].Image)
	assert.Equal(t, models.PlaceholderImage, resp.Products[2].Image)
}

func TestGetRejectsMalformedID(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	_, err := svc.Get(context.Background(), "not-a-hex-id")
	assert.ErrorIs(t, err, ErrProductNotFound)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestGetNotFound(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).Return(nil, mongo.ErrNoDocuments)

	_, err := svc.Get(context.Background(), id.Hex())
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestCreateSampleDefaults(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

	adminID := primitive.NewObjectID()
	product, err := svc.CreateSample(context.Background(), adminID)
	require.NoError(t, err)

	assert.Equal(t, "Sample name", product.Name)
	assert.Equal(t, adminID, product.User)
	assert.Equal(t, models.PlaceholderImage, product.Image)
	assert.Empty(t, product.Reviews)
	assert.Zero(t, product.Rating)
}

func TestUpdateKeepsImagesWhenOmitted(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	id := primitive.NewObjectID()
	stored := []models.ImageRef{{URL: "/uploads/keep.jpg", PublicID: "proshop/keep"}}
	repo.On("FindByID", mock.Anything, id).Return(&models.Product{ID: id, Images: stored}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

	product, err := svc.Update(context.Background(), id.Hex(), models.UpdateProductRequest{Name: "Renamed", Price: 99.99})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", product.Name)
	assert.Equal(t, stored, product.Images)
}

func TestUpdateReplacesImagesWhenProvided(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).
		Return(&models.Product{ID: id, Images: []models.ImageRef{{URL: "/uploads/old.jpg"}}}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.Product")).Return(nil)

	replacement := []models.ImageRef{{URL: "/uploads/a.jpg"}, {URL: "/uploads/b.jpg"}}
	product, err := svc.Update(context.Background(), id.Hex(), models.UpdateProductRequest{Images: &replacement})
	require.NoError(t, err)

	assert.Equal(t, replacement, product.Images)
}

func TestUpdateRejectsTooManyImages(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).Return(&models.Product{ID: id}, nil)

	oversized := make([]models.ImageRef, MaxProductImages+1)
	_, err := svc.Update(context.Background(), id.Hex(), models.UpdateProductRequest{Images: &oversized})

	assert.ErrorIs(t, err, ErrTooManyImages)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAddReviewRecomputesAggregates(t *testing.T) {
	repo := new(mockProductRepo)
	users := new(mockUserFinder)
	svc := newProductService(repo, users)

	id := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	repo.On("FindByID", mock.Anything, id).
		Return(&models.Product{ID: id, Reviews: []models.Review{
			{Rating: 5}, {Rating: 3}, {Rating: 4},
		}}, nil)
	users.On("FindByID", mock.Anything, userID).
		Return(&models.User{ID: userID, Name: "Jane Buyer"}, nil)
	repo.On("PushReview", mock.Anything, id, mock.MatchedBy(func(r models.Review) bool {
		return r.User == userID && r.Name == "Jane Buyer" && r.Rating == 4
	})).Return(true, nil)
	repo.On("UpdateAggregates", mock.Anything, id, 4.0, 3).Return(nil)

	product, err := svc.AddReview(context.Background(), id.Hex(), userID, models.CreateReviewRequest{Rating: 4, Comment: "Solid"})
	require.NoError(t, err)

	assert.Equal(t, 3, product.NumReviews)
	assert.InDelta(t, 4.0, product.Rating, 0.0001)
	repo.AssertExpectations(t)
}

func TestAddReviewRejectsSecondReview(t *testing.T) {
	repo := new(mockProductRepo)
	users := new(mockUserFinder)
	svc := newProductService(repo, users)

	id := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	repo.On("FindByID", mock.Anything, id).Return(&models.Product{ID: id}, nil)
	users.On("FindByID", mock.Anything, userID).
		Return(&models.User{ID: userID, Name: "Jane Buyer"}, nil)
	repo.On("PushReview", mock.Anything, id, mock.AnythingOfType("models.Review")).
		Return(false, nil)

	_, err := svc.AddReview(context.Background(), id.Hex(), userID, models.CreateReviewRequest{Rating: 5, Comment: "Again"})

	assert.ErrorIs(t, err, ErrAlreadyReviewed)
	repo.AssertNotCalled(t, "UpdateAggregates", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteReviewRecomputesAggregates(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	id := primitive.NewObjectID()
	target := primitive.NewObjectID()
	keepA := models.Review{ID: primitive.NewObjectID(), Rating: 5}
	keepB := models.Review{ID: primitive.NewObjectID(), Rating: 4}

	repo.On("FindByID", mock.Anything, id).
		Return(&models.Product{ID: id, Reviews: []models.Review{keepA, {ID: target, Rating: 3}, keepB}}, nil)
	repo.On("SetReviews", mock.Anything, id, []models.Review{keepA, keepB}, 4.5, 2).Return(nil)

	product, err := svc.DeleteReview(context.Background(), id.Hex(), target.Hex())
	require.NoError(t, err)

	assert.Equal(t, 2, product.NumReviews)
	assert.InDelta(t, 4.5, product.Rating, 0.0001)
	repo.AssertExpectations(t)
}

func TestDeleteReviewNotFound(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).
		Return(&models.Product{ID: id, Reviews: []models.Review{{ID: primitive.NewObjectID(), Rating: 5}}}, nil)

	_, err := svc.DeleteReview(context.Background(), id.Hex(), primitive.NewObjectID().Hex())

	assert.ErrorIs(t, err, ErrReviewNotFound)
	repo.AssertNotCalled(t, "SetReviews", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveImageByFilename(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	id := primitive.NewObjectID()
	keep := models.ImageRef{URL: "/uploads/products/keep.jpg"}
	gone := models.ImageRef{URL: "/uploads/products/gone.jpg", PublicID: "proshop/gone"}

	repo.On("FindByID", mock.Anything, id).
		Return(&models.Product{ID: id, Images: []models.ImageRef{keep, gone}}, nil)
	repo.On("SetImages", mock.Anything, id, []models.ImageRef{keep}).Return(nil)

	removed, err := svc.RemoveImage(context.Background(), id.Hex(), "gone.jpg")
	require.NoError(t, err)

	assert.Equal(t, []models.ImageRef{gone}, removed)
	repo.AssertExpectations(t)
}

func TestRemoveImageNotFound(t *testing.T) {
	repo := new(mockProductRepo)
	svc := newProductService(repo, nil)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).
		Return(&models.Product{ID: id, Images: []models.ImageRef{{URL: "/uploads/products/keep.jpg"}}}, nil)

	_, err := svc.RemoveImage(context.Background(), id.Hex(), "missing.jpg")

	assert.ErrorIs(t, err, ErrImageNotFound)
	repo.AssertNotCalled(t, "SetImages", mock.Anything, mock.Anything, mock.Anything)
}
