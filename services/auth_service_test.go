package services

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"proshop/config"
	"proshop/models"
	"proshop/utils"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: "1h",
	}
	os.Exit(m.Run())
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockUserRepo) All(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendOTPEmail(toEmail, otp string) error {
	args := m.Called(toEmail, otp)
	return args.Error(0)
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, nil)

	repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(nil, mongo.ErrNoDocuments)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.User).ID = primitive.NewObjectID()
		}).
		Return(nil)

	user, token, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Jane Buyer",
		Email:    "jane@example.com",
		Password: "sekret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, token)
	assert.NotEqual(t, "sekret123", user.Password)

	valid, err := utils.VerifyPassword(user.Password, "sekret123")
	require.NoError(t, err)
	assert.True(t, valid)

	claims, err := utils.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, nil)

	repo.On("FindByEmail", mock.Anything, "jane@example.com").
		Return(&models.User{Email: "jane@example.com"}, nil)

	_, _, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Jane Buyer",
		Email:    "jane@example.com",
		Password: "sekret123",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin(t *testing.T) {
	hashed, err := utils.HashPassword("sekret123")
	require.NoError(t, err)

	stored := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: hashed,
		IsAdmin:  true,
	}

	t.Run("valid credentials", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := NewAuthService(repo, nil)
		repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(stored, nil)

		user, token, err := svc.Login(context.Background(), models.LoginRequest{
			Email:    "jane@example.com",
			Password: "sekret123",
		})
		require.NoError(t, err)

		assert.Equal(t, stored.ID, user.ID)
		claims, err := utils.ValidateToken(token)
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := NewAuthService(repo, nil)
		repo.On("FindByEmail", mock.Anything, "jane@example.com").Return(stored, nil)

		_, _, err := svc.Login(context.Background(), models.LoginRequest{
			Email:    "jane@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := new(mockUserRepo)
		svc := NewAuthService(repo, nil)
		repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, mongo.ErrNoDocuments)

		_, _, err := svc.Login(context.Background(), models.LoginRequest{
			Email:    "nobody@example.com",
			Password: "sekret123",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, nil)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).
		Return(&models.User{ID: id, Name: "Old Name", Email: "old@example.com"}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.UpdateProfile(context.Background(), id, models.UpdateProfileRequest{Name: "New Name"})
	require.NoError(t, err)

	assert.Equal(t, "New Name", user.Name)
	assert.Equal(t, "old@example.com", user.Email)
}

func TestForgotPasswordWithoutCache(t *testing.T) {
	repo := new(mockUserRepo)
	mailer := new(mockMailer)
	svc := NewAuthService(repo, mailer)

	repo.On("FindByEmail", mock.Anything, "jane@example.com").
		Return(&models.User{Email: "jane@example.com"}, nil)

	err := svc.ForgotPassword(context.Background(), "jane@example.com")
	assert.ErrorIs(t, err, ErrOTPUnavailable)
	mailer.AssertNotCalled(t, "SendOTPEmail", mock.Anything, mock.Anything)
}

func TestGenerateOTP(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 64; i++ {
		otp, err := generateOTP()
		require.NoError(t, err)

		require.Len(t, otp, 6)
		for _, c := range otp {
			assert.True(t, c >= '0' && c <= '9')
		}
		seen[otp] = true
	}

	// 64 draws from a million values collapsing to one code would mean
	// the source is not random at all.
	assert.Greater(t, len(seen), 1)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewAuthService(repo, new(mockMailer))

	repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, mongo.ErrNoDocuments)

	err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
