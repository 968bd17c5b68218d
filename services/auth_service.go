package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"proshop/config"
	"proshop/models"
	"proshop/utils"
)

const otpTTL = 5 * time.Minute

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	All(ctx context.Context) ([]models.User, error)
}

// Mailer sends the password-reset OTP. Satisfied by models.EmailService.
type Mailer interface {
	SendOTPEmail(toEmail, otp string) error
}

type AuthService struct {
	userRepo UserRepository
	mailer   Mailer
}

func NewAuthService(userRepo UserRepository, mailer Mailer) *AuthService {
	return &AuthService{userRepo: userRepo, mailer: mailer}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	if existing, _ := s.userRepo.FindByEmail(ctx, req.Email); existing != nil {
		return nil, "", ErrEmailTaken
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index backstops the read-then-write above.
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.IsAdmin)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// ForgotPassword emails a short-lived OTP, stored in Redis keyed by email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return ErrUserNotFound
	}

	if config.RedisClient == nil || s.mailer == nil {
		return ErrOTPUnavailable
	}

	otp, err := generateOTP()
	if err != nil {
		return ErrOTPUnavailable
	}

	if err := config.RedisClient.Set(ctx, otpKey(email), otp, otpTTL).Err(); err != nil {
		return ErrOTPUnavailable
	}

	return s.mailer.SendOTPEmail(email, otp)
}

func (s *AuthService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	if config.RedisClient == nil {
		return ErrOTPUnavailable
	}

	stored, err := config.RedisClient.Get(ctx, otpKey(req.Email)).Result()
	if err != nil || stored != req.OTP {
		return ErrInvalidOTP
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return ErrUserNotFound
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.Password = hashed

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	config.RedisClient.Del(ctx, otpKey(req.Email))
	return nil
}

func otpKey(email string) string {
	return "password_reset:" + email
}

// generateOTP draws a 6-digit code from the system CSPRNG.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
