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

func TestUserGetByIDRejectsMalformedID(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)

	_, err := svc.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestUserUpdateAppliesAdminFlag(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).
		Return(&models.User{ID: id, Name: "Jane", Email: "jane@example.com", IsAdmin: true}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	// isAdmin is taken as sent, so an admin can be demoted; the name is
	// left alone when empty.
	user, err := svc.Update(context.Background(), id.Hex(), models.UpdateUserRequest{IsAdmin: false})
	require.NoError(t, err)

	assert.False(t, user.IsAdmin)
	assert.Equal(t, "Jane", user.Name)
}

func TestUserDeleteRefusesAdmin(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).
		Return(&models.User{ID: id, IsAdmin: true}, nil)

	err := svc.Delete(context.Background(), id.Hex())
	assert.ErrorIs(t, err, ErrCannotDeleteAdmin)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserDelete(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).Return(&models.User{ID: id}, nil)
	repo.On("Delete", mock.Anything, id).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), id.Hex()))
	repo.AssertExpectations(t)
}

func TestUserDeleteNotFound(t *testing.T) {
	repo := new(mockUserRepo)
	svc := NewUserService(repo)

	id := primitive.NewObjectID()
	repo.On("FindByID", mock.Anything, id).Return(nil, mongo.ErrNoDocuments)

	err := svc.Delete(context.Background(), id.Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
