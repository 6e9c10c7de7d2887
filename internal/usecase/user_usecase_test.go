package usecase_test

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"go-interview-backend/internal/domain"
	"go-interview-backend/internal/usecase"
	"go-interview-backend/pkg/apperror"
)

func newUserUC(repo *MockUserRepo) domain.UserUsecase {
	return usecase.NewUserUsecase(repo, validator.New())
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestGetProfile(t *testing.T) {
	t.Run("maps missing user to not found", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newUserUC(repo)

		repo.On("GetByID", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

		_, err := uc.GetProfile(context.Background(), "ghost")
		assertKind(t, err, apperror.KindNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	existing := func() *domain.User {
		return &domain.User{ID: "user1", Name: "Old Name", ExperienceLevel: 1}
	}

	t.Run("applies provided fields only", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newUserUC(repo)

		repo.On("GetByID", mock.Anything, "user1").Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := uc.UpdateProfile(context.Background(), "user1", domain.UpdateProfileInput{
			PreferredRole: strPtr("devops"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Old Name", user.Name)
		assert.Equal(t, "devops", *user.PreferredRole)
		assert.Equal(t, 1, user.ExperienceLevel)
	})

	t.Run("rejects unknown preferred role", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newUserUC(repo)

		repo.On("GetByID", mock.Anything, "user1").Return(existing(), nil)

		_, err := uc.UpdateProfile(context.Background(), "user1", domain.UpdateProfileInput{
			PreferredRole: strPtr("designer"),
		})
		assertKind(t, err, apperror.KindInvalidArgument)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("rejects out-of-range experience level", func(t *testing.T) {
		repo := new(MockUserRepo)
		uc := newUserUC(repo)

		repo.On("GetByID", mock.Anything, "user1").Return(existing(), nil)

		_, err := uc.UpdateProfile(context.Background(), "user1", domain.UpdateProfileInput{
			ExperienceLevel: intPtr(9),
		})
		assertKind(t, err, apperror.KindInvalidArgument)
		repo.AssertNotCalled(t, "Update")
	})
}
