package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/apperror"
)

// profileUpdate is the validated shape of a profile mutation.
type profileUpdate struct {
	Name            string `validate:"omitempty,min=1,max=100"`
	PreferredRole   string `validate:"omitempty,oneof=frontend backend hr aiml fullstack devops"`
	ExperienceLevel int    `validate:"gte=0,lte=4"`
}

type userUsecase struct {
	userRepo domain.UserRepository
	validate *validator.Validate
}

// NewUserUsecase creates the user profile usecase.
func NewUserUsecase(userRepo domain.UserRepository, validate *validator.Validate) domain.UserUsecase {
	return &userUsecase{userRepo: userRepo, validate: validate}
}

func (uc *userUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

// UpdateProfile applies the provided fields. Role and experience level go
// through the same validation rules the interview start path enforces.
func (uc *userUsecase) UpdateProfile(ctx context.Context, userID string, input domain.UpdateProfileInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}

	update := profileUpdate{ExperienceLevel: user.ExperienceLevel}
	if input.Name != nil {
		update.Name = strings.TrimSpace(*input.Name)
	}
	if input.PreferredRole != nil {
		update.PreferredRole = *input.PreferredRole
	}
	if input.ExperienceLevel != nil {
		update.ExperienceLevel = *input.ExperienceLevel
	}

	if err := uc.validate.Struct(update); err != nil {
		return nil, apperror.InvalidArgument(err.Error())
	}

	if update.Name != "" {
		user.Name = update.Name
	}
	if input.PreferredRole != nil {
		user.PreferredRole = input.PreferredRole
	}
	if input.ExperienceLevel != nil {
		user.ExperienceLevel = *input.ExperienceLevel
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, apperror.Internal(err)
	}

	return user, nil
}
