package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
	"github.com/hsapparel/storefront/internal/repository"
	"github.com/hsapparel/storefront/pkg/errors"
)

type intakeService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewIntakeService creates the newsletter and contact intake service
func NewIntakeService(repos *repository.Repositories, logger *zap.Logger) *intakeService {
	return &intakeService{
		repos:  repos,
		logger: logger,
	}
}

// Subscribe adds an email to the newsletter. A duplicate email is an
// "already subscribed" outcome, not an error.
func (s *intakeService) Subscribe(ctx context.Context, email string) (alreadySubscribed bool, err error) {
	if email == "" || !emailPattern.MatchString(email) {
		return false, &errors.ErrValidation{
			Code:    "invalid email",
			Message: "Please enter a valid email address.",
		}
	}

	subscriber := &domain.Subscriber{Email: email}
	if err := s.repos.Subscriber.Create(ctx, subscriber); err != nil {
		if _, ok := err.(*errors.ErrDuplicate); ok {
			return true, nil
		}
		return false, err
	}

	return false, nil
}

// SubmitMessage records a contact-form submission
func (s *intakeService) SubmitMessage(ctx context.Context, name, email, message string) error {
	if name == "" || email == "" || message == "" {
		return &errors.ErrValidation{
			Code:    "missing information",
			Message: "Please fill in all required fields.",
		}
	}
	if !emailPattern.MatchString(email) {
		return &errors.ErrValidation{
			Code:    "invalid email",
			Message: "Please enter a valid email address.",
		}
	}

	return s.repos.Message.Create(ctx, &domain.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	})
}
