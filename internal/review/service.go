package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
)

const maxCommentLength = 500

var (
	ErrInvalidRating  = apperr.Validation("rating must be between 1 and 5")
	ErrCommentTooLong = apperr.Validation("comment must be at most 500 characters")
	ErrEmptyUpdate    = apperr.Validation("at least one field must be provided")
)

type Service interface {
	CreateReview(ctx context.Context, r *Review) (*Review, error)
	GetReview(ctx context.Context, id int64) (*Review, error)
	ListByDish(ctx context.Context, dishID int64) ([]Review, error)
	UpdateReview(ctx context.Context, id int64, update ReviewUpdate) (*Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type service struct {
	repo  Repository
	guard *Guard
	tx    db.Transactor
}

func NewService(repo Repository, tx db.Transactor) Service {
	return &service{
		repo:  repo,
		guard: NewGuard(repo),
		tx:    tx,
	}
}

func validateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}

func normalizeComment(comment *string) (*string, error) {
	if comment == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil, nil
	}
	if len([]rune(trimmed)) > maxCommentLength {
		return nil, ErrCommentTooLong
	}
	return &trimmed, nil
}

// CreateReview runs the eligibility guard and the insert in one transaction.
// An ineligible triple fails with *EligibilityError; a repeated triple fails
// with ErrDuplicateReview.
func (s *service) CreateReview(ctx context.Context, r *Review) (*Review, error) {
	if err := validateRating(r.Rating); err != nil {
		return nil, err
	}
	comment, err := normalizeComment(r.Comment)
	if err != nil {
		return nil, err
	}
	r.Comment = comment

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		verdict, err := s.guard.Check(ctx, r.CustomerID, r.OrderID, r.DishID)
		if err != nil {
			return err
		}
		if !verdict.Eligible {
			return &EligibilityError{Reason: verdict.Reason}
		}
		return s.repo.Create(ctx, r)
	})
	if err != nil {
		var eligErr *EligibilityError
		switch {
		case errors.As(err, &eligErr):
			log.Warn().
				Int64("customer_id", r.CustomerID).
				Int64("order_id", r.OrderID).
				Int64("dish_id", r.DishID).
				Stringer("reason", eligErr.Reason).
				Msg("service: review refused, customer not eligible")
			return nil, err
		case errors.Is(err, ErrDuplicateReview), errors.Is(err, ErrReferenceNotFound):
			log.Warn().Err(err).Int64("order_id", r.OrderID).Int64("dish_id", r.DishID).Msg("service: review not created")
			return nil, err
		}
		log.Error().Err(err).Msg("service: failed to create review in repository")
		return nil, fmt.Errorf("service: failed to create review: %w", err)
	}

	log.Info().Int64("review_id", r.ID).Int64("dish_id", r.DishID).Int("rating", r.Rating).Msg("service: review created")
	return r, nil
}

func (s *service) GetReview(ctx context.Context, id int64) (*Review, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("service: failed to fetch review: %w", err)
	}
	return r, nil
}

func (s *service) ListByDish(ctx context.Context, dishID int64) ([]Review, error) {
	reviews, err := s.repo.ListByDish(ctx, dishID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list reviews: %w", err)
	}
	return reviews, nil
}

func (s *service) UpdateReview(ctx context.Context, id int64, update ReviewUpdate) (*Review, error) {
	if update.Rating == nil && update.Comment == nil {
		return nil, ErrEmptyUpdate
	}
	if update.Rating != nil {
		if err := validateRating(*update.Rating); err != nil {
			return nil, err
		}
	}
	if update.Comment != nil {
		if len([]rune(strings.TrimSpace(*update.Comment))) > maxCommentLength {
			return nil, ErrCommentTooLong
		}
		trimmed := strings.TrimSpace(*update.Comment)
		update.Comment = &trimmed
	}

	r, err := s.repo.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("service: failed to update review: %w", err)
	}

	return r, nil
}

func (s *service) DeleteReview(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("service: failed to delete review: %w", err)
	}

	log.Info().Int64("review_id", id).Msg("service: review deleted")
	return nil
}
