package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
)

var (
	ErrReviewNotFound    = apperr.NotFound("review not found")
	ErrDuplicateReview   = apperr.Conflict("customer already reviewed this dish for this order")
	ErrReferenceNotFound = apperr.NotFound("customer, dish or order not found")
)

type Repository interface {
	OrderFacts
	Create(ctx context.Context, r *Review) error
	GetByID(ctx context.Context, id int64) (*Review, error)
	ListByDish(ctx context.Context, dishID int64) ([]Review, error)
	Update(ctx context.Context, id int64, update ReviewUpdate) (*Review, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db db.DBTX
}

func NewRepository(pool db.DBTX) Repository {
	return &postgresRepository{db: pool}
}

const selectReview = `
	SELECT r.id, r.customer_id, c.name, r.dish_id, d.name, r.order_id, r.rating, r.comment, r.created_at
	FROM reviews r
	JOIN customers c ON c.id = r.customer_id
	JOIN dishes d ON d.id = r.dish_id
`

func scanReview(row pgx.Row) (*Review, error) {
	var r Review
	err := row.Scan(&r.ID, &r.CustomerID, &r.CustomerName, &r.DishID, &r.DishName, &r.OrderID, &r.Rating, &r.Comment, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (repo *postgresRepository) OrderOwner(ctx context.Context, orderID int64) (int64, bool, error) {
	var customerID int64
	err := db.Executor(ctx, repo.db).QueryRow(ctx, `SELECT customer_id FROM orders WHERE id = $1`, orderID).Scan(&customerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("repository: failed to select order owner %d: %w", orderID, err)
	}
	return customerID, true, nil
}

func (repo *postgresRepository) OrderHasDish(ctx context.Context, orderID, dishID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM order_items WHERE order_id = $1 AND dish_id = $2)`

	var exists bool
	if err := db.Executor(ctx, repo.db).QueryRow(ctx, query, orderID, dishID).Scan(&exists); err != nil {
		return false, fmt.Errorf("repository: failed to check dish %d in order %d: %w", dishID, orderID, err)
	}
	return exists, nil
}

func (repo *postgresRepository) Create(ctx context.Context, r *Review) error {
	query := `
		INSERT INTO reviews (customer_id, dish_id, order_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := db.Executor(ctx, repo.db).QueryRow(ctx, query, r.CustomerID, r.DishID, r.OrderID, r.Rating, r.Comment).
		Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		switch {
		case db.IsUniqueViolation(err):
			return ErrDuplicateReview
		case db.IsForeignKeyViolation(err):
			return ErrReferenceNotFound
		}
		return fmt.Errorf("repository: failed to insert review: %w", err)
	}

	return nil
}

func (repo *postgresRepository) GetByID(ctx context.Context, id int64) (*Review, error) {
	r, err := scanReview(db.Executor(ctx, repo.db).QueryRow(ctx, selectReview+` WHERE r.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("repository: failed to select review by id %d: %w", id, err)
	}
	return r, nil
}

func (repo *postgresRepository) ListByDish(ctx context.Context, dishID int64) ([]Review, error) {
	rows, err := db.Executor(ctx, repo.db).Query(ctx, selectReview+` WHERE r.dish_id = $1 ORDER BY r.created_at DESC, r.id DESC`, dishID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query reviews for dish %d: %w", dishID, err)
	}
	defer rows.Close()

	reviews := make([]Review, 0)
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan review: %w", err)
		}
		reviews = append(reviews, *r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating reviews: %w", err)
	}

	return reviews, nil
}

func (repo *postgresRepository) Update(ctx context.Context, id int64, update ReviewUpdate) (*Review, error) {
	query := `
		UPDATE reviews
		SET rating = COALESCE($2, rating),
		    comment = COALESCE($3, comment)
		WHERE id = $1
	`

	cmdTag, err := db.Executor(ctx, repo.db).Exec(ctx, query, id, update.Rating, update.Comment)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to update review %d: %w", id, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, ErrReviewNotFound
	}

	return repo.GetByID(ctx, id)
}

func (repo *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := db.Executor(ctx, repo.db).Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("repository: failed to delete review %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	return nil
}
