package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/apperr"
	"github.com/gbrl-pnhr/TrabalhoFinalBD/internal/db"
)

var (
	ErrTableNotFound     = apperr.NotFound("table not found")
	ErrTableNumberExists = apperr.Conflict("table number already exists")
	ErrTableInUse        = apperr.Conflict("table has orders and cannot be deleted")
)

type Repository interface {
	Create(ctx context.Context, t *Table) error
	GetByID(ctx context.Context, id int64) (*Table, error)
	List(ctx context.Context) ([]Table, error)
	Delete(ctx context.Context, id int64) error
}

type postgresRepository struct {
	db db.DBTX
}

func NewRepository(pool db.DBTX) Repository {
	return &postgresRepository{db: pool}
}

const selectTable = `
	SELECT t.id, t.number, t.capacity, t.location, t.created_at,
	       EXISTS (SELECT 1 FROM orders o WHERE o.table_id = t.id AND o.status = 'OPEN') AS occupied
	FROM dining_tables t
`

func scanTable(row pgx.Row) (*Table, error) {
	var t Table
	if err := row.Scan(&t.ID, &t.Number, &t.Capacity, &t.Location, &t.CreatedAt, &t.Occupied); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *postgresRepository) Create(ctx context.Context, t *Table) error {
	query := `
		INSERT INTO dining_tables (number, capacity, location)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := db.Executor(ctx, r.db).QueryRow(ctx, query, t.Number, t.Capacity, t.Location).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return ErrTableNumberExists
		}
		return fmt.Errorf("repository: failed to insert table: %w", err)
	}
	t.Occupied = false

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Table, error) {
	t, err := scanTable(db.Executor(ctx, r.db).QueryRow(ctx, selectTable+` WHERE t.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("repository: failed to select table by id %d: %w", id, err)
	}
	return t, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]Table, error) {
	rows, err := db.Executor(ctx, r.db).Query(ctx, selectTable+` ORDER BY t.number`)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to query tables: %w", err)
	}
	defer rows.Close()

	tables := make([]Table, 0)
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan table: %w", err)
		}
		tables = append(tables, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating tables: %w", err)
	}

	return tables, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := db.Executor(ctx, r.db).Exec(ctx, `DELETE FROM dining_tables WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrTableInUse
		}
		return fmt.Errorf("repository: failed to delete table %d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrTableNotFound
	}

	return nil
}
