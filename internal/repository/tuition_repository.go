package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ignite/tuition-service/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// idPrefix marks tuition ids so they are recognisable in the student and
// payment services' records.
const idPrefix = "tid-"

const tuitionColumns = `id, name, location, description, schedule, fee, created_at, updated_at`

// TuitionRepository handles tuition data access.
type TuitionRepository struct {
	pool *pgxpool.Pool
}

// NewTuitionRepository creates a new TuitionRepository.
func NewTuitionRepository(pool *pgxpool.Pool) *TuitionRepository {
	return &TuitionRepository{pool: pool}
}

// NewTuitionID generates an id for a tuition that has not been stored yet.
func NewTuitionID() string {
	return idPrefix + uuid.New().String()
}

// Create inserts a new tuition, assigning its id and timestamps.
func (r *TuitionRepository) Create(ctx context.Context, t *model.Tuition) error {
	t.ID = NewTuitionID()
	err := r.pool.QueryRow(ctx,
		`INSERT INTO tuitions (id, name, location, description, schedule, fee)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		t.ID, t.Name, t.Location, t.Description, t.Schedule, t.Fee,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		t.ID = ""
		return fmt.Errorf("insert tuition: %w", mapError(err))
	}
	return nil
}

// GetByID retrieves a tuition by its ID.
func (r *TuitionRepository) GetByID(ctx context.Context, id string) (*model.Tuition, error) {
	t := &model.Tuition{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+tuitionColumns+` FROM tuitions WHERE id = $1`, id,
	).Scan(&t.ID, &t.Name, &t.Location, &t.Description, &t.Schedule, &t.Fee, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return t, nil
}

// GetByIDFresh is GetByID; the repository always reads the current row.
func (r *TuitionRepository) GetByIDFresh(ctx context.Context, id string) (*model.Tuition, error) {
	return r.GetByID(ctx, id)
}

// List retrieves all tuitions in insertion order.
func (r *TuitionRepository) List(ctx context.Context) ([]model.Tuition, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+tuitionColumns+` FROM tuitions ORDER BY seq ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tuitions := []model.Tuition{}
	for rows.Next() {
		var t model.Tuition
		if err := rows.Scan(&t.ID, &t.Name, &t.Location, &t.Description, &t.Schedule, &t.Fee, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tuitions = append(tuitions, t)
	}
	return tuitions, rows.Err()
}

// ExistsByName reports whether a tuition with exactly this name is stored.
func (r *TuitionRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tuitions WHERE name = $1)`, name,
	).Scan(&exists)
	return exists, err
}

// Delete removes a tuition by its ID. Deleting a missing id is not an error.
func (r *TuitionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM tuitions WHERE id = $1`, id)
	return err
}
