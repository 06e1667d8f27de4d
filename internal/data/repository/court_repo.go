package repository

import (
	"context"
	"fmt"

	"court-booking/internal/data/entity"
	"court-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CourtRepository interface {
	Create(ctx context.Context, court *entity.Court) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error)
	FindAll(ctx context.Context, activeOnly bool) ([]*entity.Court, error)
	Update(ctx context.Context, court *entity.Court) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type courtRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCourtRepository(db database.PgxIface, log *zap.Logger) CourtRepository {
	return &courtRepository{
		db:  db,
		log: log.With(zap.String("repository", "court")),
	}
}

const courtColumns = `id, name, description, price_per_hour, open_hour, close_hour, is_active, created_at, updated_at`

func (r *courtRepository) Create(ctx context.Context, court *entity.Court) error {
	query := `
		INSERT INTO courts (id, name, description, price_per_hour, open_hour, close_hour, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		court.ID,
		court.Name,
		court.Description,
		court.PricePerHour,
		court.OpenHour,
		court.CloseHour,
		court.IsActive,
		court.CreatedAt,
		court.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create court",
			zap.Error(err),
			zap.String("name", court.Name),
		)
		return fmt.Errorf("create court %s: %w", court.Name, err)
	}

	return nil
}

func (r *courtRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts WHERE id = $1`

	var court entity.Court
	err := r.db.QueryRow(ctx, query, id).Scan(
		&court.ID,
		&court.Name,
		&court.Description,
		&court.PricePerHour,
		&court.OpenHour,
		&court.CloseHour,
		&court.IsActive,
		&court.CreatedAt,
		&court.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find court by ID",
			zap.Error(err),
			zap.String("court_id", id.String()),
		)
		return nil, fmt.Errorf("find court by ID %s: %w", id.String(), err)
	}

	return &court, nil
}

func (r *courtRepository) FindAll(ctx context.Context, activeOnly bool) ([]*entity.Court, error) {
	query := `SELECT ` + courtColumns + ` FROM courts ORDER BY name`
	if activeOnly {
		query = `SELECT ` + courtColumns + ` FROM courts WHERE is_active ORDER BY name`
	}

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find courts", zap.Error(err))
		return nil, fmt.Errorf("find courts: %w", err)
	}
	defer rows.Close()

	var courts []*entity.Court
	for rows.Next() {
		var court entity.Court
		err := rows.Scan(
			&court.ID,
			&court.Name,
			&court.Description,
			&court.PricePerHour,
			&court.OpenHour,
			&court.CloseHour,
			&court.IsActive,
			&court.CreatedAt,
			&court.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan court row", zap.Error(err))
			return nil, fmt.Errorf("scan court row: %w", err)
		}
		courts = append(courts, &court)
	}

	return courts, nil
}

func (r *courtRepository) Update(ctx context.Context, court *entity.Court) error {
	query := `
		UPDATE courts
		SET name = $2, description = $3, price_per_hour = $4, open_hour = $5,
		    close_hour = $6, is_active = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		court.ID,
		court.Name,
		court.Description,
		court.PricePerHour,
		court.OpenHour,
		court.CloseHour,
		court.IsActive,
		court.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update court",
			zap.Error(err),
			zap.String("court_id", court.ID.String()),
		)
		return fmt.Errorf("update court %s: %w", court.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("court %s not found", court.ID.String())
	}

	return nil
}

func (r *courtRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE courts SET is_active = false, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to deactivate court",
			zap.Error(err),
			zap.String("court_id", id.String()),
		)
		return fmt.Errorf("deactivate court %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("court %s not found", id.String())
	}

	r.log.Info("Court deactivated", zap.String("court_id", id.String()))
	return nil
}
