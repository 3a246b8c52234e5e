package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
	"github.com/avatarctic/travel-planner/internal/core/ports"
	"github.com/avatarctic/travel-planner/internal/infrastructure/db"
)

const placeColumns = `id, project_id, external_id, title, notes, visited, created_at, updated_at`

// uniqueViolation is the Postgres SQLSTATE for unique constraint failures.
const uniqueViolation = "23505"

type placeRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewPlaceRepository creates a new place repository
func NewPlaceRepository(database *db.Database, logger *logrus.Logger) ports.PlaceRepository {
	return &placeRepository{
		db:     database,
		logger: logger,
	}
}

func insertPlace(ctx context.Context, q sqlx.QueryerContext, pl *project.Place) error {
	query := `
		INSERT INTO project_places (project_id, external_id, title, notes, visited, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := q.QueryRowxContext(ctx, query,
		pl.ProjectID, pl.ExternalID, pl.Title, pl.Notes, pl.Visited, pl.CreatedAt, pl.UpdatedAt,
	).Scan(&pl.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return project.ErrPlaceAlreadyAdded
		}
		return fmt.Errorf("failed to create place: %w", err)
	}
	return nil
}

// Create inserts a new place
func (r *placeRepository) Create(ctx context.Context, pl *project.Place) error {
	if err := insertPlace(ctx, r.db.DB, pl); err != nil {
		return err
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"project_id": pl.ProjectID, "place_id": pl.ID}).Debug("db: place created")
	}
	return nil
}

// GetByID retrieves a place scoped to its project
func (r *placeRepository) GetByID(ctx context.Context, projectID, placeID int64) (*project.Place, error) {
	var pl project.Place
	query := `SELECT ` + placeColumns + ` FROM project_places WHERE project_id = $1 AND id = $2`

	if err := r.db.DB.GetContext(ctx, &pl, query, projectID, placeID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("place %d: %w", placeID, project.ErrPlaceNotFound)
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return &pl, nil
}

// GetByExternalID retrieves a place by its Art Institute id within a project
func (r *placeRepository) GetByExternalID(ctx context.Context, projectID int64, externalID string) (*project.Place, error) {
	var pl project.Place
	query := `SELECT ` + placeColumns + ` FROM project_places WHERE project_id = $1 AND external_id = $2`

	if err := r.db.DB.GetContext(ctx, &pl, query, projectID, externalID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("place %s: %w", externalID, project.ErrPlaceNotFound)
		}
		return nil, fmt.Errorf("failed to get place by external id: %w", err)
	}
	return &pl, nil
}

// Update updates notes and visited state
func (r *placeRepository) Update(ctx context.Context, pl *project.Place) error {
	query := `
		UPDATE project_places
		SET notes = $3, visited = $4, updated_at = $5
		WHERE project_id = $1 AND id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, pl.ProjectID, pl.ID, pl.Notes, pl.Visited, pl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("place %d: %w", pl.ID, project.ErrPlaceNotFound)
	}
	return nil
}

// CountByProject returns the number of places in a project
func (r *placeRepository) CountByProject(ctx context.Context, projectID int64) (int, error) {
	var count int
	if err := r.db.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM project_places WHERE project_id = $1`, projectID); err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	return count, nil
}
