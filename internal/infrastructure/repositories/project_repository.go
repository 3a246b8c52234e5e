package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
	"github.com/avatarctic/travel-planner/internal/core/ports"
	"github.com/avatarctic/travel-planner/internal/infrastructure/db"
)

const projectColumns = `id, name, description, start_date, created_at, updated_at`

// ProjectRepository implements the project repository interface
type ProjectRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(database *db.Database, logger *logrus.Logger) ports.ProjectRepository {
	return &ProjectRepository{
		db:     database,
		logger: logger,
	}
}

// CreateWithPlaces inserts a project and its initial places atomically.
func (r *ProjectRepository) CreateWithPlaces(ctx context.Context, p *project.Project, places []*project.Place) error {
	tx, err := r.db.DB.BeginTxx(ctx, nil)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to begin transaction for create project")
		}
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO projects (name, description, start_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := tx.QueryRowxContext(ctx, query, p.Name, p.Description, p.StartDate, p.CreatedAt, p.UpdatedAt).Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	for _, pl := range places {
		pl.ProjectID = p.ID
		if err := insertPlace(ctx, tx, pl); err != nil {
			if r.logger != nil {
				r.logger.WithFields(logrus.Fields{"project_id": p.ID, "external_id": pl.ExternalID}).WithError(err).Error("db: failed to insert place for new project")
			}
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Error("db: failed to commit transaction for create project")
		}
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"project_id": p.ID, "places_count": len(places)}).Debug("db: project created")
	}
	return nil
}

// GetByID retrieves a project and its places
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*project.Project, error) {
	var p project.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	if err := r.db.DB.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %d: %w", id, project.ErrProjectNotFound)
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if err := r.attachPlaces(ctx, []*project.Project{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update updates the mutable project fields
func (r *ProjectRepository) Update(ctx context.Context, p *project.Project) error {
	query := `
		UPDATE projects
		SET name = $2, description = $3, start_date = $4, updated_at = $5
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query, p.ID, p.Name, p.Description, p.StartDate, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("project %d: %w", p.ID, project.ErrProjectNotFound)
	}
	return nil
}

// Delete removes a project; its places are removed by the foreign key cascade.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("project %d: %w", id, project.ErrProjectNotFound)
	}
	return nil
}

// List retrieves a page of projects, newest first, with their places
func (r *ProjectRepository) List(ctx context.Context, filter *project.ListFilter) ([]*project.Project, error) {
	where, args := buildProjectFilter(filter)
	args = append(args, filter.Limit, filter.Skip)
	query := fmt.Sprintf(`
		SELECT %s
		FROM projects p
		%s
		ORDER BY p.id DESC
		LIMIT $%d OFFSET $%d`, prefixed("p", projectColumns), where, len(args)-1, len(args))

	var projects []*project.Project
	if err := r.db.DB.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if err := r.attachPlaces(ctx, projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Count returns the number of projects matching the filter
func (r *ProjectRepository) Count(ctx context.Context, filter *project.ListFilter) (int, error) {
	where, args := buildProjectFilter(filter)
	query := `SELECT COUNT(*) FROM projects p ` + where

	var count int
	if err := r.db.DB.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

// completedProjectIDs selects projects with at least one place where every place is visited.
const completedProjectIDs = `
	SELECT project_id FROM project_places
	GROUP BY project_id
	HAVING COUNT(*) > 0 AND BOOL_AND(visited)`

func buildProjectFilter(filter *project.ListFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter != nil {
		if term := strings.TrimSpace(filter.Search); term != "" {
			args = append(args, "%"+term+"%")
			n := len(args)
			clauses = append(clauses, fmt.Sprintf("(p.name ILIKE $%d OR (p.description IS NOT NULL AND p.description ILIKE $%d))", n, n))
		}
		if filter.Completed != nil {
			if *filter.Completed {
				clauses = append(clauses, "p.id IN ("+completedProjectIDs+")")
			} else {
				clauses = append(clauses, "p.id NOT IN ("+completedProjectIDs+")")
			}
		}
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

func (r *ProjectRepository) attachPlaces(ctx context.Context, projects []*project.Project) error {
	if len(projects) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(projects))
	byID := make(map[int64]*project.Project, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Places = []*project.Place{}
	}

	query := `SELECT ` + placeColumns + ` FROM project_places WHERE project_id = ANY($1) ORDER BY id`
	var places []*project.Place
	if err := r.db.DB.SelectContext(ctx, &places, query, pq.Array(ids)); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"projects": len(ids)}).WithError(err).Error("db: failed to load places")
		}
		return fmt.Errorf("failed to load places: %w", err)
	}
	for _, pl := range places {
		if p, ok := byID[pl.ProjectID]; ok {
			p.Places = append(p.Places, pl)
		}
	}
	return nil
}

func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, c := range parts {
		parts[i] = alias + "." + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}
