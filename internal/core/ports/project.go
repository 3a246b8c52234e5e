package ports

import (
	"context"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
)

// ProjectRepository defines the interface for project data operations.
// Projects returned by it carry their places.
type ProjectRepository interface {
	// CreateWithPlaces inserts the project and its places in one transaction.
	CreateWithPlaces(ctx context.Context, p *project.Project, places []*project.Place) error
	GetByID(ctx context.Context, id int64) (*project.Project, error)
	Update(ctx context.Context, p *project.Project) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter *project.ListFilter) ([]*project.Project, error)
	Count(ctx context.Context, filter *project.ListFilter) (int, error)
}

// PlaceRepository defines the interface for place data operations.
type PlaceRepository interface {
	Create(ctx context.Context, place *project.Place) error
	GetByID(ctx context.Context, projectID, placeID int64) (*project.Place, error)
	GetByExternalID(ctx context.Context, projectID int64, externalID string) (*project.Place, error)
	Update(ctx context.Context, place *project.Place) error
	CountByProject(ctx context.Context, projectID int64) (int, error)
}

// ProjectService defines the interface for project business logic.
type ProjectService interface {
	CreateProject(ctx context.Context, req *project.CreateProjectRequest) (*project.Summary, error)
	GetProject(ctx context.Context, id int64) (*project.Detail, error)
	UpdateProject(ctx context.Context, id int64, req *project.UpdateProjectRequest) (*project.Summary, error)
	DeleteProject(ctx context.Context, id int64) error
	ListProjects(ctx context.Context, filter *project.ListFilter) (*project.Page[*project.Summary], error)
}

// PlaceService defines the interface for place business logic.
type PlaceService interface {
	AddPlace(ctx context.Context, projectID int64, req *project.CreatePlaceRequest) (*project.Place, error)
	GetPlace(ctx context.Context, projectID, placeID int64) (*project.Place, error)
	UpdatePlace(ctx context.Context, projectID, placeID int64, req *project.UpdatePlaceRequest) (*project.Place, error)
	ListPlaces(ctx context.Context, projectID int64, skip, limit int) (*project.Page[*project.Place], error)
}
