package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
	"github.com/avatarctic/travel-planner/internal/core/ports"
)

// ProjectRepositoryMock is a lightweight mock for ProjectRepository
type ProjectRepositoryMock struct {
	CreateWithPlacesFn func(ctx context.Context, p *project.Project, places []*project.Place) error
	GetByIDFn          func(ctx context.Context, id int64) (*project.Project, error)
	UpdateFn           func(ctx context.Context, p *project.Project) error
	DeleteFn           func(ctx context.Context, id int64) error
	ListFn             func(ctx context.Context, filter *project.ListFilter) ([]*project.Project, error)
	CountFn            func(ctx context.Context, filter *project.ListFilter) (int, error)
}

func (m *ProjectRepositoryMock) CreateWithPlaces(ctx context.Context, p *project.Project, places []*project.Place) error {
	if m.CreateWithPlacesFn != nil {
		return m.CreateWithPlacesFn(ctx, p, places)
	}
	return nil
}
func (m *ProjectRepositoryMock) GetByID(ctx context.Context, id int64) (*project.Project, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("project %d: %w", id, project.ErrProjectNotFound)
}
func (m *ProjectRepositoryMock) Update(ctx context.Context, p *project.Project) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, p)
	}
	return nil
}
func (m *ProjectRepositoryMock) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *ProjectRepositoryMock) List(ctx context.Context, filter *project.ListFilter) ([]*project.Project, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, nil
}
func (m *ProjectRepositoryMock) Count(ctx context.Context, filter *project.ListFilter) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, filter)
	}
	return 0, nil
}

// PlaceRepositoryMock is a lightweight mock for PlaceRepository
type PlaceRepositoryMock struct {
	CreateFn          func(ctx context.Context, place *project.Place) error
	GetByIDFn         func(ctx context.Context, projectID, placeID int64) (*project.Place, error)
	GetByExternalIDFn func(ctx context.Context, projectID int64, externalID string) (*project.Place, error)
	UpdateFn          func(ctx context.Context, place *project.Place) error
	CountByProjectFn  func(ctx context.Context, projectID int64) (int, error)
}

func (m *PlaceRepositoryMock) Create(ctx context.Context, place *project.Place) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, place)
	}
	return nil
}
func (m *PlaceRepositoryMock) GetByID(ctx context.Context, projectID, placeID int64) (*project.Place, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, projectID, placeID)
	}
	return nil, fmt.Errorf("place %d: %w", placeID, project.ErrPlaceNotFound)
}
func (m *PlaceRepositoryMock) GetByExternalID(ctx context.Context, projectID int64, externalID string) (*project.Place, error) {
	if m.GetByExternalIDFn != nil {
		return m.GetByExternalIDFn(ctx, projectID, externalID)
	}
	return nil, fmt.Errorf("place %s: %w", externalID, project.ErrPlaceNotFound)
}
func (m *PlaceRepositoryMock) Update(ctx context.Context, place *project.Place) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, place)
	}
	return nil
}
func (m *PlaceRepositoryMock) CountByProject(ctx context.Context, projectID int64) (int, error) {
	if m.CountByProjectFn != nil {
		return m.CountByProjectFn(ctx, projectID)
	}
	return 0, nil
}

// ArtworkResolverMock records lookups and returns "Artwork <id>" by default.
type ArtworkResolverMock struct {
	ResolveTitleFn func(ctx context.Context, externalID string) (*string, error)
	Calls          []string
}

func (m *ArtworkResolverMock) ResolveTitle(ctx context.Context, externalID string) (*string, error) {
	m.Calls = append(m.Calls, externalID)
	if m.ResolveTitleFn != nil {
		return m.ResolveTitleFn(ctx, externalID)
	}
	title := "Artwork " + externalID
	return &title, nil
}

// ProjectServiceMock is a lightweight mock for ProjectService
type ProjectServiceMock struct {
	CreateProjectFn func(ctx context.Context, req *project.CreateProjectRequest) (*project.Summary, error)
	GetProjectFn    func(ctx context.Context, id int64) (*project.Detail, error)
	UpdateProjectFn func(ctx context.Context, id int64, req *project.UpdateProjectRequest) (*project.Summary, error)
	DeleteProjectFn func(ctx context.Context, id int64) error
	ListProjectsFn  func(ctx context.Context, filter *project.ListFilter) (*project.Page[*project.Summary], error)
}

func (m *ProjectServiceMock) CreateProject(ctx context.Context, req *project.CreateProjectRequest) (*project.Summary, error) {
	if m.CreateProjectFn != nil {
		return m.CreateProjectFn(ctx, req)
	}
	return &project.Summary{ID: 1, Name: req.Name}, nil
}
func (m *ProjectServiceMock) GetProject(ctx context.Context, id int64) (*project.Detail, error) {
	if m.GetProjectFn != nil {
		return m.GetProjectFn(ctx, id)
	}
	return nil, project.ErrProjectNotFound
}
func (m *ProjectServiceMock) UpdateProject(ctx context.Context, id int64, req *project.UpdateProjectRequest) (*project.Summary, error) {
	if m.UpdateProjectFn != nil {
		return m.UpdateProjectFn(ctx, id, req)
	}
	return nil, project.ErrProjectNotFound
}
func (m *ProjectServiceMock) DeleteProject(ctx context.Context, id int64) error {
	if m.DeleteProjectFn != nil {
		return m.DeleteProjectFn(ctx, id)
	}
	return nil
}
func (m *ProjectServiceMock) ListProjects(ctx context.Context, filter *project.ListFilter) (*project.Page[*project.Summary], error) {
	if m.ListProjectsFn != nil {
		return m.ListProjectsFn(ctx, filter)
	}
	return &project.Page[*project.Summary]{Items: []*project.Summary{}}, nil
}

// PlaceServiceMock is a lightweight mock for PlaceService
type PlaceServiceMock struct {
	AddPlaceFn    func(ctx context.Context, projectID int64, req *project.CreatePlaceRequest) (*project.Place, error)
	GetPlaceFn    func(ctx context.Context, projectID, placeID int64) (*project.Place, error)
	UpdatePlaceFn func(ctx context.Context, projectID, placeID int64, req *project.UpdatePlaceRequest) (*project.Place, error)
	ListPlacesFn  func(ctx context.Context, projectID int64, skip, limit int) (*project.Page[*project.Place], error)
}

func (m *PlaceServiceMock) AddPlace(ctx context.Context, projectID int64, req *project.CreatePlaceRequest) (*project.Place, error) {
	if m.AddPlaceFn != nil {
		return m.AddPlaceFn(ctx, projectID, req)
	}
	return &project.Place{ID: 1, ProjectID: projectID, ExternalID: req.ExternalID.String()}, nil
}
func (m *PlaceServiceMock) GetPlace(ctx context.Context, projectID, placeID int64) (*project.Place, error) {
	if m.GetPlaceFn != nil {
		return m.GetPlaceFn(ctx, projectID, placeID)
	}
	return nil, project.ErrPlaceNotFound
}
func (m *PlaceServiceMock) UpdatePlace(ctx context.Context, projectID, placeID int64, req *project.UpdatePlaceRequest) (*project.Place, error) {
	if m.UpdatePlaceFn != nil {
		return m.UpdatePlaceFn(ctx, projectID, placeID, req)
	}
	return nil, project.ErrPlaceNotFound
}
func (m *PlaceServiceMock) ListPlaces(ctx context.Context, projectID int64, skip, limit int) (*project.Page[*project.Place], error) {
	if m.ListPlacesFn != nil {
		return m.ListPlacesFn(ctx, projectID, skip, limit)
	}
	return &project.Page[*project.Place]{Items: []*project.Place{}}, nil
}

// RateLimiterServiceMock is a lightweight mock for RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientKey)
	}
	return true, 1, 1, time.Now().Add(time.Minute), nil
}

// RateLimitRepositoryMock is a lightweight mock for RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, key string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, key string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, key, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// HealthCheckerMock reports a fixed name and result.
type HealthCheckerMock struct {
	NameValue string
	Err       error
}

func (m *HealthCheckerMock) Name() string                    { return m.NameValue }
func (m *HealthCheckerMock) Check(ctx context.Context) error { return m.Err }

var (
	_ ports.ProjectRepository   = (*ProjectRepositoryMock)(nil)
	_ ports.PlaceRepository     = (*PlaceRepositoryMock)(nil)
	_ ports.ArtworkResolver     = (*ArtworkResolverMock)(nil)
	_ ports.ProjectService      = (*ProjectServiceMock)(nil)
	_ ports.PlaceService        = (*PlaceServiceMock)(nil)
	_ ports.RateLimiterService  = (*RateLimiterServiceMock)(nil)
	_ ports.RateLimitRepository = (*RateLimitRepositoryMock)(nil)
	_ ports.HealthChecker       = (*HealthCheckerMock)(nil)
)
