package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/avatarctic/travel-planner/internal/application/services"
	"github.com/avatarctic/travel-planner/internal/core/domain/artwork"
	"github.com/avatarctic/travel-planner/internal/core/domain/project"
	tmocks "github.com/avatarctic/travel-planner/test/mocks"
)

func existingProject(places ...*project.Place) *tmocks.ProjectRepositoryMock {
	return &tmocks.ProjectRepositoryMock{GetByIDFn: func(ctx context.Context, id int64) (*project.Project, error) {
		return &project.Project{ID: id, Name: "Trip", Places: places}, nil
	}}
}

func TestAddPlace_Success(t *testing.T) {
	resolver := &tmocks.ArtworkResolverMock{}
	var created *project.Place
	repo := &tmocks.PlaceRepositoryMock{CreateFn: func(ctx context.Context, pl *project.Place) error {
		pl.ID = 11
		created = pl
		return nil
	}}
	svc := impl.NewPlaceService(repo, existingProject(), resolver, 10, nil)

	place, err := svc.AddPlace(context.Background(), 3, &project.CreatePlaceRequest{ExternalID: "129884", Notes: strPtr("  see first  ")})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, int64(11), place.ID)
	assert.Equal(t, int64(3), place.ProjectID)
	assert.Equal(t, "Artwork 129884", *place.Title)
	assert.Equal(t, "see first", *place.Notes)
	assert.False(t, place.Visited)
	assert.Equal(t, []string{"129884"}, resolver.Calls)
}

func TestAddPlace_ProjectMissing(t *testing.T) {
	resolver := &tmocks.ArtworkResolverMock{}
	svc := impl.NewPlaceService(&tmocks.PlaceRepositoryMock{}, &tmocks.ProjectRepositoryMock{}, resolver, 10, nil)

	_, err := svc.AddPlace(context.Background(), 3, &project.CreatePlaceRequest{ExternalID: "1"})
	require.ErrorIs(t, err, project.ErrProjectNotFound)
	assert.Empty(t, resolver.Calls)
}

func TestAddPlace_ProjectFull(t *testing.T) {
	resolver := &tmocks.ArtworkResolverMock{}
	repo := &tmocks.PlaceRepositoryMock{CountByProjectFn: func(ctx context.Context, projectID int64) (int, error) { return 10, nil }}
	svc := impl.NewPlaceService(repo, existingProject(), resolver, 10, nil)

	_, err := svc.AddPlace(context.Background(), 3, &project.CreatePlaceRequest{ExternalID: "1"})
	require.ErrorIs(t, err, project.ErrTooManyPlaces)
	assert.Empty(t, resolver.Calls)
}

func TestAddPlace_DuplicateExternalID(t *testing.T) {
	resolver := &tmocks.ArtworkResolverMock{}
	repo := &tmocks.PlaceRepositoryMock{GetByExternalIDFn: func(ctx context.Context, projectID int64, externalID string) (*project.Place, error) {
		return &project.Place{ID: 1, ProjectID: projectID, ExternalID: externalID}, nil
	}}
	svc := impl.NewPlaceService(repo, existingProject(), resolver, 10, nil)

	_, err := svc.AddPlace(context.Background(), 3, &project.CreatePlaceRequest{ExternalID: "1"})
	require.ErrorIs(t, err, project.ErrPlaceAlreadyAdded)
	assert.Empty(t, resolver.Calls)
}

func TestAddPlace_ExistingPlaceCheckFailure(t *testing.T) {
	resolver := &tmocks.ArtworkResolverMock{}
	dbErr := errors.New("connection reset")
	created := false
	repo := &tmocks.PlaceRepositoryMock{
		GetByExternalIDFn: func(ctx context.Context, projectID int64, externalID string) (*project.Place, error) {
			return nil, dbErr
		},
		CreateFn: func(ctx context.Context, pl *project.Place) error {
			created = true
			return nil
		},
	}
	svc := impl.NewPlaceService(repo, existingProject(), resolver, 10, nil)

	_, err := svc.AddPlace(context.Background(), 3, &project.CreatePlaceRequest{ExternalID: "1"})
	require.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, project.ErrPlaceAlreadyAdded)
	assert.Empty(t, resolver.Calls)
	assert.False(t, created)
}

func TestAddPlace_LookupErrorsPropagate(t *testing.T) {
	unreachable := &artwork.UnreachableError{Err: errors.New("timeout")}
	resolver := &tmocks.ArtworkResolverMock{ResolveTitleFn: func(ctx context.Context, id string) (*string, error) {
		return nil, unreachable
	}}
	created := false
	repo := &tmocks.PlaceRepositoryMock{CreateFn: func(ctx context.Context, pl *project.Place) error {
		created = true
		return nil
	}}
	svc := impl.NewPlaceService(repo, existingProject(), resolver, 10, nil)

	_, err := svc.AddPlace(context.Background(), 3, &project.CreatePlaceRequest{ExternalID: "1"})
	require.Error(t, err)
	assert.True(t, artwork.IsUnreachable(err))
	assert.False(t, created)
}

func TestAddPlace_RaceOnUniqueConstraint(t *testing.T) {
	repo := &tmocks.PlaceRepositoryMock{CreateFn: func(ctx context.Context, pl *project.Place) error {
		return project.ErrPlaceAlreadyAdded
	}}
	svc := impl.NewPlaceService(repo, existingProject(), &tmocks.ArtworkResolverMock{}, 10, nil)

	_, err := svc.AddPlace(context.Background(), 3, &project.CreatePlaceRequest{ExternalID: "1"})
	require.ErrorIs(t, err, project.ErrPlaceAlreadyAdded)
}

func TestUpdatePlace_NotesAndVisited(t *testing.T) {
	stored := &project.Place{ID: 2, ProjectID: 1, ExternalID: "5", Notes: strPtr("old")}
	var saved *project.Place
	repo := &tmocks.PlaceRepositoryMock{
		GetByIDFn: func(ctx context.Context, projectID, placeID int64) (*project.Place, error) { return stored, nil },
		UpdateFn: func(ctx context.Context, pl *project.Place) error {
			saved = pl
			return nil
		},
	}
	svc := impl.NewPlaceService(repo, existingProject(), &tmocks.ArtworkResolverMock{}, 10, nil)

	visited := true
	place, err := svc.UpdatePlace(context.Background(), 1, 2, &project.UpdatePlaceRequest{Visited: &visited})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, place.Visited)
	assert.Equal(t, "old", *place.Notes)

	place, err = svc.UpdatePlace(context.Background(), 1, 2, &project.UpdatePlaceRequest{Notes: strPtr(" ")})
	require.NoError(t, err)
	assert.Nil(t, place.Notes)
	assert.True(t, place.Visited)
}

func TestUpdatePlace_NotFound(t *testing.T) {
	svc := impl.NewPlaceService(&tmocks.PlaceRepositoryMock{}, existingProject(), &tmocks.ArtworkResolverMock{}, 10, nil)
	_, err := svc.UpdatePlace(context.Background(), 1, 2, &project.UpdatePlaceRequest{})
	require.ErrorIs(t, err, project.ErrPlaceNotFound)
}

func TestListPlaces_Paginates(t *testing.T) {
	projects := existingProject(&project.Place{ID: 1}, &project.Place{ID: 4}, &project.Place{ID: 2}, &project.Place{ID: 3})
	svc := impl.NewPlaceService(&tmocks.PlaceRepositoryMock{}, projects, &tmocks.ArtworkResolverMock{}, 10, nil)

	page, err := svc.ListPlaces(context.Background(), 1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].ID)
	assert.Equal(t, int64(2), page.Items[1].ID)

	page, err = svc.ListPlaces(context.Background(), 1, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 4, page.Total)
}
