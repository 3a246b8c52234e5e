package httpserver_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
	planner_http "github.com/avatarctic/travel-planner/internal/infrastructure/httpserver"
	tmocks "github.com/avatarctic/travel-planner/test/mocks"
)

func TestAddPlace_Created(t *testing.T) {
	var gotProject int64
	var gotReq *project.CreatePlaceRequest
	svc := &tmocks.PlaceServiceMock{AddPlaceFn: func(ctx context.Context, projectID int64, req *project.CreatePlaceRequest) (*project.Place, error) {
		gotProject, gotReq = projectID, req
		title := "Nighthawks"
		return &project.Place{ID: 4, ProjectID: projectID, ExternalID: req.ExternalID.String(), Title: &title, Notes: req.Notes}, nil
	}}
	srv := newTestServer(t, nil, planner_http.ServerDeps{PlaceService: svc})

	rec := do(srv, http.MethodPost, "/projects/2/places", `{"external_id":111628,"notes":"late"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, int64(2), gotProject)
	assert.Equal(t, project.ExternalID("111628"), gotReq.ExternalID)
	assert.JSONEq(t, `{"id":4,"project_id":2,"external_id":"111628","title":"Nighthawks","notes":"late","visited":false}`, rec.Body.String())
}

func TestAddPlace_ErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"project missing", project.ErrProjectNotFound, http.StatusNotFound, "Project not found"},
		{"project full", project.ErrTooManyPlaces, http.StatusBadRequest, "Maximum 10 places per project"},
		{"duplicate", project.ErrPlaceAlreadyAdded, http.StatusBadRequest, "This place is already added to the project"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &tmocks.PlaceServiceMock{AddPlaceFn: func(ctx context.Context, projectID int64, req *project.CreatePlaceRequest) (*project.Place, error) {
				return nil, tc.err
			}}
			srv := newTestServer(t, nil, planner_http.ServerDeps{PlaceService: svc})

			rec := do(srv, http.MethodPost, "/projects/2/places", `{"external_id":"1"}`)
			require.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.message, errorMessage(t, rec))
		})
	}
}

func TestAddPlace_Validation(t *testing.T) {
	srv := newTestServer(t, nil, planner_http.ServerDeps{})
	for _, body := range []string{`{}`, `{"external_id":"   "}`, `{"external_id":true}`} {
		rec := do(srv, http.MethodPost, "/projects/2/places", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestListPlaces_Pagination(t *testing.T) {
	var gotSkip, gotLimit int
	svc := &tmocks.PlaceServiceMock{ListPlacesFn: func(ctx context.Context, projectID int64, skip, limit int) (*project.Page[*project.Place], error) {
		gotSkip, gotLimit = skip, limit
		return &project.Page[*project.Place]{Items: []*project.Place{}, Total: 3}, nil
	}}
	srv := newTestServer(t, nil, planner_http.ServerDeps{PlaceService: svc})

	rec := do(srv, http.MethodGet, "/projects/2/places?skip=1&limit=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, gotSkip)
	assert.Equal(t, 2, gotLimit)
	assert.JSONEq(t, `{"items":[],"total":3}`, rec.Body.String())

	rec = do(srv, http.MethodGet, "/projects/2/places?limit=500", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlace_NotFound(t *testing.T) {
	srv := newTestServer(t, nil, planner_http.ServerDeps{})
	rec := do(srv, http.MethodGet, "/projects/2/places/9", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Place not found", errorMessage(t, rec))

	rec = do(srv, http.MethodGet, "/projects/2/places/x", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdatePlace_MarksVisited(t *testing.T) {
	svc := &tmocks.PlaceServiceMock{UpdatePlaceFn: func(ctx context.Context, projectID, placeID int64, req *project.UpdatePlaceRequest) (*project.Place, error) {
		require.NotNil(t, req.Visited)
		return &project.Place{ID: placeID, ProjectID: projectID, ExternalID: "5", Visited: *req.Visited}, nil
	}}
	srv := newTestServer(t, nil, planner_http.ServerDeps{PlaceService: svc})

	rec := do(srv, http.MethodPatch, "/projects/2/places/7", `{"visited":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"project_id":2,"external_id":"5","title":null,"notes":null,"visited":true}`, rec.Body.String())
}
