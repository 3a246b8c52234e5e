package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/travel-planner/internal/core/domain/artwork"
	"github.com/avatarctic/travel-planner/internal/core/domain/project"
)

// httpError maps service errors onto HTTP responses.
func (s *Server) httpError(c echo.Context, err error) error {
	var nf *artwork.NotFoundError
	var unreachable *artwork.UnreachableError

	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Project not found")
	case errors.Is(err, project.ErrPlaceNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Place not found")
	case errors.Is(err, project.ErrTooManyPlaces):
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Maximum %d places per project", s.maxPlaces()))
	case errors.Is(err, project.ErrPlaceAlreadyAdded):
		return echo.NewHTTPError(http.StatusBadRequest, "This place is already added to the project")
	case errors.Is(err, project.ErrProjectHasVisitedPlaces):
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot delete project with visited places")
	case errors.As(err, &nf):
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Artwork with id %s does not exist in Art Institute API", nf.ExternalID))
	case errors.Is(err, artwork.ErrNotFound):
		return echo.NewHTTPError(http.StatusBadRequest, "Artwork does not exist in Art Institute API")
	case errors.As(err, &unreachable):
		return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("Failed to contact Art Institute API: %v", unreachable.Err))
	}

	if s.logger != nil {
		s.logger.WithFields(map[string]interface{}{
			"method": c.Request().Method,
			"path":   c.Path(),
		}).WithError(err).Error("request failed")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
}

func (s *Server) maxPlaces() int {
	if s.config != nil && s.config.MaxPlacesPerProject > 0 {
		return s.config.MaxPlacesPerProject
	}
	return project.MaxPlacesPerProject
}
