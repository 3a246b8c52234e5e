package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
)

func (s *Server) listPlaces(c echo.Context) error {
	projectID, err := parseID(c, "id", "invalid project ID")
	if err != nil {
		return err
	}
	skip, limit, err := parsePagination(c)
	if err != nil {
		return err
	}
	page, err := s.placeService.ListPlaces(c.Request().Context(), projectID, skip, limit)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) addPlace(c echo.Context) error {
	projectID, err := parseID(c, "id", "invalid project ID")
	if err != nil {
		return err
	}
	var req project.CreatePlaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	place, err := s.placeService.AddPlace(c.Request().Context(), projectID, &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, place)
}

func (s *Server) getPlace(c echo.Context) error {
	projectID, err := parseID(c, "id", "invalid project ID")
	if err != nil {
		return err
	}
	placeID, err := parseID(c, "place_id", "invalid place ID")
	if err != nil {
		return err
	}
	place, err := s.placeService.GetPlace(c.Request().Context(), projectID, placeID)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, place)
}

func (s *Server) updatePlace(c echo.Context) error {
	projectID, err := parseID(c, "id", "invalid project ID")
	if err != nil {
		return err
	}
	placeID, err := parseID(c, "place_id", "invalid place ID")
	if err != nil {
		return err
	}
	var req project.UpdatePlaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	place, err := s.placeService.UpdatePlace(c.Request().Context(), projectID, placeID, &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, place)
}
