package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
	maxSearchLength  = 200
)

func (s *Server) createProject(c echo.Context) error {
	var req project.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := s.projectService.CreateProject(c.Request().Context(), &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) listProjects(c echo.Context) error {
	skip, limit, err := parsePagination(c)
	if err != nil {
		return err
	}
	filter := &project.ListFilter{Skip: skip, Limit: limit}

	if search := c.QueryParam("search"); search != "" {
		if len([]rune(search)) > maxSearchLength {
			return echo.NewHTTPError(http.StatusBadRequest, "search must be at most 200 characters")
		}
		filter.Search = search
	}
	if v := c.QueryParam("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "completed must be a boolean")
		}
		filter.Completed = &completed
	}

	page, err := s.projectService.ListProjects(c.Request().Context(), filter)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (s *Server) getProject(c echo.Context) error {
	id, err := parseID(c, "id", "invalid project ID")
	if err != nil {
		return err
	}
	p, err := s.projectService.GetProject(c.Request().Context(), id)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) updateProject(c echo.Context) error {
	id, err := parseID(c, "id", "invalid project ID")
	if err != nil {
		return err
	}
	var req project.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p, err := s.projectService.UpdateProject(c.Request().Context(), id, &req)
	if err != nil {
		return s.httpError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProject(c echo.Context) error {
	id, err := parseID(c, "id", "invalid project ID")
	if err != nil {
		return err
	}
	if err := s.projectService.DeleteProject(c.Request().Context(), id); err != nil {
		return s.httpError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context, name, msg string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, msg)
	}
	return id, nil
}

// parsePagination reads skip (>= 0) and limit (1..100) query parameters.
func parsePagination(c echo.Context) (int, int, error) {
	skip := 0
	limit := defaultPageLimit
	if v := c.QueryParam("skip"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "skip must be a non-negative integer")
		}
		skip = n
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageLimit {
			return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be between 1 and 100")
		}
		limit = n
	}
	return skip, limit, nil
}
