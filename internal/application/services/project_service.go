package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
	"github.com/avatarctic/travel-planner/internal/core/ports"
)

type ProjectService struct {
	repo      ports.ProjectRepository
	resolver  ports.ArtworkResolver
	maxPlaces int
	logger    *logrus.Logger
}

func NewProjectService(repo ports.ProjectRepository, resolver ports.ArtworkResolver, maxPlaces int, logger *logrus.Logger) ports.ProjectService {
	if maxPlaces <= 0 {
		maxPlaces = project.MaxPlacesPerProject
	}
	return &ProjectService{
		repo:      repo,
		resolver:  resolver,
		maxPlaces: maxPlaces,
		logger:    logger,
	}
}

func (s *ProjectService) CreateProject(ctx context.Context, req *project.CreateProjectRequest) (*project.Summary, error) {
	if len(req.PlaceIDs) > s.maxPlaces {
		return nil, fmt.Errorf("%w: maximum %d places per project", project.ErrTooManyPlaces, s.maxPlaces)
	}

	// Resolve every title before touching the database so a bad id leaves nothing behind.
	externalIDs := project.UniqueExternalIDs(req.PlaceIDs)
	titles := make(map[string]*string, len(externalIDs))
	for _, eid := range externalIDs {
		title, err := s.resolver.ResolveTitle(ctx, eid)
		if err != nil {
			if s.logger != nil {
				s.logger.WithFields(logrus.Fields{"external_id": eid}).WithError(err).Warn("failed to resolve artwork for new project")
			}
			return nil, err
		}
		titles[eid] = title
	}

	now := time.Now()
	p := &project.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: project.TrimOrNil(req.Description),
		StartDate:   req.StartDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	places := make([]*project.Place, 0, len(externalIDs))
	for _, eid := range externalIDs {
		places = append(places, &project.Place{
			ExternalID: eid,
			Title:      titles[eid],
			Visited:    false,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}

	if err := s.repo.CreateWithPlaces(ctx, p, places); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"name": p.Name, "places": len(places)}).WithError(err).Error("failed to create project in repo")
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	p.Places = places
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"project_id": p.ID, "places": len(places)}).Info("project created")
	}
	return p.ToSummary(), nil
}

func (s *ProjectService) GetProject(ctx context.Context, id int64) (*project.Detail, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.ToDetail(), nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, id int64, req *project.UpdateProjectRequest) (*project.Summary, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = project.TrimOrNil(req.Description)
	}
	if req.StartDate != nil {
		p.StartDate = req.StartDate
	}
	p.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, p); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"project_id": id}).WithError(err).Error("failed to update project in repo")
		}
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p.ToSummary(), nil
}

func (s *ProjectService) DeleteProject(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.HasVisitedPlaces() {
		return project.ErrProjectHasVisitedPlaces
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"project_id": id}).Info("project deleted")
	}
	return nil
}

func (s *ProjectService) ListProjects(ctx context.Context, filter *project.ListFilter) (*project.Page[*project.Summary], error) {
	projects, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]*project.Summary, 0, len(projects))
	for _, p := range projects {
		items = append(items, p.ToSummary())
	}
	return &project.Page[*project.Summary]{Items: items, Total: total}, nil
}
