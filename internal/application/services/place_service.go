package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
	"github.com/avatarctic/travel-planner/internal/core/ports"
)

type PlaceService struct {
	repo        ports.PlaceRepository
	projectRepo ports.ProjectRepository
	resolver    ports.ArtworkResolver
	maxPlaces   int
	logger      *logrus.Logger
}

func NewPlaceService(repo ports.PlaceRepository, projectRepo ports.ProjectRepository, resolver ports.ArtworkResolver, maxPlaces int, logger *logrus.Logger) ports.PlaceService {
	if maxPlaces <= 0 {
		maxPlaces = project.MaxPlacesPerProject
	}
	return &PlaceService{
		repo:        repo,
		projectRepo: projectRepo,
		resolver:    resolver,
		maxPlaces:   maxPlaces,
		logger:      logger,
	}
}

func (s *PlaceService) AddPlace(ctx context.Context, projectID int64, req *project.CreatePlaceRequest) (*project.Place, error) {
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if count >= s.maxPlaces {
		return nil, fmt.Errorf("%w: maximum %d places per project", project.ErrTooManyPlaces, s.maxPlaces)
	}

	externalID := req.ExternalID.String()
	existing, err := s.repo.GetByExternalID(ctx, projectID, externalID)
	switch {
	case err == nil && existing != nil:
		return nil, project.ErrPlaceAlreadyAdded
	case err != nil && !errors.Is(err, project.ErrPlaceNotFound):
		return nil, fmt.Errorf("failed to check for existing place: %w", err)
	}

	// The title is looked up only on this write path; reads serve the stored copy.
	title, err := s.resolver.ResolveTitle(ctx, externalID)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"project_id": projectID, "external_id": externalID}).WithError(err).Warn("failed to resolve artwork for new place")
		}
		return nil, err
	}

	now := time.Now()
	place := &project.Place{
		ProjectID:  projectID,
		ExternalID: externalID,
		Title:      title,
		Notes:      project.TrimOrNil(req.Notes),
		Visited:    false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(ctx, place); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"project_id": projectID, "external_id": externalID}).WithError(err).Error("failed to create place in repo")
		}
		return nil, fmt.Errorf("failed to add place: %w", err)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"project_id": projectID, "place_id": place.ID}).Info("place added")
	}
	return place, nil
}

func (s *PlaceService) GetPlace(ctx context.Context, projectID, placeID int64) (*project.Place, error) {
	return s.repo.GetByID(ctx, projectID, placeID)
}

func (s *PlaceService) UpdatePlace(ctx context.Context, projectID, placeID int64, req *project.UpdatePlaceRequest) (*project.Place, error) {
	place, err := s.repo.GetByID(ctx, projectID, placeID)
	if err != nil {
		return nil, err
	}
	if req.Notes != nil {
		place.Notes = project.TrimOrNil(req.Notes)
	}
	if req.Visited != nil {
		place.Visited = *req.Visited
	}
	place.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, place); err != nil {
		return nil, fmt.Errorf("failed to update place: %w", err)
	}
	return place, nil
}

func (s *PlaceService) ListPlaces(ctx context.Context, projectID int64, skip, limit int) (*project.Page[*project.Place], error) {
	p, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ordered := p.PlacesNewestFirst()
	total := len(ordered)

	start := min(max(skip, 0), total)
	end := total
	if limit > 0 {
		end = min(start+limit, total)
	}
	return &project.Page[*project.Place]{Items: ordered[start:end], Total: total}, nil
}
