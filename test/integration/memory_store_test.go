package integration_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/avatarctic/travel-planner/internal/core/domain/project"
)

// memoryStore backs both repository ports with maps so the HTTP stack can run
// without Postgres.
type memoryStore struct {
	mu          sync.Mutex
	nextProject int64
	nextPlace   int64
	projects    map[int64]*project.Project
	places      map[int64]*project.Place
}

func newMemoryStore() *memoryStore {
	return &memoryStore{projects: map[int64]*project.Project{}, places: map[int64]*project.Place{}}
}

type projectStore struct{ *memoryStore }
type placeStore struct{ *memoryStore }

func (s *memoryStore) snapshot(p *project.Project) *project.Project {
	cp := *p
	cp.Places = []*project.Place{}
	for _, pl := range s.places {
		if pl.ProjectID == p.ID {
			plc := *pl
			cp.Places = append(cp.Places, &plc)
		}
	}
	sort.Slice(cp.Places, func(i, j int) bool { return cp.Places[i].ID < cp.Places[j].ID })
	return &cp
}

func (s *memoryStore) hasExternal(projectID int64, externalID string) bool {
	for _, pl := range s.places {
		if pl.ProjectID == projectID && pl.ExternalID == externalID {
			return true
		}
	}
	return false
}

func (s projectStore) CreateWithPlaces(ctx context.Context, p *project.Project, places []*project.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextProject++
	p.ID = s.nextProject
	cp := *p
	s.projects[p.ID] = &cp
	for _, pl := range places {
		if s.hasExternal(p.ID, pl.ExternalID) {
			return project.ErrPlaceAlreadyAdded
		}
		s.nextPlace++
		pl.ID = s.nextPlace
		pl.ProjectID = p.ID
		plc := *pl
		s.places[pl.ID] = &plc
	}
	return nil
}

func (s projectStore) GetByID(ctx context.Context, id int64) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, project.ErrProjectNotFound)
	}
	return s.snapshot(p), nil
}

func (s projectStore) Update(ctx context.Context, p *project.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return project.ErrProjectNotFound
	}
	cp := *p
	cp.Places = nil
	s.projects[p.ID] = &cp
	return nil
}

func (s projectStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return project.ErrProjectNotFound
	}
	delete(s.projects, id)
	for pid, pl := range s.places {
		if pl.ProjectID == id {
			delete(s.places, pid)
		}
	}
	return nil
}

func (s projectStore) matching(filter *project.ListFilter) []*project.Project {
	var out []*project.Project
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, p := range s.projects {
		snap := s.snapshot(p)
		if term != "" {
			desc := ""
			if snap.Description != nil {
				desc = *snap.Description
			}
			if !strings.Contains(strings.ToLower(snap.Name), term) && !strings.Contains(strings.ToLower(desc), term) {
				continue
			}
		}
		if filter.Completed != nil && snap.Completed() != *filter.Completed {
			continue
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s projectStore) List(ctx context.Context, filter *project.ListFilter) ([]*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := s.matching(filter)
	start := min(filter.Skip, len(all))
	end := min(start+filter.Limit, len(all))
	return all[start:end], nil
}

func (s projectStore) Count(ctx context.Context, filter *project.ListFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.matching(filter)), nil
}

func (s placeStore) Create(ctx context.Context, pl *project.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasExternal(pl.ProjectID, pl.ExternalID) {
		return project.ErrPlaceAlreadyAdded
	}
	s.nextPlace++
	pl.ID = s.nextPlace
	cp := *pl
	s.places[pl.ID] = &cp
	return nil
}

func (s placeStore) GetByID(ctx context.Context, projectID, placeID int64) (*project.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pl, ok := s.places[placeID]
	if !ok || pl.ProjectID != projectID {
		return nil, project.ErrPlaceNotFound
	}
	cp := *pl
	return &cp, nil
}

func (s placeStore) GetByExternalID(ctx context.Context, projectID int64, externalID string) (*project.Place, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, pl := range s.places {
		if pl.ProjectID == projectID && pl.ExternalID == externalID {
			cp := *pl
			return &cp, nil
		}
	}
	return nil, project.ErrPlaceNotFound
}

func (s placeStore) Update(ctx context.Context, pl *project.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.places[pl.ID]
	if !ok || existing.ProjectID != pl.ProjectID {
		return project.ErrPlaceNotFound
	}
	cp := *pl
	s.places[pl.ID] = &cp
	return nil
}

func (s placeStore) CountByProject(ctx context.Context, projectID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, pl := range s.places {
		if pl.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}
