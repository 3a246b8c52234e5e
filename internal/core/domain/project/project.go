package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// MaxPlacesPerProject is the default cap on places in a single project.
const MaxPlacesPerProject = 10

var (
	ErrProjectNotFound         = errors.New("project not found")
	ErrPlaceNotFound           = errors.New("place not found")
	ErrTooManyPlaces           = errors.New("too many places for project")
	ErrPlaceAlreadyAdded       = errors.New("this place is already added to the project")
	ErrProjectHasVisitedPlaces = errors.New("cannot delete project with visited places")
)

type Project struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	StartDate   *Date     `json:"start_date" db:"start_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
	Places      []*Place  `json:"-" db:"-"`
}

type Place struct {
	ID         int64     `json:"id" db:"id"`
	ProjectID  int64     `json:"project_id" db:"project_id"`
	ExternalID string    `json:"external_id" db:"external_id"`
	Title      *string   `json:"title" db:"title"`
	Notes      *string   `json:"notes" db:"notes"`
	Visited    bool      `json:"visited" db:"visited"`
	CreatedAt  time.Time `json:"-" db:"created_at"`
	UpdatedAt  time.Time `json:"-" db:"updated_at"`
}

// Completed reports whether the project has at least one place and every
// place has been visited. It is derived on every call and never stored.
func (p *Project) Completed() bool {
	if len(p.Places) == 0 {
		return false
	}
	for _, pl := range p.Places {
		if !pl.Visited {
			return false
		}
	}
	return true
}

// HasVisitedPlaces reports whether any place in the project is visited.
func (p *Project) HasVisitedPlaces() bool {
	for _, pl := range p.Places {
		if pl.Visited {
			return true
		}
	}
	return false
}

// PlacesNewestFirst returns the places ordered by descending id.
func (p *Project) PlacesNewestFirst() []*Place {
	out := make([]*Place, len(p.Places))
	copy(out, p.Places)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

// Summary is the list/create/update representation of a project.
type Summary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	StartDate   *Date   `json:"start_date"`
	PlacesCount int     `json:"places_count"`
	Completed   bool    `json:"completed"`
}

// Detail is a project summary with its places, newest first.
type Detail struct {
	Summary
	Places []*Place `json:"places"`
}

func (p *Project) ToSummary() *Summary {
	return &Summary{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		PlacesCount: len(p.Places),
		Completed:   p.Completed(),
	}
}

func (p *Project) ToDetail() *Detail {
	places := p.PlacesNewestFirst()
	if places == nil {
		places = []*Place{}
	}
	return &Detail{Summary: *p.ToSummary(), Places: places}
}

// ExternalID accepts either a JSON number or a JSON string and keeps its
// textual form.
type ExternalID string

func (e *ExternalID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*e = ExternalID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("external id must be a string or an integer")
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return fmt.Errorf("external id must be a string or an integer")
	}
	*e = ExternalID(n.String())
	return nil
}

func (e ExternalID) String() string { return string(e) }

// UniqueExternalIDs returns ids with duplicates removed, first occurrence wins.
func UniqueExternalIDs(ids []ExternalID) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		s := id.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// CreateProjectRequest represents the request to create a project.
type CreateProjectRequest struct {
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	StartDate   *Date        `json:"start_date,omitempty"`
	PlaceIDs    []ExternalID `json:"place_ids,omitempty"`
}

// Validate enforces field limits.
func (r *CreateProjectRequest) Validate() error {
	if err := validateName(r.Name); err != nil {
		return err
	}
	return validateDescription(r.Description)
}

// UpdateProjectRequest represents a partial project update.
type UpdateProjectRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *Date   `json:"start_date,omitempty"`
}

func (r *UpdateProjectRequest) Validate() error {
	if r.Name != nil {
		if err := validateName(*r.Name); err != nil {
			return err
		}
	}
	return validateDescription(r.Description)
}

// CreatePlaceRequest represents the request to add a place to a project.
type CreatePlaceRequest struct {
	ExternalID ExternalID `json:"external_id"`
	Notes      *string    `json:"notes,omitempty"`
}

func (r *CreatePlaceRequest) Validate() error {
	if strings.TrimSpace(r.ExternalID.String()) == "" {
		return fmt.Errorf("external_id is required")
	}
	if len(r.ExternalID) > 50 {
		return fmt.Errorf("external_id must be at most 50 characters")
	}
	return validateNotes(r.Notes)
}

// UpdatePlaceRequest represents a partial place update.
type UpdatePlaceRequest struct {
	Notes   *string `json:"notes,omitempty"`
	Visited *bool   `json:"visited,omitempty"`
}

func (r *UpdatePlaceRequest) Validate() error {
	return validateNotes(r.Notes)
}

// ListFilter selects a page of projects.
type ListFilter struct {
	Skip      int
	Limit     int
	Search    string
	Completed *bool
}

// Page is a paginated list response.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func validateName(name string) error {
	n := len([]rune(name))
	if strings.TrimSpace(name) == "" || n > 200 {
		return fmt.Errorf("name must be between 1 and 200 characters")
	}
	return nil
}

func validateDescription(d *string) error {
	if d != nil && len([]rune(*d)) > 1000 {
		return fmt.Errorf("description must be at most 1000 characters")
	}
	return nil
}

func validateNotes(n *string) error {
	if n != nil && len([]rune(*n)) > 2000 {
		return fmt.Errorf("notes must be at most 2000 characters")
	}
	return nil
}

// TrimOrNil trims s and maps an empty result to nil.
func TrimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
