package integration_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/travel-planner/configs"
	"github.com/avatarctic/travel-planner/internal/core/domain/project"
	"github.com/avatarctic/travel-planner/internal/core/ports"
	"github.com/avatarctic/travel-planner/internal/infrastructure/db"
	"github.com/avatarctic/travel-planner/internal/infrastructure/repositories"
)

// openTestDatabase connects to TEST_DATABASE_URL, applies migrations and
// empties the planner tables. The test is skipped when the variable is unset.
func openTestDatabase(t *testing.T) *db.Database {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	database, err := db.NewDatabase(&configs.DatabaseConfig{DSN: dsn})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.Migrate("../../migrations"))
	_, err = database.DB.Exec(`TRUNCATE project_places, projects RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return database
}

func createProject(t *testing.T, repo ports.ProjectRepository, name string, visited ...bool) *project.Project {
	t.Helper()
	now := time.Now()
	p := &project.Project{Name: name, CreatedAt: now, UpdatedAt: now}
	places := make([]*project.Place, 0, len(visited))
	for i, v := range visited {
		places = append(places, &project.Place{
			ExternalID: name + "-" + string(rune('a'+i)),
			Visited:    v,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	require.NoError(t, repo.CreateWithPlaces(context.Background(), p, places))
	return p
}

func names(projects []*project.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Name)
	}
	return out
}

func TestPostgresProjectRepository_CompletedFilter(t *testing.T) {
	database := openTestDatabase(t)
	repo := repositories.NewProjectRepository(database, nil)
	ctx := context.Background()

	createProject(t, repo, "Someday")
	createProject(t, repo, "Done", true, true)
	createProject(t, repo, "Halfway", true, false)

	done, notDone := true, false
	cases := []struct {
		name      string
		completed *bool
		want      []string
	}{
		{"completed", &done, []string{"Done"}},
		{"not completed includes empty project", &notDone, []string{"Halfway", "Someday"}},
		{"no filter", nil, []string{"Halfway", "Done", "Someday"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			filter := &project.ListFilter{Limit: 20, Completed: tc.completed}
			got, err := repo.List(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, tc.want, names(got))
			for _, p := range got {
				if tc.completed != nil {
					assert.Equal(t, *tc.completed, p.Completed(), p.Name)
				}
			}

			total, err := repo.Count(ctx, filter)
			require.NoError(t, err)
			assert.Equal(t, len(tc.want), total)
		})
	}
}

func TestPostgresPlaceRepository_StoresLongTitles(t *testing.T) {
	database := openTestDatabase(t)
	projects := repositories.NewProjectRepository(database, nil)
	places := repositories.NewPlaceRepository(database, nil)
	ctx := context.Background()

	p := createProject(t, projects, "Long titles")
	title := strings.Repeat("Study for a large composition ", 30)
	pl := &project.Place{ProjectID: p.ID, ExternalID: "4575", Title: &title, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	require.NoError(t, places.Create(ctx, pl))

	got, err := places.GetByID(ctx, p.ID, pl.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Title)
	assert.Equal(t, title, *got.Title)

	dup := &project.Place{ProjectID: p.ID, ExternalID: "4575", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	assert.ErrorIs(t, places.Create(ctx, dup), project.ErrPlaceAlreadyAdded)
}
