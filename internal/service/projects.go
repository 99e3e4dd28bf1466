package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/aquafund/internal/domain"
	"github.com/vanshika/aquafund/internal/repository"
)

// ProjectSource supplies the investable projects.
type ProjectSource interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (domain.Project, error)
}

// FixtureProjects serves a fixed project list.
type FixtureProjects struct {
	projects []domain.Project
}

// NewFixtureProjects copies projects into a read-only source.
func NewFixtureProjects(projects []domain.Project) *FixtureProjects {
	return &FixtureProjects{projects: append([]domain.Project(nil), projects...)}
}

func (f *FixtureProjects) List(context.Context) ([]domain.Project, error) {
	return append([]domain.Project(nil), f.projects...), nil
}

func (f *FixtureProjects) Get(_ context.Context, id string) (domain.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
}

// ProjectRepository is the storage contract of the graph-backed catalog.
type ProjectRepository interface {
	List(ctx context.Context) ([]domain.Project, error)
	Get(ctx context.Context, id string) (domain.Project, error)
	Upsert(ctx context.Context, p domain.Project) error
}

// GraphProjects adapts a ProjectRepository, translating its not-found error.
type GraphProjects struct {
	repo ProjectRepository
}

func NewGraphProjects(repo ProjectRepository) *GraphProjects {
	return &GraphProjects{repo: repo}
}

func (g *GraphProjects) List(ctx context.Context) ([]domain.Project, error) {
	return g.repo.List(ctx)
}

func (g *GraphProjects) Get(ctx context.Context, id string) (domain.Project, error) {
	p, err := g.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrProjectNotFound) {
		return domain.Project{}, fmt.Errorf("project %s: %w", id, ErrNotFound)
	}
	return p, err
}
