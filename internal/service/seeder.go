package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vanshika/aquafund/internal/domain"
)

// TaskError accumulates multiple errors produced during bulk seeding.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *TaskError) Unwrap() []error {
	return e.Errors
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkSeeder pushes projects into the graph catalog using a worker pool.
type BulkSeeder struct {
	repo    ProjectRepository
	workers int
}

// NewBulkSeeder creates a new BulkSeeder instance with the provided concurrency.
func NewBulkSeeder(repo ProjectRepository, workers int) *BulkSeeder {
	if workers <= 0 {
		workers = 4
	}
	return &BulkSeeder{
		repo:    repo,
		workers: workers,
	}
}

// SeedProjects upserts the provided projects concurrently.
func (bs *BulkSeeder) SeedProjects(ctx context.Context, projects []domain.Project) error {
	return bs.run(ctx, len(projects), func(idx int) error {
		p := projects[idx]
		if p.ID == "" {
			return fmt.Errorf("project at index %d: %w: id is required", idx, ErrInvalidInput)
		}
		return bs.repo.Upsert(ctx, p)
	})
}

func (bs *BulkSeeder) run(ctx context.Context, total int, workerFn func(idx int) error) error {
	if total == 0 {
		return nil
	}
	indexCh := make(chan int)
	errCh := make(chan error, total)
	var wg sync.WaitGroup

	worker := func() {
		defer wg.Done()
		for idx := range indexCh {
			if err := workerFn(idx); err != nil {
				select {
				case errCh <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}

	for i := 0; i < bs.workers; i++ {
		wg.Add(1)
		go worker()
	}

Loop:
	for i := 0; i < total; i++ {
		select {
		case indexCh <- i:
		case <-ctx.Done():
			break Loop
		}
	}
	close(indexCh)
	wg.Wait()
	close(errCh)

	var taskErr TaskError
	for err := range errCh {
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		taskErr.append(err)
	}
	return taskErr.asError()
}
