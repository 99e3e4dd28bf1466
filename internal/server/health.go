package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/aquafund/internal/graph"
	"github.com/vanshika/aquafund/internal/kv"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// GraphHealthService verifies graph connectivity as part of health checks.
type GraphHealthService struct {
	Client graph.Client
}

// Probe implements the HealthService interface.
func (s GraphHealthService) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	if err := s.Client.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("graph: %w", err)
	}
	return nil
}

// StoreHealthService pings the session store.
type StoreHealthService struct {
	Store kv.Store
}

func (s StoreHealthService) Probe(ctx context.Context) error {
	if s.Store == nil {
		return nil
	}
	if err := s.Store.Ping(ctx); err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	return nil
}

// HealthServices probes every member and joins the failures.
type HealthServices []HealthService

func (hs HealthServices) Probe(ctx context.Context) error {
	var errs []error
	for _, h := range hs {
		if h == nil {
			continue
		}
		if err := h.Probe(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
