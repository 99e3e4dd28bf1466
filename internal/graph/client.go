// Package graph is the thin contract the project catalog repository needs
// from a Cypher-speaking graph database.
package graph

import (
	"context"
	"errors"
)

// Client runs parameterised Cypher statements.
type Client interface {
	ExecuteWrite(ctx context.Context, cypher string, params map[string]any) (Result, error)
	ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error)
	VerifyConnectivity(ctx context.Context) error
	Close(ctx context.Context) error
}

// Result is the eagerly collected response of a statement.
type Result struct {
	Records []Record
}

// Record maps returned column names to values.
type Record map[string]any

// Options configures a graph client implementation.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int
}

// ErrMissingURI indicates the graph URI is not provided.
var ErrMissingURI = errors.New("graph URI is required")
