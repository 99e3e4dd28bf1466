package graph

import (
	"context"
	"strings"
	"sync"
)

// MemoryClient is a scripted in-memory Client for repository tests. Results
// are matched by a substring of the statement; every call is recorded.
type MemoryClient struct {
	mu           sync.Mutex
	calls        []ExecutedQuery
	responses    []scriptedResponse
	err          error
	connectivity error
}

// ExecutedQuery captures a statement and its parameters.
type ExecutedQuery struct {
	Write  bool
	Query  string
	Params map[string]any
}

type scriptedResponse struct {
	match  string
	result Result
}

// NewMemoryClient returns a client with no scripted responses.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{}
}

// Respond makes the next statement containing match return res. Responses
// for the same match are consumed in the order they were added.
func (m *MemoryClient) Respond(match string, res Result) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, scriptedResponse{match: match, result: res})
	return m
}

// WithError makes every statement fail with err.
func (m *MemoryClient) WithError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// WithConnectivityError forces VerifyConnectivity to return err.
func (m *MemoryClient) WithConnectivityError(err error) *MemoryClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connectivity = err
	return m
}

func (m *MemoryClient) ExecuteWrite(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(true, cypher, params)
}

func (m *MemoryClient) ExecuteRead(_ context.Context, cypher string, params map[string]any) (Result, error) {
	return m.execute(false, cypher, params)
}

func (m *MemoryClient) execute(write bool, cypher string, params map[string]any) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return Result{}, m.err
	}
	m.calls = append(m.calls, ExecutedQuery{Write: write, Query: cypher, Params: cloneMap(params)})

	for i, r := range m.responses {
		if strings.Contains(cypher, r.match) {
			m.responses = append(m.responses[:i], m.responses[i+1:]...)
			return r.result, nil
		}
	}
	return Result{}, nil
}

func (m *MemoryClient) VerifyConnectivity(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connectivity
}

func (m *MemoryClient) Close(context.Context) error {
	return nil
}

// Calls returns a snapshot of executed statements.
func (m *MemoryClient) Calls() []ExecutedQuery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ExecutedQuery(nil), m.calls...)
}

// WriteCalls returns the executed write statements.
func (m *MemoryClient) WriteCalls() []ExecutedQuery {
	var out []ExecutedQuery
	for _, c := range m.Calls() {
		if c.Write {
			out = append(out, c)
		}
	}
	return out
}

func cloneMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
