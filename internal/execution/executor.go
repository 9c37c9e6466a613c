package execution

import "context"

// Engine executes a single query against a database and returns its output
type Engine interface {
	Execute(ctx context.Context, dbPath, query string) (string, error)
}

// EngineFunc adapts a function to the Engine interface
type EngineFunc func(ctx context.Context, dbPath, query string) (string, error)

// Execute calls f
func (f EngineFunc) Execute(ctx context.Context, dbPath, query string) (string, error) {
	return f(ctx, dbPath, query)
}
