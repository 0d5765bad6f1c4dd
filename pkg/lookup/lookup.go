package lookup

import "context"

// Request asks for the stored configuration of one rule.
type Request struct {
	Name        string
	DisplayName string
	Credentials Credentials
}

// Lookuper fetches the configuration of a single rule.
//
// A rule without a stored record is not an error: implementations return
// StatusResult(StatusNotConfigured). Errors mean the lookup itself failed.
type Lookuper interface {
	Lookup(ctx context.Context, req Request) (Result, error)
}

// Func adapts a function to the Lookuper interface.
type Func func(ctx context.Context, req Request) (Result, error)

// Lookup calls f.
func (f Func) Lookup(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}
