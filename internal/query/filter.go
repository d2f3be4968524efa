// Package query provides jq-based record filtering for scans.
package query

import (
	"errors"
	"fmt"

	"github.com/itchyny/gojq"

	"github.com/usestring/jsonlscan/pkg/jsonvalue"
)

// Filter is a compiled jq expression used as a record predicate.
// It is safe for concurrent use.
type Filter struct {
	expr string
	code *gojq.Code
}

// Compile parses and compiles a jq expression.
func Compile(expression string) (*Filter, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	return &Filter{expr: expression, code: code}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expr
}

// Match reports whether the first output of the expression on v is truthy.
// Empty output and runtime errors count as no match.
func (f *Filter) Match(v jsonvalue.Value) bool {
	iter := f.code.Run(v.Interface())
	out, ok := iter.Next()
	if !ok {
		return false
	}
	if _, isErr := out.(error); isErr {
		return false
	}
	return truthy(out)
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	default:
		return true
	}
}
