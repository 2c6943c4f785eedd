package service

import (
	"sort"
	"strings"

	"brokerbook/internal/repository"
)

// ErrNotFound is returned by mutations addressing an id that does not exist.
var ErrNotFound = repository.ErrNotFound

// ValidationError lists the request fields that failed business validation.
// Nothing is written when it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// fieldErrors collects field problems and turns them into a *ValidationError.
type fieldErrors map[string]string

func (f fieldErrors) add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}
