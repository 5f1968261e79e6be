// Package errors provides error handling for observegen.
//
// This package re-exports github.com/cockroachdb/errors, providing stack
// traces, wrapping and user-facing hints:
//
//	if err := loader.LoadPackages(ctx, dir, patterns...); err != nil {
//	    return errors.Wrap(err, "failed to load packages")
//	}
//
//	return errors.WithHint(err, "run 'observegen' to regenerate")
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	GetAllDetails = crdb.GetAllDetails
)

// Sentinel errors for generation failures.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrNoPackages indicates a load pattern matched nothing
	ErrNoPackages = New("no packages found")

	// ErrNestedScope indicates a declaration nested inside another type,
	// which the target language cannot express
	ErrNestedScope = New("nested type scope not supported")

	// ErrUnknownFormat indicates an unsupported render format was requested
	ErrUnknownFormat = New("unknown render format")

	// ErrOutOfDate indicates generated files differ from the sources
	ErrOutOfDate = New("generated files are out of date")

	// ErrInvalidConfig indicates the configuration failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsOutOfDate checks if an error is or wraps ErrOutOfDate
func IsOutOfDate(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// IsNestedScope checks if an error is or wraps ErrNestedScope
func IsNestedScope(err error) bool {
	return err != nil && Is(err, ErrNestedScope)
}
