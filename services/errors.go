package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures for the transport layer.
type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindMissingArgument
	KindEntityNotFound
	KindExporterNotFound
)

// MissingArgumentError reports absent, empty or invalid caller input.
type MissingArgumentError struct {
	Field   string
	Message string
}

func (e *MissingArgumentError) Error() string { return e.Message }

func missingArgument(field, format string, args ...interface{}) error {
	return &MissingArgumentError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// EntityNotFoundError reports a referenced entity that does not exist or was deleted.
type EntityNotFoundError struct {
	Entity string
	Key    string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s with key '%s' was not found", e.Entity, e.Key)
}

// ExporterNotFoundError reports an export format key with no renderer.
type ExporterNotFoundError struct {
	Key string
}

func (e *ExporterNotFoundError) Error() string {
	return fmt.Sprintf("exporter '%s' was not found", e.Key)
}

// KindOf maps an error returned by this package to its kind.
func KindOf(err error) ErrorKind {
	var missing *MissingArgumentError
	var notFound *EntityNotFoundError
	var noExporter *ExporterNotFoundError
	switch {
	case err == nil:
		return KindUnexpected
	case errors.As(err, &missing):
		return KindMissingArgument
	case errors.As(err, &notFound):
		return KindEntityNotFound
	case errors.As(err, &noExporter):
		return KindExporterNotFound
	default:
		return KindUnexpected
	}
}
