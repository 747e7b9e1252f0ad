package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DataMentes/Job-Market-Insights-analysis/internal/storage"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrTableNotFound indicates a market whose table has not been cleaned yet.
type ErrTableNotFound struct {
	Market string
}

func (e *ErrTableNotFound) Error() string {
	return fmt.Sprintf("no clean table for market %s", e.Market)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validation *ErrValidation
	var notFound *ErrTableNotFound
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// loadError maps a load of a never-written table to ErrTableNotFound.
func loadError(market string, err error) error {
	if errors.Is(err, storage.ErrNoTable) {
		return &ErrTableNotFound{Market: market}
	}
	return err
}
