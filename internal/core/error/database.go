package errx

import (
	"database/sql"
	"errors"
	"net/http"
)

// WrapDatabase maps durable store errors to AppError.
func WrapDatabase(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return New(err, http.StatusNotFound, DatabaseNotFoundMessage)
	}

	return New(err, http.StatusServiceUnavailable, DatabaseErrorMessage)
}
