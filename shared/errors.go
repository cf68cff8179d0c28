package shared

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// the error kinds of the api. All of them are echo http errors, so the
// central error handler is able to translate them into the envelope.

func NewValidationError(message string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, message).WithInternal(err)
}

func NewNotFoundError(message string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusNotFound, message).WithInternal(err)
}

func NewConflictError(message string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, message).WithInternal(err)
}

func NewUnauthorizedError(message string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, message).WithInternal(err)
}

func NewForbiddenError(message string, err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusForbidden, message).WithInternal(err)
}

// NewStorageError hides the database error from the caller. The cause is
// only logged.
func NewStorageError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, "database error").WithInternal(err)
}

func NewUnexpectedError(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").WithInternal(err)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError detects unique constraint violations of postgres and sqlite
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// IsForeignKeyError detects foreign key violations of postgres and sqlite
func IsForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// StorageErrorOr translates record not found into a not found error and
// everything else into a storage error
func StorageErrorOr(err error, notFoundMessage string) *echo.HTTPError {
	if IsNotFound(err) {
		return NewNotFoundError(notFoundMessage, err)
	}
	return NewStorageError(err)
}
