package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zhouzirui/video-catalog/backend/internal/apperrors"
)

// handlePostgreSQLError converts PostgreSQL-specific errors to appropriate AppError codes
func handlePostgreSQLError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.Wrap(err, apperrors.CodeStorage, operation)
	}

	switch pgErr.Code {
	case "23505": // UNIQUE_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeConflict, "video with this ID already exists")

	case "23502": // NOT_NULL_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeIntegrity, "required field is missing")

	case "23514": // CHECK_VIOLATION
		return apperrors.Wrap(err, apperrors.CodeIntegrity, checkViolationMessage)

	case "22001": // STRING_DATA_RIGHT_TRUNCATION
		return apperrors.Wrap(err, apperrors.CodeIntegrity, "name is too long")

	case "42P01": // UNDEFINED_TABLE
		return apperrors.Wrap(err, apperrors.CodeStorage, "database schema error: table not found")

	case "08000", "08003", "08006": // CONNECTION_EXCEPTION variants
		return apperrors.Wrap(err, apperrors.CodeStorage, "database connection error")

	default:
		return apperrors.Wrap(err, apperrors.CodeStorage, "database error (PostgreSQL code: "+pgErr.Code+")")
	}
}
