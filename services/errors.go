package services

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail         = errors.New("email already registered")
	ErrDuplicateTitle         = errors.New("a post with this title already exists")
	ErrPasswordTooLong        = errors.New("password exceeds 72 bytes")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnknownEmail           = fmt.Errorf("%w: unknown email", ErrInvalidCredentials)
	ErrWrongPassword          = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrForbidden              = errors.New("forbidden")
	ErrNotFound               = errors.New("not found")
	ErrForeignKeyViolation    = errors.New("referenced row does not exist")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
