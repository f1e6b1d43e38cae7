package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/terrasapp/sales-api/internal/domain/repository"
)

const uniqueViolation = "23505"

// Per-constraint messages preserved from the legacy schema definitions. A
// constraint without an entry falls back to the driver's own message.
var constraintMessages = map[string]string{
	"users_mail_key":  "Este email já está cadastrado",
	"users_login_key": "Este login já está cadastrado",
}

// mapConstraintError turns a unique-violation into a ConflictError carrying
// the constraint's message; every other error passes through untouched.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		msg := constraintMessages[pgErr.ConstraintName]
		if msg == "" {
			msg = pgErr.Message
		}
		return &repository.ConflictError{Message: msg}
	}
	return err
}
