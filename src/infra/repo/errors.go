package repo

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5/pgconn"

	"teamroster/src/core/domain"
)

// Postgres SQLSTATE codes mapped to domain errors.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// classify turns driver errors into domain errors where the caller can act on
// them and wraps everything else with op.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			return domain.NewValidationError("team_id", "references a team that does not exist")
		case codeCheckViolation:
			return domain.NewValidationError(pgErr.ColumnName, pgErr.Message)
		case codeUniqueViolation:
			return domain.NewConflictError(pgErr.Detail)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	var connErr *pgconn.ConnectError
	var netErr net.Error
	if errors.As(err, &connErr) || errors.As(err, &netErr) || pgconn.Timeout(err) {
		return &domain.DomainError{
			Base:    domain.ErrStoreUnavailable,
			Message: fmt.Sprintf("%s: %v", op, err),
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
