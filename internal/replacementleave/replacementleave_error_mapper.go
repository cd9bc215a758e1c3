package replacementleave

import (
	"errors"
	"strings"

	replacementleaveerrors "starhr/internal/replacementleave/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const triggerRefConstraint = "uq_replacement_trigger_ref"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return replacementleaveerrors.ErrCreditNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == triggerRefConstraint {
			return replacementleaveerrors.ErrDuplicateTrigger
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, triggerRefConstraint) {
		return replacementleaveerrors.ErrDuplicateTrigger
	}

	return err
}
