package replacementleave_test

import (
	"context"
	"testing"
	"time"

	"starhr/internal/replacementleave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRepo(t *testing.T) (replacementleave.Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return replacementleave.NewRepository(gdb), mock
}

func TestReplacementRepository_FindActiveRule(t *testing.T) {
	ctx := context.Background()
	on := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

	t.Run("latest effective first", func(t *testing.T) {
		repo, mock := setupRepo(t)
		ruleID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "replacement_leave_rules" WHERE .*trigger_type = \$\d.*effective_from <= \$\d.*\(effective_to IS NULL OR effective_to >= \$\d\).*ORDER BY effective_from DESC`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "trigger_type", "credit_type", "credit_days"}).
				AddRow(ruleID.String(), "TRAINING", "FIXED", "1.00"))

		rule, err := repo.FindActiveRule(ctx, uuid.NewString(), "TRAINING", on)

		require.NoError(t, err)
		assert.Equal(t, ruleID, rule.ID)
		assert.Equal(t, "1", rule.CreditDays.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("none", func(t *testing.T) {
		repo, mock := setupRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "replacement_leave_rules"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindActiveRule(ctx, uuid.NewString(), "TRAINING", on)

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestReplacementRepository_FindByTriggerReference(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "replacement_leave_credits" WHERE .*trigger_reference = \$\d`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	credit, err := repo.FindByTriggerReference(context.Background(), uuid.NewString(), "alloc-1")

	require.NoError(t, err)
	assert.Nil(t, credit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplacementRepository_SumCredited(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(days_credited\), 0\) FROM "replacement_leave_credits" WHERE .*status <> \$\d.*trigger_date >= \$\d AND trigger_date < \$\d`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("1.50"))

	total, err := repo.SumCredited(context.Background(), uuid.NewString(), uuid.NewString(),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "1.5", total.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplacementRepository_UpdateStatus(t *testing.T) {
	repo, mock := setupRepo(t)
	mock.ExpectExec(`UPDATE "replacement_leave_credits" SET .*"status"=\$\d.* WHERE .*id = \$\d AND status = \$\d`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.UpdateStatus(context.Background(), uuid.NewString(), uuid.NewString(), replacementleave.StatusPending, map[string]any{
		"status":         replacementleave.StatusRejected,
		"days_remaining": 0,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
