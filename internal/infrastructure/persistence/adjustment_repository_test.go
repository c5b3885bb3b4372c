package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/adjustment"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockAdjustmentRepository creates a GormAdjustmentRepository with a mocked SQL connection
func newMockAdjustmentRepository(t *testing.T) (*GormAdjustmentRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormAdjustmentRepository(gormDB), mock, mockDB
}

func TestGormAdjustmentRepository_FindByID(t *testing.T) {
	t.Run("finds existing adjustment with lines", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		adjID := uuid.New()
		branchID := uuid.New()
		salesRepID := uuid.New()
		lineID := uuid.New()
		itemID := uuid.New()

		adjRows := sqlmock.NewRows([]string{"id", "adjustment_no", "branch_id", "sales_rep_id", "type", "status", "total_value", "version"}).
			AddRow(adjID, "ADJ-20260830-00001", branchID, salesRepID, "adj-sale", "waiting_for_approval", decimal.NewFromInt(290), 1)

		mock.ExpectQuery(`SELECT \* FROM "adjustments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(adjID, 1).
			WillReturnRows(adjRows)

		lineRows := sqlmock.NewRows([]string{"id", "adjustment_id", "item_id", "item_code", "item_name", "primary_qty", "base_qty", "line_total"}).
			AddRow(lineID, adjID, itemID, "ITM-001", "Test Item", decimal.NewFromInt(2), decimal.NewFromInt(5), decimal.NewFromInt(290))

		mock.ExpectQuery(`SELECT \* FROM "adjustment_lines" WHERE "adjustment_lines"\."adjustment_id" = \$1`).
			WithArgs(adjID).
			WillReturnRows(lineRows)

		adj, err := repo.FindByID(context.Background(), adjID)

		assert.NoError(t, err)
		require.NotNil(t, adj)
		assert.Equal(t, adjID, adj.ID)
		assert.Equal(t, "ADJ-20260830-00001", adj.AdjustmentNo)
		require.Len(t, adj.Lines, 1)
		assert.Equal(t, "ITM-001", adj.Lines[0].ItemCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found for missing adjustment", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		adjID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "adjustments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(adjID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		adj, err := repo.FindByID(context.Background(), adjID)

		assert.Error(t, err)
		assert.Nil(t, adj)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAdjustmentRepository_Count(t *testing.T) {
	t.Run("counts with branch and status filter", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		branchID := uuid.New()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "adjustments" WHERE branch_id = \$1 AND status = \$2`).
			WithArgs(branchID, "waiting_for_approval").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		count, err := repo.Count(context.Background(), adjustment.ListFilter{
			BranchID: &branchID,
			Status:   adjustment.StatusWaitingForApproval,
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counts without filters", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "adjustments"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.Count(context.Background(), adjustment.ListFilter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAdjustmentRepository_ExistsByAdjustmentNo(t *testing.T) {
	t.Run("returns true when number is taken", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "adjustments" WHERE adjustment_no = \$1`).
			WithArgs("ADJ-20260830-00001").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		exists, err := repo.ExistsByAdjustmentNo(context.Background(), "ADJ-20260830-00001")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns false when number is free", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "adjustments" WHERE adjustment_no = \$1`).
			WithArgs("ADJ-20260830-09999").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		exists, err := repo.ExistsByAdjustmentNo(context.Background(), "ADJ-20260830-09999")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAdjustmentRepository_GenerateAdjustmentNo(t *testing.T) {
	date := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	t.Run("starts at one for a fresh date", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "adjustment_no" FROM "adjustments" WHERE adjustment_no LIKE \$1 ORDER BY adjustment_no DESC LIMIT .*`).
			WithArgs("ADJ-20260830-%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"adjustment_no"}))

		number, err := repo.GenerateAdjustmentNo(context.Background(), date)

		assert.NoError(t, err)
		assert.Equal(t, "ADJ-20260830-00001", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("increments the highest sequence for the date", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT "adjustment_no" FROM "adjustments" WHERE adjustment_no LIKE \$1 ORDER BY adjustment_no DESC LIMIT .*`).
			WithArgs("ADJ-20260830-%", 1).
			WillReturnRows(sqlmock.NewRows([]string{"adjustment_no"}).AddRow("ADJ-20260830-00042"))

		number, err := repo.GenerateAdjustmentNo(context.Background(), date)

		assert.NoError(t, err)
		assert.Equal(t, "ADJ-20260830-00043", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAdjustmentRepository_SaveWithLock(t *testing.T) {
	t.Run("approves a freshly loaded adjustment", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		adjID := uuid.New()
		branchID := uuid.New()
		salesRepID := uuid.New()
		lineID := uuid.New()
		itemID := uuid.New()
		approverID := uuid.New()

		adjRows := sqlmock.NewRows([]string{"id", "adjustment_no", "branch_id", "sales_rep_id", "type", "status", "total_value", "version"}).
			AddRow(adjID, "ADJ-20260830-00007", branchID, salesRepID, "adj-sale", "waiting_for_approval", decimal.NewFromInt(290), 1)

		mock.ExpectQuery(`SELECT \* FROM "adjustments" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(adjID, 1).
			WillReturnRows(adjRows)

		lineRows := sqlmock.NewRows([]string{"id", "adjustment_id", "item_id", "item_code", "item_name", "primary_qty", "base_qty", "line_total"}).
			AddRow(lineID, adjID, itemID, "ITM-001", "Test Item", decimal.NewFromInt(2), decimal.NewFromInt(5), decimal.NewFromInt(290))

		mock.ExpectQuery(`SELECT \* FROM "adjustment_lines" WHERE "adjustment_lines"\."adjustment_id" = \$1`).
			WithArgs(adjID).
			WillReturnRows(lineRows)

		adj, err := repo.FindByID(context.Background(), adjID)
		require.NoError(t, err)
		require.Equal(t, 1, adj.Version)

		require.NoError(t, adj.Approve(approverID))
		assert.Equal(t, 1, adj.Version)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "adjustments" WHERE id = \$1`).
			WithArgs(adjID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(1))
		mock.ExpectExec(`UPDATE "adjustments" SET .+ WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "adjustment_lines" WHERE adjustment_id = \$1 AND id NOT IN \(\$2\)`).
			WithArgs(adjID, lineID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`UPDATE "adjustment_lines" SET .+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.SaveWithLock(context.Background(), adj)

		assert.NoError(t, err)
		assert.Equal(t, 2, adj.Version)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects a stale aggregate", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		adj, err := adjustment.NewAdjustment("ADJ-20260830-00008", uuid.New(), uuid.New(), adjustment.TypeSale, time.Now(), "")
		require.NoError(t, err)
		require.Equal(t, 1, adj.Version)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT "version" FROM "adjustments" WHERE id = \$1`).
			WithArgs(adj.ID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))
		mock.ExpectRollback()

		err = repo.SaveWithLock(context.Background(), adj)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONCURRENT_MODIFICATION", domainErr.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAdjustmentRepository_Delete(t *testing.T) {
	t.Run("deletes lines then the document", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		adjID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "adjustment_lines" WHERE adjustment_id = \$1`).
			WithArgs(adjID).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`DELETE FROM "adjustments" WHERE id = \$1`).
			WithArgs(adjID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(context.Background(), adjID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when document does not exist", func(t *testing.T) {
		repo, mock, mockDB := newMockAdjustmentRepository(t)
		defer mockDB.Close()

		adjID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "adjustment_lines" WHERE adjustment_id = \$1`).
			WithArgs(adjID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "adjustments" WHERE id = \$1`).
			WithArgs(adjID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(context.Background(), adjID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
