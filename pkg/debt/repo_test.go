package debt_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"debttracker/pkg/debt"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	db, err := sqlx.Open("sqlite3", ":memory:")
	assert.NoError(t, err)

	schema := `
	CREATE TABLE debts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		amount REAL NOT NULL,
		is_paid BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP NOT NULL
	);`

	_, err = db.Exec(schema)
	assert.NoError(t, err)

	return db
}

func TestMySQLRepo_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := debt.NewMySQLRepo(db)

	d := &debt.Debt{UserID: 1, Description: "rent", Amount: 500}
	err := repo.Create(d)
	assert.NoError(t, err)
	assert.NotZero(t, d.ID)
	assert.False(t, d.CreatedAt.IsZero())

	got, err := repo.GetByID(1, d.ID)
	assert.NoError(t, err)
	assert.Equal(t, "rent", got.Description)
	assert.Equal(t, 500.0, got.Amount)
	assert.False(t, got.IsPaid)

	// wrong owner
	_, err = repo.GetByID(2, d.ID)
	assert.ErrorIs(t, err, debt.ErrNotFound)

	_, err = repo.GetByID(1, 9999)
	assert.ErrorIs(t, err, debt.ErrNotFound)
}

func TestMySQLRepo_GetAllWithFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := debt.NewMySQLRepo(db)

	paid := &debt.Debt{UserID: 1, Description: "paid one", Amount: 10, IsPaid: true}
	assert.NoError(t, repo.Create(paid))
	pending := &debt.Debt{UserID: 1, Description: "pending one", Amount: 20}
	assert.NoError(t, repo.Create(pending))
	other := &debt.Debt{UserID: 2, Description: "someone else", Amount: 30}
	assert.NoError(t, repo.Create(other))

	all, err := repo.GetAll(1, nil)
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	isPaid := true
	onlyPaid, err := repo.GetAll(1, &isPaid)
	assert.NoError(t, err)
	assert.Len(t, onlyPaid, 1)
	assert.Equal(t, "paid one", onlyPaid[0].Description)

	isPaid = false
	onlyPending, err := repo.GetAll(1, &isPaid)
	assert.NoError(t, err)
	assert.Len(t, onlyPending, 1)
	assert.Equal(t, "pending one", onlyPending[0].Description)

	empty, err := repo.GetAll(3, nil)
	assert.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestMySQLRepo_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := debt.NewMySQLRepo(db)

	d := &debt.Debt{UserID: 1, Description: "old", Amount: 5}
	assert.NoError(t, repo.Create(d))

	d.Description = "new"
	d.Amount = 7.5
	d.IsPaid = true
	assert.NoError(t, repo.Update(d))

	got, err := repo.GetByID(1, d.ID)
	assert.NoError(t, err)
	assert.Equal(t, "new", got.Description)
	assert.Equal(t, 7.5, got.Amount)
	assert.True(t, got.IsPaid)
}

func TestMySQLRepo_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := debt.NewMySQLRepo(db)

	d := &debt.Debt{UserID: 1, Description: "gone", Amount: 5}
	assert.NoError(t, repo.Create(d))

	assert.NoError(t, repo.Delete(1, d.ID))

	_, err := repo.GetByID(1, d.ID)
	assert.ErrorIs(t, err, debt.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(1, d.ID), debt.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(2, 9999), debt.ErrNotFound)
}

func TestMySQLRepo_Summary(t *testing.T) {
	db := setupTestDB(t)
	repo := debt.NewMySQLRepo(db)

	assert.NoError(t, repo.Create(&debt.Debt{UserID: 1, Description: "a", Amount: 10, IsPaid: true}))
	assert.NoError(t, repo.Create(&debt.Debt{UserID: 1, Description: "b", Amount: 15, IsPaid: true}))
	assert.NoError(t, repo.Create(&debt.Debt{UserID: 1, Description: "c", Amount: 40}))
	assert.NoError(t, repo.Create(&debt.Debt{UserID: 2, Description: "d", Amount: 99}))

	s, err := repo.Summary(1)
	assert.NoError(t, err)
	assert.Equal(t, 2, s.TotalPaid)
	assert.Equal(t, 1, s.TotalPending)
	assert.Equal(t, 25.0, s.AmountPaid)
	assert.Equal(t, 40.0, s.AmountPending)

	// no debts at all
	s, err = repo.Summary(3)
	assert.NoError(t, err)
	assert.Equal(t, 0, s.TotalPaid)
	assert.Equal(t, 0, s.TotalPending)
	assert.Equal(t, 0.0, s.AmountPaid)
	assert.Equal(t, 0.0, s.AmountPending)
}
