package debt

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type MySQLRepo struct {
	DB *sqlx.DB
}

func NewMySQLRepo(db *sqlx.DB) *MySQLRepo {
	return &MySQLRepo{DB: db}
}

func (r *MySQLRepo) Create(debt *Debt) error {
	debt.CreatedAt = time.Now().UTC().Truncate(time.Second)

	query, args, err := sq.
		Insert("debts").
		Columns("user_id", "description", "amount", "is_paid", "created_at").
		Values(debt.UserID, debt.Description, debt.Amount, debt.IsPaid, debt.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.DB.Exec(query, args...)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	debt.ID = id

	return nil
}

func (r *MySQLRepo) GetByID(userID, debtID int64) (*Debt, error) {
	query, args, err := sq.
		Select("id", "user_id", "description", "amount", "is_paid", "created_at").
		From("debts").
		Where(sq.Eq{"id": debtID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var d Debt
	if err := r.DB.Get(&d, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &d, nil
}

func (r *MySQLRepo) GetAll(userID int64, isPaid *bool) ([]Debt, error) {
	qb := sq.
		Select("id", "user_id", "description", "amount", "is_paid", "created_at").
		From("debts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")

	if isPaid != nil {
		qb = qb.Where(sq.Eq{"is_paid": *isPaid})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	debts := make([]Debt, 0)
	if err := r.DB.Select(&debts, query, args...); err != nil {
		return nil, err
	}

	return debts, nil
}

func (r *MySQLRepo) Update(debt *Debt) error {
	query, args, err := sq.
		Update("debts").
		Set("description", debt.Description).
		Set("amount", debt.Amount).
		Set("is_paid", debt.IsPaid).
		Where(sq.Eq{"id": debt.ID, "user_id": debt.UserID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	_, err = r.DB.Exec(query, args...)
	return err
}

func (r *MySQLRepo) Delete(userID, debtID int64) error {
	query, args, err := sq.
		Delete("debts").
		Where(sq.Eq{"id": debtID, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	res, err := r.DB.Exec(query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *MySQLRepo) Summary(userID int64) (*Summary, error) {
	query, args, err := sq.
		Select(
			"COALESCE(SUM(CASE WHEN is_paid THEN 1 ELSE 0 END), 0) AS total_paid",
			"COALESCE(SUM(CASE WHEN is_paid THEN 0 ELSE 1 END), 0) AS total_pending",
			"COALESCE(SUM(CASE WHEN is_paid THEN amount ELSE 0 END), 0) AS amount_paid",
			"COALESCE(SUM(CASE WHEN is_paid THEN 0 ELSE amount END), 0) AS amount_pending",
		).
		From("debts").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var s Summary
	if err := r.DB.Get(&s, query, args...); err != nil {
		return nil, err
	}

	return &s, nil
}
