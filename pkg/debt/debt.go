package debt

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("debt not found")
	ErrPaid     = errors.New("cannot edit a paid debt")
	ErrAmount   = errors.New("amount cannot be negative")
)

type Debt struct {
	ID          int64     `json:"id" db:"id"`
	UserID      int64     `json:"user_id" db:"user_id"`
	Description string    `json:"description" db:"description"`
	Amount      float64   `json:"amount" db:"amount"`
	IsPaid      bool      `json:"is_paid" db:"is_paid"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type Summary struct {
	TotalPaid     int     `json:"total_paid" db:"total_paid"`
	TotalPending  int     `json:"total_pending" db:"total_pending"`
	AmountPaid    float64 `json:"amount_paid" db:"amount_paid"`
	AmountPending float64 `json:"amount_pending" db:"amount_pending"`
}

type Repository interface {
	Create(debt *Debt) error
	GetByID(userID, debtID int64) (*Debt, error)
	GetAll(userID int64, isPaid *bool) ([]Debt, error)
	Update(debt *Debt) error
	Delete(userID, debtID int64) error
	Summary(userID int64) (*Summary, error)
}
