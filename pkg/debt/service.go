package debt

type ServiceInterface interface {
	Create(userID int64, description string, amount float64) (*Debt, error)
	List(userID int64, isPaid *bool) ([]Debt, error)
	GetByID(userID, debtID int64) (*Debt, error)
	Update(userID, debtID int64, description *string, amount *float64) (*Debt, error)
	Delete(userID, debtID int64) error
	MarkPaid(userID, debtID int64) (*Debt, error)
	Summary(userID int64) (*Summary, error)
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Create(userID int64, description string, amount float64) (*Debt, error) {
	if amount < 0 {
		return nil, ErrAmount
	}

	debt := &Debt{
		UserID:      userID,
		Description: description,
		Amount:      amount,
	}

	if err := s.Repo.Create(debt); err != nil {
		return nil, err
	}

	return debt, nil
}

func (s *Service) List(userID int64, isPaid *bool) ([]Debt, error) {
	return s.Repo.GetAll(userID, isPaid)
}

func (s *Service) GetByID(userID, debtID int64) (*Debt, error) {
	return s.Repo.GetByID(userID, debtID)
}

// Update edits description and/or amount; a paid debt can no longer be
// edited, only deleted.
func (s *Service) Update(userID, debtID int64, description *string, amount *float64) (*Debt, error) {
	debt, err := s.Repo.GetByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	if debt.IsPaid {
		return nil, ErrPaid
	}

	if description != nil {
		debt.Description = *description
	}
	if amount != nil {
		if *amount < 0 {
			return nil, ErrAmount
		}
		debt.Amount = *amount
	}

	if err := s.Repo.Update(debt); err != nil {
		return nil, err
	}

	return debt, nil
}

func (s *Service) Delete(userID, debtID int64) error {
	return s.Repo.Delete(userID, debtID)
}

// MarkPaid is the only transition to is_paid=true; repeating it on an
// already-paid debt returns the debt unchanged.
func (s *Service) MarkPaid(userID, debtID int64) (*Debt, error) {
	debt, err := s.Repo.GetByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	if debt.IsPaid {
		return debt, nil
	}

	debt.IsPaid = true
	if err := s.Repo.Update(debt); err != nil {
		return nil, err
	}

	return debt, nil
}

func (s *Service) Summary(userID int64) (*Summary, error) {
	return s.Repo.Summary(userID)
}
