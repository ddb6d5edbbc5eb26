package user

type User struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
}

type Repository interface {
	Create(user *User) error
	FindByEmail(email string) (*User, error)
}
