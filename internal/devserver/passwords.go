package devserver

import "golang.org/x/crypto/bcrypt"

// PasswordService hashes and verifies account passwords.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a password service with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt hash of a password.
func (p *PasswordService) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the password matches the stored hash.
func (p *PasswordService) Verify(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
