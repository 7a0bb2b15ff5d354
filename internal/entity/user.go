package entity

import (
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

// User is a purchaser. Orders reference it through Order.UserID.
type User struct {
	bun.BaseModel `bun:"table:users"`

	ID        int64  `bun:",pk,autoincrement"`
	FirstName string `bun:"first_name"`
	LastName  string `bun:"last_name"`
	Email     string `bun:"email,unique"`
	Password  string `bun:"password"`
}

// HashPassword replaces the plain-text password with its bcrypt hash. Nothing on the create
// path calls it; passwords are stored as received.
func (u *User) HashPassword() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the hash produced by HashPassword.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
