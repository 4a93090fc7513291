// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	Email           string     `db:"email"`
	PasswordHash    string     `db:"password_hash"`
	EmailVerifiedAt *time.Time `db:"email_verified_at"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}
