package entity

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// Roles form an open set; only these two carry built-in meaning.
const (
	RoleAdmin   = "admin"
	RoleGeneral = "general"
)

type User struct {
	BaseNoDelete
	Name         string     `db:"name"`
	Email        string     `db:"email"`
	Role         string     `db:"role"`
	Department   *string    `db:"department"`
	Status       UserStatus `db:"status"`
	PasswordHash *string    `db:"password_hash"`
	Bio          *string    `db:"bio"`
	AvatarURL    *string    `db:"avatar_url"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsBlocked() bool {
	return u.Status == UserStatusBlocked
}
