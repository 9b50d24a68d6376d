package entity

type UserRole string

const (
	RoleClient     UserRole = "client"
	RoleInstructor UserRole = "instructor"
	RoleAdmin      UserRole = "admin"
)

type Gender string

const (
	GenderMale   Gender = "Άνδρας"
	GenderFemale Gender = "Γυναίκα"
)

type User struct {
	Base
	Phone         string   `db:"phone"`
	PIN           *int     `db:"pin"`
	Name          string   `db:"name"`
	City          *string  `db:"city"`
	Gender        *Gender  `db:"gender"`
	Role          UserRole `db:"role"`
	AcceptedTerms bool     `db:"accepted_terms"`
}

// Admin is a back-office account, separate from studio clients.
type Admin struct {
	BaseSimple
	Username     string `db:"username"`
	PasswordHash string `db:"password"`
}
