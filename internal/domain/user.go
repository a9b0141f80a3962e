package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleStudent = "aluno"
)

// User represents an account of the academy, either a student or an administrator.
type User struct {
	ID           int64     `db:"id" json:"id"`
	FullName     string    `db:"nome_completo" json:"nome_completo"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"telefone" json:"telefone"`
	PasswordHash string    `db:"senha" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleStudent
}

// UserStats aggregates account counts for the admin dashboard.
type UserStats struct {
	Total    int `json:"total"`
	Students int `json:"alunos"`
	Admins   int `json:"admin"`
}
