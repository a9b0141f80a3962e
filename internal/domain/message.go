package domain

import "time"

// Message is a contact-form submission left on the public site.
type Message struct {
	ID        int64     `db:"id" json:"id"`
	FullName  string    `db:"nome_completo" json:"nome_completo"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"telefone" json:"telefone"`
	Subject   string    `db:"assunto" json:"assunto"`
	Body      string    `db:"mensagem" json:"mensagem"`
	Read      bool      `db:"lida" json:"lida"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
