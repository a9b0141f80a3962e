package domain

// Trainer is an instructor available for personal sessions.
type Trainer struct {
	ID           int64  `db:"id" json:"id"`
	Name         string `db:"nome" json:"nome"`
	Specialty    string `db:"especialidade" json:"especialidade"`
	Experience   string `db:"experience" json:"experience"`
	Description  string `db:"descricao" json:"descricao"`
	Availability string `db:"availability" json:"availability"`
	Image        string `db:"imagem" json:"imagem"`
}
