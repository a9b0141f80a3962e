package domain

import "time"

// Product is an item of the academy store (apparel, equipment, supplements).
type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"nome" json:"nome"`
	Description string    `db:"descricao" json:"descricao"`
	Price       float64   `db:"preco" json:"preco"`
	Image       string    `db:"imagem" json:"imagem"`
	Category    string    `db:"categoria" json:"categoria"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
