package domain

// Schedule is a weekly class slot.
type Schedule struct {
	ID        int64  `db:"id" json:"id"`
	Weekday   string `db:"dia_semana" json:"dia_semana"`
	StartTime string `db:"hora_inicio" json:"hora_inicio"`
	EndTime   string `db:"hora_fim" json:"hora_fim"`
	Modality  string `db:"modalidade" json:"modalidade"`
	Level     string `db:"nivel" json:"nivel"`
}
