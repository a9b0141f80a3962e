package http

import (
	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
	"murim-academy/internal/service"
)

type registerRequest struct {
	FullName string `json:"nome_completo" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"telefone" binding:"required,max=32"`
	Password string `json:"senha" binding:"required,min=6"`
}

func (r registerRequest) toNewUser() service.NewUser {
	return service.NewUser{FullName: r.FullName, Email: r.Email, Phone: r.Phone, Password: r.Password}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"senha" binding:"required"`
}

// profileUpdateRequest lists what an account holder may change about itself.
type profileUpdateRequest struct {
	FullName *string `json:"nome_completo" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"telefone" binding:"omitempty,max=32"`
	Password *string `json:"senha" binding:"omitempty,min=6"`
}

func (r profileUpdateRequest) toPatch() repository.Patch {
	p := repository.Patch{}
	setString(p, "nome_completo", r.FullName)
	setString(p, "email", r.Email)
	setString(p, "telefone", r.Phone)
	setString(p, "senha", r.Password)
	return p
}

type userUpdateRequest struct {
	profileUpdateRequest
	Role *string `json:"role" binding:"omitempty,oneof=admin aluno"`
}

func (r userUpdateRequest) toPatch() repository.Patch {
	p := r.profileUpdateRequest.toPatch()
	setString(p, "role", r.Role)
	return p
}

type messageRequest struct {
	FullName string `json:"nome_completo" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"telefone" binding:"required,max=32"`
	Subject  string `json:"assunto" binding:"max=255"`
	Body     string `json:"mensagem" binding:"required,max=5000"`
}

func (r messageRequest) toDomain() *domain.Message {
	return &domain.Message{FullName: r.FullName, Email: r.Email, Phone: r.Phone, Subject: r.Subject, Body: r.Body}
}

type messageUpdateRequest struct {
	FullName *string `json:"nome_completo" binding:"omitempty,max=255"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"telefone" binding:"omitempty,max=32"`
	Subject  *string `json:"assunto" binding:"omitempty,max=255"`
	Body     *string `json:"mensagem" binding:"omitempty,max=5000"`
	Read     *bool   `json:"lida"`
}

func (r messageUpdateRequest) toPatch() repository.Patch {
	p := repository.Patch{}
	setString(p, "nome_completo", r.FullName)
	setString(p, "email", r.Email)
	setString(p, "telefone", r.Phone)
	setString(p, "assunto", r.Subject)
	setString(p, "mensagem", r.Body)
	if r.Read != nil {
		p["lida"] = *r.Read
	}
	return p
}

type productRequest struct {
	Name        string   `json:"nome" binding:"required,max=255"`
	Description string   `json:"descricao" binding:"required"`
	Price       *float64 `json:"preco" binding:"required,gte=0"`
	Image       string   `json:"imagem"`
	Category    string   `json:"categoria" binding:"max=100"`
}

func (r productRequest) toDomain() *domain.Product {
	return &domain.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       *r.Price,
		Image:       r.Image,
		Category:    r.Category,
	}
}

type productUpdateRequest struct {
	Name        *string  `json:"nome" binding:"omitempty,max=255"`
	Description *string  `json:"descricao"`
	Price       *float64 `json:"preco" binding:"omitempty,gte=0"`
	Image       *string  `json:"imagem"`
	Category    *string  `json:"categoria" binding:"omitempty,max=100"`
}

func (r productUpdateRequest) toPatch() repository.Patch {
	p := repository.Patch{}
	setString(p, "nome", r.Name)
	setString(p, "descricao", r.Description)
	setString(p, "imagem", r.Image)
	setString(p, "categoria", r.Category)
	if r.Price != nil {
		p["preco"] = *r.Price
	}
	return p
}

type scheduleRequest struct {
	Weekday   string `json:"dia_semana" binding:"required,max=32"`
	StartTime string `json:"hora_inicio" binding:"required"`
	EndTime   string `json:"hora_fim" binding:"required"`
	Modality  string `json:"modalidade" binding:"required,max=100"`
	Level     string `json:"nivel" binding:"required,max=50"`
}

func (r scheduleRequest) toDomain() *domain.Schedule {
	return &domain.Schedule{Weekday: r.Weekday, StartTime: r.StartTime, EndTime: r.EndTime, Modality: r.Modality, Level: r.Level}
}

type scheduleUpdateRequest struct {
	Weekday   *string `json:"dia_semana" binding:"omitempty,max=32"`
	StartTime *string `json:"hora_inicio"`
	EndTime   *string `json:"hora_fim"`
	Modality  *string `json:"modalidade" binding:"omitempty,max=100"`
	Level     *string `json:"nivel" binding:"omitempty,max=50"`
}

func (r scheduleUpdateRequest) toPatch() repository.Patch {
	p := repository.Patch{}
	setString(p, "dia_semana", r.Weekday)
	setString(p, "hora_inicio", r.StartTime)
	setString(p, "hora_fim", r.EndTime)
	setString(p, "modalidade", r.Modality)
	setString(p, "nivel", r.Level)
	return p
}

type trainerRequest struct {
	Name         string `json:"nome" binding:"required,max=255"`
	Specialty    string `json:"especialidade" binding:"max=255"`
	Experience   string `json:"experience" binding:"max=255"`
	Description  string `json:"descricao"`
	Availability string `json:"availability"`
	Image        string `json:"imagem"`
}

func (r trainerRequest) toDomain() *domain.Trainer {
	return &domain.Trainer{
		Name:         r.Name,
		Specialty:    r.Specialty,
		Experience:   r.Experience,
		Description:  r.Description,
		Availability: r.Availability,
		Image:        r.Image,
	}
}

type trainerUpdateRequest struct {
	Name         *string `json:"nome" binding:"omitempty,max=255"`
	Specialty    *string `json:"especialidade" binding:"omitempty,max=255"`
	Experience   *string `json:"experience" binding:"omitempty,max=255"`
	Description  *string `json:"descricao"`
	Availability *string `json:"availability"`
	Image        *string `json:"imagem"`
}

func (r trainerUpdateRequest) toPatch() repository.Patch {
	p := repository.Patch{}
	setString(p, "nome", r.Name)
	setString(p, "especialidade", r.Specialty)
	setString(p, "experience", r.Experience)
	setString(p, "descricao", r.Description)
	setString(p, "availability", r.Availability)
	setString(p, "imagem", r.Image)
	return p
}

type appointmentRequest struct {
	UserID    int64  `json:"user_id" binding:"required,gt=0"`
	TrainerID int64  `json:"trainer_id" binding:"required,gt=0"`
	Date      string `json:"data" binding:"required"`
	StartTime string `json:"hora_inicio" binding:"required"`
	EndTime   string `json:"hora_fim" binding:"required"`
	Status    string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

func (r appointmentRequest) toDomain() *domain.Appointment {
	return &domain.Appointment{
		UserID:    r.UserID,
		TrainerID: r.TrainerID,
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Status:    domain.AppointmentStatus(r.Status),
	}
}

type appointmentUpdateRequest struct {
	UserID    *int64  `json:"user_id" binding:"omitempty,gt=0"`
	TrainerID *int64  `json:"trainer_id" binding:"omitempty,gt=0"`
	Date      *string `json:"data"`
	StartTime *string `json:"hora_inicio"`
	EndTime   *string `json:"hora_fim"`
	Status    *string `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
}

func (r appointmentUpdateRequest) toPatch() repository.Patch {
	p := repository.Patch{}
	if r.UserID != nil {
		p["user_id"] = *r.UserID
	}
	if r.TrainerID != nil {
		p["trainer_id"] = *r.TrainerID
	}
	setString(p, "data", r.Date)
	setString(p, "hora_inicio", r.StartTime)
	setString(p, "hora_fim", r.EndTime)
	setString(p, "status", r.Status)
	return p
}

func setString(p repository.Patch, field string, v *string) {
	if v != nil {
		p[field] = *v
	}
}
