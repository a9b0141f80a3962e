package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

const (
	productColumns  = `id, nome, descricao, preco, imagem, categoria, created_at`
	scheduleColumns = `id, dia_semana, hora_inicio, hora_fim, modalidade, nivel`
	trainerColumns  = `id, nome, especialidade, experience, descricao, availability, imagem`
)

// getOne loads a single row into dest, translating a missing row into ErrNotFound.
func getOne(ctx context.Context, db *sqlx.DB, dest any, entity, query string, id int64) error {
	if err := db.GetContext(ctx, dest, db.Rebind(query), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s %w", entity, domain.ErrNotFound)
		}
		return fmt.Errorf("scan %s: %w", entity, err)
	}
	return nil
}

type ProductRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) (int64, error) {
	p.CreatedAt = time.Now().UTC()

	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO produtos (nome, descricao, preco, imagem, categoria, created_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`),
		p.Name,
		p.Description,
		p.Price,
		p.Image,
		p.Category,
		p.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	p.ID = id
	return id, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	if err := r.db.SelectContext(ctx, &products, `SELECT `+productColumns+` FROM produtos ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := getOne(ctx, r.db, &p, "product", `SELECT `+productColumns+` FROM produtos WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, patch repository.Patch) (bool, error) {
	return applyUpdate(ctx, r.db, productsTable, id, patch)
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.db, productsTable, id)
}

type ScheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.Schedule) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO horarios (dia_semana, hora_inicio, hora_fim, modalidade, nivel)
VALUES (?, ?, ?, ?, ?)
RETURNING id`),
		s.Weekday,
		s.StartTime,
		s.EndTime,
		s.Modality,
		s.Level,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert schedule: %w", err)
	}
	s.ID = id
	return id, nil
}

func (r *ScheduleRepository) List(ctx context.Context) ([]domain.Schedule, error) {
	schedules := make([]domain.Schedule, 0)
	if err := r.db.SelectContext(ctx, &schedules,
		`SELECT `+scheduleColumns+` FROM horarios ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	var s domain.Schedule
	if err := getOne(ctx, r.db, &s, "schedule", `SELECT `+scheduleColumns+` FROM horarios WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleRepository) Update(ctx context.Context, id int64, patch repository.Patch) (bool, error) {
	return applyUpdate(ctx, r.db, schedulesTable, id, patch)
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.db, schedulesTable, id)
}

type TrainerRepository struct {
	db *sqlx.DB
}

func NewTrainerRepository(db *sqlx.DB) repository.TrainerRepository {
	return &TrainerRepository{db: db}
}

func (r *TrainerRepository) Create(ctx context.Context, t *domain.Trainer) (int64, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(`
INSERT INTO trainers (nome, especialidade, experience, descricao, availability, imagem)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`),
		t.Name,
		t.Specialty,
		t.Experience,
		t.Description,
		t.Availability,
		t.Image,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert trainer: %w", err)
	}
	t.ID = id
	return id, nil
}

func (r *TrainerRepository) List(ctx context.Context) ([]domain.Trainer, error) {
	trainers := make([]domain.Trainer, 0)
	if err := r.db.SelectContext(ctx, &trainers, `SELECT `+trainerColumns+` FROM trainers ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	return trainers, nil
}

func (r *TrainerRepository) GetByID(ctx context.Context, id int64) (*domain.Trainer, error) {
	var t domain.Trainer
	if err := getOne(ctx, r.db, &t, "trainer", `SELECT `+trainerColumns+` FROM trainers WHERE id = ?`, id); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TrainerRepository) Update(ctx context.Context, id int64, patch repository.Patch) (bool, error) {
	return applyUpdate(ctx, r.db, trainersTable, id, patch)
}

func (r *TrainerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteRow(ctx, r.db, trainersTable, id)
}
