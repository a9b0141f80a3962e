package service

import (
	"context"
	"encoding/json"
	"strings"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
)

// ProductService manages the store catalogue.
type ProductService interface {
	Create(ctx context.Context, p *domain.Product) (int64, error)
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, patch repository.Patch) error
	Delete(ctx context.Context, id int64) error
	ImageTarget
}

// ScheduleService manages the weekly class timetable.
type ScheduleService interface {
	Create(ctx context.Context, s *domain.Schedule) (int64, error)
	List(ctx context.Context) ([]domain.Schedule, error)
	Get(ctx context.Context, id int64) (*domain.Schedule, error)
	Update(ctx context.Context, id int64, patch repository.Patch) error
	Delete(ctx context.Context, id int64) error
}

// TrainerService manages the instructor roster.
type TrainerService interface {
	Create(ctx context.Context, t *domain.Trainer) (int64, error)
	List(ctx context.Context) ([]domain.Trainer, error)
	Get(ctx context.Context, id int64) (*domain.Trainer, error)
	Update(ctx context.Context, id int64, patch repository.Patch) error
	Delete(ctx context.Context, id int64) error
	ImageTarget
}

type productService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) ProductService {
	return &productService{products: products}
}

func (s *productService) Create(ctx context.Context, p *domain.Product) (int64, error) {
	var err error
	if p.Name, err = requireText("nome", p.Name); err != nil {
		return 0, err
	}
	if p.Description, err = requireText("descricao", p.Description); err != nil {
		return 0, err
	}
	if p.Price < 0 {
		return 0, domain.NewValidationError("preco", "must not be negative")
	}
	p.Category = strings.TrimSpace(p.Category)
	p.Image = strings.TrimSpace(p.Image)
	return s.products.Create(ctx, p)
}

func (s *productService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *productService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *productService) Update(ctx context.Context, id int64, patch repository.Patch) error {
	for _, field := range []string{"nome", "descricao"} {
		if v, ok := patch[field]; ok {
			text, err := textValue(field, v)
			if err != nil {
				return err
			}
			patch[field] = text
		}
	}
	if v, ok := patch["preco"]; ok {
		price, err := priceValue(v)
		if err != nil {
			return err
		}
		patch["preco"] = price
	}
	return applyPatch(ctx, "product", id, patch, s.products.Update)
}

func (s *productService) Delete(ctx context.Context, id int64) error {
	ok, err := s.products.Delete(ctx, id)
	return checkDeleted("product", id, ok, err)
}

func (s *productService) CurrentImage(ctx context.Context, id int64) (string, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return p.Image, nil
}

func (s *productService) SetImage(ctx context.Context, id int64, url string) error {
	return applyPatch(ctx, "product", id, repository.Patch{"imagem": url}, s.products.Update)
}

func priceValue(v any) (float64, error) {
	var price float64
	switch n := v.(type) {
	case float64:
		price = n
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, domain.NewValidationError("preco", "must be a number")
		}
		price = f
	default:
		return 0, domain.NewValidationError("preco", "must be a number")
	}
	if price < 0 {
		return 0, domain.NewValidationError("preco", "must not be negative")
	}
	return price, nil
}

type scheduleService struct {
	schedules repository.ScheduleRepository
}

func NewScheduleService(schedules repository.ScheduleRepository) ScheduleService {
	return &scheduleService{schedules: schedules}
}

func (s *scheduleService) Create(ctx context.Context, sc *domain.Schedule) (int64, error) {
	var err error
	if sc.Weekday, err = requireText("dia_semana", sc.Weekday); err != nil {
		return 0, err
	}
	if sc.Modality, err = requireText("modalidade", sc.Modality); err != nil {
		return 0, err
	}
	if sc.Level, err = requireText("nivel", sc.Level); err != nil {
		return 0, err
	}
	sc.StartTime = strings.TrimSpace(sc.StartTime)
	sc.EndTime = strings.TrimSpace(sc.EndTime)
	if err := checkTimeRange(sc.StartTime, sc.EndTime); err != nil {
		return 0, err
	}
	return s.schedules.Create(ctx, sc)
}

func (s *scheduleService) List(ctx context.Context) ([]domain.Schedule, error) {
	return s.schedules.List(ctx)
}

func (s *scheduleService) Get(ctx context.Context, id int64) (*domain.Schedule, error) {
	return s.schedules.GetByID(ctx, id)
}

func (s *scheduleService) Update(ctx context.Context, id int64, patch repository.Patch) error {
	for _, field := range []string{"dia_semana", "modalidade", "nivel"} {
		if v, ok := patch[field]; ok {
			text, err := textValue(field, v)
			if err != nil {
				return err
			}
			patch[field] = text
		}
	}

	_, hasStart := patch["hora_inicio"]
	_, hasEnd := patch["hora_fim"]
	if hasStart || hasEnd {
		// a single bound still has to fit the one already stored
		current, err := s.schedules.GetByID(ctx, id)
		if err != nil {
			return err
		}
		start, err := patchString(patch, "hora_inicio", current.StartTime)
		if err != nil {
			return err
		}
		end, err := patchString(patch, "hora_fim", current.EndTime)
		if err != nil {
			return err
		}
		if err := checkTimeRange(start, end); err != nil {
			return err
		}
	}

	return applyPatch(ctx, "schedule", id, patch, s.schedules.Update)
}

func (s *scheduleService) Delete(ctx context.Context, id int64) error {
	ok, err := s.schedules.Delete(ctx, id)
	return checkDeleted("schedule", id, ok, err)
}

type trainerService struct {
	trainers repository.TrainerRepository
}

func NewTrainerService(trainers repository.TrainerRepository) TrainerService {
	return &trainerService{trainers: trainers}
}

func (s *trainerService) Create(ctx context.Context, t *domain.Trainer) (int64, error) {
	var err error
	if t.Name, err = requireText("nome", t.Name); err != nil {
		return 0, err
	}
	return s.trainers.Create(ctx, t)
}

func (s *trainerService) List(ctx context.Context) ([]domain.Trainer, error) {
	return s.trainers.List(ctx)
}

func (s *trainerService) Get(ctx context.Context, id int64) (*domain.Trainer, error) {
	return s.trainers.GetByID(ctx, id)
}

func (s *trainerService) Update(ctx context.Context, id int64, patch repository.Patch) error {
	if v, ok := patch["nome"]; ok {
		name, err := textValue("nome", v)
		if err != nil {
			return err
		}
		patch["nome"] = name
	}
	return applyPatch(ctx, "trainer", id, patch, s.trainers.Update)
}

func (s *trainerService) Delete(ctx context.Context, id int64) error {
	ok, err := s.trainers.Delete(ctx, id)
	return checkDeleted("trainer", id, ok, err)
}

func (s *trainerService) CurrentImage(ctx context.Context, id int64) (string, error) {
	t, err := s.trainers.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return t.Image, nil
}

func (s *trainerService) SetImage(ctx context.Context, id int64, url string) error {
	return applyPatch(ctx, "trainer", id, repository.Patch{"imagem": url}, s.trainers.Update)
}
