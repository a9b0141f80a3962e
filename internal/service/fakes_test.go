package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"murim-academy/internal/domain"
	"murim-academy/internal/repository"
	"murim-academy/internal/storage"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return 0, fmt.Errorf("email %w", domain.ErrConflict)
		}
	}
	r.nextID++
	user.ID = r.nextID
	if user.Role == "" {
		user.Role = domain.RoleStudent
	}
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %w", domain.ErrNotFound)
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %w", domain.ErrNotFound)
	}
	return &u, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, id int64, patch repository.Patch) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(patch) == 0 {
		return false, nil
	}
	u, ok := r.users[id]
	if !ok {
		return false, nil
	}
	for k, v := range patch {
		s, _ := v.(string)
		switch k {
		case "nome_completo":
			u.FullName = s
		case "email":
			u.Email = s
		case "telefone":
			u.Phone = s
		case "senha":
			u.PasswordHash = s
		case "role":
			u.Role = s
		default:
			return false, domain.NewValidationError(k, "unknown field")
		}
	}
	r.users[id] = u
	return true, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *fakeUserRepo) Stats(_ context.Context) (domain.UserStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var stats domain.UserStats
	for _, u := range r.users {
		stats.Total++
		if u.Role == domain.RoleAdmin {
			stats.Admins++
		} else {
			stats.Students++
		}
	}
	return stats, nil
}

// fakeRows is a minimal table keyed by id that records the last patch it received.
type fakeRows[T any] struct {
	mu        sync.Mutex
	entity    string
	nextID    int64
	rows      map[int64]T
	lastPatch repository.Patch
	setID     func(*T, int64)
	apply     func(*T, repository.Patch)
}

func (f *fakeRows[T]) create(v *T) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.setID(v, f.nextID)
	f.rows[f.nextID] = *v
	return f.nextID, nil
}

func (f *fakeRows[T]) list() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.rows))
	for id := range f.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, f.rows[id])
	}
	return out
}

func (f *fakeRows[T]) get(id int64) (*T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("%s %w", f.entity, domain.ErrNotFound)
	}
	return &v, nil
}

func (f *fakeRows[T]) update(id int64, patch repository.Patch) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastPatch = patch
	if len(patch) == 0 {
		return false, nil
	}
	v, ok := f.rows[id]
	if !ok {
		return false, nil
	}
	if f.apply != nil {
		f.apply(&v, patch)
	}
	f.rows[id] = v
	return true, nil
}

func (f *fakeRows[T]) delete(id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return false, nil
	}
	delete(f.rows, id)
	return true, nil
}

type fakeProductRepo struct{ fakeRows[domain.Product] }

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{fakeRows[domain.Product]{
		entity: "product",
		rows:   map[int64]domain.Product{},
		setID:  func(p *domain.Product, id int64) { p.ID = id },
		apply: func(p *domain.Product, patch repository.Patch) {
			if v, ok := patch["imagem"].(string); ok {
				p.Image = v
			}
			if v, ok := patch["preco"].(float64); ok {
				p.Price = v
			}
		},
	}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) (int64, error) {
	return r.create(p)
}
func (r *fakeProductRepo) List(context.Context) ([]domain.Product, error) { return r.list(), nil }
func (r *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	return r.get(id)
}
func (r *fakeProductRepo) Update(_ context.Context, id int64, patch repository.Patch) (bool, error) {
	return r.update(id, patch)
}
func (r *fakeProductRepo) Delete(_ context.Context, id int64) (bool, error) { return r.delete(id) }

type fakeScheduleRepo struct{ fakeRows[domain.Schedule] }

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{fakeRows[domain.Schedule]{
		entity: "schedule",
		rows:   map[int64]domain.Schedule{},
		setID:  func(s *domain.Schedule, id int64) { s.ID = id },
	}}
}

func (r *fakeScheduleRepo) Create(_ context.Context, s *domain.Schedule) (int64, error) {
	return r.create(s)
}
func (r *fakeScheduleRepo) List(context.Context) ([]domain.Schedule, error) { return r.list(), nil }
func (r *fakeScheduleRepo) GetByID(_ context.Context, id int64) (*domain.Schedule, error) {
	return r.get(id)
}
func (r *fakeScheduleRepo) Update(_ context.Context, id int64, patch repository.Patch) (bool, error) {
	return r.update(id, patch)
}
func (r *fakeScheduleRepo) Delete(_ context.Context, id int64) (bool, error) { return r.delete(id) }

type fakeTrainerRepo struct{ fakeRows[domain.Trainer] }

func newFakeTrainerRepo() *fakeTrainerRepo {
	return &fakeTrainerRepo{fakeRows[domain.Trainer]{
		entity: "trainer",
		rows:   map[int64]domain.Trainer{},
		setID:  func(t *domain.Trainer, id int64) { t.ID = id },
		apply: func(t *domain.Trainer, patch repository.Patch) {
			if v, ok := patch["imagem"].(string); ok {
				t.Image = v
			}
		},
	}}
}

func (r *fakeTrainerRepo) Create(_ context.Context, t *domain.Trainer) (int64, error) {
	return r.create(t)
}
func (r *fakeTrainerRepo) List(context.Context) ([]domain.Trainer, error) { return r.list(), nil }
func (r *fakeTrainerRepo) GetByID(_ context.Context, id int64) (*domain.Trainer, error) {
	return r.get(id)
}
func (r *fakeTrainerRepo) Update(_ context.Context, id int64, patch repository.Patch) (bool, error) {
	return r.update(id, patch)
}
func (r *fakeTrainerRepo) Delete(_ context.Context, id int64) (bool, error) { return r.delete(id) }

type fakeMessageRepo struct{ fakeRows[domain.Message] }

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{fakeRows[domain.Message]{
		entity: "message",
		rows:   map[int64]domain.Message{},
		setID:  func(m *domain.Message, id int64) { m.ID = id },
		apply: func(m *domain.Message, patch repository.Patch) {
			if v, ok := patch["lida"].(bool); ok {
				m.Read = v
			}
		},
	}}
}

func (r *fakeMessageRepo) Create(_ context.Context, m *domain.Message) (int64, error) {
	return r.create(m)
}
func (r *fakeMessageRepo) List(context.Context) ([]domain.Message, error) { return r.list(), nil }
func (r *fakeMessageRepo) GetByID(_ context.Context, id int64) (*domain.Message, error) {
	return r.get(id)
}
func (r *fakeMessageRepo) Update(_ context.Context, id int64, patch repository.Patch) (bool, error) {
	return r.update(id, patch)
}
func (r *fakeMessageRepo) MarkRead(_ context.Context, id int64) (bool, error) {
	return r.update(id, repository.Patch{"lida": true})
}
func (r *fakeMessageRepo) Delete(_ context.Context, id int64) (bool, error) { return r.delete(id) }
func (r *fakeMessageRepo) CountUnread(context.Context) (int, error) {
	n := 0
	for _, m := range r.list() {
		if !m.Read {
			n++
		}
	}
	return n, nil
}

type fakeAppointmentRepo struct{ fakeRows[domain.Appointment] }

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{fakeRows[domain.Appointment]{
		entity: "appointment",
		rows:   map[int64]domain.Appointment{},
		setID:  func(a *domain.Appointment, id int64) { a.ID = id },
	}}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (int64, error) {
	return r.create(a)
}
func (r *fakeAppointmentRepo) List(context.Context) ([]domain.Appointment, error) {
	return r.list(), nil
}
func (r *fakeAppointmentRepo) ListByUser(_ context.Context, userID int64) ([]domain.Appointment, error) {
	out := make([]domain.Appointment, 0)
	for _, a := range r.list() {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}
func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	return r.get(id)
}
func (r *fakeAppointmentRepo) Update(_ context.Context, id int64, patch repository.Patch) (bool, error) {
	return r.update(id, patch)
}
func (r *fakeAppointmentRepo) Delete(_ context.Context, id int64) (bool, error) {
	return r.delete(id)
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []domain.Message
	err  error
}

func (n *fakeNotifier) MessageReceived(_ context.Context, msg *domain.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, *msg)
	return n.err
}

type fakeStore struct {
	base     string
	uploaded map[string]string
	deleted  []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{base: "https://cdn.test", uploaded: map[string]string{}}
}

func (s *fakeStore) Upload(_ context.Context, in storage.UploadInput) (storage.Object, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return storage.Object{}, err
	}
	s.uploaded[in.Key] = string(data)
	return storage.Object{Key: in.Key, URL: s.base + "/" + in.Key}, nil
}

func (s *fakeStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.uploaded, key)
	return nil
}

func (s *fakeStore) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, s.base+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, s.base+"/"), true
}
