package memstore

import (
	"context"
	"sync"

	"github.com/begamot/pethosting/internal/domain"
)

// UserRepository — справочник пользователей и их профилей в памяти.
// Идентификаторы выдаются последовательно, начиная с 1.
type UserRepository struct {
	mu       sync.RWMutex
	users    []domain.User
	profiles map[int64]domain.Profile
	nextID   int64
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		profiles: make(map[int64]domain.Profile),
		nextID:   1,
	}
}

// Create сохраняет пользователя, присваивает id и заводит профиль.
func (r *UserRepository) Create(ctx context.Context, u domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = r.nextID
	r.nextID++
	r.users = append(r.users, u)
	r.profiles[u.ID] = domain.Profile{UserID: u.ID}
	return u, nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID == id {
			return r.users[i], nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// UpdateRating перезаписывает рейтинг пользователя.
// Единственный пишущий — ReviewService.
func (r *UserRepository) UpdateRating(ctx context.Context, id int64, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Rating = rating
			return nil
		}
	}
	return domain.ErrUserNotFound
}
