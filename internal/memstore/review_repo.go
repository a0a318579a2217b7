package memstore

import (
	"context"
	"sync"

	"github.com/begamot/pethosting/internal/domain"
)

// ReviewRepository — append-only коллекция отзывов в памяти.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews []domain.Review
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Append(ctx context.Context, rv domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews = append(r.reviews, rv)
	return nil
}

// ListByProfile возвращает отзывы профиля в порядке добавления.
func (r *ReviewRepository) ListByProfile(ctx context.Context, profileID int64) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Review, 0)
	for i := range r.reviews {
		if r.reviews[i].ProfileID == profileID {
			out = append(out, r.reviews[i])
		}
	}
	return out, nil
}

// ScoresByProfile возвращает только оценки — для пересчета рейтинга.
func (r *ReviewRepository) ScoresByProfile(ctx context.Context, profileID int64) ([]float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []float64
	for i := range r.reviews {
		if r.reviews[i].ProfileID == profileID {
			out = append(out, r.reviews[i].Score)
		}
	}
	return out, nil
}
