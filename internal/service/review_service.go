package service

import (
	"context"
	"time"

	"github.com/begamot/pethosting/internal/domain"
)

type ReviewRepo interface {
	Append(ctx context.Context, rv domain.Review) error
	ListByProfile(ctx context.Context, profileID int64) ([]domain.Review, error)
	ScoresByProfile(ctx context.Context, profileID int64) ([]float64, error)
}

type RatingWriter interface {
	Get(ctx context.Context, id int64) (domain.User, error)
	UpdateRating(ctx context.Context, id int64, rating float64) error
}

// ReviewService — агрегатор рейтинга. Единственный пишущий в поле Rating.
type ReviewService struct {
	reviewRepo ReviewRepo
	users      RatingWriter
}

func NewReviewService(reviewRepo ReviewRepo, users RatingWriter) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, users: users}
}

// Submit сохраняет отзыв и синхронно пересчитывает средний рейтинг профиля.
// Проверка пользователя идет до записи: при отсутствии субъекта отзыв
// не попадает в коллекцию.
func (s *ReviewService) Submit(ctx context.Context, profileID, fromUserID int64, score float64, text *string) (domain.Review, error) {
	if _, err := s.users.Get(ctx, profileID); err != nil {
		return domain.Review{}, err
	}

	rv := domain.Review{
		ProfileID:  profileID,
		FromUserID: fromUserID,
		Score:      score,
		Text:       text,
		PostDate:   time.Now(),
	}
	if err := s.reviewRepo.Append(ctx, rv); err != nil {
		return domain.Review{}, err
	}

	scores, err := s.reviewRepo.ScoresByProfile(ctx, profileID)
	if err != nil {
		return domain.Review{}, err
	}
	if err := s.users.UpdateRating(ctx, profileID, mean(scores)); err != nil {
		return domain.Review{}, err
	}
	return rv, nil
}

func (s *ReviewService) List(ctx context.Context, profileID int64) ([]domain.Review, error) {
	return s.reviewRepo.ListByProfile(ctx, profileID)
}

// mean вызывается только после Append, так что scores не пуст;
// ветка len==1 закрывает случай первого отзыва явно.
func mean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	if len(scores) == 1 {
		return scores[0]
	}
	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores))
}
