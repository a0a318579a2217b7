package service

import (
	"context"
	"testing"

	"github.com/begamot/pethosting/internal/domain"
	"github.com/begamot/pethosting/internal/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture(t *testing.T) (*ReviewService, *memstore.UserRepository, domain.User) {
	t.Helper()
	users := memstore.NewUserRepository()
	u, err := users.Create(context.Background(), domain.User{Name: "sitter"})
	require.NoError(t, err)
	return NewReviewService(memstore.NewReviewRepository(), users), users, u
}

func TestSubmit_FirstReviewIsTheAverage(t *testing.T) {
	svc, users, u := newReviewFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, u.ID, 3, 5, nil)
	require.NoError(t, err)

	got, err := users.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Rating)
}

func TestSubmit_MeanOverAllScores(t *testing.T) {
	svc, users, u := newReviewFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, u.ID, 3, 4, nil)
	require.NoError(t, err)
	got, _ := users.Get(ctx, u.ID)
	assert.Equal(t, 4.0, got.Rating)

	_, err = svc.Submit(ctx, u.ID, 4, 2, nil)
	require.NoError(t, err)
	got, _ = users.Get(ctx, u.ID)
	assert.Equal(t, 3.0, got.Rating)
}

func TestSubmit_UnknownProfileLeavesNoReview(t *testing.T) {
	svc, _, _ := newReviewFixture(t)
	ctx := context.Background()

	_, err := svc.Submit(ctx, 77, 3, 5, nil)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	// атомарность: отзыв не должен был попасть в коллекцию
	reviews, err := svc.List(ctx, 77)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestList_SubmissionOrder(t *testing.T) {
	svc, _, u := newReviewFixture(t)
	ctx := context.Background()

	text1, text2 := "great", "ok"
	_, err := svc.Submit(ctx, u.ID, 3, 5, &text1)
	require.NoError(t, err)
	_, err = svc.Submit(ctx, u.ID, 4, 3, &text2)
	require.NoError(t, err)

	reviews, err := svc.List(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "great", *reviews[0].Text)
	assert.Equal(t, "ok", *reviews[1].Text)
	assert.Equal(t, int64(3), reviews[0].FromUserID)
}

func TestMean_SingleAndMany(t *testing.T) {
	assert.Equal(t, 4.0, mean([]float64{4}))
	assert.Equal(t, 3.0, mean([]float64{4, 2}))
	assert.Equal(t, 0.0, mean(nil))
}
