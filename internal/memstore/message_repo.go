package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/begamot/pethosting/internal/domain"
)

// MessageRepository — append-only журнал сообщений в памяти.
// Порядок истории определяется порядком Append, не значением Timestamp.
type MessageRepository struct {
	mu   sync.RWMutex
	msgs []domain.Message
	byID map[string]int // id -> индекс в msgs
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{byID: make(map[string]int)}
}

func (r *MessageRepository) Append(ctx context.Context, m domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[m.ID] = len(r.msgs)
	r.msgs = append(r.msgs, m)
	return nil
}

// History возвращает последние limit сообщений пары {a, b} в исходном порядке.
func (r *MessageRepository) History(ctx context.Context, a, b string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Message, 0, limit)
	for i := range r.msgs {
		if r.msgs[i].PairMatches(a, b) {
			out = append(out, r.msgs[i])
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

// MarkRead помечает сообщение прочитанным. Повторный вызов — no-op.
func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byID[id]
	if !ok {
		return domain.ErrMessageNotFound
	}
	r.msgs[i].Read = true
	return nil
}

// ContactsOf возвращает уникальный набор собеседников пользователя,
// отсортированный для стабильного вывода. Линейный скан по всей истории —
// осознанное упрощение при demo-объемах.
func (r *MessageRepository) ContactsOf(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	for i := range r.msgs {
		switch userID {
		case r.msgs[i].SenderID:
			seen[r.msgs[i].RecipientID] = struct{}{}
		case r.msgs[i].RecipientID:
			seen[r.msgs[i].SenderID] = struct{}{}
		}
	}
	delete(seen, userID) // переписка с самим собой не делает контактом

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
