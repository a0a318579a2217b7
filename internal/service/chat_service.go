package service

import (
	"context"
	"strings"
	"time"

	"github.com/begamot/pethosting/internal/domain"

	"github.com/google/uuid"
)

// Presence — живые подключения. Реализуется ws.Hub.
type Presence interface {
	Online(userID string) bool
}

type MessageRepo interface {
	Append(ctx context.Context, m domain.Message) error
	History(ctx context.Context, a, b string, limit int) ([]domain.Message, error)
	MarkRead(ctx context.Context, id string) error
	ContactsOf(ctx context.Context, userID string) ([]string, error)
}

// ChatService владеет журналом сообщений; все мутации идут через него.
type ChatService struct {
	messageRepo MessageRepo
	presence    Presence

	maxContentLen int
}

func NewChatService(messageRepo MessageRepo, presence Presence) *ChatService {
	return &ChatService{
		messageRepo:   messageRepo,
		presence:      presence,
		maxContentLen: 4000,
	}
}

func (s *ChatService) SetMaxContentLen(n int) {
	if n > 0 {
		s.maxContentLen = n
	}
}

// Send создает сообщение и дописывает его в журнал. Момент Append
// фиксирует позицию сообщения во всех последующих выборках истории.
func (s *ChatService) Send(ctx context.Context, senderID, recipientID, content string) (domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.Message{}, domain.ErrEmptyContent
	}
	if len(content) > s.maxContentLen {
		return domain.Message{}, domain.ErrContentTooLong
	}

	m := domain.Message{
		ID:          strings.ReplaceAll(uuid.New().String(), "-", ""),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     content,
		Timestamp:   time.Now(),
	}
	if err := s.messageRepo.Append(ctx, m); err != nil {
		return domain.Message{}, err
	}
	return m, nil
}

func (s *ChatService) History(ctx context.Context, userID, contactID string, limit int) ([]domain.Message, error) {
	if limit <= 0 {
		return nil, domain.ErrInvalidLimit
	}
	return s.messageRepo.History(ctx, userID, contactID, limit)
}

func (s *ChatService) MarkRead(ctx context.Context, messageID string) error {
	return s.messageRepo.MarkRead(ctx, messageID)
}

// Contacts возвращает всех собеседников пользователя и тех из них,
// у кого сейчас есть живое подключение.
func (s *ChatService) Contacts(ctx context.Context, userID string) (contacts, online []string, err error) {
	contacts, err = s.messageRepo.ContactsOf(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	online = make([]string, 0, len(contacts))
	for _, id := range contacts {
		if s.presence.Online(id) {
			online = append(online, id)
		}
	}
	return contacts, online, nil
}

// OnlineContacts — собеседники с живым подключением.
func (s *ChatService) OnlineContacts(ctx context.Context, userID string) ([]string, error) {
	_, online, err := s.Contacts(ctx, userID)
	return online, err
}
