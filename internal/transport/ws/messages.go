package ws

import (
	"time"

	"github.com/begamot/pethosting/internal/domain"
)

// Типы событий на live-соединении. Закрытое множество:
// неизвестный тег — это warning, а не разрыв соединения.
const (
	TypeSendMessage  = "send_message"  // клиент -> сервер
	TypeNewMessage   = "new_message"   // входящее сообщение получателю
	TypeMessageSent  = "message_sent"  // эхо-подтверждение отправителю
	TypeStatusUpdate = "status_update" // контакт появился/пропал
)

// InboundEvent — единственная входящая форма.
type InboundEvent struct {
	Type        string `json:"type"`
	RecipientID string `json:"recipient_id"`
	Content     string `json:"content"`
}

type MessageEvent struct {
	Type    string      `json:"type"`
	Message MessageItem `json:"message"`
}

type StatusEvent struct {
	Type     string `json:"type"`
	UserID   string `json:"user_id"`
	IsOnline bool   `json:"is_online"`
}

// MessageItem — проводная форма сообщения.
type MessageItem struct {
	MessageID   string    `json:"message_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	IsRead      bool      `json:"is_read"`
}

func ToMessageItem(m domain.Message) MessageItem {
	return MessageItem{
		MessageID:   m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Timestamp:   m.Timestamp,
		IsRead:      m.Read,
	}
}
