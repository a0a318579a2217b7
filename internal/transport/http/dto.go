package http

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type MessageItem struct {
	MessageID   string    `json:"message_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	Timestamp   time.Time `json:"timestamp"`
	IsRead      bool      `json:"is_read"`
}

type ContactsResponse struct {
	Contacts    []string `json:"contacts"`
	OnlineUsers []string `json:"online_users"`
}

type CreateReviewRequest struct {
	ProfileID  int64   `json:"profile_id"`
	FromUserID int64   `json:"from_user_id"`
	Score      float64 `json:"score"`
	Text       *string `json:"text"`
}

type ReviewItem struct {
	ProfileID  int64     `json:"profile_id"`
	FromUserID int64     `json:"from_user_id"`
	Score      float64   `json:"score"`
	Text       *string   `json:"text"`
	PostDate   time.Time `json:"post_date"`
}

type CreateUserRequest struct {
	Name     string  `json:"name"`
	Contact  string  `json:"contact"`
	Password string  `json:"password"`
	Avatar   *string `json:"avatar"`
}

// UserItem — хеш пароля наружу не отдаем.
type UserItem struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Contact string  `json:"contact"`
	Avatar  *string `json:"avatar"`
	Rating  float64 `json:"rating"`
}
