package domain

import "time"

type User struct {
	ID           int64
	Name         string
	Contact      string
	PasswordHash string
	Avatar       *string
	Rating       float64
	CreatedAt    time.Time
}

// Profile — рецензируемая сущность, привязанная к пользователю.
// Создается вместе с аккаунтом.
type Profile struct {
	UserID int64
	Info   *string
}
