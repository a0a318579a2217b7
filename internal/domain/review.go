package domain

import "time"

type Review struct {
	ProfileID  int64
	FromUserID int64
	Score      float64
	Text       *string
	PostDate   time.Time
}
