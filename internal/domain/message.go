package domain

import "time"

type Message struct {
	ID          string
	SenderID    string
	RecipientID string
	Content     string
	Timestamp   time.Time
	Read        bool
}

// PairMatches сообщает, принадлежит ли сообщение переписке {a, b}
// независимо от направления.
func (m *Message) PairMatches(a, b string) bool {
	return (m.SenderID == a && m.RecipientID == b) ||
		(m.SenderID == b && m.RecipientID == a)
}
