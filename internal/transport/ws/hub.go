package ws

import (
	"sync"
)

type Conn interface {
	Send(v any) error
	Close() error
	UserID() string
}

// Hub — реестр присутствия: userID -> живое подключение.
// Не более одной записи на пользователя; повторный Connect вытесняет старую.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]Conn
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]Conn)}
}

// Add регистрирует подключение и возвращает вытесненное, если оно было.
// Закрыть вытесненное — забота вызывающего.
func (h *Hub) Add(c Conn) (replaced Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	replaced = h.conns[c.UserID()]
	h.conns[c.UserID()] = c
	return replaced
}

// Remove снимает запись, только если она все еще указывает на c:
// после takeover старый обработчик не должен снести нового владельца.
func (h *Hub) Remove(c Conn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.conns[c.UserID()]; ok && cur == c {
		delete(h.conns, c.UserID())
		return true
	}
	return false
}

func (h *Hub) Get(userID string) (Conn, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	c, ok := h.conns[userID]
	return c, ok
}

func (h *Hub) Online(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.conns[userID]
	return ok
}

// Send доставляет событие пользователю, если он подключен. Best-effort.
func (h *Hub) Send(userID string, v any) error {
	h.mu.RLock()
	c, ok := h.conns[userID]
	h.mu.RUnlock()

	if !ok {
		return nil
	}
	return c.Send(v)
}
