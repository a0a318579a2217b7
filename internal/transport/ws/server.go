package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/begamot/pethosting/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

type ChatSvc interface {
	Send(ctx context.Context, senderID, recipientID, content string) (domain.Message, error)
	OnlineContacts(ctx context.Context, userID string) ([]string, error)
}

// Server управляет жизненным циклом подключений:
// регистрация в Hub, рассылка присутствия, доставка сообщений.
type Server struct {
	upgrader websocket.Upgrader
	hub      *Hub
	chatSvc  ChatSvc

	pingEvery time.Duration
}

func NewServer(hub *Hub, chat ChatSvc) *Server {
	return &Server{
		hub:     hub,
		chatSvc: chat,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		pingEvery: 15 * time.Second,
	}
}

// WS endpoint: GET /chat/ws/{user_id}
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	if userID == "" {
		http.Error(w, "missing user id", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", "user", userID, "err", err)
		return
	}

	c := newWsConn(conn, userID)
	if prev := s.hub.Add(c); prev != nil {
		// повторный connect того же пользователя — принудительный takeover
		slog.Info("ws takeover", "user", userID)
		_ = prev.Close()
	}

	s.broadcastStatus(r.Context(), userID, true)

	go s.writeLoop(r.Context(), c)
	s.readLoop(r.Context(), c)

	// единственный путь снятия присутствия: чистый и аварийный
	// разрывы проходят здесь одинаково
	if s.hub.Remove(c) {
		s.broadcastStatus(r.Context(), userID, false)
	}
	if err := c.Close(); err != nil {
		slog.Debug("ws close failed", "user", userID, "err", err)
	}
}

// broadcastStatus шлет status_update всем онлайн-собеседникам пользователя.
func (s *Server) broadcastStatus(ctx context.Context, userID string, online bool) {
	contacts, err := s.chatSvc.OnlineContacts(ctx, userID)
	if err != nil {
		slog.Warn("ws online contacts failed", "user", userID, "err", err)
		return
	}
	ev := StatusEvent{Type: TypeStatusUpdate, UserID: userID, IsOnline: online}
	for _, id := range contacts {
		if err := s.hub.Send(id, ev); err != nil {
			slog.Debug("ws status push failed", "user", userID, "contact", id, "err", err)
		}
	}
}

func (s *Server) readLoop(ctx context.Context, c *wsConn) {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(1 << 20)
	c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(2 * s.pingEvery))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			break
		}
		var ev InboundEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			slog.Warn("ws malformed event", "user", c.userID, "err", err)
			continue
		}

		switch ev.Type {
		case TypeSendMessage:
			s.handleSend(ctx, c, ev)
		default:
			slog.Warn("ws unknown event type", "user", c.userID, "type", ev.Type)
		}
	}
}

// handleSend дописывает сообщение в журнал и делает best-effort push
// получателю и отправителю. Ошибка доставки — это "адресат оффлайн",
// сообщение в журнале остается в любом случае.
func (s *Server) handleSend(ctx context.Context, c *wsConn, ev InboundEvent) {
	msg, err := s.chatSvc.Send(ctx, c.userID, ev.RecipientID, ev.Content)
	if err != nil {
		slog.Warn("ws send rejected", "user", c.userID, "recipient", ev.RecipientID, "err", err)
		return
	}
	item := ToMessageItem(msg)

	if err := s.hub.Send(msg.RecipientID, MessageEvent{Type: TypeNewMessage, Message: item}); err != nil {
		slog.Debug("ws deliver failed", "msg", msg.ID, "recipient", msg.RecipientID, "err", err)
	}
	if err := c.Send(MessageEvent{Type: TypeMessageSent, Message: item}); err != nil {
		slog.Debug("ws echo failed", "msg", msg.ID, "sender", msg.SenderID, "err", err)
	}
}

func (s *Server) writeLoop(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(s.pingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_ = c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		}
	}
}

type wsConn struct {
	conn   *websocket.Conn
	userID string
	sendMu chan struct{}
	closed chan struct{}
}

func newWsConn(c *websocket.Conn, userID string) *wsConn {
	return &wsConn{
		conn:   c,
		userID: userID,
		sendMu: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

func (c *wsConn) Send(v any) error {
	c.sendMu <- struct{}{}
	defer func() { <-c.sendMu }()
	c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))

	return c.conn.WriteJSON(v)
}

func (c *wsConn) Close() error {
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}

	return c.conn.Close()
}

func (c *wsConn) UserID() string { return c.userID }
