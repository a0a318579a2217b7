package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/begamot/pethosting/internal/domain"
	"github.com/begamot/pethosting/internal/security"
	"github.com/begamot/pethosting/internal/service"

	"github.com/go-chi/chi/v5"
)

const defaultHistoryLimit = 4000

type Handler struct {
	chatSvc   *service.ChatService
	reviewSvc *service.ReviewService
	userSvc   *service.UserService

	historyLimit int
}

func NewHandler(chat *service.ChatService, review *service.ReviewService, user *service.UserService) *Handler {
	return &Handler{
		chatSvc:      chat,
		reviewSvc:    review,
		userSvc:      user,
		historyLimit: defaultHistoryLimit,
	}
}

func (h *Handler) SetHistoryLimit(n int) {
	if n > 0 {
		h.historyLimit = n
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// GET /chat/messages/{user_id}/{contact_id}?limit=
func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	contactID := chi.URLParam(r, "contact_id")

	limit := h.historyLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	msgs, err := h.chatSvc.History(r.Context(), userID, contactID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLimit) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be positive"})
			return
		}
		slog.Error("handler.GetChatHistory:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	items := make([]MessageItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, toMessageItem(m))
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /chat/contacts/{user_id}
func (h *Handler) GetContacts(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")

	contacts, online, err := h.chatSvc.Contacts(r.Context(), userID)
	if err != nil {
		slog.Error("handler.GetContacts:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ContactsResponse{Contacts: contacts, OnlineUsers: online})
}

// POST /chat/messages/{message_id}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	messageID := chi.URLParam(r, "message_id")

	if err := h.chatSvc.MarkRead(r.Context(), messageID); err != nil {
		if errors.Is(err, domain.ErrMessageNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "message not found"})
			return
		}
		slog.Error("handler.MarkRead:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// POST /reviews
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("handler.CreateReview.Decode:", slog.Any("err", err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	rv, err := h.reviewSvc.Submit(r.Context(), req.ProfileID, req.FromUserID, req.Score, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("handler.CreateReview:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, ReviewItem{
		ProfileID:  rv.ProfileID,
		FromUserID: rv.FromUserID,
		Score:      rv.Score,
		Text:       rv.Text,
		PostDate:   rv.PostDate,
	})
}

// GET /reviews?profile_id=
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	profileID, err := strconv.ParseInt(r.URL.Query().Get("profile_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid profile_id"})
		return
	}

	reviews, err := h.reviewSvc.List(r.Context(), profileID)
	if err != nil {
		slog.Error("handler.ListReviews:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	items := make([]ReviewItem, 0, len(reviews))
	for _, rv := range reviews {
		items = append(items, ReviewItem{
			ProfileID:  rv.ProfileID,
			FromUserID: rv.FromUserID,
			Score:      rv.Score,
			Text:       rv.Text,
			PostDate:   rv.PostDate,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

// POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("handler.CreateUser.Decode:", slog.Any("err", err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}

	u, err := h.userSvc.Create(r.Context(), req.Name, req.Contact, req.Password, req.Avatar)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "password too short"})
			return
		}
		slog.Error("handler.CreateUser:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, toUserItem(u))
}

// GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userSvc.List(r.Context())
	if err != nil {
		slog.Error("handler.ListUsers:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	items := make([]UserItem, 0, len(users))
	for _, u := range users {
		items = append(items, toUserItem(u))
	}
	writeJSON(w, http.StatusOK, items)
}

// GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
		return
	}

	u, err := h.userSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
			return
		}
		slog.Error("handler.GetUser:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, toUserItem(u))
}

func toMessageItem(m domain.Message) MessageItem {
	return MessageItem{
		MessageID:   m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		Timestamp:   m.Timestamp,
		IsRead:      m.Read,
	}
}

func toUserItem(u domain.User) UserItem {
	return UserItem{
		ID:      u.ID,
		Name:    u.Name,
		Contact: u.Contact,
		Avatar:  u.Avatar,
		Rating:  u.Rating,
	}
}
