package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/begamot/pethosting/internal/memstore"
	"github.com/begamot/pethosting/internal/security"
	"github.com/begamot/pethosting/internal/service"
	"github.com/begamot/pethosting/internal/transport/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	srv     *httptest.Server
	chatSvc *service.ChatService
	userSvc *service.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	messageRepo := memstore.NewMessageRepository()
	reviewRepo := memstore.NewReviewRepository()
	userRepo := memstore.NewUserRepository()

	hub := ws.NewHub()
	chatSvc := service.NewChatService(messageRepo, hub)
	reviewSvc := service.NewReviewService(reviewRepo, userRepo)
	userSvc := service.NewUserService(userRepo, &security.BcryptConfig{Cost: 4})

	h := NewHandler(chatSvc, reviewSvc, userSvc)
	srv := httptest.NewServer(NewRouter(h, ws.NewServer(hub, chatSvc)))
	t.Cleanup(srv.Close)

	return &fixture{srv: srv, chatSvc: chatSvc, userSvc: userSvc}
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func (f *fixture) post(t *testing.T, path string, body any) (*http.Response, []byte) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(f.srv.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func TestChatHistory_DefaultAndInvalidLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.chatSvc.Send(ctx, "alice", "bob", "hi")
	require.NoError(t, err)

	resp, body := f.get(t, "/chat/messages/alice/bob")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var items []MessageItem
	require.NoError(t, json.Unmarshal(body, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "hi", items[0].Content)
	assert.Equal(t, "alice", items[0].SenderID)

	for _, limit := range []string{"0", "-1"} {
		resp, _ := f.get(t, "/chat/messages/alice/bob?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "limit=%s", limit)
	}
}

func TestMarkRead_OkAndNotFound(t *testing.T) {
	f := newFixture(t)

	m, err := f.chatSvc.Send(context.Background(), "alice", "bob", "hi")
	require.NoError(t, err)

	resp, body := f.post(t, "/chat/messages/"+m.ID+"/read", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	// повторный вызов — такой же ответ
	resp, _ = f.post(t, "/chat/messages/"+m.ID+"/read", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = f.post(t, "/chat/messages/missing/read", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestContacts_Endpoint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.chatSvc.Send(ctx, "alice", "bob", "x")
	require.NoError(t, err)
	_, err = f.chatSvc.Send(ctx, "carol", "alice", "y")
	require.NoError(t, err)

	resp, body := f.get(t, "/chat/contacts/alice")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got ContactsResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, []string{"bob", "carol"}, got.Contacts)
	assert.Empty(t, got.OnlineUsers, "nobody holds a live connection")
}

func TestReviews_SubmitRecomputesRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.userSvc.Create(ctx, "sitter", "s@x", "secret1", nil)
	require.NoError(t, err)

	resp, body := f.post(t, "/reviews/", CreateReviewRequest{ProfileID: u.ID, FromUserID: 3, Score: 5})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var created ReviewItem
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, 5.0, created.Score)

	// рейтинг пересчитан синхронно
	resp, body = f.get(t, "/users/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user UserItem
	require.NoError(t, json.Unmarshal(body, &user))
	assert.Equal(t, 5.0, user.Rating)

	resp, _ = f.post(t, "/reviews/", CreateReviewRequest{ProfileID: 999, FromUserID: 3, Score: 5})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = f.get(t, "/reviews/?profile_id=1")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var reviews []ReviewItem
	require.NoError(t, json.Unmarshal(body, &reviews))
	assert.Len(t, reviews, 1)
}

func TestUsers_CreateHidesPasswordHash(t *testing.T) {
	f := newFixture(t)

	resp, body := f.post(t, "/users/", CreateUserRequest{Name: "ann", Contact: "a@x", Password: "secret1"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotContains(t, string(body), "password")

	var u UserItem
	require.NoError(t, json.Unmarshal(body, &u))
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, 0.0, u.Rating)

	resp, _ = f.post(t, "/users/", CreateUserRequest{Name: "ben", Contact: "b@x", Password: "123"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "password too short")
}

func TestHealthAndPing(t *testing.T) {
	f := newFixture(t)

	resp, body := f.get(t, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, body = f.get(t, "/ping")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"pong":true}`, string(body))
}
