package http

import (
	"net/http"
	"time"

	httpmw "github.com/begamot/pethosting/internal/transport/http/middleware"
	"github.com/begamot/pethosting/internal/transport/ws"

	"github.com/go-chi/chi/v5"
	middlewareChi "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *Handler, wsServer *ws.Server) http.Handler {
	r := chi.NewRouter()
	r.Use(middlewareChi.RequestID)
	r.Use(middlewareChi.RealIP)
	r.Use(middlewareChi.Recoverer)

	// demo: CORS нараспашку, как и у исходного фронта
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// WS endpoint — вне таймаут-группы: соединение долгоживущее
	r.Get("/chat/ws/{user_id}", wsServer.HandleWS)

	r.Group(func(pr chi.Router) {
		pr.Use(httpmw.RequestLogger)
		pr.Use(middlewareChi.Timeout(30 * time.Second))

		pr.Route("/chat", func(cr chi.Router) {
			cr.Get("/messages/{user_id}/{contact_id}", h.GetChatHistory)
			cr.Post("/messages/{message_id}/read", h.MarkRead)
			cr.Get("/contacts/{user_id}", h.GetContacts)
		})

		pr.Route("/reviews", func(rr chi.Router) {
			rr.Post("/", h.CreateReview)
			rr.Get("/", h.ListReviews)
		})

		pr.Route("/users", func(ur chi.Router) {
			ur.Post("/", h.CreateUser)
			ur.Get("/", h.ListUsers)
			ur.Get("/{id}", h.GetUser)
		})

		pr.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]bool{"pong": true})
		})
	})

	// health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
	})

	return r
}
