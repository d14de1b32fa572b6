package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
)

// Server exposes the webhook surface: a health route, the Telegram
// update endpoint, and a convenience route to register the webhook
// with Telegram during deployment.
type Server struct {
	Router    *mux.Router
	Bot       *tgbotapi.BotAPI
	PublicURL string
	dispatch  func(update tgbotapi.Update)
}

// New creates the webhook server. dispatch is injected so tests can
// record updates without a live bot.
func New(bot *tgbotapi.BotAPI, publicURL string, dispatch func(update tgbotapi.Update)) *Server {
	s := &Server{
		Router:    mux.NewRouter(),
		Bot:       bot,
		PublicURL: publicURL,
		dispatch:  dispatch,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Router.HandleFunc("/", s.handleHealth).Methods("GET")
	s.Router.HandleFunc("/api/telegram", s.handleUpdate).Methods("POST")
	s.Router.HandleFunc("/set_webhook", s.handleSetWebhook).Methods("GET")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "Bot is alive!")
}

// handleUpdate always answers 200: Telegram retries on errors, and a
// malformed update must never take the bot down or cause a retry storm
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Printf("⚠️ Ignoring malformed webhook body: %v", err)
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
		return
	}

	s.dispatch(update)

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}

func (s *Server) handleSetWebhook(w http.ResponseWriter, r *http.Request) {
	if s.PublicURL == "" {
		http.Error(w, "PUBLIC_URL not set", http.StatusBadRequest)
		return
	}

	webhookURL := fmt.Sprintf("https://%s/api/telegram", s.PublicURL)
	wh, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := s.Bot.Request(wh); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	fmt.Fprintf(w, "Webhook set to %s", webhookURL)
}

// Start blocks serving HTTP on the given port
func (s *Server) Start(port string) error {
	log.Printf("🌐 Webhook server listening on :%s", port)
	return http.ListenAndServe(":"+port, s.Router)
}
