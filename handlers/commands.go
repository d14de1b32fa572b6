package handlers

import (
	"log"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/hafeezhmha/goodminton/config"
	"github.com/hafeezhmha/goodminton/finder"
	"github.com/hafeezhmha/goodminton/storage"
	"github.com/hafeezhmha/goodminton/types"
)

// TimeParser interface so the Groq client stays swappable
type TimeParser interface {
	Parse(query string, today time.Time) (*types.TimeQuery, error)
}

type Handler struct {
	Bot      *tgbotapi.BotAPI
	Store    *storage.Storage
	Finder   *finder.Finder
	Parser   TimeParser
	Location *time.Location
}

func New(bot *tgbotapi.BotAPI, store *storage.Storage, f *finder.Finder, parser TimeParser, loc *time.Location) *Handler {
	return &Handler{
		Bot:      bot,
		Store:    store,
		Finder:   f,
		Parser:   parser,
		Location: loc,
	}
}

func (h *Handler) HandleStart(msg *tgbotapi.Message) {
	text := "👋 Hi! I find bookable badminton courts on Playo, sorted by metro proximity.\n\n" +
		"Available commands:\n" +
		"/find <query> — search for courts (e.g. `/find courts from 8pm to 10pm tomorrow`)\n" +
		"/last — show your last search results\n\n" +
		"📍 Share your location with me and I'll search around it instead of the default area."
	h.reply(msg.Chat.ID, text)
}

func (h *Handler) HandleFind(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	query := strings.TrimSpace(msg.CommandArguments())
	if query == "" {
		h.reply(chatID, "Please provide a query. For example:\n`/find courts from 8pm to 10pm tomorrow`")
		return
	}

	tq, err := h.Parser.Parse(query, time.Now().In(h.Location))
	if err != nil {
		log.Printf("⚠️ Time parse failed for %q: %v", query, err)
		h.reply(chatID, "Sorry, I couldn't understand the date and time from your query. Please be more specific.")
		return
	}

	w, err := finder.ResolveWindow(tq.Date, tq.StartTime, tq.EndTime, h.Location)
	if err != nil {
		log.Printf("⚠️ Bad window from parser (%+v): %v", tq, err)
		h.reply(chatID, "Invalid time/date format received from parser.")
		return
	}

	center := h.searchCenter(chatID)

	slots, err := h.Finder.FindCourts(center, config.DEFAULT_RADIUS_KM, config.DEFAULT_SPORT_ID, w)
	if err != nil {
		log.Printf("⚠️ Search failed for chatID %d: %v", chatID, err)
		h.reply(chatID, "Sorry, there was an error contacting the Playo API.")
		return
	}

	text := finder.FormatMarkdown(w, slots)
	if err := h.Store.SaveLastResults(chatID, text); err != nil {
		log.Printf("⚠️ Failed to cache results for chatID %d: %v", chatID, err)
	}

	h.reply(chatID, text)
}

func (h *Handler) HandleLast(msg *tgbotapi.Message) {
	text, err := h.Store.GetLastResults(msg.Chat.ID)
	if err != nil {
		h.reply(msg.Chat.ID, "⚠️ Could not load your last results.")
		return
	}
	if text == "" {
		h.reply(msg.Chat.ID, "No recent search results. Use /find to search for courts.")
		return
	}
	h.reply(msg.Chat.ID, text)
}

// HandleLocation stores a shared location as the user's search center
func (h *Handler) HandleLocation(msg *tgbotapi.Message) {
	loc := types.Coordinate{Lat: msg.Location.Latitude, Lng: msg.Location.Longitude}
	if err := h.Store.SaveLocation(msg.Chat.ID, loc); err != nil {
		log.Printf("⚠️ Failed to save location for chatID %d: %v", msg.Chat.ID, err)
		h.reply(msg.Chat.ID, "⚠️ Could not save your location. Try again later.")
		return
	}
	h.reply(msg.Chat.ID, "📍 Got it! Future searches will be centered on this location.")
}

func (h *Handler) HandleUnknown(msg *tgbotapi.Message) {
	h.reply(msg.Chat.ID, "Sorry, I didn't understand that. Use /start for help.")
}

// searchCenter prefers the user's stored location, falling back to the
// configured default area
func (h *Handler) searchCenter(chatID int64) types.Coordinate {
	stored, err := h.Store.GetLocation(chatID)
	if err != nil {
		log.Printf("⚠️ Failed to load location for chatID %d: %v", chatID, err)
	}
	if stored != nil {
		return *stored
	}
	return types.Coordinate{Lat: config.DEFAULT_LAT, Lng: config.DEFAULT_LNG}
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.DisableWebPagePreview = true
	if _, err := h.Bot.Send(msg); err != nil {
		log.Printf("⚠️ Failed to send message to chatID %d: %v", chatID, err)
	}
}
