package main

import (
	"log"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/hafeezhmha/goodminton/config"
	"github.com/hafeezhmha/goodminton/finder"
	"github.com/hafeezhmha/goodminton/geo"
	"github.com/hafeezhmha/goodminton/handlers"
	"github.com/hafeezhmha/goodminton/parser"
	"github.com/hafeezhmha/goodminton/playo"
	"github.com/hafeezhmha/goodminton/server"
	"github.com/hafeezhmha/goodminton/storage"
)

func initStorage() *storage.Storage {
	addr := os.Getenv("REDIS_ADDR")
	pass := os.Getenv("REDIS_PASSWORD")
	db := 0 // goodminton
	store := storage.New(addr, pass, db)

	if err := store.Ping(); err != nil {
		log.Fatalf("❌ Redis connection failed: %v", err)
	}
	return store
}

func main() {
	_ = godotenv.Load()

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = config.DEFAULT_TIMEZONE
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("⚠️ Failed to load timezone %s: %v (using UTC)", tz, err)
		loc = time.UTC
	} else {
		log.Printf("🌍 Timezone set to %s (current time: %s)", tz, time.Now().In(loc).Format("2006-01-02 15:04:05 MST"))
	}

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("❌ TELEGRAM_BOT_TOKEN not set")
	}

	groqKey := os.Getenv("GROQ_API_KEY")
	if groqKey == "" {
		log.Fatal("❌ GROQ_API_KEY not set")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("🤖 Authorized on account %s", bot.Self.UserName)

	store := initStorage()

	// Metro reference data is optional: without it results just lose
	// the nearest-station column
	log.Println("🚇 Loading metro stations...")
	stations, err := geo.LoadStations(config.STATIONS_FILE)
	if err != nil {
		log.Printf("⚠️ Failed to load metro stations: %v (distances will be unknown)", err)
	} else {
		log.Printf("🚇 Loaded %d metro stations", stations.Len())
	}

	courtFinder := finder.New(playo.New(), stations)
	timeParser := parser.New(groqKey)
	handler := handlers.New(bot, store, courtFinder, timeParser, loc)

	if os.Getenv("BOT_MODE") == "webhook" {
		runWebhook(bot, handler)
		return
	}
	runPolling(bot, handler)
}

func runPolling(bot *tgbotapi.BotAPI, handler *handlers.Handler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	log.Println("✅ Bot is running (long polling)...")

	for update := range updates {
		if update.Message != nil {
			handleMessage(handler, update.Message)
		}
	}
}

func runWebhook(bot *tgbotapi.BotAPI, handler *handlers.Handler) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := server.New(bot, os.Getenv("PUBLIC_URL"), func(update tgbotapi.Update) {
		if update.Message != nil {
			handleMessage(handler, update.Message)
		}
	})

	log.Println("✅ Bot is running (webhook mode)...")
	if err := srv.Start(port); err != nil {
		log.Fatal(err)
	}
}

func handleMessage(h *handlers.Handler, msg *tgbotapi.Message) {
	if msg.Location != nil {
		h.HandleLocation(msg)
		return
	}

	switch msg.Command() {
	case "start":
		h.HandleStart(msg)

	case "find":
		h.HandleFind(msg)

	case "last":
		h.HandleLast(msg)

	default:
		h.HandleUnknown(msg)
	}
}
