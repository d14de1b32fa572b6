package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"github.com/hafeezhmha/goodminton/config"
	"github.com/hafeezhmha/goodminton/finder"
	"github.com/hafeezhmha/goodminton/geo"
	"github.com/hafeezhmha/goodminton/playo"
	"github.com/hafeezhmha/goodminton/types"
)

// One-shot CLI report: search for courts in a time window today (or on
// a given date) and print a table sorted by metro proximity, optionally
// relaying the results to a Telegram chat.
func main() {
	_ = godotenv.Load()

	lat := flag.Float64("lat", config.DEFAULT_LAT, "latitude for search")
	lng := flag.Float64("lng", config.DEFAULT_LNG, "longitude for search")
	radius := flag.Float64("radius", 50, "city radius in km")
	sport := flag.String("sport", config.DEFAULT_SPORT_ID, "sport id (SP5 = badminton)")
	startTime := flag.String("start-time", "19:00", "desired start time (HH:MM, 24-hour)")
	endTime := flag.String("end-time", "20:00", "desired end time (HH:MM, 24-hour)")
	date := flag.String("date", "", "search date (YYYY-MM-DD, default today)")
	timezone := flag.String("timezone", config.DEFAULT_TIMEZONE, "your timezone")
	stationsFile := flag.String("stations", config.STATIONS_FILE, "metro stations reference file")
	verbose := flag.Bool("verbose", false, "show search diagnostics")
	includeFull := flag.Bool("include-full", false, "include games that are full")
	telegram := flag.Bool("telegram", false, "send results to Telegram (needs TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID)")
	flag.Parse()

	loc, err := time.LoadLocation(*timezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: unknown timezone %q: %v\n", *timezone, err)
		os.Exit(1)
	}

	if *date == "" {
		*date = time.Now().In(loc).Format("2006-01-02")
	}

	w, err := finder.ResolveWindow(*date, *startTime, *endTime, loc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid date/time: %v (use YYYY-MM-DD and HH:MM)\n", err)
		os.Exit(1)
	}

	stations, err := geo.LoadStations(*stationsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (metro distances will be unknown)\n", err)
	}

	if *verbose {
		log.Printf("Search parameters: lat=%f lng=%f radius=%.0fkm sport=%s", *lat, *lng, *radius, *sport)
		log.Printf("Window: %s, date token %s", w.Describe(), finder.DateToken(w.Start))
		log.Printf("Stations loaded: %d", stations.Len())
	} else {
		log.SetOutput(io.Discard) // keep the table clean
	}

	center := types.Coordinate{Lat: *lat, Lng: *lng}
	courtFinder := finder.New(playo.New(), stations)
	courtFinder.IncludeFull = *includeFull

	slots, err := courtFinder.FindCourts(center, *radius, *sport, w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to reach the Playo API: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(finder.FormatTable(w, slots))

	if *telegram {
		if err := relayToTelegram(w, slots); err != nil {
			fmt.Fprintf(os.Stderr, "Error sending to Telegram: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Results sent to Telegram.")
	}
}

func relayToTelegram(w *finder.Window, slots []types.VenueSlot) error {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	chatIDStr := os.Getenv("TELEGRAM_CHAT_ID")
	if token == "" || chatIDStr == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID must be set")
	}

	var chatID int64
	if _, err := fmt.Sscanf(chatIDStr, "%d", &chatID); err != nil {
		return fmt.Errorf("bad TELEGRAM_CHAT_ID %q: %w", chatIDStr, err)
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, finder.FormatMarkdown(w, slots))
	msg.ParseMode = "Markdown"
	msg.DisableWebPagePreview = true
	_, err = bot.Send(msg)
	return err
}
