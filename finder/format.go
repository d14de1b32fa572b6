package finder

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/hafeezhmha/goodminton/types"
)

// FormatMarkdown renders ranked slots as one Telegram Markdown message.
// An empty result set renders an explicit "no courts" sentinel so the
// transport never sends a blank message.
func FormatMarkdown(w *Window, slots []types.VenueSlot) string {
	if len(slots) == 0 {
		return fmt.Sprintf("No courts found for %s.", w.Describe())
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("🏸 *Available Courts (%s, %s - %s)*\n\n",
		w.Date, w.Start.Format("15:04"), w.End.Format("15:04")))

	for i, slot := range slots {
		msg.WriteString(fmt.Sprintf("*%d. %s*\n", i+1, slot.VenueName))
		msg.WriteString(fmt.Sprintf("⏰ %s - %s\n", slot.Start, slot.End))
		msg.WriteString(fmt.Sprintf("🏟️ Courts: %d\n", slot.CourtCount))
		msg.WriteString(fmt.Sprintf("🚇 %s\n", formatStation(slot)))
		msg.WriteString(fmt.Sprintf("🔗 [Book on Playo](%s)\n\n", slot.BookingURL()))
	}

	return msg.String()
}

// FormatTable renders ranked slots as an aligned text table for the CLI
func FormatTable(w *Window, slots []types.VenueSlot) string {
	if len(slots) == 0 {
		return fmt.Sprintf("No courts found for %s.\n", w.Describe())
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Available courts for %s (%d unique slots, sorted by metro proximity)\n\n",
		w.Describe(), len(slots))

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VENUE\tTIME SLOT\tCOURTS\tNEAREST METRO\tDISTANCE\tBOOKING LINK")
	for _, slot := range slots {
		fmt.Fprintf(tw, "%s\t%s - %s\t%d\t%s\t%s\t%s\n",
			slot.VenueName, slot.Start, slot.End, slot.CourtCount,
			stationName(slot), formatDistance(slot.DistanceKm), slot.BookingURL())
	}
	tw.Flush()

	return buf.String()
}

func formatStation(slot types.VenueSlot) string {
	if slot.NearestStation == "" {
		return "nearest metro unknown"
	}
	return fmt.Sprintf("%s (%.2f km away)", slot.NearestStation, slot.DistanceKm)
}

func stationName(slot types.VenueSlot) string {
	if slot.NearestStation == "" {
		return "unknown"
	}
	return slot.NearestStation
}

func formatDistance(km float64) string {
	if math.IsInf(km, 1) {
		return "-"
	}
	return fmt.Sprintf("%.2f km", km)
}
