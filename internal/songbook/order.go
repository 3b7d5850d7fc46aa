package songbook

import (
	"sort"
	"strconv"
	"strings"

	"github.com/acortes/atril/internal/models"
	"github.com/charmbracelet/log"
)

// parseOrder attempts a numeric parse of a raw order value, accepting both
// integer ("3") and float ("3.0") forms. Floats truncate toward zero.
// Returns false for empty, non-numeric, or non-positive values.
func parseOrder(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(raw); err == nil {
		if n <= 0 {
			return 0, false
		}
		return n, true
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	n := int(f)
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// assignOrders resolves the order value of every parsed row and returns the
// batch stably sorted by order (file order breaks ties).
//
// Rows without a usable source value receive maxSeen+1, where maxSeen is the
// highest order observed so far in file order. The counter threads through
// the whole batch so consecutive fallback rows still get strictly increasing
// positions.
func assignOrders(rows []parsedRow, logger *log.Logger) []*models.Song {
	maxSeen := 0
	songs := make([]*models.Song, 0, len(rows))

	for _, row := range rows {
		if n, ok := parseOrder(row.rawOrder); ok {
			row.song.Order = n
			if n > maxSeen {
				maxSeen = n
			}
		} else {
			maxSeen++
			row.song.Order = maxSeen
			if row.rawOrder != "" {
				logger.Warn("invalid order value, assigning sequential position",
					"song", row.song.ID, "raw", row.rawOrder, "order", maxSeen)
			}
		}
		songs = append(songs, row.song)
	}

	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].Order < songs[j].Order
	})

	return songs
}
