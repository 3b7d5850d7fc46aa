package songbook

import (
	"fmt"
	"sort"
	"strings"

	"github.com/acortes/atril/internal/models"
)

// Report computes the advisory consistency report over the current snapshot:
// duplicate ids, duplicate orders, empty required fields, non-positive
// orders, and suspiciously similar musician names.
//
// The report is read-only and never blocks a load or mutates the snapshot.
func (l *Library) Report() (*models.Report, error) {
	snap, err := l.Snapshot()
	if err != nil {
		return nil, err
	}
	return buildReport(snap), nil
}

func buildReport(snap *Snapshot) *models.Report {
	report := &models.Report{Valid: true, Issues: []string{}}

	idCounts := map[string]int{}
	orderCounts := map[int]int{}
	for _, song := range snap.Songs {
		idCounts[song.ID]++
		orderCounts[song.Order]++

		if song.Artist == "" || song.Title == "" {
			report.Valid = false
			report.Issues = append(report.Issues,
				fmt.Sprintf("record %q has an empty required field", song.ID))
		}
		if song.Order <= 0 {
			report.Valid = false
			report.Issues = append(report.Issues,
				fmt.Sprintf("record %q has non-positive order %d", song.ID, song.Order))
		}
	}

	for id, n := range idCounts {
		if n > 1 {
			report.DuplicateIDs = append(report.DuplicateIDs, id)
		}
	}
	sort.Strings(report.DuplicateIDs)
	for _, id := range report.DuplicateIDs {
		report.Valid = false
		report.Issues = append(report.Issues, fmt.Sprintf("duplicate id %q", id))
	}

	for order, n := range orderCounts {
		if n > 1 {
			report.DuplicateOrders = append(report.DuplicateOrders, order)
		}
	}
	sort.Ints(report.DuplicateOrders)
	for _, order := range report.DuplicateOrders {
		report.Valid = false
		report.Issues = append(report.Issues, fmt.Sprintf("duplicate order %d", order))
	}

	// Name similarity is a heuristic, so it lands in the issue list without
	// flipping Valid.
	for _, pair := range suspiciousNames(snap.Songs) {
		report.Issues = append(report.Issues,
			fmt.Sprintf("musician names %q and %q may refer to the same person", pair[0], pair[1]))
	}

	return report
}

// suspiciousNames returns pairs of distinct musician names likely to be
// near-duplicates of each other, in first-seen order.
func suspiciousNames(songs []*models.Song) [][2]string {
	var names []string
	seen := map[string]bool{}
	for _, song := range songs {
		for _, slot := range models.Slots() {
			if name, ok := song.Musician(slot); ok {
				key := strings.ToLower(name)
				if !seen[key] {
					seen[key] = true
					names = append(names, name)
				}
			}
		}
	}

	var pairs [][2]string
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if similarNames(names[i], names[j]) {
				pairs = append(pairs, [2]string{names[i], names[j]})
			}
		}
	}
	return pairs
}

// similarNames reports whether two distinct names look like variants of the
// same musician: one is a substring of the other (both longer than 3
// characters), or they share most characters while differing in length by at
// most 1.
func similarNames(a, b string) bool {
	x := strings.ToLower(strings.TrimSpace(a))
	y := strings.ToLower(strings.TrimSpace(b))
	if x == y || x == "" || y == "" {
		return false
	}

	if len(x) > 3 && len(y) > 3 && (strings.Contains(x, y) || strings.Contains(y, x)) {
		return true
	}

	diff := len(x) - len(y)
	if diff < 0 {
		diff = -diff
	}
	return diff <= 1 && sharedCharRatio(x, y) >= 0.8
}

// sharedCharRatio computes the multiset character overlap between two
// strings relative to the longer one.
func sharedCharRatio(x, y string) float64 {
	longer := len(x)
	if len(y) > longer {
		longer = len(y)
	}
	if longer == 0 {
		return 0
	}

	counts := map[rune]int{}
	for _, r := range x {
		counts[r]++
	}

	common := 0
	for _, r := range y {
		if counts[r] > 0 {
			counts[r]--
			common++
		}
	}

	return float64(common) / float64(longer)
}
