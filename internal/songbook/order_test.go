package songbook

import (
	"io"
	"testing"

	"github.com/acortes/atril/internal/shared"
)

func TestParseOrder(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want int
		ok   bool
	}{
		{"Integer", "3", 3, true},
		{"Float", "3.0", 3, true},
		{"FloatTruncates", "2.7", 2, true},
		{"Whitespace", " 4 ", 4, true},
		{"Empty", "", 0, false},
		{"Zero", "0", 0, false},
		{"Negative", "-2", 0, false},
		{"NegativeFloat", "-1.0", 0, false},
		{"NonNumeric", "primera", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseOrder(tc.raw)
			if ok != tc.ok || got != tc.want {
				t.Errorf("parseOrder(%q) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestAssignOrders(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	rows := func(raws ...string) []parsedRow {
		out := make([]parsedRow, 0, len(raws))
		for i, raw := range raws {
			out = append(out, parsedRow{
				song:     songFixture("Artist", string(rune('A'+i))),
				rawOrder: raw,
			})
		}
		return out
	}

	t.Run("ExplicitOrdersSort", func(t *testing.T) {
		songs := assignOrders(rows("2", "1", "3"), logger)
		if songs[0].Order != 1 || songs[1].Order != 2 || songs[2].Order != 3 {
			t.Errorf("expected orders 1,2,3, got %d,%d,%d", songs[0].Order, songs[1].Order, songs[2].Order)
		}
	})

	t.Run("CounterThreadsThroughBatch", func(t *testing.T) {
		// File order: missing, explicit 5, missing, invalid.
		songs := assignOrders(rows("", "5", "", "abc"), logger)

		byTitle := map[string]int{}
		for _, s := range songs {
			byTitle[s.Title] = s.Order
		}

		if byTitle["A"] != 1 {
			t.Errorf("first fallback row should get order 1, got %d", byTitle["A"])
		}
		if byTitle["B"] != 5 {
			t.Errorf("explicit order should survive, got %d", byTitle["B"])
		}
		if byTitle["C"] != 6 {
			t.Errorf("fallback after explicit 5 should get 6, got %d", byTitle["C"])
		}
		if byTitle["D"] != 7 {
			t.Errorf("invalid order should fall back to 7, got %d", byTitle["D"])
		}
	})

	t.Run("NonPositiveFallsBack", func(t *testing.T) {
		songs := assignOrders(rows("-1", "0"), logger)
		if songs[0].Order != 1 || songs[1].Order != 2 {
			t.Errorf("expected fallback orders 1,2, got %d,%d", songs[0].Order, songs[1].Order)
		}
	})

	t.Run("StableOnTies", func(t *testing.T) {
		songs := assignOrders(rows("1", "1"), logger)
		if songs[0].Title != "A" || songs[1].Title != "B" {
			t.Errorf("tie should preserve file order, got %s then %s", songs[0].Title, songs[1].Title)
		}
	})

	t.Run("AllPositiveAfterAssignment", func(t *testing.T) {
		songs := assignOrders(rows("", "-3", "10", "x"), logger)
		for _, s := range songs {
			if s.Order <= 0 {
				t.Errorf("song %s has non-positive order %d", s.Title, s.Order)
			}
		}
	})
}

func TestLinkSongs(t *testing.T) {
	t.Run("LinksAreMutuallyConsistent", func(t *testing.T) {
		songs := assignOrders([]parsedRow{
			{song: songFixture("A", "X"), rawOrder: "2"},
			{song: songFixture("A", "Y"), rawOrder: "1"},
			{song: songFixture("B", "Z"), rawOrder: ""},
		}, shared.NewLogger(io.Discard))
		linkSongs(songs)

		if songs[0].PreviousID != "" {
			t.Errorf("first song should have no previous id, got %q", songs[0].PreviousID)
		}
		if songs[len(songs)-1].NextID != "" {
			t.Errorf("last song should have no next id, got %q", songs[len(songs)-1].NextID)
		}

		for i := 0; i < len(songs)-1; i++ {
			if songs[i].NextID != songs[i+1].ID {
				t.Errorf("song %d next_id = %q, want %q", i, songs[i].NextID, songs[i+1].ID)
			}
			if songs[i+1].PreviousID != songs[i].ID {
				t.Errorf("song %d previous_id = %q, want %q", i+1, songs[i+1].PreviousID, songs[i].ID)
			}
		}
	})

	t.Run("NextAfter", func(t *testing.T) {
		songs := assignOrders([]parsedRow{
			{song: songFixture("A", "X"), rawOrder: "1"},
			{song: songFixture("A", "Y"), rawOrder: "2"},
		}, shared.NewLogger(io.Discard))
		linkSongs(songs)

		next, ok := nextAfter(songs, songs[0].ID)
		if !ok || next.ID != songs[1].ID {
			t.Errorf("expected next of first to be second, got %v (%v)", next, ok)
		}

		if _, ok := nextAfter(songs, songs[1].ID); ok {
			t.Error("last song should have no next")
		}

		if _, ok := nextAfter(songs, "missing-id"); ok {
			t.Error("absent id should report not found")
		}
	})
}
