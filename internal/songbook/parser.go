package songbook

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/acortes/atril/internal/models"
	"github.com/acortes/atril/internal/shared"
	"github.com/charmbracelet/log"
)

// Canonical column names of the source file schema.
const (
	colArtist       = "Artist"
	colTitle        = "Title"
	colLeadGuitar   = "Lead Guitar"
	colRhythmGuitar = "Rhythm Guitar"
	colBass         = "Bass"
	colDrums        = "Drums"
	colVocals       = "Vocals"
	colKeyboards    = "Keyboards"
	colDuration     = "Duration"
	colOrder        = "Order"
)

// headerAliases maps historical column names onto the canonical schema.
// "Percussion" is the older drums column; "Rythm Guitar" is a misspelling
// that shipped in one variant of the source data.
var headerAliases = map[string]string{
	"percussion":   colDrums,
	"rythm guitar": colRhythmGuitar,
}

// requiredColumns must all be present in the header for a load to proceed.
var requiredColumns = []string{
	colArtist, colTitle, colLeadGuitar, colRhythmGuitar,
	colBass, colDrums, colVocals, colKeyboards, colDuration,
}

// allColumns is the canonical schema including the optional order column.
var allColumns = append(append([]string{}, requiredColumns...), colOrder)

var slotColumns = map[string]models.Slot{
	colLeadGuitar:   models.SlotLeadGuitar,
	colRhythmGuitar: models.SlotRhythmGuitar,
	colBass:         models.SlotBass,
	colDrums:        models.SlotDrums,
	colVocals:       models.SlotVocals,
	colKeyboards:    models.SlotKeyboards,
}

// DefaultDuration is used when the duration column is empty for a row.
const DefaultDuration = "0:00"

// parsedRow pairs a constructed song with the raw order value from the
// source, which the order assigner resolves in a later pass.
type parsedRow struct {
	song     *models.Song
	rawOrder string
}

// DeriveID derives the stable identifier for a song from its artist and title:
// lowercase, runs of non-alphanumeric characters collapsed to a single hyphen,
// leading and trailing hyphens stripped.
//
// The derivation is pure; collisions are a data-quality signal the consistency
// report relies on, so the same inputs must always produce the same id.
func DeriveID(artist, title string) string {
	return slugify(artist + "-" + title)
}

// slugify collapses s into lowercase ascii alphanumerics and single hyphens.
func slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return b.String()
}

// canonicalColumn resolves a header cell to its canonical column name, or ""
// when the column is not part of the schema.
func canonicalColumn(name string) string {
	trimmed := strings.TrimSpace(name)

	if canonical, ok := headerAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}

	for _, col := range allColumns {
		if strings.EqualFold(trimmed, col) {
			return col
		}
	}

	return ""
}

// parseSource reads the CSV source and returns one parsedRow per surviving
// data row, in file order.
//
// The header is validated up front: every required column must be present
// (under its canonical name or a historical alias) or the whole load fails
// with an error naming the missing columns. Individual malformed rows are
// skipped with a warning and never fail the batch; zero surviving rows does.
func parseSource(r io.Reader, logger *log.Logger) ([]parsedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: empty file", shared.ErrSourceInvalid)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable header: %v", shared.ErrSourceInvalid, err)
	}

	columns := map[string]int{}
	for i, cell := range header {
		if canonical := canonicalColumn(cell); canonical != "" {
			if _, seen := columns[canonical]; !seen {
				columns[canonical] = i
			}
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns %v", shared.ErrSourceInvalid, missing)
	}

	var rows []parsedRow
	line := 1
	for {
		record, err := reader.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed row", "line", line, "error", err)
			continue
		}

		row, ok := parseRow(record, columns, logger, line)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no valid song rows", shared.ErrSourceInvalid)
	}

	return rows, nil
}

// parseRow constructs one song from a data record. Rows missing artist or
// title, or too short to cover a required column, are rejected.
func parseRow(record []string, columns map[string]int, logger *log.Logger, line int) (parsedRow, bool) {
	field := func(col string) (string, bool) {
		idx, ok := columns[col]
		if !ok || idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	for _, col := range requiredColumns {
		if _, ok := field(col); !ok {
			logger.Warn("skipping short row", "line", line, "missing", col)
			return parsedRow{}, false
		}
	}

	artist, _ := field(colArtist)
	title, _ := field(colTitle)
	if artist == "" || title == "" {
		logger.Warn("skipping row with empty artist or title", "line", line)
		return parsedRow{}, false
	}

	duration, _ := field(colDuration)
	if duration == "" {
		duration = DefaultDuration
	}

	assignments := map[models.Slot]string{}
	for col, slot := range slotColumns {
		if name, ok := field(col); ok && name != "" {
			assignments[slot] = name
		}
	}

	rawOrder, _ := field(colOrder)

	song := &models.Song{
		ID:          DeriveID(artist, title),
		Artist:      artist,
		Title:       title,
		Duration:    duration,
		Assignments: assignments,
	}

	return parsedRow{song: song, rawOrder: rawOrder}, true
}
