package ui

import (
	"fmt"

	"github.com/acortes/atril/internal/models"
	"github.com/charmbracelet/bubbles/list"
)

var _ list.Item = songItem{}

// songItem wraps [models.DropdownEntry] to implement [list.Item].
type songItem struct {
	entry models.DropdownEntry
}

func (i songItem) FilterValue() string { return i.entry.Label }
func (i songItem) Title() string       { return fmt.Sprintf("%d. %s", i.entry.Order, i.entry.Title) }
func (i songItem) Description() string { return i.entry.Artist }
