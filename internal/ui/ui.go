// package ui implements the interactive terminal browser over the song dropdown
package ui

import (
	"fmt"
	"strings"

	"github.com/acortes/atril/internal/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Songbook is the slice of the library the TUI consumes.
type Songbook interface {
	Dropdown() ([]models.DropdownEntry, error)
	Song(id string) (*models.SongDetail, error)
}

// ViewState represents the current view in the TUI.
type ViewState int

const (
	SongListView ViewState = iota
	SongDetailView
)

// keyMap defines the key bindings for the TUI.
type keyMap struct {
	enter key.Binding
	back  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "detail"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type songsLoadedMsg struct {
	entries []models.DropdownEntry
	err     error
}

type detailLoadedMsg struct {
	detail *models.SongDetail
	err    error
}

// Model represents the TUI application state.
type Model struct {
	songbook Songbook
	view     ViewState
	width    int
	height   int
	songList list.Model
	detail   *models.SongDetail
	err      error
	keys     keyMap
}

// NewModel creates a new TUI model over the given songbook.
func NewModel(songbook Songbook) *Model {
	delegate := list.NewDefaultDelegate()
	songList := list.New([]list.Item{}, delegate, 0, 0)
	songList.Title = "Songs"
	songList.SetShowStatusBar(false)

	return &Model{
		songbook: songbook,
		view:     SongListView,
		songList: songList,
		keys:     newKeyMap(),
	}
}

// Init loads the dropdown projection.
func (m *Model) Init() tea.Cmd {
	return m.fetchSongs()
}

func (m *Model) fetchSongs() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.songbook.Dropdown()
		return songsLoadedMsg{entries: entries, err: err}
	}
}

func (m *Model) fetchDetail(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.songbook.Song(id)
		return detailLoadedMsg{detail: detail, err: err}
	}
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.songList.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.enter) && m.view == SongListView:
			if item, ok := m.songList.SelectedItem().(songItem); ok {
				return m, m.fetchDetail(item.entry.ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.back) && m.view == SongDetailView:
			m.view = SongListView
			m.detail = nil
			return m, nil
		}

	case songsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.entries))
		for _, entry := range msg.entries {
			items = append(items, songItem{entry: entry})
		}
		m.songList.SetItems(items)
		return m, nil

	case detailLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.detail = msg.detail
		m.view = SongDetailView
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

// View renders the current view.
func (m *Model) View() string {
	if m.err != nil {
		return errStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n\npress q to quit"
	}

	if m.view == SongDetailView && m.detail != nil {
		return m.detailView()
	}

	return m.songList.View()
}

func (m *Model) detailView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("%s - %s", m.detail.Artist, m.detail.Title)))
	b.WriteString(fmt.Sprintf("\n\nduration %s  ·  position %d\n\n", m.detail.Duration, m.detail.Order))

	for _, slot := range models.Slots() {
		name := "—"
		if assigned := m.detail.Assignments[slot]; assigned != nil {
			name = *assigned
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", slotStyle.Render(slotLabel(slot)), name))
	}

	if m.detail.Next != nil {
		b.WriteString(fmt.Sprintf("\nnext: %s\n", m.detail.Next.Label))
	}
	b.WriteString("\nesc back · q quit")

	return b.String()
}

func slotLabel(slot models.Slot) string {
	switch slot {
	case models.SlotLeadGuitar:
		return "lead guitar   "
	case models.SlotRhythmGuitar:
		return "rhythm guitar "
	case models.SlotBass:
		return "bass          "
	case models.SlotDrums:
		return "drums         "
	case models.SlotVocals:
		return "vocals        "
	case models.SlotKeyboards:
		return "keyboards     "
	}
	return string(slot)
}
