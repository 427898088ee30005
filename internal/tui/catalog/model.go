// ============================================================================
// meinSTIMMWERK (mSW) - Lokales Stimm-Labor
// ============================================================================
//
// Package:     catalog
// Description: Bubbletea model for browsing the voice catalog
// Author:      Mike Stoffels with Claude
// Created:     2026-08-14
// License:     MIT
// ============================================================================

package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/msto63/mSW/internal/voicestore"
)

// Model is the Bubbletea model for the catalog browser
type Model struct {
	// State
	width     int
	height    int
	ready     bool
	filtering bool
	err       error

	// Components
	table table.Model

	// Catalog state
	allVoices  []*voicestore.VoiceRecord
	nameFilter string
	genderIdx  int
	synthOnly  bool

	store voicestore.Store
}

// genderCycle is the order the g key walks through
var genderCycle = []voicestore.Gender{"", voicestore.GenderFemale, voicestore.GenderMale, voicestore.GenderNeutral}

// New creates a catalog browser over the given store
func New(store voicestore.Store) Model {
	columns := []table.Column{
		{Title: "Name", Width: 24},
		{Title: "G", Width: 3},
		{Title: "Sprache", Width: 10},
		{Title: "Q", Width: 4},
		{Title: "Dim", Width: 6},
		{Title: "Synth", Width: 6},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)

	st := table.DefaultStyles()
	st.Header = st.Header.
		Foreground(ColorPrimary).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true)
	st.Selected = st.Selected.
		Foreground(ColorText).
		Background(ColorBgPanel).
		Bold(true)
	tbl.SetStyles(st)

	return Model{
		table: tbl,
		store: store,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadVoices,
		tea.EnterAltScreen,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 3
		footerHeight := 6
		m.table.SetHeight(msg.Height - headerHeight - footerHeight)
		m.ready = true

	case voicesLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.allVoices = msg.voices
			m.applyFilters()
		}

	case refreshMsg:
		cmds = append(cmds, m.loadVoices)
	}

	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.filtering {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			m.filtering = false
		case tea.KeyBackspace:
			if len(m.nameFilter) > 0 {
				m.nameFilter = m.nameFilter[:len(m.nameFilter)-1]
				m.applyFilters()
			}
		case tea.KeyRunes:
			m.nameFilter += string(msg.Runes)
			m.applyFilters()
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit

	case tea.KeyRunes:
		switch string(msg.Runes) {
		case "q":
			return m, tea.Quit
		case "r":
			return m, func() tea.Msg { return refreshMsg{} }
		case "/":
			m.filtering = true
			m.nameFilter = ""
			m.applyFilters()
			return m, nil
		case "g":
			m.genderIdx = (m.genderIdx + 1) % len(genderCycle)
			m.applyFilters()
			return m, nil
		case "s":
			m.synthOnly = !m.synthOnly
			m.applyFilters()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser
func (m Model) View() string {
	if !m.ready {
		return "Lade Stimmenkatalog..."
	}

	var b strings.Builder

	b.WriteString(LogoStyle.Render("mSW Stimmenkatalog"))
	b.WriteString("  ")
	b.WriteString(m.filterLine())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Fehler: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("q beenden  r neu laden  / Name filtern  g Geschlecht  s nur synthetisch"))

	return b.String()
}

func (m Model) filterLine() string {
	var parts []string
	if g := genderCycle[m.genderIdx]; g != "" {
		parts = append(parts, "Geschlecht: "+string(g))
	}
	if m.synthOnly {
		parts = append(parts, "nur synthetisch")
	}
	if m.nameFilter != "" || m.filtering {
		parts = append(parts, "Name: "+m.nameFilter+cursorIf(m.filtering))
	}
	if len(parts) == 0 {
		return FilterStyle.Render(fmt.Sprintf("%d Stimmen", len(m.allVoices)))
	}
	return FilterStyle.Render(strings.Join(parts, "  "))
}

func cursorIf(active bool) string {
	if active {
		return "_"
	}
	return ""
}

// detailView shows the selected voice
func (m Model) detailView() string {
	row := m.table.SelectedRow()
	if row == nil {
		return DetailLabelStyle.Render("Keine Stimme ausgewählt")
	}

	name := row[0]
	for _, v := range m.allVoices {
		if v.Name != name {
			continue
		}

		created := "-"
		if !v.CreatedAt.IsZero() {
			created = v.CreatedAt.Format(time.RFC3339)
		}

		lines := []string{
			DetailLabelStyle.Render("Stimme:   ") + DetailValueStyle.Render(v.Name),
			DetailLabelStyle.Render("Angelegt: ") + DetailValueStyle.Render(created),
		}
		if v.TrainingDuration != "" {
			lines = append(lines, DetailLabelStyle.Render("Training: ")+DetailValueStyle.Render(v.TrainingDuration))
		}
		if v.Notes != "" {
			lines = append(lines, DetailLabelStyle.Render("Notizen:  ")+DetailValueStyle.Render(v.Notes))
		}
		return strings.Join(lines, "\n")
	}

	return DetailLabelStyle.Render("Keine Stimme ausgewählt")
}

// applyFilters rebuilds the table rows from the current filters
func (m *Model) applyFilters() {
	gender := genderCycle[m.genderIdx]
	filter := strings.ToLower(m.nameFilter)

	rows := make([]table.Row, 0, len(m.allVoices))
	for _, v := range m.allVoices {
		if gender != "" && v.Gender != gender {
			continue
		}
		if m.synthOnly && !v.IsSynthetic {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(v.Name), filter) {
			continue
		}

		synth := ""
		if v.IsSynthetic {
			synth = SyntheticStyle.Render("ja")
		}

		rows = append(rows, table.Row{
			v.Name,
			string(v.Gender),
			v.Language,
			fmt.Sprintf("%d", v.Quality),
			fmt.Sprintf("%d", len(v.StyleVector)),
			synth,
		})
	}

	m.table.SetRows(rows)
}

// loadVoices queries the full catalog
func (m Model) loadVoices() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	voices, err := m.store.Select(ctx, voicestore.Selector{})
	return voicesLoadedMsg{voices: voices, err: err}
}
