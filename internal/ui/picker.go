package ui

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/paperdex/paperdex/internal/search"
	"github.com/paperdex/paperdex/internal/trigger"
)

// maxVisibleResults limits the result list height.
const maxVisibleResults = 10

// resultsMsg carries search results back into the model. seq ties the
// results to the query generation that requested them so stale responses
// are dropped.
type resultsMsg struct {
	seq     int
	results []search.Result
	err     error
}

// pickerModel is the bubbletea model for the interactive search picker.
type pickerModel struct {
	ctx     context.Context
	service search.Service
	cfg     Config

	input    textinput.Model
	results  []search.Result
	selected int
	seq      int
	err      error
	styles   Styles
	width    int
	quitting bool

	// choice is the result confirmed with enter, nil if none.
	choice *search.Result
}

// newPickerModel creates the picker model seeded with an initial query.
func newPickerModel(ctx context.Context, service search.Service, cfg Config, query string) *pickerModel {
	ti := textinput.New()
	ti.Placeholder = "search papers…"
	ti.Prompt = "> "
	ti.SetValue(query)
	ti.CursorEnd()
	ti.Focus()

	styles := DefaultStyles()
	if cfg.NoColor || DetectNoColor() {
		styles = NoColorStyles()
	}

	return &pickerModel{
		ctx:     ctx,
		service: service,
		cfg:     cfg,
		input:   ti,
		styles:  styles,
		width:   80,
	}
}

// Init implements tea.Model.
func (m *pickerModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchCmd())
}

// activeQuery derives the query from the input. A "/token" at the caret
// takes precedence over the full line, so a query can be embedded in notes.
func (m *pickerModel) activeQuery() string {
	value := m.input.Value()
	if tok, ok := trigger.ParseSlashToken(value, m.input.Position()); ok {
		return tok.Query
	}
	return strings.TrimSpace(value)
}

// searchCmd issues the current query against the service.
func (m *pickerModel) searchCmd() tea.Cmd {
	m.seq++
	seq := m.seq
	query := m.activeQuery()
	return func() tea.Msg {
		results, err := m.service.Search(m.ctx, m.cfg.LibraryID, query, search.Options{})
		return resultsMsg{seq: seq, results: results, err: err}
	}
}

// Update implements tea.Model.
func (m *pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.selected < len(m.results) {
				r := m.results[m.selected]
				m.choice = &r
			}
			m.quitting = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, tea.Batch(cmd, m.searchCmd())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case resultsMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.err = msg.err
		m.results = msg.results
		if m.selected >= len(m.results) {
			m.selected = 0
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *pickerModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder

	header := "paperdex"
	if m.cfg.LibraryName != "" {
		header = fmt.Sprintf("paperdex · %s", m.cfg.LibraryName)
	}
	sb.WriteString(m.styles.Header.Render(header))
	sb.WriteString("\n")
	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")

	if m.err != nil {
		sb.WriteString(m.styles.Error.Render("search failed: " + m.err.Error()))
		sb.WriteString("\n")
		return sb.String()
	}

	if len(m.results) == 0 {
		if m.activeQuery() != "" {
			sb.WriteString(m.styles.Dim.Render("no matches"))
			sb.WriteString("\n")
		}
	} else {
		visible := m.results
		if len(visible) > maxVisibleResults {
			visible = visible[:maxVisibleResults]
		}
		for i, r := range visible {
			m.renderResult(&sb, r, i == m.selected)
		}
		if len(m.results) > len(visible) {
			sb.WriteString(m.styles.Dim.Render(fmt.Sprintf("… %d more", len(m.results)-len(visible))))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Dim.Render("↑/↓ select · enter confirm · esc quit"))
	sb.WriteString("\n")
	return sb.String()
}

func (m *pickerModel) renderResult(sb *strings.Builder, r search.Result, selected bool) {
	marker := "  "
	titleStyle := m.styles.Title
	if selected {
		marker = "❯ "
		titleStyle = m.styles.Selected
	}

	title := r.Title
	if title == "" {
		title = "(untitled)"
	}

	var meta []string
	if r.FirstCreator != "" {
		meta = append(meta, r.FirstCreator)
	}
	if r.Year != "" {
		meta = append(meta, r.Year)
	}

	line := marker + titleStyle.Render(truncate(title, m.width-30))
	if len(meta) > 0 {
		line += "  " + m.styles.Meta.Render(strings.Join(meta, ", "))
	}
	line += "  " + m.styles.Score.Render(fmt.Sprintf("%d", r.Score))
	sb.WriteString(line)
	sb.WriteString("\n")

	if selected {
		for _, a := range r.Attachments {
			sb.WriteString("    " + m.styles.Attachment.Render("📄 "+a.Title))
			sb.WriteString("\n")
		}
	}
}

// truncate shortens s to at most maxLen runes, appending an ellipsis.
func truncate(s string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// RunPicker runs the interactive picker. The confirmed selection, if any,
// is printed to the configured output as "citationkey\ttitle".
func RunPicker(ctx context.Context, service search.Service, cfg Config, query string) error {
	model := newPickerModel(ctx, service, cfg, query)

	var opts []tea.ProgramOption
	if f, ok := cfg.Output.(*os.File); ok {
		opts = append(opts, tea.WithOutput(f))
	}

	program := tea.NewProgram(model, opts...)
	final, err := program.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(*pickerModel); ok && m.choice != nil {
		key := m.choice.CitationKey
		if key == "" {
			key = fmt.Sprintf("#%d", m.choice.DocumentID)
		}
		fmt.Fprintf(cfg.Output, "%s\t%s\n", key, m.choice.Title)
	}
	return nil
}

var _ tea.Model = (*pickerModel)(nil)
