// Package tui is the interactive ask session: a question prompt over the
// retrieval pipeline with keyboard navigation through the cited sources.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foxest/faqdex/internal/core/domain"
	"github.com/foxest/faqdex/internal/core/ports/driving"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true)
	answerStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	promptStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)

// answerMsg carries the result of an ask round trip back into Update.
type answerMsg struct {
	answer *domain.Answer
	err    error
}

// Model is the Bubble Tea model for the ask session.
type Model struct {
	answers   driving.AnswerService
	documents driving.DocumentService

	input    textinput.Model
	viewport viewport.Model

	answer  *domain.Answer
	names   map[string]string
	cursor  int
	status  string
	asking  bool
	ready   bool
	topK    int
}

// New creates an ask session over the given services.
func New(answers driving.AnswerService, documents driving.DocumentService, topK int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	return Model{
		answers:   answers,
		documents: documents,
		input:     ti,
		viewport:  viewport.New(0, 0),
		names:     make(map[string]string),
		status:    "Ready. Type a question.",
		topK:      topK,
	}
}

// Init starts the text input cursor blink.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ah := answerStyle.GetFrameSize()
		_, ph := promptStyle.GetFrameSize()
		reserved := 2 + ph + ah + 1
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved)
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case answerMsg:
		m.asking = false
		if msg.err != nil {
			m.status = "Error: " + msg.err.Error()
			m.answer = nil
		} else {
			m.answer = msg.answer
			m.cursor = 0
			m.resolveNames()
			m.status = fmt.Sprintf("%d sources. Up/down to inspect.", len(msg.answer.Sources))
		}
		m.viewport.SetContent(m.renderAnswer())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			question := strings.TrimSpace(m.input.Value())
			if question != "" && !m.asking {
				m.asking = true
				m.status = "Thinking..."
				return m, m.ask(question)
			}
		case "down":
			if m.answer != nil && len(m.answer.Sources) > 0 {
				m.cursor = (m.cursor + 1) % len(m.answer.Sources)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "up":
			if m.answer != nil && len(m.answer.Sources) > 0 {
				m.cursor = (m.cursor - 1 + len(m.answer.Sources)) % len(m.answer.Sources)
				m.viewport.SetContent(m.renderAnswer())
				return m, nil
			}
		case "esc":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the session layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("faqdex")
	body := answerStyle.Render(m.viewport.View())
	prompt := promptStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + body + "\n" + prompt + "\n" + status
}

func (m Model) ask(question string) tea.Cmd {
	return func() tea.Msg {
		answer, err := m.answers.Ask(context.Background(), question, m.topK)
		return answerMsg{answer: answer, err: err}
	}
}

// resolveNames looks up display names for the cited documents.
func (m *Model) resolveNames() {
	if m.documents == nil || m.answer == nil {
		return
	}
	ctx := context.Background()
	for _, src := range m.answer.Sources {
		if _, ok := m.names[src.DocumentID]; ok {
			continue
		}
		if doc, err := m.documents.Get(ctx, src.DocumentID); err == nil {
			m.names[src.DocumentID] = doc.FileName
		}
	}
}

func (m Model) renderAnswer() string {
	if m.answer == nil {
		return "No answer yet."
	}

	var b strings.Builder
	b.WriteString(m.answer.Text)
	if len(m.answer.Sources) > 0 {
		b.WriteString("\n\nSources:\n")
		for i, src := range m.answer.Sources {
			name := m.names[src.DocumentID]
			if name == "" {
				name = src.DocumentID
			}
			line := fmt.Sprintf("[%d] %s (%.2f)", i+1, name, src.Score)
			if i == m.cursor {
				line = currentStyle.Render("> " + line)
			} else {
				line = sourceStyle.Render("  " + line)
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
