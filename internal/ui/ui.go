// Package ui contains the interactive prompt shown when the configuration
// omits the Spotify account identity.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/slapelachie/topsongs/internal/shared"
)

// promptModel is a single text-input bubbletea model.
type promptModel struct {
	label    string
	input    textinput.Model
	done     bool
	canceled bool
}

func newPromptModel(label, placeholder string) promptModel {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = 64
	input.Width = 40
	input.Focus()

	return promptModel{label: label, input: input}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.title.Render(m.label))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter confirm • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Value returns the trimmed input value.
func (m promptModel) Value() string {
	return strings.TrimSpace(m.input.Value())
}

// PromptUsername asks for the Spotify username interactively.
//
// Returns [shared.ErrMissingArgument] when the prompt is canceled or left
// empty.
func PromptUsername() (string, error) {
	program := tea.NewProgram(newPromptModel("Spotify username", "your-spotify-id"))

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}

	model, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("unexpected prompt model %T", final)
	}

	if model.canceled {
		return "", fmt.Errorf("%w: username prompt canceled", shared.ErrMissingArgument)
	}

	username := model.Value()
	if username == "" {
		return "", fmt.Errorf("%w: no username provided", shared.ErrMissingArgument)
	}

	return username, nil
}
