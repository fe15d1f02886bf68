// ABOUTME: Interactive TUI wizard for first-run daybook setup.
// ABOUTME: Collects the display nickname and optional remote sync credentials, validating them.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/2389-research/daybook/internal/storage"
)

// DefaultAPIURL is the default remote diary API endpoint.
const DefaultAPIURL = "https://botboard.biz/api/v1"

// Step represents the current wizard step.
type Step int

const (
	StepNickname Step = iota
	StepAPIURL
	StepTeamID
	StepAPIKey
	StepValidating
	StepDone
	StepFailed
)

const inputCount = 4

// validationResultMsg carries the result of an async validation attempt.
type validationResultMsg struct {
	err error
}

// ValidateFn is the function signature for connection validation.
type ValidateFn func(ctx context.Context, apiURL, apiKey, teamID string) error

// SetupResult holds the values collected by the wizard.
type SetupResult struct {
	Nickname string
	APIURL   string
	TeamID   string
	APIKey   string
}

// LocalOnly reports whether remote sync was skipped.
func (r SetupResult) LocalOnly() bool {
	return r.TeamID == ""
}

// cancelHolder shares a cancel function across bubbletea model copies.
// This MUST be stored as a pointer field on SetupModel so that value-receiver
// methods (required by tea.Model) can store the cancel func and have it
// visible to all copies of the model.
type cancelHolder struct {
	cancel context.CancelFunc
}

// SetupModel is the bubbletea model for the setup wizard.
type SetupModel struct {
	step          Step
	inputs        [inputCount]textinput.Model
	spinner       spinner.Model
	validateFn    ValidateFn
	cancelCtx     *cancelHolder
	validationErr error
	localOnly     bool
	quitting      bool
}

// NewSetupModel creates a new setup wizard model, pre-filling with existing values.
func NewSetupModel(prev SetupResult) SetupModel {
	nameInput := textinput.New()
	nameInput.Placeholder = "your nickname"
	nameInput.Focus()
	nameInput.Width = 50
	nameInput.SetValue(prev.Nickname)

	urlInput := textinput.New()
	urlInput.Placeholder = DefaultAPIURL
	urlInput.Width = 50
	urlInput.SetValue(prev.APIURL)

	teamInput := textinput.New()
	teamInput.Placeholder = "team id (leave empty for local only)"
	teamInput.Width = 50
	teamInput.SetValue(prev.TeamID)

	keyInput := textinput.New()
	keyInput.Placeholder = "your-api-key"
	keyInput.EchoMode = textinput.EchoPassword
	keyInput.Width = 50
	keyInput.SetValue(prev.APIKey)

	s := spinner.New()
	s.Spinner = spinner.Dot

	return SetupModel{
		step:       StepNickname,
		inputs:     [inputCount]textinput.Model{nameInput, urlInput, teamInput, keyInput},
		spinner:    s,
		validateFn: ValidateConnection,
		cancelCtx:  &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m SetupModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEscape:
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepNickname, StepAPIURL, StepTeamID, StepAPIKey:
			return m.updateInput(msg)
		case StepFailed:
			return m.updateFailed(msg)
		}

	case validationResultMsg:
		m.cancelCtx.cancel = nil
		if msg.err == nil {
			m.step = StepDone
			return m, tea.Quit
		}
		m.validationErr = msg.err
		m.step = StepFailed
		return m, nil

	case spinner.TickMsg:
		if m.step == StepValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m SetupModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		idx := int(m.step)

		switch m.step {
		case StepNickname:
			name := strings.TrimSpace(m.inputs[0].Value())
			if name == "" {
				return m, nil
			}
			m.inputs[0].SetValue(name)
		case StepAPIURL:
			// Apply default API URL if empty, and normalize trailing slashes
			val := m.inputs[1].Value()
			if val == "" {
				m.inputs[1].SetValue(DefaultAPIURL)
			} else {
				m.inputs[1].SetValue(storage.NormalizeAPIURL(val))
			}
		case StepTeamID:
			// An empty team ID means the diary stays local.
			if strings.TrimSpace(m.inputs[2].Value()) == "" {
				m.inputs[2].Blur()
				m.localOnly = true
				m.step = StepDone
				return m, tea.Quit
			}
		case StepAPIKey:
			if m.inputs[3].Value() == "" {
				return m, nil
			}
		}

		m.inputs[idx].Blur()

		switch m.step {
		case StepNickname:
			m.step = StepAPIURL
			m.inputs[1].Focus()
			return m, textinput.Blink
		case StepAPIURL:
			m.step = StepTeamID
			m.inputs[2].Focus()
			return m, textinput.Blink
		case StepTeamID:
			m.step = StepAPIKey
			m.inputs[3].Focus()
			return m, textinput.Blink
		case StepAPIKey:
			m.step = StepValidating
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		}
	}

	// Forward to the active input
	idx := int(m.step)
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	return m, cmd
}

func (m SetupModel) updateFailed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		switch msg.Runes[0] {
		case 'r':
			m.step = StepValidating
			m.validationErr = nil
			return m, tea.Batch(m.startValidation(), m.spinner.Tick)
		case 's':
			m.step = StepDone
			return m, tea.Quit
		case 'l':
			m.localOnly = true
			m.step = StepDone
			return m, tea.Quit
		case 'q':
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m SetupModel) startValidation() tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	apiURL := m.inputs[1].Value()
	teamID := m.inputs[2].Value()
	apiKey := m.inputs[3].Value()
	fn := m.validateFn
	return func() tea.Msg {
		return validationResultMsg{err: fn(ctx, apiURL, apiKey, teamID)}
	}
}

// View implements tea.Model.
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   DAYBOOK"))
	b.WriteString(titleStyle.Render(" - Setup"))
	b.WriteString("\n\n")
	b.WriteString("Tell us who you are, and optionally connect a team diary.\n\n")

	switch m.step {
	case StepNickname:
		b.WriteString(stepStyle.Render("Step 1 of 4: Nickname"))
		b.WriteString("\n")
		b.WriteString(m.inputs[0].View())
		b.WriteString("\n")

	case StepAPIURL:
		b.WriteString(fmt.Sprintf("  Nickname: %s\n\n", m.inputs[0].Value()))
		b.WriteString(stepStyle.Render("Step 2 of 4: API URL"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press Enter for default)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[1].View())
		b.WriteString("\n")

	case StepTeamID:
		b.WriteString(fmt.Sprintf("  Nickname: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  API URL:  %s\n\n", m.inputs[1].Value()))
		b.WriteString(stepStyle.Render("Step 3 of 4: Team ID"))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(leave empty to keep your diary local)"))
		b.WriteString("\n")
		b.WriteString(m.inputs[2].View())
		b.WriteString("\n")

	case StepAPIKey:
		b.WriteString(fmt.Sprintf("  Nickname: %s\n", m.inputs[0].Value()))
		b.WriteString(fmt.Sprintf("  API URL:  %s\n", m.inputs[1].Value()))
		b.WriteString(fmt.Sprintf("  Team ID:  %s\n\n", m.inputs[2].Value()))
		b.WriteString(stepStyle.Render("Step 4 of 4: API Key"))
		b.WriteString("\n")
		b.WriteString(m.inputs[3].View())
		b.WriteString("\n")

	case StepValidating:
		b.WriteString(fmt.Sprintf("  API URL: %s\n", m.inputs[1].Value()))
		b.WriteString(fmt.Sprintf("  Team ID: %s\n", m.inputs[2].Value()))
		b.WriteString(fmt.Sprintf("  API Key: %s\n\n", strings.Repeat("*", len(m.inputs[3].Value()))))
		b.WriteString(m.spinner.View())
		b.WriteString(" Validating connection...")
		b.WriteString("\n")

	case StepDone:
		if m.localOnly {
			b.WriteString(successStyle.Render("✓ All set! Your diary stays on this machine."))
		} else {
			b.WriteString(successStyle.Render("✓ Connected!"))
		}
		b.WriteString("\n")

	case StepFailed:
		errMsg := "unknown error"
		if m.validationErr != nil {
			errMsg = m.validationErr.Error()
		}
		b.WriteString(errorStyle.Render(fmt.Sprintf("✗ Validation failed: %s", errMsg)))
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("[r]etry  [s]ave anyway  [l]ocal only  [q]uit"))
		b.WriteString("\n")
	}

	return b.String()
}

// Result returns the entered values. Remote fields are empty when the user chose local only.
func (m SetupModel) Result() SetupResult {
	r := SetupResult{Nickname: strings.TrimSpace(m.inputs[0].Value())}
	if m.localOnly {
		return r
	}
	r.APIURL = m.inputs[1].Value()
	r.TeamID = strings.TrimSpace(m.inputs[2].Value())
	r.APIKey = m.inputs[3].Value()
	return r
}

// ShouldSave returns true if the wizard completed (via validation success,
// local only, or "save anyway") and the user did not cancel with Ctrl+C,
// Escape, or 'q'.
func (m SetupModel) ShouldSave() bool {
	return m.step == StepDone && !m.quitting
}
