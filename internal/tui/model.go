// Package tui is the interactive terminal front end of the resume wizard.
//
// It follows The Elm Architecture via bubbletea: key presses become messages,
// Update applies them to a wizard.Session, and View renders the form for the
// active step next to the live preview and ATS checklist.
package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonathan/resume-builder/internal/logging"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/wizard"
)

const inputCharLimit = 2000

// exportDoneMsg carries the outcome of an export started with ctrl+s.
type exportDoneMsg struct {
	result wizard.AdvanceResult
	err    error
}

// Model is the bubbletea model driving one wizard session.
type Model struct {
	session *wizard.Session
	ctx     context.Context
	logger  *slog.Logger

	// Form for the active step
	section string
	fields  []string
	inputs  []textinput.Model
	cursor  int
	entry   int

	// Skills step
	skill      textinput.Model
	suggestion int

	status    string
	err       error
	exporting bool
	width     int
	height    int
}

// Option customizes a Model.
type Option func(*Model)

// WithLogger sets the logger; it must not write to the terminal being drawn on.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithContext sets the context passed to the exporter.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		if ctx != nil {
			m.ctx = ctx
		}
	}
}

// New creates a model over session.
func New(session *wizard.Session, opts ...Option) *Model {
	m := &Model{
		session: session,
		ctx:     context.Background(),
		logger:  logging.Discard(),
		skill:   newInput("Type a skill and press enter"),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.loadForm()
	return m
}

// Run starts a full-screen program and blocks until the user quits.
func Run(ctx context.Context, session *wizard.Session, opts ...Option) error {
	opts = append([]Option{WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(session, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Session returns the session being edited.
func (m *Model) Session() *wizard.Session {
	return m.session
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = inputCharLimit
	return in
}

// Init is called once when the program starts.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update applies one message to the session and form state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		m.finishExport(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.exporting {
			return m, nil
		}
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	return m, m.updateInputs(msg)
}

// handleKey runs wizard-level shortcuts. handled is false for keys that
// belong to the focused input.
func (m *Model) handleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool) {
	key := msg.String()
	switch key {
	case "esc":
		return tea.Quit, true

	case "ctrl+n":
		m.session.GoNext()
		m.stepChanged()
		return nil, true

	case "ctrl+p":
		m.session.GoBack()
		m.stepChanged()
		return nil, true

	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5":
		n, _ := strconv.Atoi(strings.TrimPrefix(key, "alt+"))
		m.session.JumpTo(n)
		m.stepChanged()
		return nil, true

	case "ctrl+s":
		if m.session.IsTerminal() {
			m.exporting = true
			m.err = nil
			m.status = "Exporting…"
			return m.exportCmd(), true
		}
		_, _ = m.session.Advance(m.ctx)
		m.stepChanged()
		return nil, true
	}

	if m.session.Step() == wizard.StepSkills {
		return m.handleSkillKey(key)
	}
	return m.handleFormKey(key)
}

func (m *Model) handleFormKey(key string) (tea.Cmd, bool) {
	collection := m.isCollection()
	switch key {
	case "tab", "down", "enter":
		m.cursor = (m.cursor + 1) % max(len(m.inputs), 1)
		m.focus()
		return nil, true

	case "shift+tab", "up":
		m.cursor = (m.cursor - 1 + max(len(m.inputs), 1)) % max(len(m.inputs), 1)
		m.focus()
		return nil, true

	case "ctrl+a":
		if !collection {
			return nil, false
		}
		if _, ok := m.session.AddEntry(m.section); ok {
			m.entry = m.entryCount() - 1
			m.cursor = 0
			m.loadForm()
			m.status = fmt.Sprintf("Added %s entry %d", m.section, m.entry+1)
		}
		return nil, true

	case "ctrl+d":
		if !collection {
			return nil, false
		}
		before := m.entryCount()
		m.session.RemoveEntry(m.section, m.entryID())
		if m.entryCount() == before {
			m.status = "The last entry cannot be removed"
		} else {
			m.status = fmt.Sprintf("Removed %s entry", m.section)
		}
		m.loadForm()
		return nil, true

	case "pgdown":
		if !collection {
			return nil, false
		}
		m.entry = min(m.entry+1, m.entryCount()-1)
		m.loadForm()
		return nil, true

	case "pgup":
		if !collection {
			return nil, false
		}
		m.entry = max(m.entry-1, 0)
		m.loadForm()
		return nil, true
	}
	return nil, false
}

func (m *Model) handleSkillKey(key string) (tea.Cmd, bool) {
	suggestions := m.suggestions()
	switch key {
	case "down", "tab":
		if len(suggestions) > 0 {
			m.suggestion = (m.suggestion + 1) % len(suggestions)
		}
		return nil, true

	case "up", "shift+tab":
		if len(suggestions) > 0 {
			m.suggestion = (m.suggestion - 1 + len(suggestions)) % len(suggestions)
		}
		return nil, true

	case "enter":
		raw := m.skill.Value()
		if strings.TrimSpace(raw) == "" && len(suggestions) > 0 {
			raw = suggestions[min(m.suggestion, len(suggestions)-1)]
		}
		before := m.session.Revision()
		m.session.AddSkill(raw)
		if m.session.Revision() != before {
			m.status = fmt.Sprintf("Added skill %q", strings.TrimSpace(raw))
		}
		m.skill.SetValue("")
		m.suggestion = min(m.suggestion, max(len(m.suggestions())-1, 0))
		return nil, true

	case "ctrl+d":
		skills := m.session.Document().Skills
		if len(skills) > 0 {
			last := skills[len(skills)-1]
			m.session.RemoveSkill(last)
			m.status = fmt.Sprintf("Removed skill %q", last)
		}
		return nil, true
	}
	return nil, false
}

// updateInputs forwards msg to the focused input and writes changes through
// to the session.
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.session.Step() == wizard.StepSkills {
		m.skill, cmd = m.skill.Update(msg)
		return cmd
	}
	if len(m.inputs) == 0 {
		return nil
	}

	before := m.inputs[m.cursor].Value()
	m.inputs[m.cursor], cmd = m.inputs[m.cursor].Update(msg)
	if after := m.inputs[m.cursor].Value(); after != before {
		m.apply(m.fields[m.cursor], after)
	}
	return cmd
}

func (m *Model) apply(field, value string) {
	if field == types.FieldIsCurrent && strings.TrimSpace(value) == "" {
		value = "false"
	}
	if m.section == types.SectionPersonal {
		m.session.UpdatePersonal(field, value)
		return
	}
	m.session.UpdateEntry(m.section, m.entryID(), field, value)
}

func (m *Model) exportCmd() tea.Cmd {
	session, ctx := m.session, m.ctx
	return func() tea.Msg {
		result, err := session.Advance(ctx)
		return exportDoneMsg{result: result, err: err}
	}
}

func (m *Model) finishExport(msg exportDoneMsg) {
	artifact := msg.result.Artifact
	switch {
	case msg.err != nil && artifact == nil:
		m.err = msg.err
		m.status = ""
		m.logger.Error("export failed", "error", msg.err)
	case msg.err != nil:
		m.err = msg.err
		m.status = fmt.Sprintf("Exported %s with errors", artifact.Filename)
		m.logger.Warn("export partially failed", "filename", artifact.Filename, "error", msg.err)
	default:
		m.err = nil
		m.status = fmt.Sprintf("Exported %s", artifact.Filename)
		if len(artifact.Locations) > 0 {
			m.status += " → " + strings.Join(artifact.Locations, ", ")
		}
		m.logger.Info("resume exported", "filename", artifact.Filename, "locations", artifact.Locations)
	}
}

// stepChanged resets the form after navigation.
func (m *Model) stepChanged() {
	m.cursor = 0
	m.entry = 0
	m.suggestion = 0
	m.err = nil
	m.status = ""
	m.loadForm()
	m.logger.Debug("step changed", "step", int(m.session.Step()))
}

// loadForm rebuilds the inputs of the active step from the document.
func (m *Model) loadForm() {
	m.section = m.session.Step().Section()
	m.fields = types.FieldNames(m.section)
	m.entry = min(max(m.entry, 0), max(m.entryCount()-1, 0))

	values := m.currentValues()
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, field := range m.fields {
		in := newInput(fieldLabel(field))
		in.SetValue(values[field])
		m.inputs[i] = in
	}
	m.cursor = min(max(m.cursor, 0), max(len(m.inputs)-1, 0))
	m.focus()
}

func (m *Model) focus() {
	for i := range m.inputs {
		if i == m.cursor {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	if m.session.Step() == wizard.StepSkills {
		m.skill.Focus()
	} else {
		m.skill.Blur()
	}
}

func (m *Model) isCollection() bool {
	switch m.section {
	case types.SectionEducation, types.SectionExperience, types.SectionProjects:
		return true
	}
	return false
}

func (m *Model) entryCount() int {
	doc := m.session.Document()
	switch m.section {
	case types.SectionEducation:
		return len(doc.Education)
	case types.SectionExperience:
		return len(doc.Experience)
	case types.SectionProjects:
		return len(doc.Projects)
	}
	return 0
}

func (m *Model) entryID() string {
	doc := m.session.Document()
	switch m.section {
	case types.SectionEducation:
		if m.entry < len(doc.Education) {
			return doc.Education[m.entry].ID
		}
	case types.SectionExperience:
		if m.entry < len(doc.Experience) {
			return doc.Experience[m.entry].ID
		}
	case types.SectionProjects:
		if m.entry < len(doc.Projects) {
			return doc.Projects[m.entry].ID
		}
	}
	return ""
}

// currentValues returns the field values of the record shown in the form.
func (m *Model) currentValues() map[string]string {
	doc := m.session.Document()
	var record any
	switch m.section {
	case types.SectionPersonal:
		record = doc.Personal
	case types.SectionEducation:
		if m.entry < len(doc.Education) {
			record = doc.Education[m.entry]
		}
	case types.SectionExperience:
		if m.entry < len(doc.Experience) {
			record = doc.Experience[m.entry]
		}
	case types.SectionProjects:
		if m.entry < len(doc.Projects) {
			record = doc.Projects[m.entry]
		}
	}
	return fieldValues(record)
}

// fieldValues flattens a record into its field names, which match its JSON keys.
func fieldValues(record any) map[string]string {
	values := map[string]string{}
	if record == nil {
		return values
	}
	data, err := json.Marshal(record)
	if err != nil {
		return values
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return values
	}
	for k, v := range raw {
		switch v := v.(type) {
		case string:
			values[k] = v
		case bool:
			if v {
				values[k] = "true"
			}
		}
	}
	return values
}

func (m *Model) suggestions() []string {
	var out []string
	for skill := range m.session.SuggestedSkills() {
		out = append(out, skill)
	}
	return out
}

// fieldLabel turns a field name such as "linkedin_url" into "Linkedin url".
func fieldLabel(field string) string {
	switch field {
	case types.FieldLinkedInURL:
		return "LinkedIn URL"
	case types.FieldPortfolioURL:
		return "Portfolio URL"
	case types.FieldGPA:
		return "GPA"
	case types.FieldIsCurrent:
		return "Current role (true/false)"
	}
	label := strings.ReplaceAll(field, "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}
