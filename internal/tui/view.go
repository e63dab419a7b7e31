package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/preview"
	"github.com/jonathan/resume-builder/internal/wizard"
)

const defaultWidth = 100

var (
	tabActiveStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true).Underline(true)
	tabDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	tabDefaultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	focusLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	headingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	nameStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	passStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	failStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	selectedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	paneStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)
	footerHintsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// View renders the whole screen.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}
	leftWidth := max(30, width*55/100-4)
	rightWidth := max(24, width-leftWidth-8)

	left := paneStyle.Width(leftWidth).Render(m.renderForm())
	right := paneStyle.Width(rightWidth).Render(m.renderPreview())

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.renderFooter(),
	)
}

func (m *Model) renderTabs() string {
	doc := m.session.Document()
	tabs := make([]string, 0, len(wizard.Steps()))
	for _, step := range wizard.Steps() {
		label := fmt.Sprintf("%d %s", int(step), step.Title())
		switch {
		case step == m.session.Step():
			tabs = append(tabs, tabActiveStyle.Render(label))
		case wizard.StepComplete(step, doc):
			tabs = append(tabs, tabDoneStyle.Render("✓ "+label))
		default:
			tabs = append(tabs, tabDefaultStyle.Render(label))
		}
	}
	return strings.Join(tabs, mutedStyle.Render("  ›  "))
}

func (m *Model) renderForm() string {
	step := m.session.Step()
	lines := []string{headingStyle.Render(step.Title())}

	if step == wizard.StepSkills {
		return strings.Join(append(lines, m.renderSkills()...), "\n")
	}

	if m.isCollection() {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Entry %d of %d", m.entry+1, m.entryCount())))
	}
	lines = append(lines, "")
	for i, field := range m.fields {
		style := labelStyle
		if i == m.cursor {
			style = focusLabelStyle
		}
		lines = append(lines, style.Render(fieldLabel(field)), m.inputs[i].View(), "")
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderSkills() []string {
	skills := m.session.Document().Skills
	lines := []string{""}
	if len(skills) == 0 {
		lines = append(lines, mutedStyle.Render("No skills yet"))
	} else {
		lines = append(lines, strings.Join(skills, preview.SkillSeparator))
	}
	lines = append(lines, "", focusLabelStyle.Render("New skill"), m.skill.View(), "")

	suggestions := m.suggestions()
	if len(suggestions) > 0 {
		lines = append(lines, labelStyle.Render("Suggested (enter on an empty input adds the highlighted one)"))
		for i, s := range suggestions {
			if i == m.suggestion {
				lines = append(lines, selectedStyle.Render("› "+s))
			} else {
				lines = append(lines, "  "+s)
			}
		}
	}
	return lines
}

func (m *Model) renderPreview() string {
	p := m.session.Preview()
	lines := []string{headingStyle.Render("Preview")}

	if p.Empty {
		lines = append(lines, "", mutedStyle.Render(p.Placeholder))
	} else {
		lines = append(lines, "", nameStyle.Render(p.FullName))
		if p.ContactLine != "" {
			lines = append(lines, mutedStyle.Render(p.ContactLine))
		}
		if p.Summary != "" {
			lines = append(lines, "", p.Summary)
		}
		lines = appendSection(lines, "Education", p.Education)
		lines = appendSection(lines, "Experience", p.Experience)
		if p.Skills != "" {
			skills := p.Skills
			if p.MoreSkills > 0 {
				skills += fmt.Sprintf(" +%d more", p.MoreSkills)
			}
			lines = appendSection(lines, "Skills", []string{skills})
		}
		lines = appendSection(lines, "Projects", p.Projects)
	}

	lines = append(append(lines, ""), renderScore(m.session.Score())...)
	return strings.Join(lines, "\n")
}

func appendSection(lines []string, title string, items []string) []string {
	if len(items) == 0 {
		return lines
	}
	lines = append(lines, "", headingStyle.Render(title))
	for _, item := range items {
		lines = append(lines, "• "+item)
	}
	return lines
}

func renderScore(result ats.Result) []string {
	lines := []string{headingStyle.Render(fmt.Sprintf("ATS score: %d/%d", result.Total, ats.MaxScore))}
	for _, c := range result.Criteria {
		mark := failStyle.Render("✗")
		if c.Satisfied {
			mark = passStyle.Render("✓")
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", mark, c.Label, mutedStyle.Render(fmt.Sprintf("(%d/%d)", c.Points, c.Weight))))
	}
	return lines
}

func (m *Model) renderFooter() string {
	var status string
	switch {
	case m.err != nil:
		status = errorStyle.Render("Error: " + m.err.Error())
	case m.status != "":
		status = m.status
	}

	hints := []string{"ctrl+n next", "ctrl+p back", "alt+1-5 jump"}
	if m.session.IsTerminal() {
		hints = append(hints, "ctrl+s export")
	} else {
		hints = append(hints, "ctrl+s advance")
	}
	switch {
	case m.session.Step() == wizard.StepSkills:
		hints = append(hints, "enter add", "↑/↓ suggestion", "ctrl+d remove last")
	case m.isCollection():
		hints = append(hints, "tab field", "ctrl+a add", "ctrl+d remove", "pgup/pgdn entry")
	default:
		hints = append(hints, "tab field")
	}
	hints = append(hints, "esc quit")

	footer := footerHintsStyle.Render(strings.Join(hints, " · "))
	if status == "" {
		return footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, footer)
}
