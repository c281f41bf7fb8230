package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode is the run mode the user picked in the confirmation screen.
type Mode int

const (
	ModeCancelled Mode = iota
	ModeMetadata
	ModeCSV
	ModeCSVCaptions
)

// RunSettings holds the values shown to the user before a run starts.
type RunSettings struct {
	SourceFolder      string
	DestinationFolder string
	Model             string
	Author            string
}

// ConfirmModel is the TUI model for the pre-run confirmation screen.
// It shows the resolved settings and lets the user pick a run mode
// or back out before any file is touched.
type ConfirmModel struct {
	settings RunSettings

	choice   Mode
	quitting bool
}

// NewConfirmModel creates a confirmation model for the given settings.
func NewConfirmModel(settings RunSettings) ConfirmModel {
	return ConfirmModel{settings: settings}
}

// Choice returns the mode the user picked, or ModeCancelled.
func (m ConfirmModel) Choice() Mode {
	return m.choice
}

// Init implements tea.Model
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "1":
			m.choice = ModeMetadata
			m.quitting = true
			return m, tea.Quit

		case "2":
			m.choice = ModeCSV
			m.quitting = true
			return m, tea.Quit

		case "3":
			m.choice = ModeCSVCaptions
			m.quitting = true
			return m, tea.Quit

		case "n", "N", "q", "esc", "ctrl+c":
			m.choice = ModeCancelled
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model
func (m ConfirmModel) View() string {
	if m.quitting {
		return ""
	}

	var content strings.Builder

	content.WriteString(HeaderStyle.Render("ImageTagger - Confirm Run"))
	content.WriteString("\n\n")

	content.WriteString(m.renderSetting("Source folder", m.settings.SourceFolder))
	content.WriteString(m.renderSetting("Destination folder", m.settings.DestinationFolder))
	content.WriteString(m.renderSetting("Model", m.settings.Model))
	if m.settings.Author != "" {
		content.WriteString(m.renderSetting("Author", m.settings.Author))
	}

	content.WriteString("\n")
	content.WriteString(InfoStyle.Render("Choose a run mode:"))
	content.WriteString("\n\n")
	content.WriteString("  1  Write metadata into the images\n")
	content.WriteString("  2  Generate a CSV report (images untouched)\n")
	content.WriteString("  3  Generate a CSV report using existing captions\n")
	content.WriteString("\n")
	content.WriteString(WarningStyle.Render("Mode 1 rewrites image files."))
	content.WriteString("\n\n")
	content.WriteString("Press 1-3 to start, 'n' to cancel")

	return content.String()
}

func (m ConfirmModel) renderSetting(label, value string) string {
	return fmt.Sprintf("%s %s\n", LabelStyle.Render(label+":"), value)
}
