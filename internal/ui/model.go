package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nconklindev/gridloc/internal/converter"
	"github.com/nconklindev/gridloc/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateFilePicker state = iota
	stateMapping
	stateProcessing
	stateComplete
	stateError
)

// Options seeds the interactive session.
type Options struct {
	InputDir   string
	Extensions []string
	// Convert is the template for each run; InputFile and Progress are filled in.
	Convert converter.Options
}

type Model struct {
	state        state
	filepicker   filepicker.Model
	selectedFile string
	fileData     *types.FileData
	bindings     []types.ColumnBinding
	convertOpts  converter.Options
	result       *types.ConversionResult
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan conversionResultMsg
}

type conversionResultMsg struct {
	result *types.ConversionResult
	err    error
}

type fileLoadedMsg struct {
	data *types.FileData
	err  error
}

type conversionCompleteMsg struct {
	result *types.ConversionResult
	err    error
}

type progressMsg float64

type waitForProgressMsg struct{}

func InitialModel(opts Options) Model {
	fp := filepicker.New()
	fp.AllowedTypes = opts.Extensions
	fp.CurrentDirectory = opts.InputDir

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(accent)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(highlight)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(highlight)
	fp.Styles.File = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(muted)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(accent).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(muted)

	prog := progress.New(progress.WithGradient("#2E86DE", "#54A0FF"))

	return Model{
		state:       stateFilePicker,
		filepicker:  fp,
		convertOpts: opts.Convert,
		progress:    prog,
	}
}

// Result returns the finished conversion, if any.
func (m Model) Result() *types.ConversionResult {
	return m.result
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		height := msg.Height - 14
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateMapping:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "esc", "b":
				m.state = stateFilePicker
				m.fileData = nil
				m.bindings = nil
				return m, nil
			case "enter":
				m.state = stateProcessing
				return m.convertFile()
			}

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case fileLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		columns := m.columns()
		if width, need := msg.data.Width(), columns.Width(); width < need {
			m.err = fmt.Errorf("%w: found %d, need at least %d", converter.ErrInsufficientColumns, width, need)
			m.state = stateError
			return m, nil
		}
		m.fileData = msg.data
		m.bindings = columns.Bindings(msg.data.Headers)
		m.state = stateMapping
		return m, nil

	case conversionCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == stateFilePicker {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			return m, m.loadFile(path)
		}

		return m, cmd
	}

	return m, nil
}

func (m Model) columns() converter.ColumnMap {
	if m.convertOpts.Columns == (converter.ColumnMap{}) {
		return converter.DefaultColumns
	}
	return m.convertOpts.Columns
}

func (m Model) loadFile(path string) tea.Cmd {
	sheet := m.convertOpts.Sheet
	return func() tea.Msg {
		data, err := converter.ReadFileData(path, sheet)
		return fileLoadedMsg{data: data, err: err}
	}
}

func (m Model) convertFile() (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan conversionResultMsg, 1)

	opts := m.convertOpts
	opts.InputFile = m.selectedFile
	opts.Progress = m.progressChan

	progressChan := m.progressChan
	resultChan := m.resultChan

	cmd := tea.Batch(
		func() tea.Msg {
			go func() {
				result, err := converter.Convert(opts)

				resultChan <- conversionResultMsg{result: result, err: err}

				close(progressChan)
				close(resultChan)
			}()

			return waitForProgressMsg{}
		},
		waitForProgress(progressChan, resultChan),
		m.progress.Init(),
	)

	return m, cmd
}

func waitForProgress(progressChan chan float64, resultChan chan conversionResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			res, ok := <-resultChan
			if ok {
				return conversionCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateFilePicker:
		return m.viewFilePicker()
	case stateMapping:
		return m.viewMapping()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("🗺  gridloc - KMA grid to JSON"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("Select a spreadsheet (%s)", strings.Join(m.filepicker.AllowedTypes, ", "))))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewMapping() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Column Mapping"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(fmt.Sprintf("File: %s  Sheet: %s  Rows: %d",
		filepath.Base(m.selectedFile), sheetLabel(m.fileData.Sheet), len(m.fileData.Rows))))
	s.WriteString("\n\n")

	var sample []string
	if len(m.fileData.Rows) > 0 {
		sample = m.fileData.Rows[0]
	}

	for _, b := range m.bindings {
		line := fmt.Sprintf("%-13s col %2d  %-14s", b.Field, b.Index, b.Header)
		if b.Header == "" {
			s.WriteString(UnselectedStyle.Render(line + " (no header)"))
		} else {
			s.WriteString(CheckedStyle.Render(line))
		}
		if v := columnSample(sample, b.Index); v != "" {
			s.WriteString(HelpInlineStyle.Render("  e.g. " + v))
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter: convert • esc: back • q: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Processing..."))
	s.WriteString("\n\n")
	s.WriteString("Validating rows and writing location JSON...")
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ Conversion Complete!"))
	s.WriteString("\n\n")
	s.WriteString(RenderSummary(m.result, m.width-20))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press enter to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.err.Error())
	if errors.Is(m.err, converter.ErrInsufficientColumns) {
		s.WriteString("\n\n")
		s.WriteString(SubtitleStyle.Render("The sheet does not match the KMA grid layout."))
	}
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press enter to exit"))

	return BoxStyle.Render(s.String())
}

func sheetLabel(name string) string {
	if name == "" {
		return "-"
	}
	return name
}

func columnSample(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
