package tui

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"xlcompare/internal/compare"
	"xlcompare/internal/config"
	"xlcompare/internal/excel"
	"xlcompare/internal/logger"
	"xlcompare/internal/mapping"
	"xlcompare/internal/report"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// UI States
type state int

const (
	statePickSource state = iota
	statePickDerived
	stateReportName
	stateRunning
	stateResults
)

// comparisonDoneMsg carries the outcome of a comparison run back into the
// event loop.
type comparisonDoneMsg struct {
	result     *compare.Result
	reportPath string
	err        error
}

// Model represents the TUI model
type model struct {
	cfg *config.Config

	// File picker
	files   []string
	scanErr error
	cursor  int
	page    int
	perPage int

	// Selections
	sourcePath  string
	derivedPath string
	reportName  string

	// UI state
	state state

	// Result of the last run
	result     *compare.Result
	reportPath string
	runErr     error

	// Screen dimensions
	width  int
	height int

	// Styling
	titleStyle    lipgloss.Style
	selectedStyle lipgloss.Style
	normalStyle   lipgloss.Style
	helpStyle     lipgloss.Style
	statusStyle   lipgloss.Style
	passStyle     lipgloss.Style
	failStyle     lipgloss.Style
	pathStyle     lipgloss.Style
}

// Initialize the model with config
func initialModel(cfg *config.Config) model {
	m := model{
		cfg:        cfg,
		state:      statePickSource,
		perPage:    cfg.RowsPerPage,
		reportName: fmt.Sprintf("Comparison_%s.xlsx", time.Now().Format("20060102_150405")),
	}
	m.applyTheme(cfg.Theme)
	m.rescan()
	return m
}

func (m *model) applyTheme(theme string) {
	// Dark is the default; the light variant just swaps the body colors so
	// text stays readable on a white terminal.
	bodyColor := lipgloss.Color("252")
	helpColor := lipgloss.Color("241")
	if theme == "light" {
		bodyColor = lipgloss.Color("235")
		helpColor = lipgloss.Color("245")
	}

	m.titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		Align(lipgloss.Center)
	m.selectedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("170")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)
	m.normalStyle = lipgloss.NewStyle().
		Foreground(bodyColor).
		Padding(0, 1)
	m.helpStyle = lipgloss.NewStyle().
		Foreground(helpColor)
	m.statusStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)
	m.passStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("40")).
		Bold(true)
	m.failStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196")).
		Bold(true)
	m.pathStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("39"))
}

// rescan refreshes the workbook file list from the configured input
// directory.
func (m *model) rescan() {
	m.files, m.scanErr = listWorkbooks(m.cfg.InputDirectory)
	m.cursor = 0
	m.page = 0
}

// listWorkbooks returns the Excel files in a directory, sorted by name.
func listWorkbooks(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %v", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		// Skip Excel lock files
		if strings.HasPrefix(name, "~$") {
			continue
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".xlsx", ".xlsm", ".xltx", ".xltm":
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Adjust list items per page based on height
		m.perPage = m.height - 8
		if m.perPage < 5 {
			m.perPage = 5
		}
	case comparisonDoneMsg:
		m.result = msg.result
		m.reportPath = msg.reportPath
		m.runErr = msg.err
		m.state = stateResults
	case tea.KeyMsg:
		switch m.state {
		case statePickSource, statePickDerived:
			return m.updatePicker(msg)
		case stateReportName:
			return m.updateReportName(msg)
		case stateResults:
			return m.updateResults(msg)
		}
	}
	return m, nil
}

func (m model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "esc":
		if m.state == statePickDerived {
			m.state = statePickSource
			m.derivedPath = ""
		}

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		} else if m.page > 0 {
			m.page--
			m.cursor = m.perPage - 1
		}

	case "down", "j":
		if m.cursor < m.maxCursor() {
			m.cursor++
		} else if m.hasNextPage() {
			m.page++
			m.cursor = 0
		}

	case "left", "h":
		if m.page > 0 {
			m.page--
			m.cursor = 0
		}

	case "right", "l":
		if m.hasNextPage() {
			m.page++
			m.cursor = 0
		}

	case "r":
		m.rescan()

	case "enter":
		idx := m.page*m.perPage + m.cursor
		if idx < len(m.files) {
			if m.state == statePickSource {
				m.sourcePath = m.files[idx]
				m.state = statePickDerived
				m.cursor = 0
				m.page = 0
			} else {
				m.derivedPath = m.files[idx]
				m.state = stateReportName
			}
		}
	}
	return m, nil
}

func (m model) updateReportName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = statePickDerived
		return m, nil
	case "enter":
		m.state = stateRunning
		return m, m.runComparison()
	case "backspace":
		if len(m.reportName) > 0 {
			m.reportName = m.reportName[:len(m.reportName)-1]
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes {
		m.reportName += string(msg.Runes)
	} else if msg.Type == tea.KeySpace {
		m.reportName += " "
	}
	return m, nil
}

func (m model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "o":
		if m.reportPath != "" {
			openFolder(filepath.Dir(m.reportPath))
		}
	case "n":
		// Start over
		m.result = nil
		m.reportPath = ""
		m.runErr = nil
		m.sourcePath = ""
		m.derivedPath = ""
		m.reportName = fmt.Sprintf("Comparison_%s.xlsx", time.Now().Format("20060102_150405"))
		m.state = statePickSource
		m.rescan()
	}
	return m, nil
}

// runComparison performs the whole load → compare → write pass as a single
// synchronous command.
func (m model) runComparison() tea.Cmd {
	cfg := m.cfg
	sourcePath := m.sourcePath
	derivedPath := m.derivedPath
	reportName := m.reportName

	return func() tea.Msg {
		source, err := excel.LoadWorkbook(sourcePath)
		if err != nil {
			return comparisonDoneMsg{err: fmt.Errorf("failed to load source workbook: %v", err)}
		}
		derived, err := excel.LoadWorkbook(derivedPath)
		if err != nil {
			return comparisonDoneMsg{err: fmt.Errorf("failed to load derived workbook: %v", err)}
		}

		opts := compare.Options{NumericTolerance: cfg.NumericTolerance}
		if mc, err := mapping.LoadFromFile(cfg.MappingFile); err == nil {
			opts.Mapping = mc
		}

		result := compare.Workbooks(source, derived, opts)

		reportPath, err := cfg.ReportPath(reportName)
		if err != nil {
			return comparisonDoneMsg{result: result, err: err}
		}
		if err := report.Write(reportPath, result); err != nil {
			return comparisonDoneMsg{result: result, err: err}
		}

		return comparisonDoneMsg{result: result, reportPath: reportPath}
	}
}

func (m model) maxCursor() int {
	itemsOnPage := len(m.files) - m.page*m.perPage
	if itemsOnPage > m.perPage {
		return m.perPage - 1
	}
	return itemsOnPage - 1
}

func (m model) hasNextPage() bool {
	return (m.page+1)*m.perPage < len(m.files)
}

func (m model) View() string {
	switch m.state {
	case statePickSource, statePickDerived:
		return m.viewPicker()
	case stateReportName:
		return m.viewReportName()
	case stateRunning:
		return m.viewRunning()
	case stateResults:
		return m.viewResults()
	}
	return ""
}

func (m model) viewPicker() string {
	var b strings.Builder

	title := "Select SOURCE workbook (source of truth)"
	if m.state == statePickDerived {
		title = "Select DERIVED workbook (rebuilt report)"
	}
	b.WriteString(m.titleStyle.Width(m.width).Render("Excel Workbook Comparator"))
	b.WriteString("\n\n")
	b.WriteString(m.statusStyle.Render(title))
	b.WriteString("\n")

	if m.sourcePath != "" {
		b.WriteString(m.helpStyle.Render("Source: "))
		b.WriteString(m.pathStyle.Render(m.sourcePath))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.scanErr != nil {
		b.WriteString(m.failStyle.Render(fmt.Sprintf("Error: %v", m.scanErr)))
		b.WriteString("\n\n")
		b.WriteString(m.helpStyle.Render("r: rescan | q: quit"))
		return b.String()
	}

	if len(m.files) == 0 {
		b.WriteString(m.normalStyle.Render(fmt.Sprintf("No Excel files found in %s", m.cfg.InputDirectory)))
		b.WriteString("\n\n")
		b.WriteString(m.helpStyle.Render("r: rescan | q: quit"))
		return b.String()
	}

	totalPages := int(math.Ceil(float64(len(m.files)) / float64(m.perPage)))
	b.WriteString(m.helpStyle.Render(fmt.Sprintf("Page %d/%d", m.page+1, totalPages)))
	b.WriteString("\n\n")

	start := m.page * m.perPage
	end := start + m.perPage
	if end > len(m.files) {
		end = len(m.files)
	}

	for i := start; i < end; i++ {
		name := filepath.Base(m.files[i])
		if i-start == m.cursor {
			b.WriteString(m.selectedStyle.Render("> " + name))
		} else {
			b.WriteString(m.normalStyle.Render("  " + name))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "↑↓: navigate | ←→: prev/next page | Enter: select | r: rescan | q: quit"
	if m.state == statePickDerived {
		help += " | Esc: back"
	}
	b.WriteString(m.helpStyle.Render(help))

	return b.String()
}

func (m model) viewReportName() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Width(m.width).Render("Excel Workbook Comparator"))
	b.WriteString("\n\n")
	b.WriteString(m.helpStyle.Render("Source:  "))
	b.WriteString(m.pathStyle.Render(m.sourcePath))
	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("Derived: "))
	b.WriteString(m.pathStyle.Render(m.derivedPath))
	b.WriteString("\n\n")

	b.WriteString(m.statusStyle.Render("Report file name:"))
	b.WriteString("\n\n")
	b.WriteString(m.selectedStyle.Render(m.reportName + "█"))
	b.WriteString("\n\n")
	b.WriteString(m.helpStyle.Render("Enter: compare | Esc: back | Ctrl+C: quit"))

	return b.String()
}

func (m model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Width(m.width).Render("Excel Workbook Comparator"))
	b.WriteString("\n\n")
	b.WriteString(m.statusStyle.Render("Comparing workbooks..."))
	b.WriteString("\n\n")
	b.WriteString(m.helpStyle.Render(fmt.Sprintf("%s  vs  %s",
		filepath.Base(m.sourcePath), filepath.Base(m.derivedPath))))

	return b.String()
}

// maxIssuesShown caps how many issues the results view lists in total,
// across all sections. The report always holds the full set.
const maxIssuesShown = 200

func (m model) viewResults() string {
	var b strings.Builder

	b.WriteString(m.titleStyle.Width(m.width).Render("Excel Workbook Comparator"))
	b.WriteString("\n\n")

	if m.runErr != nil {
		b.WriteString(m.failStyle.Render(fmt.Sprintf("❌ Comparison failed: %v", m.runErr)))
		b.WriteString("\n\n")
		b.WriteString(m.helpStyle.Render("n: new comparison | q: quit"))
		return b.String()
	}

	s := m.result.Summary
	if s.AllMatched {
		b.WriteString(m.passStyle.Render("✅ All checks passed. No mismatches found."))
	} else {
		b.WriteString(m.failStyle.Render("⚠ Mismatches found."))
	}
	b.WriteString("\n\n")

	b.WriteString(m.statusStyle.Render("--- Summary ---"))
	b.WriteString("\n")
	b.WriteString(m.normalStyle.Render(fmt.Sprintf("Structure issues: %d", s.StructureIssueCount)))
	b.WriteString("\n")
	b.WriteString(m.normalStyle.Render(fmt.Sprintf("Dtype issues:     %d", s.DtypeIssueCount)))
	b.WriteString("\n")
	b.WriteString(m.normalStyle.Render(fmt.Sprintf("Value mismatches: %d", s.ValueMismatchCount)))
	b.WriteString("\n")

	// Sections share one display budget; once it runs out the remaining
	// count is summarized and later sections are skipped.
	total := s.StructureIssueCount + s.DtypeIssueCount + s.ValueMismatchCount
	shown := 0
	writeSection := func(title string, lines []string) bool {
		if len(lines) == 0 {
			return true
		}
		b.WriteString("\n")
		b.WriteString(m.statusStyle.Render(title))
		b.WriteString("\n")
		for _, line := range lines {
			if shown >= maxIssuesShown {
				b.WriteString(m.helpStyle.Render(fmt.Sprintf("  ... and %d more (see report)", total-shown)))
				b.WriteString("\n")
				return false
			}
			b.WriteString(m.normalStyle.Render(line))
			b.WriteString("\n")
			shown++
		}
		return true
	}

	structureLines := make([]string, 0, len(m.result.StructureIssues))
	for _, issue := range m.result.StructureIssues {
		structureLines = append(structureLines,
			fmt.Sprintf("- [%s] %s: %s", issue.Sheet, issue.Issue, issue.Detail))
	}
	dtypeLines := make([]string, 0, len(m.result.DtypeIssues))
	for _, issue := range m.result.DtypeIssues {
		dtypeLines = append(dtypeLines,
			fmt.Sprintf("- [%s] %s: source=%s vs derived=%s",
				issue.Sheet, issue.Column, issue.SourceType, issue.DerivedType))
	}
	mismatchLines := make([]string, 0, len(m.result.ValueMismatches))
	for _, vm := range m.result.ValueMismatches {
		mismatchLines = append(mismatchLines,
			fmt.Sprintf("- [%s] Row %d, Col '%s': source='%s' vs derived='%s'",
				vm.Sheet, vm.Row, vm.Column, vm.SourceValue, vm.DerivedValue))
	}

	if writeSection("[Structure Issues]", structureLines) {
		if writeSection("[Data Type Issues]", dtypeLines) {
			writeSection("[Value Mismatches]", mismatchLines)
		}
	}

	if m.reportPath != "" {
		b.WriteString("\n")
		b.WriteString(m.helpStyle.Render("Report saved at: "))
		b.WriteString(m.pathStyle.Render(m.reportPath))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.helpStyle.Render("o: open report folder | n: new comparison | q: quit"))

	return b.String()
}

// Run starts the interactive comparison interface.
func Run(cfg *config.Config) error {
	logger.Info("Starting TUI", "input_directory", cfg.InputDirectory, "theme", cfg.Theme)

	p := tea.NewProgram(initialModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %v", err)
	}
	return nil
}
