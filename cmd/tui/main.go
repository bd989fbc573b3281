package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/aacdash/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/aacdash/internal/app"
	"github.com/MrJamesThe3rd/aacdash/internal/config"
	"github.com/MrJamesThe3rd/aacdash/internal/logging"
	"github.com/MrJamesThe3rd/aacdash/internal/report"
)

type model struct {
	appName       string
	reportService *report.Service

	// current is -1 on the menu, otherwise an index into report.Pages().
	current  int
	pageView view.View
	size     tea.WindowSizeMsg
}

func initialModel(appName string, svc *report.Service) model {
	return model{
		appName:       appName,
		reportService: svc,
		current:       -1,
	}
}

// openLogOutput returns the sink for TUI logs. The terminal belongs to the
// UI, so logs are discarded unless a file is configured.
func openLogOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{io.Discard}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.size = msg
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current < 0 {
			switch key := msg.String(); key {
			case "q":
				return m, tea.Quit
			case "1", "2", "3", "4":
				m.current = int(key[0] - '1')
				m.pageView = view.NewPageModel(m.reportService, report.Pages()[m.current])

				cmds := []tea.Cmd{m.pageView.Init()}
				if size := m.size; size.Width > 0 {
					cmds = append(cmds, func() tea.Msg { return size })
				}

				return m, tea.Batch(cmds...)
			}

			return m, nil
		}
	case view.BackMsg:
		m.current = -1
		return m, nil
	}

	if m.current < 0 {
		return m, nil
	}

	newModel, cmd := m.pageView.Update(msg)
	m.pageView = newModel.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.current >= 0 {
		return m.pageView.View()
	}

	var sb strings.Builder

	sb.WriteString(m.appName + "\n\n")

	for i, p := range report.Pages() {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p.Title())
	}

	sb.WriteString("\nq. Quit")

	return lipgloss.NewStyle().Padding(2).Render(sb.String())
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logOut, err := openLogOutput(cfg.Log.File)
	if err != nil {
		return err
	}
	defer logOut.Close()

	if err := logging.Setup(logOut, cfg.Log.Level, cfg.Log.Format); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	svc, err := app.Report(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}

	p := tea.NewProgram(initialModel(cfg.App.Name, svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
