package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/aacdash/internal/report"
)

type pageState int

const (
	pageStateBrowse pageState = iota
	pageStatePickCluster
)

// PageModel shows one rendered report page in a scrollable viewport. On the
// Results page a cluster can be picked to append its profile.
type PageModel struct {
	CommonModel
	svc  *report.Service
	page report.Page

	state    pageState
	viewport viewport.Model
	content  *report.Content
	cluster  *report.Section
	form     *huh.Form
	selected *int
	err      error
}

func NewPageModel(svc *report.Service, page report.Page) PageModel {
	return PageModel{
		CommonModel: CommonModel{Width: defaultWidth, Height: 30},
		svc:         svc,
		page:        page,
		viewport:    viewport.New(defaultWidth, 30),
		selected:    new(int),
	}
}

func (m PageModel) Title() string { return m.page.Title() }

func (m PageModel) ShortHelp() string {
	switch {
	case m.state == pageStatePickCluster:
		return "Enter: show cluster | Esc: cancel"
	case m.page == report.PageResults:
		return "Esc: back | ↑/↓: scroll | c: cluster detail"
	}

	return "Esc: back | ↑/↓: scroll"
}

type pageLoadedMsg struct {
	content *report.Content
	err     error
}

func (m PageModel) Init() tea.Cmd {
	return func() tea.Msg {
		content, err := m.svc.Page(m.page)
		return pageLoadedMsg{content: content, err: err}
	}
}

func (m PageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		m.content, m.err = msg.content, msg.err
		m.refresh()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 5)
		m.refresh()

		return m, nil
	}

	if m.state == pageStatePickCluster {
		return m.updatePick(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			return m, Back
		case "c":
			if m.page == report.PageResults && m.content != nil {
				return m.enterPick()
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)

	return m, cmd
}

func (m PageModel) enterPick() (tea.Model, tea.Cmd) {
	clusters := m.svc.Clusters()
	if len(clusters) == 0 {
		return m, nil
	}

	opts := make([]huh.Option[int], len(clusters))
	for i, c := range clusters {
		opts[i] = huh.NewOption(fmt.Sprintf("Cluster %d (%d customers)", c.Cluster, c.Customers), c.Cluster)
	}

	*m.selected = clusters[0].Cluster
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Cluster").
				Options(opts...).
				Value(m.selected),
		),
	).WithWidth(50).WithShowHelp(false)
	m.state = pageStatePickCluster

	return m, m.form.Init()
}

func (m PageModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = pageStateBrowse
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.cluster, m.err = m.svc.Cluster(*m.selected)
	m.state = pageStateBrowse
	m.form = nil
	m.refresh()
	m.viewport.GotoBottom()

	return m, nil
}

func (m *PageModel) refresh() {
	var sb strings.Builder

	if m.content != nil {
		sb.WriteString(renderContent(m.content, m.Width))
	}

	if m.cluster != nil {
		sb.WriteString("\n")
		sb.WriteString(renderSection(*m.cluster, m.Width))
	}

	m.viewport.SetContent(sb.String())
}

func (m PageModel) View() string {
	title := lipgloss.NewStyle().Bold(true).Render(m.Title())
	help := labelStyle.Render(m.ShortHelp())

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", errorStyle.Render(fmt.Sprintf("Error: %v", m.err)), "", help),
		)
	}

	if m.content == nil {
		return lipgloss.NewStyle().Padding(1).Render("Loading...")
	}

	if m.state == pageStatePickCluster {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View(), "", help),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, m.viewport.View(), help)
}
