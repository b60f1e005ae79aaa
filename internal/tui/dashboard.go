package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wakehub/wakehub/internal/probe"
	"github.com/wakehub/wakehub/internal/registry"
	"github.com/wakehub/wakehub/internal/ui"
	"github.com/wakehub/wakehub/internal/wol"
)

// Message types for async operations
type statusesMsg struct {
	statuses []probe.DeviceStatus
}

type wakeResultMsg struct {
	mac string
	err error
}

// dashboardKeyMap defines key bindings for the dashboard
type dashboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Wake    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Wake, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh, k.Wake},
		{k.Help, k.Quit},
	}
}

var dashboardKeys = dashboardKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "move down"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh status"),
	),
	Wake: key.NewBinding(
		key.WithKeys("enter", "w"),
		key.WithHelp("enter/w", "wake device"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Model is the dashboard TUI model. It shows every registered device with
// its live status and lets the user trigger wakes and refreshes.
type Model struct {
	store    *registry.Store
	pool     *probe.Pool
	sender   *wol.Sender
	wakePort int

	devices  []registry.Device
	statuses map[string]probe.DeviceStatus

	cursor   int
	probing  bool
	message  string
	width    int
	showHelp bool

	keys    dashboardKeyMap
	help    help.Model
	spinner spinner.Model
}

// New creates a dashboard over an opened registry.
func New(store *registry.Store, pool *probe.Pool, wakePort int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ui.PrimaryColor)

	return Model{
		store:    store,
		pool:     pool,
		sender:   wol.NewSender(),
		wakePort: wakePort,
		devices:  store.List(),
		statuses: make(map[string]probe.DeviceStatus),
		keys:     dashboardKeys,
		help:     help.New(),
		spinner:  sp,
	}
}

// Init starts the spinner and kicks off the first status refresh.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

// refreshCmd probes every device in the background.
func (m Model) refreshCmd() tea.Cmd {
	devices := m.devices
	pool := m.pool
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return statusesMsg{statuses: pool.ProbeAll(ctx, devices)}
	}
}

// wakeCmd sends a magic packet to the selected device in the background.
func (m Model) wakeCmd(device registry.Device) tea.Cmd {
	sender := m.sender
	port := m.wakePort
	return func() tea.Msg {
		return wakeResultMsg{
			mac: device.MAC,
			err: sender.Send(device.MAC, device.BroadcastIP, port),
		}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.devices)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			if m.probing {
				return m, nil
			}
			m.devices = m.store.List()
			if m.cursor >= len(m.devices) && m.cursor > 0 {
				m.cursor = len(m.devices) - 1
			}
			m.probing = true
			m.message = ""
			return m, m.refreshCmd()

		case key.Matches(msg, m.keys.Wake):
			if len(m.devices) == 0 {
				return m, nil
			}
			device := m.devices[m.cursor]
			m.message = fmt.Sprintf("Waking %s...", device.MAC)
			return m, m.wakeCmd(device)
		}

	case statusesMsg:
		m.probing = false
		for _, s := range msg.statuses {
			m.statuses[s.MAC] = s
		}
		return m, nil

	case wakeResultMsg:
		if msg.err != nil {
			m.message = ui.ErrorStyle.Render(fmt.Sprintf("Wake failed for %s: %v", msg.mac, msg.err))
		} else {
			m.message = fmt.Sprintf("Magic packet sent to %s", msg.mac)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	title := ui.HeaderStyle.Render("wakehub dashboard")
	if m.probing {
		title += "  " + m.spinner.View() + ui.MutedStyle.Render("probing...")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	if len(m.devices) == 0 {
		b.WriteString(ui.MutedStyle.Render("No devices registered. Use 'wakehub device add' first."))
		b.WriteString("\n")
	} else {
		header := fmt.Sprintf("  %-19s %-16s %-8s %-9s %s", "MAC", "IP", "STATUS", "LATENCY", "REMARK")
		b.WriteString(ui.MutedStyle.Render(header))
		b.WriteByte('\n')

		for i, d := range m.devices {
			cursor := "  "
			if i == m.cursor {
				cursor = ui.HeaderStyle.Render("> ")
			}

			status := ui.OfflineStyle.Render("offline ")
			latency := "-"
			if s, ok := m.statuses[d.MAC]; ok && s.Online {
				status = ui.OnlineStyle.Render("online  ")
				if s.Latency != nil {
					latency = fmt.Sprintf("%d ms", *s.Latency)
				}
			}

			b.WriteString(fmt.Sprintf("%s%-19s %-16s %s %-9s %s\n",
				cursor, d.MAC, orDash(d.IP), status, latency, d.Remark))
		}
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(m.message)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.showHelp {
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	b.WriteString("\n")

	return b.String()
}

// Run starts the dashboard and blocks until the user quits.
func Run(store *registry.Store, pool *probe.Pool, wakePort int) error {
	program := tea.NewProgram(New(store, pool, wakePort), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
