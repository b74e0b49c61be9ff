package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emalab/ema8314/internal/device"
	"github.com/emalab/ema8314/internal/protocol"
)

// snapshot is one full read of the device state shown by the dashboard.
type snapshot struct {
	Firmware       string
	Temps          [protocol.NumChannels]device.Measurement
	Broken         [protocol.NumChannels]bool
	Outputs        [protocol.NumChannels]bool
	ControlEnabled bool
}

// Message types for the refresh cycle. The device answers one request at a
// time, so exactly one refresh is ever in flight: tick schedules a refresh,
// the refresh result schedules the next tick.
type tickMsg time.Time

type refreshMsg struct {
	snap snapshot
	err  error
}

// watchKeyMap defines key bindings for the watch screen
type watchKeyMap struct {
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Refresh, k.Quit}}
}

// WatchModel is the live channel dashboard: a table of the four channels
// refreshed on a fixed interval.
type WatchModel struct {
	Client   *device.Client
	Device   string
	Interval time.Duration

	// UI state
	Width       int
	Height      int
	Spinner     spinner.Model
	Refreshing  bool
	Snap        *snapshot
	LastErr     error
	LastUpdated time.Time

	Help help.Model
	Keys watchKeyMap
}

// NewWatchModel creates the dashboard for an open client. device is the
// remote address shown in the header.
func NewWatchModel(client *device.Client, deviceAddr string, interval time.Duration) WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	keys := watchKeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	return WatchModel{
		Client:     client,
		Device:     deviceAddr,
		Interval:   interval,
		Spinner:    s,
		Refreshing: true,
		Help:       help.New(),
		Keys:       keys,
	}
}

// Init kicks off the spinner and the first refresh.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, m.refreshCmd())
}

// refreshCmd reads the full dashboard state in one sequential pass.
func (m WatchModel) refreshCmd() tea.Cmd {
	client := m.Client
	return func() tea.Msg {
		var snap snapshot
		var err error

		if snap.Firmware, err = client.FirmwareVersion(); err != nil {
			return refreshMsg{err: err}
		}
		if snap.Broken, err = client.SensorStatus(); err != nil {
			return refreshMsg{err: err}
		}
		if snap.Temps, err = client.AllTemperatures(); err != nil {
			return refreshMsg{err: err}
		}
		if snap.Outputs, err = client.Outputs(); err != nil {
			return refreshMsg{err: err}
		}
		if snap.ControlEnabled, err = client.ControlEnabled(); err != nil {
			return refreshMsg{err: err}
		}
		return refreshMsg{snap: snap}
	}
}

// Update handles messages and updates the model
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Refresh):
			if m.Refreshing {
				return m, nil
			}
			m.Refreshing = true
			return m, m.refreshCmd()
		}
		return m, nil

	case refreshMsg:
		m.Refreshing = false
		if msg.err != nil {
			// Keep the last good snapshot on screen; the banner shows the
			// failure and the next tick retries.
			m.LastErr = msg.err
		} else {
			snap := msg.snap
			m.Snap = &snap
			m.LastErr = nil
			m.LastUpdated = time.Now()
		}
		return m, tea.Tick(m.Interval, func(t time.Time) tea.Msg {
			return tickMsg(t)
		})

	case tickMsg:
		if m.Refreshing {
			return m, nil
		}
		m.Refreshing = true
		return m, m.refreshCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard
func (m WatchModel) View() string {
	title := TitleStyle.Render("EMA8314 WATCH")
	subtitle := SubtitleStyle.Render(m.Device)
	header := lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", subtitle)

	var body string
	if m.Snap == nil {
		body = BoxStyle.Render(fmt.Sprintf("%s Connecting to device...", m.Spinner.View()))
	} else {
		body = BoxStyle.Render(m.renderTable())
	}

	sections := []string{header, body}

	if m.LastErr != nil {
		sections = append(sections, ErrorStyle.Render(fmt.Sprintf("✗ %v", m.LastErr)))
	}

	status := m.renderStatusLine()
	sections = append(sections, status, m.Help.View(m.Keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m WatchModel) renderTable() string {
	snap := m.Snap

	rows := []string{
		HeaderStyle.Render(fmt.Sprintf("%-4s %12s %-14s %-7s", "CH", "TEMP", "SENSOR", "OUTPUT")),
	}
	for ch := 0; ch < protocol.NumChannels; ch++ {
		var temp, sensor string
		if snap.Broken[ch] {
			temp = BrokenStyle.Render(fmt.Sprintf("%12s", "---"))
			sensor = BrokenStyle.Render(fmt.Sprintf("%-14s", "disconnected"))
		} else {
			temp = ValueStyle.Render(fmt.Sprintf("%12s", snap.Temps[ch].String()))
			sensor = ValueStyle.Render(fmt.Sprintf("%-14s", "connected"))
		}

		var output string
		if snap.Outputs[ch] {
			output = OnStyle.Render(fmt.Sprintf("%-7s", "ON"))
		} else {
			output = OffStyle.Render(fmt.Sprintf("%-7s", "off"))
		}

		row := fmt.Sprintf("%-4d ", ch) + temp + " " + sensor + " " + output
		rows = append(rows, row)
	}

	control := "control: disabled"
	if snap.ControlEnabled {
		control = "control: enabled"
	}
	footer := SubtitleStyle.Render(fmt.Sprintf("fw %s · %s", snap.Firmware, control))

	rows = append(rows, "", footer)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m WatchModel) renderStatusLine() string {
	if m.Refreshing {
		return HelpStyle.Render(fmt.Sprintf("%s refreshing...", m.Spinner.View()))
	}
	if !m.LastUpdated.IsZero() {
		return HelpStyle.Render("updated " + m.LastUpdated.Format("15:04:05"))
	}
	return ""
}
