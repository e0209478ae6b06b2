// Package ui is the terminal client for the blackjack table.
package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/blackjack/internal/transport"
	"github.com/palemoky/blackjack/internal/ui/handler"
	"github.com/palemoky/blackjack/internal/ui/input"
	"github.com/palemoky/blackjack/internal/ui/model"
	"github.com/palemoky/blackjack/internal/ui/view"
)

// OnlineModel 联网牌桌的 model
type OnlineModel struct {
	client *transport.Client
	phase  model.Phase
	error  string
	table  *model.Table

	// UI 组件
	input  *textinput.Model
	width  int
	height int
}

// NewOnlineModel 创建联网模式 model
func NewOnlineModel(c *transport.Client) *OnlineModel {
	ti := textinput.New()
	ti.Placeholder = "join NAME [CHIPS]"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Prompt = "> "
	ti.Focus()

	return &OnlineModel{
		client: c,
		phase:  model.PhaseConnecting,
		table:  model.NewTable(),
		input:  &ti,
	}
}

// --- model.Model ---

func (m *OnlineModel) Phase() model.Phase { return m.phase }
func (m *OnlineModel) SetPhase(p model.Phase) { m.phase = p }
func (m *OnlineModel) Client() *transport.Client { return m.client }
func (m *OnlineModel) Input() *textinput.Model { return m.input }
func (m *OnlineModel) Width() int { return m.width }
func (m *OnlineModel) Height() int { return m.height }
func (m *OnlineModel) Table() *model.Table { return m.table }
func (m *OnlineModel) SetError(msg string) { m.error = msg }
func (m *OnlineModel) Error() string { return m.error }

// --- tea.Model ---

func (m *OnlineModel) Init() tea.Cmd {
	return tea.Batch(
		m.connectToServer(),
		textinput.Blink,
	)
}

// connectToServer 连接服务器
func (m *OnlineModel) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return model.ConnectionErrorMsg{Err: err}
		}
		return model.ConnectedMsg{}
	}
}

// listenForMessages 监听服务器消息
func (m *OnlineModel) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.client.Receive():
			return model.ServerMessage{Msg: msg}
		case <-m.client.Done():
			return model.ConnectionErrorMsg{Err: transport.ErrClosed}
		}
	}
}

func (m *OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.client.Close()
			return m, tea.Quit
		case tea.KeyEnter:
			if m.phase == model.PhaseConnecting || m.phase == model.PhaseDisconnected {
				return m, nil
			}
			return m, input.HandleEnter(m)
		}

	case model.ConnectedMsg:
		return m, m.listenForMessages()

	case model.ConnectionErrorMsg:
		m.phase = model.PhaseDisconnected
		m.error = msg.Err.Error()
		return m, nil

	case model.ServerMessage:
		cmds = append(cmds, handler.HandleServerMessage(m, msg.Msg), m.listenForMessages())
		m.updatePlaceholder()
		return m, tea.Batch(cmds...)

	case model.ClearErrorMsg:
		if m.phase != model.PhaseDisconnected {
			m.error = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	*m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// updatePlaceholder 输入框占位符跟随阶段提示
func (m *OnlineModel) updatePlaceholder() {
	if hint := input.Hint(m.phase, m.table); hint != "" {
		m.input.Placeholder = hint
	}
}

func (m *OnlineModel) View() string {
	return view.Render(m)
}
