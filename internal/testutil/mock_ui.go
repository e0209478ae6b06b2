//go:build !production

package testutil

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/palemoky/blackjack/internal/transport"
	"github.com/palemoky/blackjack/internal/ui/model"
)

// UIModel 实现 model.Model 的内存版本，供 handler/view 测试使用
type UIModel struct {
	phase  model.Phase
	client *transport.Client
	input  textinput.Model
	table  *model.Table
	err    string
	width  int
	height int
}

// NewUIModel 创建测试用 UI model
func NewUIModel(client *transport.Client) *UIModel {
	return &UIModel{
		client: client,
		input:  textinput.New(),
		table:  model.NewTable(),
		width:  80,
		height: 24,
	}
}

func (m *UIModel) Phase() model.Phase { return m.phase }
func (m *UIModel) SetPhase(p model.Phase) { m.phase = p }
func (m *UIModel) Client() *transport.Client { return m.client }
func (m *UIModel) Input() *textinput.Model { return &m.input }
func (m *UIModel) Width() int { return m.width }
func (m *UIModel) Height() int { return m.height }
func (m *UIModel) Table() *model.Table { return m.table }
func (m *UIModel) SetError(msg string) { m.err = msg }
func (m *UIModel) Error() string { return m.err }
