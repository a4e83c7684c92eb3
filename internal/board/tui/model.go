// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ecodeclub/board/internal/board"
	"github.com/gotomicro/ego/core/elog"
)

type mode int

const (
	modeBrowse mode = iota
	modeCompose
	modeEdit
)

// 每一次请求的超时时间
const requestTimeout = 10 * time.Second

type (
	// loadedMsg 刷新列表完成
	loadedMsg struct{ err error }
	// opDoneMsg 写操作完成
	opDoneMsg struct {
		op  string
		err error
	}
)

// Model 评论板的终端界面，所有状态变更都交给 Controller
type Model struct {
	ctrl   *board.Controller
	input  textinput.Model
	mode   mode
	cursor int
	// 不为空时展示阻塞式的错误弹窗，按任意键关闭
	err     error
	loading bool
	width   int
	height  int
	logger  *elog.Component
}

func New(ctrl *board.Controller) Model {
	ti := textinput.New()
	ti.CharLimit = 2000
	ti.Prompt = "> "
	return Model{
		ctrl:    ctrl,
		input:   ti,
		loading: true,
		logger:  elog.DefaultLogger.With(elog.FieldComponent("BoardTUI")),
	}
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return loadedMsg{err: ctrl.Load(ctx)}
	}
}

func (m Model) run(op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil
	case loadedMsg:
		m.loading = false
		m.setErr("刷新", msg.err)
		m.clampCursor()
		return m, nil
	case opDoneMsg:
		m.setErr(msg.op, msg.err)
		m.clampCursor()
		if msg.err == nil || m.mode != modeBrowse {
			return m, nil
		}
		// 回滚之后草稿或者编辑状态可能恢复了，回到输入框
		switch msg.op {
		case "发表":
			if draft := m.ctrl.Draft(); draft != "" {
				return m.reopenInput(modeCompose, draft)
			}
		case "编辑":
			if session := m.ctrl.Editing(); session != nil {
				return m.reopenInput(modeEdit, session.Draft)
			}
		}
		return m, nil
	case tea.KeyMsg:
		if m.err != nil {
			m.err = nil
			return m, nil
		}
		switch m.mode {
		case modeCompose:
			return m.updateCompose(msg)
		case modeEdit:
			return m.updateEdit(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m *Model) setErr(op string, err error) {
	if err == nil {
		return
	}
	m.logger.Error("操作失败", elog.String("op", op), elog.FieldErr(err))
	if errors.Is(err, board.ErrRefresh) {
		m.err = fmt.Errorf("%s成功，但是刷新列表失败: %w", op, err)
		return
	}
	m.err = fmt.Errorf("%s失败: %w", op, err)
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.ctrl.View()
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, Keys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, Keys.Reload):
		m.loading = true
		return m, m.load()
	case key.Matches(msg, Keys.New):
		m.ctrl.ClearReplyTarget()
		return m.startCompose()
	case key.Matches(msg, Keys.Reply):
		e, ok := m.selected(entries)
		if !ok {
			return m, nil
		}
		if err := m.ctrl.SetReplyTarget(e.ID); err != nil {
			m.setErr("回复", err)
			return m, nil
		}
		return m.startCompose()
	case key.Matches(msg, Keys.Edit):
		e, ok := m.selected(entries)
		if !ok {
			return m, nil
		}
		if err := m.ctrl.BeginEdit(e.ID); err != nil {
			m.setErr("编辑", err)
			return m, nil
		}
		m.mode = modeEdit
		m.input.SetValue(e.Payload)
		m.input.CursorEnd()
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, Keys.Delete):
		e, ok := m.selected(entries)
		if !ok {
			return m, nil
		}
		ctrl, id := m.ctrl, e.ID
		return m, m.run("删除", func(ctx context.Context) error {
			return ctrl.Delete(ctx, id)
		})
	}
	return m, nil
}

func (m Model) startCompose() (tea.Model, tea.Cmd) {
	m.mode = modeCompose
	m.input.SetValue(m.ctrl.Draft())
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

// selected 还在发送中的评论不能操作
func (m Model) selected(entries []board.Entry) (board.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(entries) {
		return board.Entry{}, false
	}
	e := entries[m.cursor]
	return e, !e.Pending
}

func (m Model) updateCompose(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Cancel):
		m.ctrl.SetDraft(m.input.Value())
		m.ctrl.ClearReplyTarget()
		m.leaveInput()
		return m, nil
	case key.Matches(msg, Keys.Confirm):
		m.ctrl.SetDraft(m.input.Value())
		if strings.TrimSpace(m.input.Value()) == "" {
			m.setErr("发表", board.ErrEmptyDraft)
			return m, nil
		}
		m.leaveInput()
		// 新评论排在最后
		m.cursor = len(m.ctrl.View())
		ctrl := m.ctrl
		return m, m.run("发表", ctrl.Submit)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetDraft(m.input.Value())
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Cancel):
		m.ctrl.CancelEdit()
		m.leaveInput()
		return m, nil
	case key.Matches(msg, Keys.Confirm):
		// 内容没有变化时提交按钮是禁用的
		if !m.ctrl.CanConfirmEdit() {
			return m, nil
		}
		m.leaveInput()
		ctrl := m.ctrl
		return m, m.run("编辑", ctrl.ConfirmEdit)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	_ = m.ctrl.SetEditDraft(m.input.Value())
	return m, cmd
}

func (m Model) reopenInput(md mode, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.SetValue(value)
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.View())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	if m.err != nil {
		return m.modalView()
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("评论板"))
	sb.WriteString(metaStyle.Render("  以 " + m.ctrl.Username() + " 的身份发言"))
	sb.WriteString("\n\n")

	entries := m.ctrl.View()
	switch {
	case m.loading && len(entries) == 0:
		sb.WriteString(hintStyle.Render("加载中..."))
		sb.WriteString("\n")
	case len(entries) == 0:
		sb.WriteString(hintStyle.Render("还没有评论，按 n 发表第一条"))
		sb.WriteString("\n")
	}
	for i, e := range entries {
		block := renderEntry(e)
		if i == m.cursor && m.mode == modeBrowse {
			sb.WriteString(selectedStyle.Render(block))
		} else {
			sb.WriteString(normalStyle.Render(block))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.footerView(entries))
	return sb.String()
}

func renderEntry(e board.Entry) string {
	var sb strings.Builder
	sb.WriteString(authorStyle.Render(e.Username))
	meta := " · " + e.CreatedAt.Local().Format("2006-01-02 15:04")
	if e.Edited {
		meta += " · 已编辑"
	}
	if e.Pending {
		meta += " · 发送中..."
	}
	sb.WriteString(metaStyle.Render(meta))
	sb.WriteString("\n")
	switch {
	case e.ReplyMissing:
		sb.WriteString(quoteStyle.Render("↳ 回复的评论已删除"))
		sb.WriteString("\n")
	case e.ReplyOf != nil:
		sb.WriteString(quoteStyle.Render("↳ " + e.ReplySnippet))
		sb.WriteString("\n")
	}
	sb.WriteString(e.Payload)
	return sb.String()
}

func (m Model) footerView(entries []board.Entry) string {
	var sb strings.Builder
	switch m.mode {
	case modeCompose:
		if target := m.ctrl.ReplyTarget(); target != nil {
			snippet := ""
			for _, e := range entries {
				if !e.Pending && e.ID == *target {
					snippet = board.Snippet(e.Payload)
				}
			}
			sb.WriteString(quoteStyle.Render("回复: " + snippet))
			sb.WriteString("\n")
		}
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
		sb.WriteString(hintStyle.Render("[enter] 发表  [esc] 取消"))
	case modeEdit:
		sb.WriteString(m.input.View())
		sb.WriteString("\n")
		confirm := "[enter] 保存"
		if m.ctrl.CanConfirmEdit() {
			sb.WriteString(hintStyle.Render(confirm))
		} else {
			sb.WriteString(disabledStyle.Render(confirm))
		}
		sb.WriteString(hintStyle.Render("  [esc] 取消"))
	default:
		help := []key.Binding{Keys.Up, Keys.Down, Keys.New, Keys.Reply, Keys.Edit, Keys.Delete, Keys.Reload, Keys.Quit}
		parts := make([]string, 0, len(help))
		for _, b := range help {
			parts = append(parts, b.Help().Key+" "+b.Help().Desc)
		}
		sb.WriteString(hintStyle.Render(strings.Join(parts, "  ")))
	}
	return sb.String()
}

func (m Model) modalView() string {
	content := errorTitleStyle.Render("出错了") + "\n\n" + m.err.Error() + "\n\n" + hintStyle.Render("按任意键关闭")
	modal := modalStyle.Render(content)
	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
