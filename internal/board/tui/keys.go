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

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	Reply   key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Reload  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Quit    key.Binding
}

var Keys = KeyMap{
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "上一条")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "下一条")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "新评论")),
	Reply:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "回复")),
	Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "编辑")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "删除")),
	Reload:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "刷新")),
	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "提交")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "取消")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "退出")),
}
