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

package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ecodeclub/board/config"
	"github.com/ecodeclub/board/internal/board"
	"github.com/ecodeclub/board/internal/board/client"
	"github.com/ecodeclub/board/internal/board/tui"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/core/elog"
	"gopkg.in/yaml.v3"
)

func main() {
	var cfg config.ClientConfig
	flag.StringVar(&cfg.API, "api", "http://localhost:8080", "评论服务的地址")
	flag.StringVar(&cfg.Username, "username", "anonymous", "发言时使用的用户名")
	flag.StringVar(&cfg.LogFile, "log", filepath.Join(os.TempDir(), "board", "board.log"), "日志文件")
	flag.Parse()

	// 标准输出被界面占用，日志只能写文件
	if err := initLogger(cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}

	ctrl := board.NewController(client.New(cfg.API, 10*time.Second), cfg.Username)
	p := tea.NewProgram(tui.New(ctrl), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		elog.DefaultLogger.Error("界面运行错误", elog.FieldErr(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func initLogger(path string) error {
	dir, name := filepath.Split(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	cfg := map[string]any{
		"logger": map[string]any{
			"default": map[string]any{
				"writer": "file",
				"dir":    dir,
				"name":   name,
				"level":  "info",
			},
		},
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err = econf.LoadFromReader(bytes.NewReader(data), yaml.Unmarshal); err != nil {
		return err
	}
	elog.DefaultLogger = elog.Load("logger.default").Build()
	return nil
}
