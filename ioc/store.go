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

package ioc

import (
	"fmt"
	"time"

	"github.com/ecodeclub/board/config"
	"github.com/ecodeclub/board/internal/comment"
	"github.com/ecodeclub/board/internal/pkg/database"
	"github.com/go-resty/resty/v2"
	"github.com/gotomicro/ego/core/econf"
)

// InitCommentBackend 按照 store.driver 选择评论的存储
func InitCommentBackend() comment.Backend {
	var cfg config.StoreConfig
	err := econf.UnmarshalKey("store", &cfg)
	if err != nil {
		panic(fmt.Errorf("读取 store 配置失败: %w", err))
	}
	switch cfg.Driver {
	case config.StoreDriverMySQL:
		backend, err := comment.NewGORMBackend(InitDB())
		if err != nil {
			panic(err)
		}
		return backend
	case "", config.StoreDriverRemote:
		return comment.NewRemoteBackend(InitRemoteClient(cfg.Remote), cfg.Remote.Table)
	default:
		panic(fmt.Sprintf("未知的 store.driver: %s", cfg.Driver))
	}
}

// InitRemoteClient 远端存储的地址和 key 都是必须的，缺少的时候直接 panic
func InitRemoteClient(cfg config.RemoteStoreConfig) *resty.Client {
	if cfg.Endpoint == "" || cfg.APIKey == "" {
		panic("store.remote.endpoint 和 store.remote.apiKey 都不能为空")
	}
	timeout := 10 * time.Second
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			panic(fmt.Errorf("store.remote.timeout 格式错误: %w", err))
		}
		timeout = d
	}
	client := resty.New().
		SetBaseURL(cfg.Endpoint).
		SetHeader("apikey", cfg.APIKey).
		SetAuthToken(cfg.APIKey).
		SetTimeout(timeout)
	database.NewRestyTracing().Initialize(client)
	return client
}
