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

package config

const (
	StoreDriverRemote = "remote"
	StoreDriverMySQL  = "mysql"
)

// StoreConfig 对应 store 配置
type StoreConfig struct {
	// remote 或者 mysql，默认 remote
	Driver string            `yaml:"driver"`
	Remote RemoteStoreConfig `yaml:"remote"`
}

// RemoteStoreConfig PostgREST 风格的远端存储，例如 Supabase
type RemoteStoreConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	// 表名，默认 comments
	Table string `yaml:"table"`
	// 例如 10s，默认 10s
	Timeout string `yaml:"timeout"`
}

// ClientConfig 终端客户端的启动参数
type ClientConfig struct {
	API      string
	Username string
	LogFile  string
}
