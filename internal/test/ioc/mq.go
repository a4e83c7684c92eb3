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

package testioc

import (
	"context"
	"testing"

	"github.com/ecodeclub/mq-api"
	"github.com/ecodeclub/mq-api/memory"
	"github.com/stretchr/testify/require"
)

// 测试里用到的 topic，和 config.yaml 里 kafka.topics 保持一致
var topics = map[string]int{
	"comment_events": 1,
}

// InitMQ 内存实现的消息队列，每次调用都是独立的实例
func InitMQ(t testing.TB) mq.MQ {
	q := memory.NewMQ()
	for name, partitions := range topics {
		require.NoError(t, q.CreateTopic(context.Background(), name, partitions))
	}
	return q
}
