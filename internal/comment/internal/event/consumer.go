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

package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// AuditConsumer 把每一次评论变更记到日志里
type AuditConsumer struct {
	consumer mq.Consumer
	logger   *elog.Component
}

func NewAuditConsumer(q mq.MQ) (*AuditConsumer, error) {
	const groupID = "comment_audit"
	consumer, err := q.Consumer(CommentEventsTopic, groupID)
	if err != nil {
		return nil, err
	}
	return &AuditConsumer{
		consumer: consumer,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("CommentAuditConsumer")),
	}, nil
}

func (c *AuditConsumer) Start(ctx context.Context) {
	go func() {
		for {
			err := c.Consume(ctx)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			if err != nil {
				c.logger.Error("消费评论事件失败", elog.FieldErr(err))
			}
		}
	}()
}

func (c *AuditConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}
	var evt CommentEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}
	for _, cmt := range evt.Comments {
		c.logger.Info("评论变更",
			elog.String("type", evt.Type),
			elog.Int64("id", cmt.ID),
			elog.String("username", cmt.Username),
			elog.Int64("replyOf", cmt.ReplyOf),
			elog.Int64("utime", cmt.Utime))
	}
	return nil
}
