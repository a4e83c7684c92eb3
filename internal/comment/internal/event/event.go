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
	"time"

	"github.com/ecodeclub/board/internal/comment/internal/domain"
	"github.com/ecodeclub/ekit/slice"
)

const CommentEventsTopic = "comment_events"

const (
	TypeCreated = "created"
	TypeUpdated = "updated"
	TypeDeleted = "deleted"
)

type CommentEvent struct {
	Type     string    `json:"type"`
	Comments []Comment `json:"comments"`
	// 事件产生时间，毫秒
	Ctime int64 `json:"ctime"`
}

type Comment struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Payload  string `json:"payload"`
	ReplyOf  int64  `json:"replyOf"`
	Ctime    int64  `json:"ctime"`
	Utime    int64  `json:"utime"`
}

func NewCommentEvent(typ string, cs []domain.Comment) CommentEvent {
	return CommentEvent{
		Type: typ,
		Comments: slice.Map(cs, func(_ int, src domain.Comment) Comment {
			return Comment{
				ID:       src.ID,
				Username: src.Username,
				Payload:  src.Payload,
				ReplyOf:  src.ReplyOf,
				Ctime:    src.Ctime,
				Utime:    src.Utime,
			}
		}),
		Ctime: time.Now().UnixMilli(),
	}
}
