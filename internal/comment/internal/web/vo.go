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

package web

import "time"

// Comment 对外的结构，字段名和托管数据库里的列名保持一致
type Comment struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `json:"username"`
	Payload   string    `json:"payload"`
	// 不是回复时为 null
	ReplyOf *int64 `json:"reply_of"`
}

type NewComment struct {
	Username string `json:"username"`
	Payload  string `json:"payload"`
	ReplyOf  *int64 `json:"reply_of,omitempty"`
}

type CreateReq struct {
	Comment NewComment `json:"comment"`
}

type UpdateReq struct {
	CommentID int64  `json:"commentId"`
	Payload   string `json:"payload"`
}

type ErrorResp struct {
	Message string `json:"message"`
}
