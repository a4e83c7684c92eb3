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

// Package board 评论板的客户端：本地缓存评论列表，乐观更新，失败时回滚
package board

import (
	"context"
	"errors"
	"time"
)

var (
	ErrEmptyDraft = errors.New("评论内容不能为空")
	ErrNotEditing = errors.New("当前没有正在编辑的评论")
	ErrNotFound   = errors.New("评论不存在")
	// ErrRefresh 操作本身成功了，但是之后重新拉取列表失败
	ErrRefresh = errors.New("刷新评论列表失败")
)

type Comment struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `json:"username"`
	Payload   string    `json:"payload"`
	ReplyOf   *int64    `json:"reply_of"`

	// 乐观插入、服务端还没有确认的评论，ID 为 0，用 LocalID 区分
	LocalID string `json:"-"`
	Pending bool   `json:"-"`
}

func (c Comment) Edited() bool {
	return !c.UpdatedAt.Equal(c.CreatedAt)
}

func (c Comment) IsReply() bool {
	return c.ReplyOf != nil
}

type NewComment struct {
	Username string `json:"username"`
	Payload  string `json:"payload"`
	ReplyOf  *int64 `json:"reply_of,omitempty"`
}

// Store 评论的远端存储。写操作都返回受影响的评论
//
//go:generate mockgen -source=./comment.go -package=boardmocks -destination=mocks/store.mock.go Store
type Store interface {
	List(ctx context.Context) ([]Comment, error)
	Create(ctx context.Context, c NewComment) ([]Comment, error)
	Update(ctx context.Context, id int64, payload string) ([]Comment, error)
	Delete(ctx context.Context, id int64) ([]Comment, error)
}

// Entry 渲染用的一条评论
type Entry struct {
	Comment
	// 被回复的评论的内容摘要
	ReplySnippet string
	// 被回复的评论已经不存在了
	ReplyMissing bool
	Edited       bool
}

// EditSession 正在编辑的评论
type EditSession struct {
	ID       int64
	Original string
	Draft    string
}

func int64Ptr(v int64) *int64 {
	return &v
}

func copyPtr(p *int64) *int64 {
	if p == nil {
		return nil
	}
	return int64Ptr(*p)
}
