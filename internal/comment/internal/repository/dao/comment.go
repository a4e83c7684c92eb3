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

package dao

import (
	"context"
	"database/sql"
)

// Comment 评论表。两种存储实现（远端数据库服务、MySQL）共用这一实体
type Comment struct {
	ID int64 `gorm:"primaryKey,autoIncrement;comment:'评论自增ID'"`

	Username string `gorm:"type:varchar(256);not null;comment:'评论者，没有登录体系，纯文本'"`
	Payload  string `gorm:"type:text;not null;comment:'评论的具体内容'"`

	// NULL 代表它不是回复。不加外键，被回复的评论删掉之后允许悬空
	ReplyOf sql.Null[int64] `gorm:"type:bigint;index:idx_reply_of;comment:'回复的评论ID'"`

	Ctime int64
	Utime int64
}

func (Comment) TableName() string {
	return "comments"
}

//go:generate mockgen -source=./comment.go -package=daomocks -destination=mocks/comment.mock.go CommentDAO
type CommentDAO interface {
	// List 返回全部评论，不过滤，不保证顺序
	List(ctx context.Context) ([]Comment, error)
	// Insert 插入一条评论，返回插入后的行
	Insert(ctx context.Context, c Comment) ([]Comment, error)
	// Update 只更新 payload，并且刷新 utime。id 不存在时返回空切片而不是错误
	Update(ctx context.Context, id int64, payload string) ([]Comment, error)
	// Delete 删除并返回被删除的行。id 不存在时返回空切片而不是错误
	Delete(ctx context.Context, id int64) ([]Comment, error)
}
