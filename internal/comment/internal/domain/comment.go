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

package domain

// DefaultUsername 没有登录体系，未填写作者时统一使用该名字
const DefaultUsername = "anonymous"

type Comment struct {
	// ID 由存储分配，创建后不可变
	ID int64
	// 作者，纯文本
	Username string
	// 评论的具体内容
	Payload string
	// 回复的评论ID，0 表示不是回复。
	// 不校验引用完整性，被回复的评论删除后允许悬空
	ReplyOf int64

	// 毫秒时间戳。Utime 与 Ctime 不同即视为被编辑过
	Ctime int64
	Utime int64
}

func (c Comment) IsReply() bool {
	return c.ReplyOf > 0
}

func (c Comment) Edited() bool {
	return c.Utime != c.Ctime
}
