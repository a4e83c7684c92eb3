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
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ecodeclub/ekit/slice"
	"github.com/go-resty/resty/v2"
)

// RemoteError 远端数据库服务（PostgREST 协议）返回的错误体
type RemoteError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *RemoteError) Error() string {
	return e.Message
}

// CommentRemoteDAO 通过托管数据库服务的 REST 接口（Supabase / PostgREST）读写 comments 表。
// client 需要预先设置好 BaseURL 以及 apikey、Authorization 请求头
type CommentRemoteDAO struct {
	client *resty.Client
	path   string
}

func NewCommentRemoteDAO(client *resty.Client, table string) CommentDAO {
	if table == "" {
		table = Comment{}.TableName()
	}
	return &CommentRemoteDAO{
		client: client,
		path:   "/rest/v1/" + table,
	}
}

func (r *CommentRemoteDAO) List(ctx context.Context) ([]Comment, error) {
	return r.exec(ctx, http.MethodGet, func(req *resty.Request) {
		req.SetQueryParam("select", "*")
	})
}

func (r *CommentRemoteDAO) Insert(ctx context.Context, c Comment) ([]Comment, error) {
	row := remoteInsert{
		Username: c.Username,
		Payload:  c.Payload,
	}
	if c.ReplyOf.Valid {
		row.ReplyOf = &c.ReplyOf.V
	}
	return r.exec(ctx, http.MethodPost, func(req *resty.Request) {
		req.SetBody(row)
	})
}

func (r *CommentRemoteDAO) Update(ctx context.Context, id int64, payload string) ([]Comment, error) {
	return r.exec(ctx, http.MethodPatch, func(req *resty.Request) {
		req.SetQueryParam("id", r.eq(id)).
			SetBody(remoteUpdate{
				Payload:   payload,
				UpdatedAt: time.Now().UTC().Format(time.RFC3339Nano),
			})
	})
}

func (r *CommentRemoteDAO) Delete(ctx context.Context, id int64) ([]Comment, error) {
	return r.exec(ctx, http.MethodDelete, func(req *resty.Request) {
		req.SetQueryParam("id", r.eq(id))
	})
}

func (r *CommentRemoteDAO) exec(ctx context.Context, method string, build func(req *resty.Request)) ([]Comment, error) {
	var (
		rows []remoteRow
		rerr RemoteError
	)
	req := r.client.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetResult(&rows).
		SetError(&rerr)
	build(req)
	resp, err := req.Execute(method, r.path)
	if err != nil {
		return nil, fmt.Errorf("请求远端存储失败: %w", err)
	}
	if resp.IsError() {
		rerr.Status = resp.StatusCode()
		if rerr.Message == "" {
			rerr.Message = strings.TrimSpace(string(resp.Body()))
		}
		if rerr.Message == "" {
			rerr.Message = resp.Status()
		}
		return nil, &rerr
	}
	return slice.Map(rows, func(_ int, src remoteRow) Comment {
		return src.toEntity()
	}), nil
}

func (r *CommentRemoteDAO) eq(id int64) string {
	return "eq." + strconv.FormatInt(id, 10)
}

type remoteInsert struct {
	Username string `json:"username"`
	Payload  string `json:"payload"`
	ReplyOf  *int64 `json:"reply_of,omitempty"`
}

type remoteUpdate struct {
	Payload   string `json:"payload"`
	UpdatedAt string `json:"updated_at"`
}

type remoteRow struct {
	ID        int64      `json:"id"`
	CreatedAt remoteTime `json:"created_at"`
	UpdatedAt remoteTime `json:"updated_at"`
	Username  string     `json:"username"`
	Payload   string     `json:"payload"`
	ReplyOf   *int64     `json:"reply_of"`
}

func (r remoteRow) toEntity() Comment {
	ctime := r.CreatedAt.UnixMilli()
	utime := ctime
	// updated_at 可能为 NULL，此时认为没有编辑过
	if !r.UpdatedAt.IsZero() {
		utime = r.UpdatedAt.UnixMilli()
	}
	c := Comment{
		ID:       r.ID,
		Username: r.Username,
		Payload:  r.Payload,
		Ctime:    ctime,
		Utime:    utime,
	}
	if r.ReplyOf != nil {
		c.ReplyOf = sql.Null[int64]{V: *r.ReplyOf, Valid: true}
	}
	return c
}

// remoteTime 兼容 timestamptz 和不带时区的 timestamp 两种格式
type remoteTime struct {
	time.Time
}

var remoteTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
}

func (t *remoteTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		return nil
	}
	s, err := strconv.Unquote(s)
	if err != nil {
		return fmt.Errorf("非法的时间 %s: %w", data, err)
	}
	for _, layout := range remoteTimeLayouts {
		parsed, er := time.Parse(layout, s)
		if er == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("无法解析时间 %q", s)
}
