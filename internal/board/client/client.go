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

package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ecodeclub/board/internal/board"
	"github.com/go-resty/resty/v2"
)

const commentsPath = "/api/comments"

var _ board.Store = (*Client)(nil)

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// Client 评论接口的 HTTP 客户端
type Client struct {
	client *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return NewWithResty(resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout))
}

func NewWithResty(client *resty.Client) *Client {
	return &Client{client: client}
}

func (c *Client) List(ctx context.Context) ([]board.Comment, error) {
	return c.do(ctx, http.MethodGet, func(req *resty.Request) {})
}

func (c *Client) Create(ctx context.Context, cmt board.NewComment) ([]board.Comment, error) {
	return c.do(ctx, http.MethodPost, func(req *resty.Request) {
		req.SetBody(map[string]board.NewComment{"comment": cmt})
	})
}

func (c *Client) Update(ctx context.Context, id int64, payload string) ([]board.Comment, error) {
	return c.do(ctx, http.MethodPatch, func(req *resty.Request) {
		req.SetBody(updateReq{CommentID: id, Payload: payload})
	})
}

func (c *Client) Delete(ctx context.Context, id int64) ([]board.Comment, error) {
	return c.do(ctx, http.MethodDelete, func(req *resty.Request) {
		req.SetQueryParam("comment_id", strconv.FormatInt(id, 10))
	})
}

type updateReq struct {
	CommentID int64  `json:"commentId"`
	Payload   string `json:"payload"`
}

type errorResp struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method string, build func(req *resty.Request)) ([]board.Comment, error) {
	var (
		res  []board.Comment
		eres errorResp
	)
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetResult(&res).
		SetError(&eres)
	build(req)
	resp, err := req.Execute(method, commentsPath)
	if err != nil {
		return nil, fmt.Errorf("请求评论接口失败: %w", err)
	}
	if resp.IsError() {
		msg := eres.Message
		if msg == "" {
			msg = strings.TrimSpace(string(resp.Body()))
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode())
		}
		return nil, &APIError{Status: resp.StatusCode(), Message: msg}
	}
	if res == nil {
		res = []board.Comment{}
	}
	return res, nil
}
