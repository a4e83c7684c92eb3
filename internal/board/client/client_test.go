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
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ecodeclub/board/internal/board"
	"github.com/ecodeclub/board/internal/comment"
	testioc "github.com/ecodeclub/board/internal/test/ioc"
	"github.com/ecodeclub/board/internal/test/postgrest"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ClientTestSuite 客户端 -> 评论服务 -> 远端存储模拟，整条链路都是真实的代码
type ClientTestSuite struct {
	suite.Suite
	pg     *postgrest.Server
	server *httptest.Server
	client *Client
}

func (s *ClientTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.pg = postgrest.NewServer("comments")
	ec, _ := testioc.InitMemoryCache(s.T())
	module, err := comment.InitModule(comment.NewRemoteBackend(s.pg.NewRestyClient(), "comments"), ec, testioc.InitMQ(s.T()))
	s.Require().NoError(err)
	engine := gin.New()
	module.Hdl.PublicRoutes(engine)
	s.server = httptest.NewServer(engine)
	s.client = New(s.server.URL, 3*time.Second)
}

func (s *ClientTestSuite) TearDownTest() {
	s.server.Close()
	s.pg.Close()
}

func (s *ClientTestSuite) TestCRUD() {
	ctx := context.Background()
	res, err := s.client.List(ctx)
	s.Require().NoError(err)
	s.Empty(res)

	res, err = s.client.Create(ctx, board.NewComment{Username: "tom", Payload: "hi"})
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	a := res[0]
	s.Equal("hi", a.Payload)
	s.Nil(a.ReplyOf)
	s.False(a.Edited())

	res, err = s.client.Create(ctx, board.NewComment{Username: "jerry", Payload: "hello", ReplyOf: &a.ID})
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(a.ID, *res[0].ReplyOf)

	res, err = s.client.Update(ctx, a.ID, "hi!")
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal("hi!", res[0].Payload)
	s.True(res[0].Edited())
	s.True(a.CreatedAt.Equal(res[0].CreatedAt))

	res, err = s.client.Update(ctx, 404, "hi!")
	s.Require().NoError(err)
	s.Empty(res)

	res, err = s.client.Delete(ctx, a.ID)
	s.Require().NoError(err)
	s.Len(res, 1)

	res, err = s.client.Delete(ctx, a.ID)
	s.Require().NoError(err)
	s.Empty(res)

	res, err = s.client.List(ctx)
	s.Require().NoError(err)
	s.Len(res, 1)
}

func (s *ClientTestSuite) TestValidationError() {
	_, err := s.client.Create(context.Background(), board.NewComment{Username: "tom", Payload: " "})
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusBadRequest, apiErr.Status)
	s.NotEmpty(apiErr.Message)
}

func (s *ClientTestSuite) TestUpstreamError() {
	s.pg.FailNext(http.StatusServiceUnavailable, "upstream unavailable")
	_, err := s.client.List(context.Background())
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Equal(http.StatusInternalServerError, apiErr.Status)
	s.Equal("upstream unavailable", apiErr.Message)
}

// TestController 控制器在真实链路上的表现
func (s *ClientTestSuite) TestController() {
	ctx := context.Background()
	ctrl := board.NewController(s.client, "tom")
	s.Require().NoError(ctrl.Load(ctx))

	ctrl.SetDraft("hi")
	s.Require().NoError(ctrl.Submit(ctx))
	a := ctrl.View()[0]
	s.Require().NoError(ctrl.SetReplyTarget(a.ID))
	ctrl.SetDraft("hello")
	s.Require().NoError(ctrl.Submit(ctx))

	view := ctrl.View()
	s.Require().Len(view, 2)
	s.Equal("hi", view[1].ReplySnippet)

	s.Require().NoError(ctrl.BeginEdit(a.ID))
	s.False(ctrl.CanConfirmEdit())
	s.Require().NoError(ctrl.SetEditDraft("hi."))
	s.True(ctrl.CanConfirmEdit())
	s.Require().NoError(ctrl.ConfirmEdit(ctx))
	view = ctrl.View()
	s.Equal("hi.", view[0].Payload)
	s.True(view[0].Edited)
	s.Equal("hi.", view[1].ReplySnippet)

	// 远端失败时回滚
	s.pg.FailNext(http.StatusServiceUnavailable, "upstream unavailable")
	err := ctrl.Delete(ctx, a.ID)
	var apiErr *APIError
	s.Require().ErrorAs(err, &apiErr)
	s.Len(ctrl.View(), 2)

	s.Require().NoError(ctrl.Delete(ctx, a.ID))
	view = ctrl.View()
	s.Require().Len(view, 1)
	s.True(view[0].ReplyMissing)
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func TestClient_Errors(t *testing.T) {
	testCases := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantMsg    string
	}{
		{
			name: "JSON 错误",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusMethodNotAllowed)
				_, _ = w.Write([]byte(`{"message":"Method Not Allowed"}`))
			},
			wantStatus: http.StatusMethodNotAllowed,
			wantMsg:    "Method Not Allowed",
		},
		{
			name: "非 JSON 错误",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = w.Write([]byte("bad gateway\n"))
			},
			wantStatus: http.StatusBadGateway,
			wantMsg:    "bad gateway",
		},
		{
			name: "没有响应体",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Internal Server Error",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()
			_, err := New(server.URL, time.Second).Delete(context.Background(), 1)
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.wantStatus, apiErr.Status)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()
	_, err := New(url, time.Second).List(context.Background())
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
