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

//go:build e2e

package integration

import (
	"net/http"
	"testing"

	"github.com/ecodeclub/board/internal/comment"
	"github.com/ecodeclub/board/internal/comment/internal/repository/dao"
	"github.com/ecodeclub/board/internal/comment/internal/web"
	"github.com/ecodeclub/board/internal/test"
	testioc "github.com/ecodeclub/board/internal/test/ioc"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/suite"
)

// GORMHandlerTestSuite 使用 MySQL 作为存储，需要 config/local.yaml 里的 mysql 和本地 redis
type GORMHandlerTestSuite struct {
	suite.Suite
	server *egin.Component
	db     *egorm.Component
}

func (s *GORMHandlerTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	backend, err := comment.NewGORMBackend(s.db)
	s.Require().NoError(err)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	module, err := comment.InitModule(backend, testioc.InitCache(), testioc.InitMQ(s.T()))
	s.Require().NoError(err)
	server := egin.Load("server").Build()
	module.Hdl.PublicRoutes(server.Engine)
	s.server = server
}

func (s *GORMHandlerTestSuite) TearDownTest() {
	s.NoError(s.db.Exec("TRUNCATE TABLE `comments`").Error)
	_, err := testioc.InitCache().Delete(s.T().Context(), "comment:list")
	s.NoError(err)
}

func (s *GORMHandlerTestSuite) TestCreateAndReply() {
	code, res := test.Do[[]web.Comment](s.T(), s.server, http.MethodPost, "/api/comments", web.CreateReq{
		Comment: web.NewComment{Username: "tom", Payload: "hi"},
	})
	s.Require().Equal(http.StatusOK, code)
	s.Require().Len(res, 1)
	a := res[0]
	s.Nil(a.ReplyOf)

	code, res = test.Do[[]web.Comment](s.T(), s.server, http.MethodPost, "/api/comments", web.CreateReq{
		Comment: web.NewComment{Username: "jerry", Payload: "hello", ReplyOf: &a.ID},
	})
	s.Require().Equal(http.StatusOK, code)
	s.Require().Len(res, 1)
	s.Equal(a.ID, *res[0].ReplyOf)

	var cnt int64
	s.NoError(s.db.Model(&dao.Comment{}).Count(&cnt).Error)
	s.Equal(int64(2), cnt)

	code, res = test.Do[[]web.Comment](s.T(), s.server, http.MethodGet, "/api/comments", nil)
	s.Equal(http.StatusOK, code)
	s.Len(res, 2)
}

func (s *GORMHandlerTestSuite) TestUpdateAndDelete() {
	_, res := test.Do[[]web.Comment](s.T(), s.server, http.MethodPost, "/api/comments", web.CreateReq{
		Comment: web.NewComment{Username: "tom", Payload: "hi"},
	})
	s.Require().Len(res, 1)
	a := res[0]

	code, res := test.Do[[]web.Comment](s.T(), s.server, http.MethodPatch, "/api/comments", web.UpdateReq{
		CommentID: a.ID,
		Payload:   "edited",
	})
	s.Require().Equal(http.StatusOK, code)
	s.Require().Len(res, 1)
	s.Equal("edited", res[0].Payload)
	s.True(a.CreatedAt.Equal(res[0].CreatedAt))
	s.False(res[0].UpdatedAt.Before(res[0].CreatedAt))

	code, res = test.Do[[]web.Comment](s.T(), s.server, http.MethodPatch, "/api/comments", web.UpdateReq{
		CommentID: a.ID + 100,
		Payload:   "edited",
	})
	s.Equal(http.StatusOK, code)
	s.Empty(res)

	code, res = test.Do[[]web.Comment](s.T(), s.server, http.MethodDelete, "/api/comments?comment_id="+itoa(a.ID), nil)
	s.Equal(http.StatusOK, code)
	s.Len(res, 1)

	code, res = test.Do[[]web.Comment](s.T(), s.server, http.MethodDelete, "/api/comments?comment_id="+itoa(a.ID), nil)
	s.Equal(http.StatusOK, code)
	s.Empty(res)
}

func TestGORMHandler(t *testing.T) {
	suite.Run(t, new(GORMHandlerTestSuite))
}
