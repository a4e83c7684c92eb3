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

package comment

import (
	"sync"
	"time"

	"github.com/ecodeclub/board/internal/comment/internal/domain"
	"github.com/ecodeclub/board/internal/comment/internal/event"
	"github.com/ecodeclub/board/internal/comment/internal/repository/cache"
	"github.com/ecodeclub/board/internal/comment/internal/repository/dao"
	"github.com/ecodeclub/board/internal/comment/internal/service"
	"github.com/ecodeclub/board/internal/comment/internal/web"
	"github.com/ecodeclub/ecache"
	"github.com/ego-component/egorm"
	"github.com/go-resty/resty/v2"
	"github.com/gotomicro/ego/core/econf"
)

type Module struct {
	Svc           Service
	Hdl           *Handler
	AuditConsumer *AuditConsumer
}

type Handler = web.Handler
type Service = service.CommentService
type Comment = domain.Comment
type AuditConsumer = event.AuditConsumer

// Backend 评论的存储，远端数据库服务或者 MySQL
type Backend = dao.CommentDAO

var once = &sync.Once{}

// NewGORMBackend MySQL 存储，第一次调用时建表
func NewGORMBackend(db *egorm.Component) (Backend, error) {
	var err error
	once.Do(func() {
		err = dao.InitTables(db)
	})
	if err != nil {
		return nil, err
	}
	return dao.NewCommentGORMDAO(db), nil
}

// NewRemoteBackend 托管数据库服务，client 需要已经设置好地址和鉴权头
func NewRemoteBackend(client *resty.Client, table string) Backend {
	return dao.NewCommentRemoteDAO(client, table)
}

func initCommentCache(ec ecache.Cache) cache.CommentCache {
	var expiration time.Duration
	if econf.Get("comment.cache.expiration") != nil {
		expiration = econf.GetDuration("comment.cache.expiration")
	}
	return cache.NewCommentECache(ec, expiration)
}
