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

//go:build wireinject

package comment

import (
	"github.com/ecodeclub/board/internal/comment/internal/event"
	"github.com/ecodeclub/board/internal/comment/internal/repository"
	"github.com/ecodeclub/board/internal/comment/internal/service"
	"github.com/ecodeclub/board/internal/comment/internal/web"
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/google/wire"
)

func InitModule(backend Backend, ec ecache.Cache, q mq.MQ) (*Module, error) {
	wire.Build(
		initCommentCache,
		repository.NewCachedCommentRepository,
		event.NewCommentEventProducer,
		event.NewAuditConsumer,
		service.NewCommentService,
		web.NewHandler,
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}
