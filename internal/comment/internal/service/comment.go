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

package service

import (
	"context"
	"strings"

	"github.com/ecodeclub/board/internal/comment/internal/domain"
	"github.com/ecodeclub/board/internal/comment/internal/errs"
	"github.com/ecodeclub/board/internal/comment/internal/event"
	"github.com/ecodeclub/board/internal/comment/internal/repository"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./comment.go -package=svcmocks -destination=mocks/comment.mock.go CommentService
type CommentService interface {
	// List 全部评论，不排序，排序交给客户端
	List(ctx context.Context) ([]domain.Comment, error)
	// Create 创建评论，返回创建后的评论
	Create(ctx context.Context, c domain.Comment) ([]domain.Comment, error)
	// Update 修改评论内容，返回受影响的评论。ID 不存在时返回空切片
	Update(ctx context.Context, id int64, payload string) ([]domain.Comment, error)
	// Delete 删除评论，返回被删除的评论。ID 不存在时返回空切片
	Delete(ctx context.Context, id int64) ([]domain.Comment, error)
}

type commentService struct {
	repo     repository.CommentRepository
	producer event.CommentEventProducer
	logger   *elog.Component
}

func NewCommentService(repo repository.CommentRepository, producer event.CommentEventProducer) CommentService {
	return &commentService{
		repo:     repo,
		producer: producer,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("CommentService")),
	}
}

func (s *commentService) List(ctx context.Context) ([]domain.Comment, error) {
	res, err := s.repo.List(ctx)
	return res, errs.NewStoreError("list", err)
}

func (s *commentService) Create(ctx context.Context, c domain.Comment) ([]domain.Comment, error) {
	if strings.TrimSpace(c.Payload) == "" {
		return nil, errs.NewValidationError("payload", "评论内容不能为空")
	}
	if c.ReplyOf < 0 {
		return nil, errs.NewValidationError("reply_of", "回复的评论ID非法")
	}
	c.Username = strings.TrimSpace(c.Username)
	if c.Username == "" {
		c.Username = domain.DefaultUsername
	}
	// ID 和时间都由存储分配
	c.ID, c.Ctime, c.Utime = 0, 0, 0
	res, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, errs.NewStoreError("create", err)
	}
	s.produce(ctx, event.TypeCreated, res)
	return res, nil
}

func (s *commentService) Update(ctx context.Context, id int64, payload string) ([]domain.Comment, error) {
	if id <= 0 {
		return nil, errs.NewValidationError("commentId", "评论ID非法")
	}
	if strings.TrimSpace(payload) == "" {
		return nil, errs.NewValidationError("payload", "评论内容不能为空")
	}
	res, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, errs.NewStoreError("update", err)
	}
	s.produce(ctx, event.TypeUpdated, res)
	return res, nil
}

func (s *commentService) Delete(ctx context.Context, id int64) ([]domain.Comment, error) {
	if id <= 0 {
		return nil, errs.NewValidationError("comment_id", "评论ID非法")
	}
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, errs.NewStoreError("delete", err)
	}
	s.produce(ctx, event.TypeDeleted, res)
	return res, nil
}

// produce 空结果（比如 ID 不存在）不发事件，发送失败也只记日志
func (s *commentService) produce(ctx context.Context, typ string, cs []domain.Comment) {
	if len(cs) == 0 {
		return
	}
	if err := s.producer.Produce(ctx, event.NewCommentEvent(typ, cs)); err != nil {
		s.logger.Error("发送评论事件失败",
			elog.FieldErr(err),
			elog.String("type", typ))
	}
}
