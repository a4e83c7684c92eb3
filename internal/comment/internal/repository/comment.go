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

package repository

import (
	"context"
	"database/sql"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/board/internal/comment/internal/domain"
	"github.com/ecodeclub/board/internal/comment/internal/repository/cache"
	"github.com/ecodeclub/board/internal/comment/internal/repository/dao"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./comment.go -package=repomocks -destination=mocks/comment.mock.go CommentRepository
type CommentRepository interface {
	List(ctx context.Context) ([]domain.Comment, error)
	Create(ctx context.Context, c domain.Comment) ([]domain.Comment, error)
	Update(ctx context.Context, id int64, payload string) ([]domain.Comment, error)
	Delete(ctx context.Context, id int64) ([]domain.Comment, error)
}

// CachedCommentRepository 整个列表缓存起来，任何写操作都让缓存失效。
// 缓存带版本号，避免慢的读请求把写之前的旧列表写回缓存
type CachedCommentRepository struct {
	dao    dao.CommentDAO
	cache  cache.CommentCache
	logger *elog.Component
}

func NewCachedCommentRepository(d dao.CommentDAO, c cache.CommentCache) CommentRepository {
	return &CachedCommentRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger.With(elog.FieldComponent("CommentRepository")),
	}
}

func (r *CachedCommentRepository) List(ctx context.Context) ([]domain.Comment, error) {
	res, err := r.cache.GetList(ctx)
	if err == nil {
		return res, nil
	}
	// 先拿版本再读存储，读的过程中有写操作的话，这次回写的缓存会因为版本落后而作废
	version, verErr := r.cache.Version(ctx)
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, err
	}
	res = r.toDomains(found)
	if verErr != nil {
		r.logger.Warn("读取评论列表缓存版本失败", elog.FieldErr(verErr))
		return res, nil
	}
	// 缓存失败不影响业务
	if er := r.cache.SetList(ctx, version, res); er != nil {
		r.logger.Warn("回写评论列表缓存失败", elog.FieldErr(er))
	}
	return res, nil
}

func (r *CachedCommentRepository) Create(ctx context.Context, c domain.Comment) ([]domain.Comment, error) {
	created, err := r.dao.Insert(ctx, r.toEntity(c))
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return r.toDomains(created), nil
}

func (r *CachedCommentRepository) Update(ctx context.Context, id int64, payload string) ([]domain.Comment, error) {
	updated, err := r.dao.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return r.toDomains(updated), nil
}

func (r *CachedCommentRepository) Delete(ctx context.Context, id int64) ([]domain.Comment, error) {
	deleted, err := r.dao.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return r.toDomains(deleted), nil
}

func (r *CachedCommentRepository) invalidate(ctx context.Context) {
	if err := r.cache.DelList(ctx); err != nil {
		r.logger.Warn("删除评论列表缓存失败", elog.FieldErr(err))
	}
}

func (r *CachedCommentRepository) toEntity(c domain.Comment) dao.Comment {
	return dao.Comment{
		ID:       c.ID,
		Username: c.Username,
		Payload:  c.Payload,
		ReplyOf:  sql.Null[int64]{V: c.ReplyOf, Valid: c.ReplyOf > 0},
		Ctime:    c.Ctime,
		Utime:    c.Utime,
	}
}

func (r *CachedCommentRepository) toDomains(cs []dao.Comment) []domain.Comment {
	return slice.Map(cs, func(_ int, src dao.Comment) domain.Comment {
		return r.toDomain(src)
	})
}

func (r *CachedCommentRepository) toDomain(c dao.Comment) domain.Comment {
	return domain.Comment{
		ID:       c.ID,
		Username: c.Username,
		Payload:  c.Payload,
		ReplyOf:  c.ReplyOf.V,
		Ctime:    c.Ctime,
		Utime:    c.Utime,
	}
}
