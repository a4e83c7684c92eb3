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

package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/board/internal/comment/internal/domain"
	"github.com/pkg/errors"
)

var (
	ErrCommentListNotFound = errors.New("评论列表缓存不存在")
)

const (
	listKey    = "list"
	versionKey = "list:version"
)

//go:generate mockgen -source=./comment.go -package=cachemocks -destination=mocks/comment.mock.go CommentCache
type CommentCache interface {
	// GetList 缓存的版本落后于当前版本时按未命中处理
	GetList(ctx context.Context) ([]domain.Comment, error)
	// Version 必须在读存储之前调用，结果传给 SetList
	Version(ctx context.Context) (int64, error)
	SetList(ctx context.Context, version int64, comments []domain.Comment) error
	// DelList 任何写操作之后都要调用，版本号加一并删除列表，让下一次读穿透到存储
	DelList(ctx context.Context) error
}

type listEntry struct {
	Version  int64            `json:"version"`
	Comments []domain.Comment `json:"comments"`
}

type CommentECache struct {
	ec         ecache.Cache
	expiration time.Duration
}

func NewCommentECache(ec ecache.Cache, expiration time.Duration) CommentCache {
	if expiration <= 0 {
		expiration = time.Minute
	}
	return &CommentECache{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: "comment:",
		},
		expiration: expiration,
	}
}

func (c *CommentECache) GetList(ctx context.Context) ([]domain.Comment, error) {
	val := c.ec.Get(ctx, listKey)
	if val.KeyNotFound() {
		return nil, ErrCommentListNotFound
	}
	if val.Err != nil {
		return nil, val.Err
	}
	str, err := val.String()
	if err != nil {
		return nil, err
	}
	var entry listEntry
	if err = json.Unmarshal([]byte(str), &entry); err != nil {
		return nil, errors.Wrap(err, "反序列化评论列表失败")
	}
	version, err := c.Version(ctx)
	if err != nil {
		return nil, err
	}
	if entry.Version != version {
		return nil, ErrCommentListNotFound
	}
	return entry.Comments, nil
}

func (c *CommentECache) Version(ctx context.Context) (int64, error) {
	// 加 0 读取当前版本，key 不存在时就是 0
	version, err := c.ec.IncrBy(ctx, versionKey, 0)
	return version, errors.Wrap(err, "读取评论列表版本失败")
}

func (c *CommentECache) SetList(ctx context.Context, version int64, comments []domain.Comment) error {
	data, err := json.Marshal(listEntry{Version: version, Comments: comments})
	if err != nil {
		return errors.Wrap(err, "序列化评论列表失败")
	}
	return c.ec.Set(ctx, listKey, string(data), c.expiration)
}

func (c *CommentECache) DelList(ctx context.Context) error {
	if _, err := c.ec.IncrBy(ctx, versionKey, 1); err != nil {
		return errors.Wrap(err, "更新评论列表版本失败")
	}
	_, err := c.ec.Delete(ctx, listKey)
	return err
}
