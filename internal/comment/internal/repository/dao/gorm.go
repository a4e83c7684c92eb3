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
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

type CommentGORMDAO struct {
	db *egorm.Component
}

func NewCommentGORMDAO(db *egorm.Component) CommentDAO {
	return &CommentGORMDAO{db: db}
}

func (g *CommentGORMDAO) List(ctx context.Context) ([]Comment, error) {
	res := make([]Comment, 0, 32)
	err := g.db.WithContext(ctx).Order("id ASC").Find(&res).Error
	return res, err
}

func (g *CommentGORMDAO) Insert(ctx context.Context, c Comment) ([]Comment, error) {
	now := time.Now().UnixMilli()
	c.ID = 0
	c.Ctime, c.Utime = now, now
	if err := g.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return []Comment{c}, nil
}

func (g *CommentGORMDAO) Update(ctx context.Context, id int64, payload string) ([]Comment, error) {
	var found []Comment
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Find(&found).Error; err != nil {
			return err
		}
		// 不存在的 ID 当作成功的空操作
		if len(found) == 0 {
			return nil
		}
		// 和创建落在同一毫秒时，utime 至少比 ctime 大 1，否则看不出被编辑过
		utime := max(time.Now().UnixMilli(), found[0].Ctime+1)
		err := tx.Model(&Comment{}).Where("id = ?", id).
			Updates(map[string]any{
				"payload": payload,
				"utime":   utime,
			}).Error
		if err != nil {
			return err
		}
		for i := range found {
			found[i].Payload = payload
			found[i].Utime = utime
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return g.nonNil(found), nil
}

func (g *CommentGORMDAO) Delete(ctx context.Context, id int64) ([]Comment, error) {
	var found []Comment
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).Find(&found).Error; err != nil {
			return err
		}
		if len(found) == 0 {
			return nil
		}
		return tx.Where("id = ?", id).Delete(&Comment{}).Error
	})
	if err != nil {
		return nil, err
	}
	return g.nonNil(found), nil
}

func (g *CommentGORMDAO) nonNil(cs []Comment) []Comment {
	if cs == nil {
		return []Comment{}
	}
	return cs
}
