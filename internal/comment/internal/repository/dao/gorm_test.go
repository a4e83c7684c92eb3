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
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestCommentGORMDAO_Update(t *testing.T) {
	columns := []string{"id", "username", "payload", "reply_of", "ctime", "utime"}
	// 远在未来的创建时间，模拟和创建落在同一毫秒
	future := time.Now().Add(time.Hour).UnixMilli()
	past := time.Now().Add(-time.Hour).UnixMilli()

	testCases := []struct {
		name    string
		mock    func(t *testing.T) *sql.DB
		id      int64
		wantErr error
		after   func(t *testing.T, res []Comment)
	}{
		{
			name: "更新刷新utime",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT .* FROM `comments`").
					WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "tom", "hi", nil, past, past))
				mock.ExpectExec("UPDATE `comments` SET").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
				return mockDB
			},
			id: 1,
			after: func(t *testing.T, res []Comment) {
				require.Len(t, res, 1)
				assert.Equal(t, "edited", res[0].Payload)
				assert.Equal(t, past, res[0].Ctime)
				assert.Greater(t, res[0].Utime, past)
			},
		},
		{
			name: "同一毫秒内编辑也要和ctime区分",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT .* FROM `comments`").
					WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "tom", "hi", nil, future, future))
				mock.ExpectExec("UPDATE `comments` SET").
					WithArgs("edited", future+1, int64(1)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
				return mockDB
			},
			id: 1,
			after: func(t *testing.T, res []Comment) {
				require.Len(t, res, 1)
				assert.Equal(t, future+1, res[0].Utime)
			},
		},
		{
			name: "不存在的评论",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT .* FROM `comments`").
					WillReturnRows(sqlmock.NewRows(columns))
				mock.ExpectCommit()
				return mockDB
			},
			id: 404,
			after: func(t *testing.T, res []Comment) {
				assert.Equal(t, []Comment{}, res)
			},
		},
		{
			name: "数据库错误",
			mock: func(t *testing.T) *sql.DB {
				mockDB, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectBegin()
				mock.ExpectQuery("SELECT .* FROM `comments`").
					WillReturnError(errors.New("数据库错误"))
				mock.ExpectRollback()
				return mockDB
			},
			id:      1,
			wantErr: errors.New("数据库错误"),
			after:   func(t *testing.T, res []Comment) {},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, err := gorm.Open(gormMysql.New(gormMysql.Config{
				Conn:                      tc.mock(t),
				SkipInitializeWithVersion: true,
			}), &gorm.Config{
				SkipDefaultTransaction: true,
			})
			require.NoError(t, err)
			res, err := NewCommentGORMDAO(db).Update(context.Background(), tc.id, "edited")
			assert.Equal(t, tc.wantErr, err)
			tc.after(t, res)
		})
	}
}
