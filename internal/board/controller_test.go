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

package board_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ecodeclub/board/internal/board"
	boardmocks "github.com/ecodeclub/board/internal/board/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var base = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// memStore 内存实现，行为和服务端一致：更新刷新 updated_at，找不到时返回空切片
type memStore struct {
	mu     sync.Mutex
	rows   []board.Comment
	nextID int64
	clock  time.Time
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, clock: base}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) List(_ context.Context) ([]board.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.rows), nil
}

func (s *memStore) Create(_ context.Context, c board.NewComment) ([]board.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.tick()
	row := board.Comment{
		ID:        s.nextID,
		CreatedAt: now,
		UpdatedAt: now,
		Username:  c.Username,
		Payload:   c.Payload,
		ReplyOf:   c.ReplyOf,
	}
	s.nextID++
	s.rows = append(s.rows, row)
	return []board.Comment{row}, nil
}

func (s *memStore) Update(_ context.Context, id int64, payload string) ([]board.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []board.Comment{}
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Payload = payload
			s.rows[i].UpdatedAt = s.tick()
			res = append(res, s.rows[i])
		}
	}
	return res, nil
}

func (s *memStore) Delete(_ context.Context, id int64) ([]board.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := []board.Comment{}
	s.rows = slices.DeleteFunc(s.rows, func(c board.Comment) bool {
		if c.ID == id {
			res = append(res, c)
			return true
		}
		return false
	})
	return res, nil
}

func submit(t *testing.T, ctrl *board.Controller, payload string) board.Entry {
	t.Helper()
	ctrl.SetDraft(payload)
	require.NoError(t, ctrl.Submit(context.Background()))
	view := ctrl.View()
	require.NotEmpty(t, view)
	return view[len(view)-1]
}

func payloads(entries []board.Entry) []string {
	res := make([]string, 0, len(entries))
	for _, e := range entries {
		res = append(res, e.Payload)
	}
	return res
}

func TestController_Submit(t *testing.T) {
	store := newMemStore()
	ctrl := board.NewController(store, "tom")
	ctx := context.Background()
	require.NoError(t, ctrl.Load(ctx))
	assert.Empty(t, ctrl.View())

	for i, payload := range []string{"hi", "hello", "bye"} {
		e := submit(t, ctrl, payload)
		assert.Equal(t, payload, e.Payload)
		assert.Equal(t, "tom", e.Username)
		assert.False(t, e.Pending)
		assert.True(t, e.ID > 0)
		assert.Equal(t, "", ctrl.Draft())

		rows, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, rows, i+1)
		assert.Len(t, ctrl.View(), i+1)
	}

	ctrl.SetDraft("  \n ")
	assert.ErrorIs(t, ctrl.Submit(ctx), board.ErrEmptyDraft)
	assert.Len(t, ctrl.View(), 3)
}

func TestController_DefaultUsername(t *testing.T) {
	ctrl := board.NewController(newMemStore(), " ")
	assert.Equal(t, "anonymous", ctrl.Username())
	e := submit(t, ctrl, "hi")
	assert.Equal(t, "anonymous", e.Username)
}

func TestController_Reply(t *testing.T) {
	ctrl := board.NewController(newMemStore(), "tom")
	a := submit(t, ctrl, "hi")

	require.NoError(t, ctrl.SetReplyTarget(a.ID))
	assert.Equal(t, a.ID, *ctrl.ReplyTarget())
	b := submit(t, ctrl, "hello")
	assert.Nil(t, ctrl.ReplyTarget())

	view := ctrl.View()
	require.Len(t, view, 2)
	assert.Equal(t, b.ID, view[1].ID)
	require.NotNil(t, view[1].ReplyOf)
	assert.Equal(t, a.ID, *view[1].ReplyOf)
	assert.Equal(t, "hi", view[1].ReplySnippet)
	assert.False(t, view[1].ReplyMissing)
	assert.Empty(t, view[0].ReplySnippet)

	assert.ErrorIs(t, ctrl.SetReplyTarget(404), board.ErrNotFound)
	require.NoError(t, ctrl.SetReplyTarget(a.ID))
	ctrl.ClearReplyTarget()
	assert.Nil(t, ctrl.ReplyTarget())
}

func TestController_DanglingReply(t *testing.T) {
	ctrl := board.NewController(newMemStore(), "tom")
	ctx := context.Background()
	a := submit(t, ctrl, "hi")
	require.NoError(t, ctrl.SetReplyTarget(a.ID))
	b := submit(t, ctrl, "hello")

	require.NoError(t, ctrl.Delete(ctx, a.ID))
	view := ctrl.View()
	require.Len(t, view, 1)
	assert.Equal(t, b.ID, view[0].ID)
	assert.True(t, view[0].ReplyMissing)
	assert.Equal(t, "", view[0].ReplySnippet)
}

func TestController_Edit(t *testing.T) {
	ctrl := board.NewController(newMemStore(), "tom")
	ctx := context.Background()
	a := submit(t, ctrl, "hi")
	other := submit(t, ctrl, "hello")

	assert.False(t, ctrl.CanConfirmEdit())
	assert.ErrorIs(t, ctrl.SetEditDraft("x"), board.ErrNotEditing)
	assert.ErrorIs(t, ctrl.ConfirmEdit(ctx), board.ErrNotEditing)
	assert.ErrorIs(t, ctrl.BeginEdit(404), board.ErrNotFound)

	require.NoError(t, ctrl.BeginEdit(a.ID))
	assert.Equal(t, &board.EditSession{ID: a.ID, Original: "hi", Draft: "hi"}, ctrl.Editing())
	// 和原内容一样不能提交，改动一个字符之后可以
	assert.False(t, ctrl.CanConfirmEdit())
	require.NoError(t, ctrl.SetEditDraft("hi!"))
	assert.True(t, ctrl.CanConfirmEdit())
	require.NoError(t, ctrl.SetEditDraft("hi"))
	assert.False(t, ctrl.CanConfirmEdit())
	require.NoError(t, ctrl.SetEditDraft("   "))
	assert.False(t, ctrl.CanConfirmEdit())

	require.NoError(t, ctrl.SetEditDraft("hi, edited"))
	require.NoError(t, ctrl.ConfirmEdit(ctx))
	assert.Nil(t, ctrl.Editing())

	view := ctrl.View()
	require.Len(t, view, 2)
	edited := view[0]
	assert.Equal(t, a.ID, edited.ID)
	assert.True(t, a.CreatedAt.Equal(edited.CreatedAt))
	assert.Equal(t, "hi, edited", edited.Payload)
	assert.Equal(t, a.Username, edited.Username)
	assert.True(t, edited.Edited)
	assert.Equal(t, other, view[1])

	require.NoError(t, ctrl.BeginEdit(a.ID))
	ctrl.CancelEdit()
	assert.Nil(t, ctrl.Editing())
}

func TestController_ConfirmEditUnchanged(t *testing.T) {
	mc := gomock.NewController(t)
	store := boardmocks.NewMockStore(mc)
	store.EXPECT().List(gomock.Any()).Return([]board.Comment{
		{ID: 1, CreatedAt: base, UpdatedAt: base, Username: "tom", Payload: "hi"},
	}, nil)
	ctrl := board.NewController(store, "tom")
	require.NoError(t, ctrl.Load(context.Background()))

	// 没有改动，不会调用 Update
	require.NoError(t, ctrl.BeginEdit(1))
	require.NoError(t, ctrl.ConfirmEdit(context.Background()))
	assert.Nil(t, ctrl.Editing())
}

func TestController_Delete(t *testing.T) {
	ctrl := board.NewController(newMemStore(), "tom")
	ctx := context.Background()
	submit(t, ctrl, "a")
	b := submit(t, ctrl, "b")
	submit(t, ctrl, "c")

	require.NoError(t, ctrl.Delete(ctx, b.ID))
	assert.Equal(t, []string{"a", "c"}, payloads(ctrl.View()))

	// 删除不存在的评论不报错，列表不变
	require.NoError(t, ctrl.Delete(ctx, 404))
	assert.Equal(t, []string{"a", "c"}, payloads(ctrl.View()))
}

func TestController_Rollback(t *testing.T) {
	storeErr := errors.New("upstream unavailable")
	a := board.Comment{ID: 1, CreatedAt: base, UpdatedAt: base, Username: "tom", Payload: "a"}
	b := board.Comment{ID: 2, CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second), Username: "jerry", Payload: "b"}
	c := board.Comment{ID: 3, CreatedAt: base.Add(2 * time.Second), UpdatedAt: base.Add(2 * time.Second), Username: "tom", Payload: "c"}

	testCases := []struct {
		name   string
		mock   func(t *testing.T, store *boardmocks.MockStore, ctrl **board.Controller)
		action func(t *testing.T, ctx context.Context, ctrl *board.Controller) error
		after  func(t *testing.T, ctrl *board.Controller)
	}{
		{
			name: "创建失败，删除乐观插入的评论并恢复草稿",
			mock: func(t *testing.T, store *boardmocks.MockStore, ctrl **board.Controller) {
				store.EXPECT().Create(gomock.Any(), board.NewComment{Username: "tom", Payload: "d", ReplyOf: &b.ID}).
					DoAndReturn(func(ctx context.Context, _ board.NewComment) ([]board.Comment, error) {
						view := (*ctrl).View()
						require.Len(t, view, 4)
						assert.True(t, view[3].Pending)
						assert.NotEmpty(t, view[3].LocalID)
						assert.Equal(t, "b", view[3].ReplySnippet)
						assert.Equal(t, "", (*ctrl).Draft())
						assert.Nil(t, (*ctrl).ReplyTarget())
						return nil, storeErr
					})
			},
			action: func(t *testing.T, ctx context.Context, ctrl *board.Controller) error {
				require.NoError(t, ctrl.SetReplyTarget(b.ID))
				ctrl.SetDraft("d")
				return ctrl.Submit(ctx)
			},
			after: func(t *testing.T, ctrl *board.Controller) {
				assert.Equal(t, []string{"a", "b", "c"}, payloads(ctrl.View()))
				assert.Equal(t, "d", ctrl.Draft())
				assert.Equal(t, b.ID, *ctrl.ReplyTarget())
			},
		},
		{
			name: "修改失败，恢复原内容",
			mock: func(t *testing.T, store *boardmocks.MockStore, ctrl **board.Controller) {
				store.EXPECT().Update(gomock.Any(), b.ID, "b!").
					DoAndReturn(func(ctx context.Context, _ int64, _ string) ([]board.Comment, error) {
						view := (*ctrl).View()
						assert.Equal(t, "b!", view[1].Payload)
						assert.True(t, view[1].Edited)
						return nil, storeErr
					})
			},
			action: func(t *testing.T, ctx context.Context, ctrl *board.Controller) error {
				require.NoError(t, ctrl.BeginEdit(b.ID))
				require.NoError(t, ctrl.SetEditDraft("b!"))
				return ctrl.ConfirmEdit(ctx)
			},
			after: func(t *testing.T, ctrl *board.Controller) {
				view := ctrl.View()
				assert.Equal(t, b, view[1].Comment)
				assert.False(t, view[1].Edited)
				// 编辑状态也恢复了，可以直接重试
				assert.Equal(t, &board.EditSession{ID: b.ID, Original: "b", Draft: "b!"}, ctrl.Editing())
			},
		},
		{
			name: "删除失败，放回原来的位置",
			mock: func(t *testing.T, store *boardmocks.MockStore, ctrl **board.Controller) {
				store.EXPECT().Delete(gomock.Any(), b.ID).
					DoAndReturn(func(ctx context.Context, _ int64) ([]board.Comment, error) {
						assert.Equal(t, []string{"a", "c"}, payloads((*ctrl).View()))
						return nil, storeErr
					})
			},
			action: func(t *testing.T, ctx context.Context, ctrl *board.Controller) error {
				return ctrl.Delete(ctx, b.ID)
			},
			after: func(t *testing.T, ctrl *board.Controller) {
				view := ctrl.View()
				require.Len(t, view, 3)
				assert.Equal(t, b, view[1].Comment)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mc := gomock.NewController(t)
			store := boardmocks.NewMockStore(mc)
			store.EXPECT().List(gomock.Any()).Return([]board.Comment{a, b, c}, nil)
			ctrl := board.NewController(store, "tom", board.WithClock(func() time.Time {
				return base.Add(time.Hour)
			}))
			tc.mock(t, store, &ctrl)
			ctx := context.Background()
			require.NoError(t, ctrl.Load(ctx))

			err := tc.action(t, ctx, ctrl)
			assert.ErrorIs(t, err, storeErr)
			assert.NotErrorIs(t, err, board.ErrRefresh)
			tc.after(t, ctrl)
		})
	}
}

func TestController_RefreshFailed(t *testing.T) {
	mc := gomock.NewController(t)
	store := boardmocks.NewMockStore(mc)
	listErr := errors.New("timeout")
	created := board.Comment{ID: 1, CreatedAt: base, UpdatedAt: base, Username: "tom", Payload: "hi"}
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return([]board.Comment{created}, nil)
	store.EXPECT().List(gomock.Any()).Return(nil, listErr)

	ctrl := board.NewController(store, "tom")
	ctrl.SetDraft("hi")
	err := ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, board.ErrRefresh)
	assert.ErrorIs(t, err, listErr)

	// 创建本身成功了，保留服务端返回的评论
	view := ctrl.View()
	require.Len(t, view, 1)
	assert.Equal(t, created, view[0].Comment)
	assert.Equal(t, "", ctrl.Draft())
}

func TestController_LoadKeepsPending(t *testing.T) {
	mc := gomock.NewController(t)
	store := boardmocks.NewMockStore(mc)
	existing := board.Comment{ID: 1, CreatedAt: base, UpdatedAt: base, Username: "jerry", Payload: "hello"}
	created := board.Comment{ID: 2, CreatedAt: base.Add(time.Second), UpdatedAt: base.Add(time.Second), Username: "tom", Payload: "hi"}

	var ctrl *board.Controller
	// 按照注册顺序匹配：第一次 List 发生在创建返回之前
	store.EXPECT().List(gomock.Any()).Return([]board.Comment{existing}, nil)
	store.EXPECT().List(gomock.Any()).Return([]board.Comment{existing, created}, nil)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ board.NewComment) ([]board.Comment, error) {
			// 创建还没返回的时候刷新了列表
			require.NoError(t, ctrl.Load(ctx))
			view := ctrl.View()
			require.Len(t, view, 2)
			assert.Equal(t, existing, view[0].Comment)
			assert.True(t, view[1].Pending)
			return []board.Comment{created}, nil
		})

	ctrl = board.NewController(store, "tom", board.WithClock(func() time.Time {
		return base.Add(time.Second)
	}))
	ctrl.SetDraft("hi")
	require.NoError(t, ctrl.Submit(context.Background()))
	view := ctrl.View()
	require.Len(t, view, 2)
	assert.Equal(t, created, view[1].Comment)
}

func TestController_LoadAlreadyHasCreated(t *testing.T) {
	mc := gomock.NewController(t)
	store := boardmocks.NewMockStore(mc)
	created := board.Comment{ID: 7, CreatedAt: base, UpdatedAt: base, Username: "tom", Payload: "hi"}

	var ctrl *board.Controller
	// 创建期间的 Load 已经带回了新评论，创建之后的刷新失败
	store.EXPECT().List(gomock.Any()).Return([]board.Comment{created}, nil)
	store.EXPECT().List(gomock.Any()).Return(nil, errors.New("timeout"))
	store.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ board.NewComment) ([]board.Comment, error) {
			require.NoError(t, ctrl.Load(ctx))
			return []board.Comment{created}, nil
		})

	ctrl = board.NewController(store, "tom", board.WithClock(func() time.Time {
		return base
	}))
	ctrl.SetDraft("hi")
	err := ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, board.ErrRefresh)

	view := ctrl.View()
	require.Len(t, view, 1)
	assert.Equal(t, created, view[0].Comment)
	assert.False(t, view[0].Pending)
}

func TestSortByCreatedAt(t *testing.T) {
	cs := []board.Comment{
		{ID: 3, CreatedAt: base.Add(2 * time.Second)},
		{ID: 1, CreatedAt: base},
		{ID: 4, CreatedAt: base.Add(time.Second)},
		{ID: 2, CreatedAt: base},
	}
	board.SortByCreatedAt(cs)
	ids := func() []int64 {
		res := make([]int64, 0, len(cs))
		for _, c := range cs {
			res = append(res, c.ID)
		}
		return res
	}
	// 时间相同的保持原来的顺序
	assert.Equal(t, []int64{1, 2, 4, 3}, ids())
	board.SortByCreatedAt(cs)
	assert.Equal(t, []int64{1, 2, 4, 3}, ids())
}

func TestSnippet(t *testing.T) {
	testCases := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "短内容", payload: "hi", want: "hi"},
		{name: "换行变成空格", payload: "hello\n  world", want: "hello world"},
		{name: "超长截断", payload: strings.Repeat("评", board.SnippetMaxRunes+1), want: strings.Repeat("评", board.SnippetMaxRunes) + "..."},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, board.Snippet(tc.payload))
		})
	}
}
