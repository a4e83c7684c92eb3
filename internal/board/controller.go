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

package board

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
)

const (
	// SnippetMaxRunes 回复摘要最多展示的字符数
	SnippetMaxRunes = 60
)

type Option func(c *Controller)

// WithClock 乐观更新时使用的时间，测试用
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// Controller 维护评论列表的本地副本。
// 所有写操作先修改本地状态，再调用 Store，失败时执行对应的 undo 回滚。
// 网络调用都在锁外面进行，最后返回的列表覆盖本地缓存。
type Controller struct {
	store    Store
	username string
	now      func() time.Time
	logger   *elog.Component

	mu          sync.Mutex
	comments    []Comment
	draft       string
	editing     *EditSession
	replyTarget *int64
}

func NewController(store Store, username string, opts ...Option) *Controller {
	username = strings.TrimSpace(username)
	if username == "" {
		username = "anonymous"
	}
	c := &Controller{
		store:    store,
		username: username,
		now:      time.Now,
		logger:   elog.DefaultLogger.With(elog.FieldComponent("BoardController")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Username() string {
	return c.username
}

// Load 用服务端的列表替换本地缓存，还在请求中的新评论会保留下来
func (c *Controller) Load(ctx context.Context) error {
	res, err := c.store.List(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	comments := make([]Comment, 0, len(res))
	comments = append(comments, res...)
	for _, cm := range c.comments {
		if cm.Pending {
			comments = append(comments, cm)
		}
	}
	c.comments = comments
	// 正在编辑的评论被别人删掉了
	if c.editing != nil && c.indexOf(c.editing.ID) < 0 {
		c.editing = nil
	}
	return nil
}

func (c *Controller) SetDraft(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = s
}

func (c *Controller) Draft() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Submit 提交草稿。回复目标在提交时一并带上，并且被清空
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	payload := c.draft
	if strings.TrimSpace(payload) == "" {
		c.mu.Unlock()
		return ErrEmptyDraft
	}
	replyTarget := copyPtr(c.replyTarget)
	now := c.now()
	local := Comment{
		LocalID:   shortuuid.New(),
		Pending:   true,
		CreatedAt: now,
		UpdatedAt: now,
		Username:  c.username,
		Payload:   payload,
		ReplyOf:   copyPtr(replyTarget),
	}
	c.comments = append(c.comments, local)
	c.draft = ""
	c.replyTarget = nil
	undo := func() {
		c.removeLocal(local.LocalID)
		// 用户已经开始输入新的内容了，就不覆盖
		if c.draft == "" {
			c.draft = payload
		}
		if c.replyTarget == nil {
			c.replyTarget = replyTarget
		}
	}
	c.mu.Unlock()

	res, err := c.store.Create(ctx, NewComment{
		Username: c.username,
		Payload:  payload,
		ReplyOf:  copyPtr(replyTarget),
	})
	c.mu.Lock()
	if err != nil {
		undo()
		c.mu.Unlock()
		c.logger.Warn("创建评论失败，已回滚", elog.FieldErr(err))
		return err
	}
	c.confirmLocal(local.LocalID, res)
	c.mu.Unlock()
	return c.refresh(ctx)
}

// BeginEdit 开始编辑，草稿的初始值就是当前内容
func (c *Controller) BeginEdit(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	c.editing = &EditSession{
		ID:       id,
		Original: c.comments[idx].Payload,
		Draft:    c.comments[idx].Payload,
	}
	return nil
}

func (c *Controller) SetEditDraft(s string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return ErrNotEditing
	}
	c.editing.Draft = s
	return nil
}

// Editing 返回当前编辑状态的副本，没有在编辑时返回 nil
func (c *Controller) Editing() *EditSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return nil
	}
	res := *c.editing
	return &res
}

// CanConfirmEdit 草稿和原内容一样，或者为空的时候不能提交
func (c *Controller) CanConfirmEdit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editing != nil &&
		c.editing.Draft != c.editing.Original &&
		strings.TrimSpace(c.editing.Draft) != ""
}

func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = nil
}

// ConfirmEdit 草稿没有变化时什么都不做
func (c *Controller) ConfirmEdit(ctx context.Context) error {
	c.mu.Lock()
	if c.editing == nil {
		c.mu.Unlock()
		return ErrNotEditing
	}
	session := *c.editing
	if session.Draft == session.Original {
		c.editing = nil
		c.mu.Unlock()
		return nil
	}
	if strings.TrimSpace(session.Draft) == "" {
		c.mu.Unlock()
		return ErrEmptyDraft
	}
	idx := c.indexOf(session.ID)
	if idx < 0 {
		c.editing = nil
		c.mu.Unlock()
		return ErrNotFound
	}
	prev := c.comments[idx]
	c.comments[idx].Payload = session.Draft
	c.comments[idx].UpdatedAt = c.now()
	c.editing = nil
	undo := func() {
		if i := c.indexOf(session.ID); i >= 0 {
			c.comments[i].Payload = prev.Payload
			c.comments[i].UpdatedAt = prev.UpdatedAt
		}
		// 恢复编辑状态，方便重试
		if c.editing == nil {
			c.editing = &session
		}
	}
	c.mu.Unlock()

	res, err := c.store.Update(ctx, session.ID, session.Draft)
	c.mu.Lock()
	if err != nil {
		undo()
		c.mu.Unlock()
		c.logger.Warn("修改评论失败，已回滚", elog.FieldErr(err), elog.Int64("id", session.ID))
		return err
	}
	c.apply(res)
	c.mu.Unlock()
	return c.refresh(ctx)
}

// Delete 删除评论，回复它的评论不受影响。
// 本地没有的评论也会请求服务端，服务端找不到时同样视为成功
func (c *Controller) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	undo := func() {}
	if idx := c.indexOf(id); idx >= 0 {
		removed := c.comments[idx]
		c.comments = slices.Delete(c.comments, idx, idx+1)
		editing := c.editing
		if editing != nil && editing.ID == id {
			c.editing = nil
		}
		undo = func() {
			if c.indexOf(id) >= 0 {
				return
			}
			pos := min(idx, len(c.comments))
			c.comments = slices.Insert(c.comments, pos, removed)
			if c.editing == nil && editing != nil && editing.ID == id {
				c.editing = editing
			}
		}
	}
	c.mu.Unlock()

	_, err := c.store.Delete(ctx, id)
	if err != nil {
		c.mu.Lock()
		undo()
		c.mu.Unlock()
		c.logger.Warn("删除评论失败，已回滚", elog.FieldErr(err), elog.Int64("id", id))
		return err
	}
	return c.refresh(ctx)
}

func (c *Controller) SetReplyTarget(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(id) < 0 {
		return ErrNotFound
	}
	c.replyTarget = int64Ptr(id)
	return nil
}

func (c *Controller) ClearReplyTarget() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replyTarget = nil
}

func (c *Controller) ReplyTarget() *int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyPtr(c.replyTarget)
}

// View 按照创建时间升序排列，时间相同的保持原有顺序
func (c *Controller) View() []Entry {
	c.mu.Lock()
	comments := slices.Clone(c.comments)
	c.mu.Unlock()

	SortByCreatedAt(comments)
	byID := make(map[int64]Comment, len(comments))
	for _, cm := range comments {
		if !cm.Pending {
			byID[cm.ID] = cm
		}
	}
	res := make([]Entry, 0, len(comments))
	for _, cm := range comments {
		entry := Entry{Comment: cm, Edited: cm.Edited()}
		if cm.ReplyOf != nil {
			parent, ok := byID[*cm.ReplyOf]
			if ok {
				entry.ReplySnippet = Snippet(parent.Payload)
			} else {
				entry.ReplyMissing = true
			}
		}
		res = append(res, entry)
	}
	return res
}

// SortByCreatedAt 稳定排序，对已经有序的列表再排一次结果不变
func SortByCreatedAt(cs []Comment) {
	slices.SortStableFunc(cs, func(a, b Comment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// Snippet 取前 SnippetMaxRunes 个字符，换行替换成空格
func Snippet(payload string) string {
	s := strings.Join(strings.Fields(payload), " ")
	if utf8.RuneCountInString(s) <= SnippetMaxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:SnippetMaxRunes]) + "..."
}

func (c *Controller) refresh(ctx context.Context) error {
	if err := c.Load(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRefresh, err)
	}
	return nil
}

// indexOf 只查找服务端已经确认的评论
func (c *Controller) indexOf(id int64) int {
	return slices.IndexFunc(c.comments, func(cm Comment) bool {
		return !cm.Pending && cm.ID == id
	})
}

func (c *Controller) removeLocal(localID string) {
	c.comments = slices.DeleteFunc(c.comments, func(cm Comment) bool {
		return cm.Pending && cm.LocalID == localID
	})
}

// confirmLocal 用服务端返回的评论替换乐观插入的那一条
func (c *Controller) confirmLocal(localID string, res []Comment) {
	idx := slices.IndexFunc(c.comments, func(cm Comment) bool {
		return cm.Pending && cm.LocalID == localID
	})
	if idx < 0 {
		c.apply(res)
		return
	}
	// 创建还没返回时 Load 已经带回了这一条，去掉乐观插入的那条，避免同一个 ID 出现两次
	if len(res) == 0 || c.indexOf(res[0].ID) >= 0 {
		c.comments = slices.Delete(c.comments, idx, idx+1)
		c.apply(res)
		return
	}
	c.comments[idx] = res[0]
	c.apply(res[1:])
}

// apply 把服务端返回的评论合并进本地缓存
func (c *Controller) apply(res []Comment) {
	for _, cm := range res {
		if i := c.indexOf(cm.ID); i >= 0 {
			c.comments[i] = cm
			continue
		}
		c.comments = append(c.comments, cm)
	}
}
