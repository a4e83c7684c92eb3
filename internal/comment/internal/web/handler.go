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

package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ecodeclub/board/internal/comment/internal/domain"
	"github.com/ecodeclub/board/internal/comment/internal/errs"
	"github.com/ecodeclub/board/internal/comment/internal/service"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

const msgMethodNotAllowed = "Method Not Allowed"

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc    service.CommentService
	logger *elog.Component
}

func NewHandler(svc service.CommentService) *Handler {
	return &Handler{
		svc:    svc,
		logger: elog.DefaultLogger.With(elog.FieldComponent("CommentHandler")),
	}
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

// PublicRoutes 没有登录体系，所有接口都是公开的。
// 响应格式沿用托管数据库服务的约定：成功返回行数组，失败返回 {message}
func (h *Handler) PublicRoutes(server *gin.Engine) {
	group := server.Group("/api/comments")
	group.GET("", ginx.W(h.List))
	group.POST("", ginx.W(h.Create))
	group.PATCH("", ginx.W(h.Update))
	group.DELETE("", ginx.W(h.Delete))

	// 其余的方法统一返回 405
	server.HandleMethodNotAllowed = true
	server.NoMethod(h.MethodNotAllowed)
}

func (h *Handler) MethodNotAllowed(ctx *gin.Context) {
	ctx.JSON(http.StatusMethodNotAllowed, ErrorResp{Message: msgMethodNotAllowed})
}

func (h *Handler) List(ctx *ginx.Context) (ginx.Result, error) {
	res, err := h.svc.List(ctx.Request.Context())
	if err != nil {
		return h.fail(ctx, err)
	}
	return h.ok(ctx, res)
}

func (h *Handler) Create(ctx *ginx.Context) (ginx.Result, error) {
	var req CreateReq
	if err := h.bind(ctx, &req); err != nil {
		return h.fail(ctx, err)
	}
	c := domain.Comment{
		Username: req.Comment.Username,
		Payload:  req.Comment.Payload,
	}
	if req.Comment.ReplyOf != nil {
		c.ReplyOf = *req.Comment.ReplyOf
	}
	res, err := h.svc.Create(ctx.Request.Context(), c)
	if err != nil {
		return h.fail(ctx, err)
	}
	return h.ok(ctx, res)
}

func (h *Handler) Update(ctx *ginx.Context) (ginx.Result, error) {
	var req UpdateReq
	if err := h.bind(ctx, &req); err != nil {
		return h.fail(ctx, err)
	}
	res, err := h.svc.Update(ctx.Request.Context(), req.CommentID, req.Payload)
	if err != nil {
		return h.fail(ctx, err)
	}
	return h.ok(ctx, res)
}

func (h *Handler) Delete(ctx *ginx.Context) (ginx.Result, error) {
	id, err := h.commentID(ctx)
	if err != nil {
		// 非法的 comment_id 与不支持的方法一样处理，保持 405 的约定
		h.logger.Warn("删除评论参数非法", elog.FieldErr(err))
		ctx.JSON(http.StatusMethodNotAllowed, ErrorResp{Message: msgMethodNotAllowed})
		return ginx.Result{}, ginx.ErrNoResponse
	}
	res, err := h.svc.Delete(ctx.Request.Context(), id)
	if err != nil {
		return h.fail(ctx, err)
	}
	return h.ok(ctx, res)
}

// bind 请求体解析失败同样按照 {message} 返回，不能让 gin 直接中断
func (h *Handler) bind(ctx *ginx.Context, req any) error {
	if err := ctx.ShouldBindJSON(req); err != nil {
		h.logger.Warn("请求体解析失败", elog.FieldErr(err), elog.String("method", ctx.Request.Method))
		return errs.NewValidationError("body", "请求体格式错误")
	}
	return nil
}

// commentID comment_id 必须出现且只出现一次，并且是正整数
func (h *Handler) commentID(ctx *ginx.Context) (int64, error) {
	vals, ok := ctx.Request.URL.Query()["comment_id"]
	if !ok || len(vals) == 0 {
		return 0, errs.NewValidationError("comment_id", "缺少参数")
	}
	if len(vals) > 1 {
		return 0, errs.NewValidationError("comment_id", "只能指定一个")
	}
	id, err := strconv.ParseInt(vals[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.NewValidationError("comment_id", "非法的评论ID "+strconv.Quote(vals[0]))
	}
	return id, nil
}

func (h *Handler) ok(ctx *ginx.Context, cs []domain.Comment) (ginx.Result, error) {
	ctx.JSON(http.StatusOK, slice.Map(cs, func(_ int, src domain.Comment) Comment {
		return h.toVO(src)
	}))
	return ginx.Result{}, ginx.ErrNoResponse
}

// fail 错误不做分类，只区分请求非法与存储出错，message 直接透传
func (h *Handler) fail(ctx *ginx.Context, err error) (ginx.Result, error) {
	status := http.StatusInternalServerError
	if errs.IsValidation(err) {
		status = http.StatusBadRequest
	} else {
		h.logger.Error("操作评论失败",
			elog.FieldErr(err),
			elog.String("method", ctx.Request.Method))
	}
	ctx.JSON(status, ErrorResp{Message: err.Error()})
	return ginx.Result{}, ginx.ErrNoResponse
}

func (h *Handler) toVO(c domain.Comment) Comment {
	vo := Comment{
		ID:        c.ID,
		CreatedAt: time.UnixMilli(c.Ctime).UTC(),
		UpdatedAt: time.UnixMilli(c.Utime).UTC(),
		Username:  c.Username,
		Payload:   c.Payload,
	}
	if c.IsReply() {
		replyOf := c.ReplyOf
		vo.ReplyOf = &replyOf
	}
	return vo
}
