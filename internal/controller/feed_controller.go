package controller

import (
	"errors"
	"strconv"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/service"
	"fitsync_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FeedController struct {
	FeedService *service.FeedService
}

func NewFeedController(feedService *service.FeedService) *FeedController {
	return &FeedController{FeedService: feedService}
}

// CreatePost godoc
// @Summary 发布动态
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.PostInput true "动态内容"
// @Success 201 {object} util.Response{data=model.Post} "创建成功"
// @Router /api/feed/posts [post]
func (c *FeedController) CreatePost(ctx *gin.Context) {
	var input service.PostInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	p, err := c.FeedService.CreatePost(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, p)
}

// ListFeed godoc
// @Summary 动态流
// @Description 公开动态加上当前用户自己的动态，按时间倒序
// @Tags 社区
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/feed/posts [get]
func (c *FeedController) ListFeed(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	claims := util.GetUserFromContext(ctx)
	posts, total, err := c.FeedService.ListFeed(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: posts, Total: total, Page: page, Limit: limit})
}

// GetPost godoc
// @Summary 动态详情
// @Description 返回动态、赞踩分、表态计数和嵌套评论；同一用户短时间内重复浏览不重复计浏览量
// @Tags 社区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "动态ID"
// @Success 200 {object} util.Response{data=service.PostView} "成功"
// @Failure 403 {object} util.Response "无权查看私密动态"
// @Failure 404 {object} util.Response "动态不存在"
// @Router /api/feed/posts/{id} [get]
func (c *FeedController) GetPost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	view, err := c.FeedService.GetPost(ctx.Request.Context(), claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.respondFeedError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// UpdatePost godoc
// @Summary 编辑动态
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "动态ID"
// @Param   body body service.PostInput true "动态内容"
// @Success 200 {object} util.Response{data=model.Post} "成功"
// @Failure 403 {object} util.Response "只能编辑自己的动态"
// @Failure 404 {object} util.Response "动态不存在"
// @Router /api/feed/posts/{id} [put]
func (c *FeedController) UpdatePost(ctx *gin.Context) {
	var input service.PostInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	p, err := c.FeedService.UpdatePost(claims.UserID, util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		c.respondFeedError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// DeletePost godoc
// @Summary 删除动态
// @Description 作者或管理员可删除
// @Tags 社区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "动态ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "动态不存在"
// @Router /api/feed/posts/{id} [delete]
func (c *FeedController) DeletePost(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.FeedService.DeletePost(claims.UserID, claims.Role, util.MustParseUint(ctx.Param("id"))); err != nil {
		c.respondFeedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CreateComment godoc
// @Summary 发表评论
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "动态ID"
// @Param   body body service.CommentInput true "评论内容"
// @Success 201 {object} util.Response{data=model.Comment} "创建成功"
// @Failure 404 {object} util.Response "动态或父评论不存在"
// @Router /api/feed/posts/{id}/comments [post]
func (c *FeedController) CreateComment(ctx *gin.Context) {
	var input service.CommentInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	comment, err := c.FeedService.CreateComment(claims.UserID, util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		c.respondFeedError(ctx, err)
		return
	}
	util.Created(ctx, comment)
}

// DeleteComment godoc
// @Summary 删除评论
// @Description 作者或管理员可删除
// @Tags 社区
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "评论ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "评论不存在"
// @Router /api/feed/comments/{id} [delete]
func (c *FeedController) DeleteComment(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.FeedService.DeleteComment(claims.UserID, claims.Role, util.MustParseUint(ctx.Param("id"))); err != nil {
		c.respondFeedError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type ReactRequest struct {
	TargetType string `json:"targetType" binding:"required,oneof=post comment"`
	TargetID   uint   `json:"targetId" binding:"required"`
	Kind       string `json:"kind" binding:"required,oneof=like love haha wow sad angry"`
}

// React godoc
// @Summary 表态
// @Description 对动态或评论表态，重复同类表态视为取消
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ReactRequest true "表态内容"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/feed/reactions [post]
func (c *FeedController) React(ctx *gin.Context) {
	var req ReactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	reaction, err := c.FeedService.React(claims.UserID,
		model.TargetType(req.TargetType), req.TargetID, model.ReactionKind(req.Kind))
	if err != nil {
		c.respondFeedError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"reaction": reaction})
}

type VoteRequest struct {
	TargetType string `json:"targetType" binding:"required,oneof=post comment"`
	TargetID   uint   `json:"targetId" binding:"required"`
	Value      int    `json:"value" binding:"required,oneof=1 -1"`
}

// Vote godoc
// @Summary 赞踩
// @Description 对动态或评论赞或踩，重复同向投票视为取消
// @Tags 社区
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body VoteRequest true "投票内容"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "目标不存在"
// @Router /api/feed/votes [post]
func (c *FeedController) Vote(ctx *gin.Context) {
	var req VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	score, err := c.FeedService.Vote(claims.UserID,
		model.TargetType(req.TargetType), req.TargetID, req.Value)
	if err != nil {
		c.respondFeedError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"score": score})
}

func (c *FeedController) respondFeedError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPostNotFound), errors.Is(err, util.ErrCommentNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
