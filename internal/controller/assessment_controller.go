package controller

import (
	"encoding/json"
	"errors"
	"strconv"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/service"
	"fitsync_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// GenerateDaily godoc
// @Summary 生成每日评估题目
// @Description 从题库模板为当前用户生成最多 10 道每日题目并重置答题流程
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/assessment/generate-daily-questions [post]
func (c *AssessmentController) GenerateDaily(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	questions, err := c.AssessmentService.GenerateDailyQuestions(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"questions": questions, "total": len(questions)})
}

// GetActiveQuestions godoc
// @Summary 获取当前未作答题目
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Param   category query string false "题目分类"
// @Success 200 {object} util.Response{data=service.ActiveQuestionsResult} "成功"
// @Router /api/assessment/active-questions [get]
func (c *AssessmentController) GetActiveQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	result, err := c.AssessmentService.GetActiveQuestions(ctx.Request.Context(), claims.UserID, ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// DailyStatus godoc
// @Summary 今日评估完成状态
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DailyStatusResult} "成功"
// @Router /api/assessment/daily-status [get]
func (c *AssessmentController) DailyStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	status, err := c.AssessmentService.DailyStatus(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

type SubmitResponseRequest struct {
	AssessmentID   uint   `json:"assessmentId" binding:"required"`
	SelectedChoice string `json:"selectedChoice"`
	UserTextInput  string `json:"userTextInput" binding:"max=1000"`
}

// SubmitResponse godoc
// @Summary 提交一道题的作答
// @Description 选项和文字输入至少填一项，提交后返回逐题分析；批次聚合结果在进入结果展示阶段时返回
// @Tags 评估
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body SubmitResponseRequest true "作答内容"
// @Success 200 {object} util.Response{data=service.SubmitResponseResult} "成功"
// @Failure 400 {object} util.Response "作答内容为空或选项非法"
// @Failure 403 {object} util.Response "题目不属于当前用户"
// @Failure 404 {object} util.Response "题目不存在"
// @Failure 409 {object} util.Response "题目已作答"
// @Router /api/assessment/submit-response [post]
func (c *AssessmentController) SubmitResponse(ctx *gin.Context) {
	var req SubmitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, err := c.AssessmentService.SubmitResponse(ctx.Request.Context(), claims.UserID, service.SubmitResponseInput{
		AssessmentID:   req.AssessmentID,
		SelectedChoice: req.SelectedChoice,
		UserTextInput:  req.UserTextInput,
	})
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyResponse):
			util.BadRequest(ctx, "请选择一个选项或填写文字内容")
		case errors.Is(err, util.ErrInvalidChoice):
			util.BadRequest(ctx, "所选选项不属于该题目")
		case errors.Is(err, util.ErrAssessmentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrAssessmentCompleted):
			util.Conflict(ctx, "该题目已作答")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// SkipQuestion godoc
// @Summary 跳过当前题目
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.FlowState} "成功"
// @Failure 404 {object} util.Response "没有进行中的答题流程"
// @Router /api/assessment/skip [post]
func (c *AssessmentController) SkipQuestion(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	flow, err := c.AssessmentService.SkipQuestion(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNoActiveFlow) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, flow)
}

// ContinueFlow godoc
// @Summary 结果展示后继续作答
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.FlowState} "成功"
// @Failure 404 {object} util.Response "没有进行中的答题流程"
// @Router /api/assessment/continue [post]
func (c *AssessmentController) ContinueFlow(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	flow, err := c.AssessmentService.ContinueFlow(ctx.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNoActiveFlow) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, flow)
}

// Progress godoc
// @Summary 作答进度统计
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Param   days query int false "统计天数，默认 30"
// @Success 200 {object} util.Response{data=service.ProgressResult} "成功"
// @Router /api/assessment/progress [get]
func (c *AssessmentController) Progress(ctx *gin.Context) {
	days := util.ParseIntDefault(ctx.Query("days"), 30)
	claims := util.GetUserFromContext(ctx)
	result, err := c.AssessmentService.Progress(claims.UserID, days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// History godoc
// @Summary 作答历史
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Param   category query string false "题目分类"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/assessment/history [get]
func (c *AssessmentController) History(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	claims := util.GetUserFromContext(ctx)
	items, total, err := c.AssessmentService.History(claims.UserID, page, limit, ctx.Query("category"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// SentimentTrend godoc
// @Summary 情感趋势
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Param   days query int false "统计天数，默认 30"
// @Success 200 {object} util.Response{data=service.TrendResult} "成功"
// @Router /api/assessment/sentiment-trend [get]
func (c *AssessmentController) SentimentTrend(ctx *gin.Context) {
	days := util.ParseIntDefault(ctx.Query("days"), 30)
	claims := util.GetUserFromContext(ctx)
	result, err := c.AssessmentService.SentimentTrend(claims.UserID, days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Recommendations godoc
// @Summary 个性化建议
// @Tags 评估
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/assessment/recommendations [get]
func (c *AssessmentController) Recommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	recs, err := c.AssessmentService.Recommendations(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"recommendations": recs})
}

// 管理端题库

type QuestionTemplateRequest struct {
	Question   string         `json:"question" binding:"required,max=500"`
	Choices    []model.Choice `json:"choices" binding:"required,min=2"`
	Suggestion string         `json:"suggestion" binding:"max=500"`
	Sentiment  string         `json:"sentiment" binding:"omitempty,oneof=very_sad sad neutral happy very_happy"`
	Category   string         `json:"category" binding:"omitempty,oneof=general_wellbeing sentiment_analysis health_assessment lifestyle_assessment"`
	Difficulty string         `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Enabled    *bool          `json:"enabled"`
}

// CreateTemplate godoc
// @Summary 新建题库模板（管理端）
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body QuestionTemplateRequest true "模板内容"
// @Success 201 {object} util.Response{data=model.AssessmentQuestionTemplate} "创建成功"
// @Router /api/admin/assessment/templates [post]
func (c *AssessmentController) CreateTemplate(ctx *gin.Context) {
	var req QuestionTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	choices, err := json.Marshal(req.Choices)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	t := &model.AssessmentQuestionTemplate{
		Question:   req.Question,
		Choices:    choices,
		Suggestion: req.Suggestion,
		Sentiment:  req.Sentiment,
		Category:   model.AssessmentCategory(req.Category),
		Difficulty: req.Difficulty,
		Enabled:    true,
	}
	if t.Sentiment == "" {
		t.Sentiment = "neutral"
	}
	if t.Category == "" {
		t.Category = model.CategoryGeneral
	}
	if t.Difficulty == "" {
		t.Difficulty = "medium"
	}
	if req.Enabled != nil {
		t.Enabled = *req.Enabled
	}

	if err := c.AssessmentService.Repo.CreateTemplate(t); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, t)
}

// ListTemplates godoc
// @Summary 题库模板列表（管理端）
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Param   category query string false "题目分类"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/admin/assessment/templates [get]
func (c *AssessmentController) ListTemplates(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	items, total, err := c.AssessmentService.Repo.ListTemplates(page, limit, ctx.Query("category"), false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// UpdateTemplate godoc
// @Summary 更新题库模板（管理端）
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "模板ID"
// @Param   body body QuestionTemplateRequest true "模板内容"
// @Success 200 {object} util.Response{data=model.AssessmentQuestionTemplate} "成功"
// @Failure 404 {object} util.Response "模板不存在"
// @Router /api/admin/assessment/templates/{id} [put]
func (c *AssessmentController) UpdateTemplate(ctx *gin.Context) {
	var req QuestionTemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	t, err := c.AssessmentService.Repo.FindTemplateByID(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	t.Question = req.Question
	t.Choices, _ = json.Marshal(req.Choices)
	t.Suggestion = req.Suggestion
	if req.Sentiment != "" {
		t.Sentiment = req.Sentiment
	}
	if req.Category != "" {
		t.Category = model.AssessmentCategory(req.Category)
	}
	if req.Difficulty != "" {
		t.Difficulty = req.Difficulty
	}
	if req.Enabled != nil {
		t.Enabled = *req.Enabled
	}

	if err := c.AssessmentService.Repo.UpdateTemplate(t); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, t)
}

// DeleteTemplate godoc
// @Summary 删除题库模板（管理端）
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "模板ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/assessment/templates/{id} [delete]
func (c *AssessmentController) DeleteTemplate(ctx *gin.Context) {
	if err := c.AssessmentService.Repo.DeleteTemplate(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListSubmissions godoc
// @Summary 用户作答列表（管理端）
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Param   userId query int false "按用户过滤"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/admin/assessment/submissions [get]
func (c *AssessmentController) ListSubmissions(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	var userID uint
	if v := ctx.Query("userId"); v != "" {
		userID = util.MustParseUint(v)
	}

	items, total, err := c.AssessmentService.Repo.ListSubmissions(page, limit, userID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}
