package controller

import (
	"errors"

	"fitsync_backend/internal/service"
	"fitsync_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgramController struct {
	ProgramService *service.ProgramService
}

func NewProgramController(programService *service.ProgramService) *ProgramController {
	return &ProgramController{ProgramService: programService}
}

// Create godoc
// @Summary 创建训练计划
// @Tags 训练
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.ProgramInput true "计划内容"
// @Success 201 {object} util.Response{data=model.Program} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "引用的动作不存在"
// @Router /api/programs [post]
func (c *ProgramController) Create(ctx *gin.Context) {
	var input service.ProgramInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	p, err := c.ProgramService.Create(claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrWorkoutNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, p)
}

// List godoc
// @Summary 我的训练计划
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/programs [get]
func (c *ProgramController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	programs, err := c.ProgramService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"programs": programs})
}

// Get godoc
// @Summary 计划详情
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "计划ID"
// @Success 200 {object} util.Response{data=model.Program} "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/programs/{id} [get]
func (c *ProgramController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	p, err := c.ProgramService.Get(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.respondProgramError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// Update godoc
// @Summary 更新训练计划
// @Tags 训练
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "计划ID"
// @Param   body body service.ProgramInput true "计划内容"
// @Success 200 {object} util.Response{data=model.Program} "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/programs/{id} [put]
func (c *ProgramController) Update(ctx *gin.Context) {
	var input service.ProgramInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	p, err := c.ProgramService.Update(claims.UserID, util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		c.respondProgramError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// Delete godoc
// @Summary 删除训练计划
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "计划ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/programs/{id} [delete]
func (c *ProgramController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ProgramService.Delete(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		c.respondProgramError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// CompleteSession godoc
// @Summary 记录完成一次训练
// @Tags 训练
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CompleteSessionInput true "训练数据"
// @Success 201 {object} util.Response{data=model.ProgramSession} "创建成功"
// @Failure 404 {object} util.Response "计划不存在"
// @Router /api/programs/sessions [post]
func (c *ProgramController) CompleteSession(ctx *gin.Context) {
	var input service.CompleteSessionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	session, err := c.ProgramService.CompleteSession(claims.UserID, input)
	if err != nil {
		c.respondProgramError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// Sessions godoc
// @Summary 训练记录列表
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   days query int false "统计天数，默认 30"
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/programs/sessions [get]
func (c *ProgramController) Sessions(ctx *gin.Context) {
	days := util.ParseIntDefault(ctx.Query("days"), 30)
	claims := util.GetUserFromContext(ctx)
	sessions, err := c.ProgramService.Sessions(claims.UserID, days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"sessions": sessions})
}

func (c *ProgramController) respondProgramError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrProgramNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
