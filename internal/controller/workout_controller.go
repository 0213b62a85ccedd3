package controller

import (
	"errors"
	"strconv"

	"fitsync_backend/internal/service"
	"fitsync_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WorkoutController struct {
	WorkoutService *service.WorkoutService
}

func NewWorkoutController(workoutService *service.WorkoutService) *WorkoutController {
	return &WorkoutController{WorkoutService: workoutService}
}

// List godoc
// @Summary 动作库列表
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   category query string false "分类 bodyweight/equipment"
// @Param   type query string false "动作类型"
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/workouts [get]
func (c *WorkoutController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	workouts, total, err := c.WorkoutService.List(ctx.Query("category"), ctx.Query("type"), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: workouts, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary 动作详情
// @Tags 训练
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "动作ID"
// @Success 200 {object} util.Response{data=model.Workout} "成功"
// @Failure 404 {object} util.Response "动作不存在"
// @Router /api/workouts/{id} [get]
func (c *WorkoutController) Get(ctx *gin.Context) {
	w, err := c.WorkoutService.Get(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrWorkoutNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, w)
}

// Create godoc
// @Summary 新建动作（管理端）
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.WorkoutInput true "动作内容"
// @Success 201 {object} util.Response{data=model.Workout} "创建成功"
// @Router /api/admin/workouts [post]
func (c *WorkoutController) Create(ctx *gin.Context) {
	var input service.WorkoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	w, err := c.WorkoutService.Create(input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, w)
}

// Update godoc
// @Summary 更新动作（管理端）
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "动作ID"
// @Param   body body service.WorkoutInput true "动作内容"
// @Success 200 {object} util.Response{data=model.Workout} "成功"
// @Failure 404 {object} util.Response "动作不存在"
// @Router /api/admin/workouts/{id} [put]
func (c *WorkoutController) Update(ctx *gin.Context) {
	var input service.WorkoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	w, err := c.WorkoutService.Update(util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		if errors.Is(err, util.ErrWorkoutNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, w)
}

// Delete godoc
// @Summary 删除动作（管理端）
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "动作ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "动作不存在"
// @Router /api/admin/workouts/{id} [delete]
func (c *WorkoutController) Delete(ctx *gin.Context) {
	if err := c.WorkoutService.Delete(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrWorkoutNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadAnimation godoc
// @Summary 上传动作示范动画（管理端）
// @Description 上传后自动探测时长并截取缩略图
// @Tags 管理端
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "动作ID"
// @Param   file formData file true "动画文件 mp4/mov/webm/gif"
// @Success 200 {object} util.Response{data=model.Workout} "成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Failure 404 {object} util.Response "动作不存在"
// @Router /api/admin/workouts/{id}/animation [post]
func (c *WorkoutController) UploadAnimation(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少 file 字段")
		return
	}

	w, err := c.WorkoutService.UploadAnimation(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), file)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrWorkoutNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrUnsupportedMediaType):
			util.BadRequest(ctx, "仅支持 mp4/mov/webm/gif 文件")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, w)
}
