package controller

import (
	"errors"
	"strconv"
	"time"

	"fitsync_backend/internal/service"
	"fitsync_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FoodLogController struct {
	FoodLogService *service.FoodLogService
}

func NewFoodLogController(foodLogService *service.FoodLogService) *FoodLogController {
	return &FoodLogController{FoodLogService: foodLogService}
}

// Create godoc
// @Summary 创建饮食记录
// @Tags 饮食
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CreateFoodLogInput true "饮食记录内容"
// @Success 201 {object} util.Response{data=model.FoodLog} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/food-logs [post]
func (c *FoodLogController) Create(ctx *gin.Context) {
	var input service.CreateFoodLogInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	log, err := c.FoodLogService.Create(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, log)
}

// Get godoc
// @Summary 饮食记录详情
// @Tags 饮食
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "记录ID"
// @Success 200 {object} util.Response{data=model.FoodLog} "成功"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/food-logs/{id} [get]
func (c *FoodLogController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	log, err := c.FoodLogService.Get(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		c.respondFoodLogError(ctx, err)
		return
	}
	util.Success(ctx, log)
}

// Update godoc
// @Summary 更新饮食记录
// @Tags 饮食
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "记录ID"
// @Param   body body service.UpdateFoodLogInput true "要更新的字段"
// @Success 200 {object} util.Response{data=model.FoodLog} "成功"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/food-logs/{id} [put]
func (c *FoodLogController) Update(ctx *gin.Context) {
	var input service.UpdateFoodLogInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	log, err := c.FoodLogService.Update(claims.UserID, util.MustParseUint(ctx.Param("id")), input)
	if err != nil {
		c.respondFoodLogError(ctx, err)
		return
	}
	util.Success(ctx, log)
}

// Delete godoc
// @Summary 删除饮食记录
// @Tags 饮食
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "记录ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/food-logs/{id} [delete]
func (c *FoodLogController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.FoodLogService.Delete(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		c.respondFoodLogError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary 饮食记录列表
// @Tags 饮食
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Param   from query string false "起始日期 YYYY-MM-DD"
// @Param   to query string false "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/food-logs [get]
func (c *FoodLogController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	var from, to *time.Time
	if v := ctx.Query("from"); v != "" {
		t, err := time.Parse(util.DateFormat, v)
		if err != nil {
			util.BadRequest(ctx, "from 格式应为 "+util.DateFormat)
			return
		}
		from = &t
	}
	if v := ctx.Query("to"); v != "" {
		t, err := time.Parse(util.DateFormat, v)
		if err != nil {
			util.BadRequest(ctx, "to 格式应为 "+util.DateFormat)
			return
		}
		end := t.AddDate(0, 0, 1)
		to = &end
	}

	claims := util.GetUserFromContext(ctx)
	logs, total, err := c.FoodLogService.List(claims.UserID, page, limit, from, to)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: logs, Total: total, Page: page, Limit: limit})
}

// Summary godoc
// @Summary 某日饮食汇总
// @Tags 饮食
// @Produce  json
// @Security ApiKeyAuth
// @Param   date query string false "日期 YYYY-MM-DD，默认今天"
// @Success 200 {object} util.Response{data=service.DailySummary} "成功"
// @Router /api/food-logs/summary [get]
func (c *FoodLogController) Summary(ctx *gin.Context) {
	date := time.Now()
	if v := ctx.Query("date"); v != "" {
		t, err := time.Parse(util.DateFormat, v)
		if err != nil {
			util.BadRequest(ctx, "date 格式应为 "+util.DateFormat)
			return
		}
		date = t
	}

	claims := util.GetUserFromContext(ctx)
	summary, err := c.FoodLogService.Summary(claims.UserID, date)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

// UploadImage godoc
// @Summary 上传餐食照片
// @Tags 饮食
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "餐食图片"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Router /api/food-logs/image [post]
func (c *FoodLogController) UploadImage(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少 file 字段")
		return
	}

	claims := util.GetUserFromContext(ctx)
	url, err := c.FoodLogService.UploadImage(ctx.Request.Context(), claims.UserID, file)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedMediaType) {
			util.BadRequest(ctx, "仅支持图片文件")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"imageUrl": url})
}

func (c *FoodLogController) respondFoodLogError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrFoodLogNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
