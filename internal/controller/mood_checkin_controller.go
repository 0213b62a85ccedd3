package controller

import (
	"errors"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/service"
	"fitsync_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MoodCheckinController struct {
	CheckinService *service.MoodCheckinService
}

func NewMoodCheckinController(checkinService *service.MoodCheckinService) *MoodCheckinController {
	return &MoodCheckinController{CheckinService: checkinService}
}

// Create godoc
// @Summary 心情打卡
// @Description 按当前时段（早/午/晚）打卡，同一时段重复打卡返回冲突
// @Tags 心情
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CheckinInput true "打卡内容"
// @Success 201 {object} util.Response{data=model.MoodCheckin} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 409 {object} util.Response "当前时段已打卡"
// @Router /api/checkins [post]
func (c *MoodCheckinController) Create(ctx *gin.Context) {
	var input service.CheckinInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	checkin, err := c.CheckinService.Create(claims.UserID, input)
	if err != nil {
		if errors.Is(err, util.ErrCheckinExists) {
			util.Conflict(ctx, "当前时段已打卡")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, checkin)
}

// Status godoc
// @Summary 今日打卡状态
// @Tags 心情
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.CheckinStatus} "成功"
// @Router /api/checkins/status [get]
func (c *MoodCheckinController) Status(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	status, err := c.CheckinService.Status(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, status)
}

// History godoc
// @Summary 打卡历史与统计
// @Tags 心情
// @Produce  json
// @Security ApiKeyAuth
// @Param   days query int false "统计天数，默认 7"
// @Success 200 {object} util.Response{data=service.MoodHistory} "成功"
// @Router /api/checkins/history [get]
func (c *MoodCheckinController) History(ctx *gin.Context) {
	days := util.ParseIntDefault(ctx.Query("days"), 7)
	claims := util.GetUserFromContext(ctx)
	history, err := c.CheckinService.History(claims.UserID, days)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, history)
}

// Factors godoc
// @Summary 可选影响因素列表
// @Tags 心情
// @Produce  json
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/checkins/factors [get]
func (c *MoodCheckinController) Factors(ctx *gin.Context) {
	util.Success(ctx, gin.H{"factors": model.ContributingFactors})
}
