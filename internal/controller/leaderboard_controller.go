package controller

import (
	"strconv"

	"fitsync_backend/internal/service"
	"fitsync_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LeaderboardController struct {
	LeaderboardService *service.LeaderboardService
}

func NewLeaderboardController(leaderboardService *service.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{LeaderboardService: leaderboardService}
}

// Top godoc
// @Summary 榜单
// @Tags 排行榜
// @Produce  json
// @Security ApiKeyAuth
// @Param   period query string true "周期 daily/weekly"
// @Param   metric query string true "指标 calories_burned/activity_minutes/meals_logged/workouts_completed"
// @Param   limit query int false "数量，默认 20，最多 100"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "周期或指标不合法"
// @Router /api/leaderboard [get]
func (c *LeaderboardController) Top(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	entries, err := c.LeaderboardService.Top(ctx.Request.Context(),
		ctx.DefaultQuery("period", "daily"), ctx.DefaultQuery("metric", "calories_burned"), limit)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"entries": entries})
}

// MyRank godoc
// @Summary 我的排名
// @Tags 排行榜
// @Produce  json
// @Security ApiKeyAuth
// @Param   period query string true "周期 daily/weekly"
// @Param   metric query string true "指标"
// @Success 200 {object} util.Response{data=service.MyRankResult} "成功"
// @Failure 400 {object} util.Response "周期或指标不合法"
// @Router /api/leaderboard/me [get]
func (c *LeaderboardController) MyRank(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	rank, err := c.LeaderboardService.MyRank(ctx.Request.Context(), claims.UserID,
		ctx.DefaultQuery("period", "daily"), ctx.DefaultQuery("metric", "calories_burned"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, rank)
}

// Recompute godoc
// @Summary 立即重算排行榜（管理端）
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/leaderboard/recompute [post]
func (c *LeaderboardController) Recompute(ctx *gin.Context) {
	if err := c.LeaderboardService.RecomputeAll(ctx.Request.Context()); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
