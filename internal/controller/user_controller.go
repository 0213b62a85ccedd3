package controller

import (
	"errors"
	"strconv"
	"time"

	"fitsync_backend/internal/service"
	"fitsync_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// GetProfile godoc
// @Summary 获取当前用户资料
// @Tags 用户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 401 {object} util.Response "未授权"
// @Router /api/users/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.GetProfile(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type UpdateProfileRequest struct {
	Username     string   `json:"username"`
	Gender       string   `json:"gender" binding:"omitempty,oneof=male female other"`
	Birthdate    string   `json:"birthdate"`
	HeightCM     *float64 `json:"heightCm" binding:"omitempty,gt=0"`
	WeightKG     *float64 `json:"weightKg" binding:"omitempty,gt=0"`
	FitnessLevel string   `json:"fitnessLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
	Region       string   `json:"region"`
}

// UpdateProfile godoc
// @Summary 更新当前用户资料
// @Tags 用户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body UpdateProfileRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	input := service.UpdateProfileInput{
		Username:     req.Username,
		Gender:       req.Gender,
		HeightCM:     req.HeightCM,
		WeightKG:     req.WeightKG,
		FitnessLevel: req.FitnessLevel,
		Region:       req.Region,
	}
	if req.Birthdate != "" {
		t, err := time.Parse(util.DateFormat, req.Birthdate)
		if err != nil {
			util.BadRequest(ctx, "birthdate 格式应为 "+util.DateFormat)
			return
		}
		input.Birthdate = &t
	}

	claims := util.GetUserFromContext(ctx)
	user, err := c.UserService.UpdateProfile(claims.UserID, input)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// UploadAvatar godoc
// @Summary 上传头像
// @Tags 用户
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   file formData file true "头像图片"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Router /api/users/avatar [post]
func (c *UserController) UploadAvatar(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少 file 字段")
		return
	}

	claims := util.GetUserFromContext(ctx)
	url, err := c.UserService.UploadAvatar(ctx.Request.Context(), claims.UserID, file)
	if err != nil {
		if errors.Is(err, util.ErrUnsupportedMediaType) {
			util.BadRequest(ctx, "仅支持图片文件")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"avatar": url})
}

// 管理端

// ListUsers godoc
// @Summary 用户列表
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Param   search query string false "按用户名或邮箱搜索"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/admin/users [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	search := ctx.Query("search")

	users, total, err := c.UserService.ListUsers(page, limit, search)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

// AdminGetUser godoc
// @Summary 查看用户详情（管理端）
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [get]
func (c *UserController) AdminGetUser(ctx *gin.Context) {
	user, err := c.UserService.GetProfile(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type AdminUpdateUserRequest struct {
	Username string `json:"username"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	Verified *bool  `json:"verified"`
}

// AdminUpdateUser godoc
// @Summary 更新用户（管理端）
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Param   body body AdminUpdateUserRequest true "要更新的字段"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [put]
func (c *UserController) AdminUpdateUser(ctx *gin.Context) {
	var req AdminUpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := util.MustParseUint(ctx.Param("id"))
	user, err := c.UserService.AdminUpdateUser(userID, service.AdminUpdateUserInput{
		Username: req.Username,
		Role:     req.Role,
		Verified: req.Verified,
	})
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type SetDisabledRequest struct {
	Disabled bool `json:"disabled"`
}

// SetDisabled godoc
// @Summary 停用/启用用户
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Param   body body SetDisabledRequest true "停用状态"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/users/{id}/disabled [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	var req SetDisabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.SetDisabled(userID, req.Disabled); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// ResetPassword godoc
// @Summary 重置用户密码（管理端）
// @Tags 管理端
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Param   body body ResetPasswordRequest true "新密码"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/users/{id}/password [put]
func (c *UserController) ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	userID := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.ResetPassword(userID, req.Password); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// DeleteUser godoc
// @Summary 删除用户（管理端）
// @Tags 管理端
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "用户ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/admin/users/{id} [delete]
func (c *UserController) DeleteUser(ctx *gin.Context) {
	userID := util.MustParseUint(ctx.Param("id"))
	if err := c.UserService.DeleteUser(userID); err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
