package util

import "errors"

var (
	ErrUserNotFound         = errors.New("用户不存在")
	ErrEmailRegistered      = errors.New("该邮箱已被注册")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrAssessmentNotFound   = errors.New("assessment not found")
	ErrAssessmentCompleted  = errors.New("assessment already completed")
	ErrEmptyResponse        = errors.New("selected choice or text input is required")
	ErrInvalidChoice        = errors.New("selected choice does not belong to this question")
	ErrNoActiveFlow         = errors.New("no active assessment flow")
	ErrFoodLogNotFound      = errors.New("food log not found")
	ErrWorkoutNotFound      = errors.New("workout not found")
	ErrProgramNotFound      = errors.New("program not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrCommentNotFound      = errors.New("comment not found")
	ErrCheckinExists        = errors.New("check-in already recorded for this period")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountDisabled      = errors.New("account disabled")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
)
