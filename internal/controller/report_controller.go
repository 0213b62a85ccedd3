package controller

import (
	"fmt"
	"net/http"
	"time"

	"fitsync_backend/internal/service"
	"fitsync_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// Weekly godoc
// @Summary 下载健康周报 PDF
// @Description 汇总过去 7 天的心情打卡、饮食、训练和评估结果
// @Tags 报告
// @Produce  application/pdf
// @Security ApiKeyAuth
// @Success 200 {file} binary "PDF 文件"
// @Router /api/reports/weekly [get]
func (c *ReportController) Weekly(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	data, err := c.ReportService.WeeklyReport(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("weekly-report-%s.pdf", time.Now().Format(util.DateFormat))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", data)
}
