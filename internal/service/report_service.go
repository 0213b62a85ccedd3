package service

import (
	"bytes"
	"fmt"
	"time"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"

	"github.com/jung-kurt/gofpdf"
)

// ReportService 生成每周健康报告 PDF
type ReportService struct {
	UserRepo       *repository.UserRepository
	FoodRepo       *repository.FoodLogRepository
	ProgramRepo    *repository.ProgramRepository
	CheckinRepo    *repository.MoodCheckinRepository
	AssessmentRepo *repository.AssessmentRepository
}

func NewReportService(
	userRepo *repository.UserRepository,
	foodRepo *repository.FoodLogRepository,
	programRepo *repository.ProgramRepository,
	checkinRepo *repository.MoodCheckinRepository,
	assessmentRepo *repository.AssessmentRepository,
) *ReportService {
	return &ReportService{
		UserRepo:       userRepo,
		FoodRepo:       foodRepo,
		ProgramRepo:    programRepo,
		CheckinRepo:    checkinRepo,
		AssessmentRepo: assessmentRepo,
	}
}

// WeeklyReport 过去 7 天的健康周报
func (s *ReportService) WeeklyReport(userID uint) ([]byte, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := now.AddDate(0, 0, -7)

	foodLogs, err := s.FoodRepo.ListBetween(userID, from, now)
	if err != nil {
		return nil, err
	}
	foodTotals, err := s.FoodRepo.TotalsBetween(userID, from, now)
	if err != nil {
		return nil, err
	}
	sessions, err := s.ProgramRepo.SessionsBetween(userID, from, now)
	if err != nil {
		return nil, err
	}
	checkins, err := s.CheckinRepo.History(userID, from)
	if err != nil {
		return nil, err
	}
	recent, err := s.AssessmentRepo.RecentCompleted(userID, MaxBatchSize)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 10, "Weekly Health Report")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 8, fmt.Sprintf("%s  |  %s - %s",
		user.Username, from.Format(util.DateFormat), now.Format(util.DateFormat)))
	pdf.Ln(12)

	// 心情趋势
	sectionHeader(pdf, "Mood Check-ins")
	if len(checkins) == 0 {
		emptyRow(pdf, "No mood check-ins recorded this week.")
	} else {
		tableHeader(pdf, []string{"Date", "Period", "Mood", "Notes"}, []float64{30, 30, 30, 100})
		for _, c := range checkins {
			tableRow(pdf, []string{
				c.Date.Format(util.DateFormat),
				string(c.CheckinType),
				fmt.Sprintf("%d/5 (%s)", c.MoodValue, c.MoodLabel),
				truncate(c.Notes, 60),
			}, []float64{30, 30, 30, 100})
		}
	}
	pdf.Ln(6)

	// 饮食
	sectionHeader(pdf, "Food Log")
	if len(foodLogs) == 0 {
		emptyRow(pdf, "No meals logged this week.")
	} else {
		tableHeader(pdf, []string{"Date", "Food", "Serving", "Calories"}, []float64{30, 90, 40, 30})
		for _, log := range foodLogs {
			tableRow(pdf, []string{
				log.AnalyzedAt.Format(util.DateFormat),
				truncate(log.FoodName, 45),
				truncate(log.ServingSize, 20),
				fmt.Sprintf("%.0f", log.Calories),
			}, []float64{30, 90, 40, 30})
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(160, 7, fmt.Sprintf("Total: %d meals", foodTotals.Meals), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.0f", foodTotals.Calories), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// 训练
	sectionHeader(pdf, "Workouts")
	if len(sessions) == 0 {
		emptyRow(pdf, "No workouts completed this week.")
	} else {
		tableHeader(pdf, []string{"Date", "Duration (min)", "Calories burned"}, []float64{40, 70, 80})
		var totalMinutes, totalBurned float64
		for _, sess := range sessions {
			tableRow(pdf, []string{
				sess.CompletedAt.Format(util.DateFormat),
				fmt.Sprintf("%.0f", sess.DurationMinutes),
				fmt.Sprintf("%.0f", sess.CaloriesBurned),
			}, []float64{40, 70, 80})
			totalMinutes += sess.DurationMinutes
			totalBurned += sess.CaloriesBurned
		}
		pdf.SetFont("Arial", "B", 9)
		pdf.CellFormat(40, 7, "Total", "1", 0, "R", false, 0, "")
		pdf.CellFormat(70, 7, fmt.Sprintf("%.0f", totalMinutes), "1", 0, "R", false, 0, "")
		pdf.CellFormat(80, 7, fmt.Sprintf("%.0f", totalBurned), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// 最近一批评估的聚合结论
	sectionHeader(pdf, "Assessment Summary")
	entries := batchEntriesFromAssessments(recent)
	if len(entries) == 0 {
		emptyRow(pdf, "No completed assessments yet.")
	} else {
		combined := CombineAnalysisResults(entries)
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, fmt.Sprintf("Overall sentiment: %s (confidence %.2f)",
			combined.Sentiment.Primary, combined.Sentiment.Confidence), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Dominant emotion: %s", combined.Emotion.Primary), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Stress level: %s (%.2f)  Anxiety: %s (%.2f)",
			combined.Stress.Level, combined.Stress.Score,
			combined.Stress.Anxiety.Level, combined.Stress.Anxiety.Score), "", 1, "L", false, 0, "")
		pdf.CellFormat(0, 7, fmt.Sprintf("Based on %d answered questions", combined.BatchSize), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// batchEntriesFromAssessments 从已完成题目的存档分析还原批条目
func batchEntriesFromAssessments(assessments []model.Assessment) []model.BatchEntry {
	var entries []model.BatchEntry
	for _, a := range assessments {
		rec, err := a.DecodeSentimentResult()
		if err != nil || rec == nil {
			continue
		}
		entries = append(entries, model.BatchEntry{
			AssessmentID: a.ID,
			Question:     a.Question,
			Analysis:     rec.Analysis,
		})
	}
	return entries
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.Cell(0, 9, title)
	pdf.Ln(9)
}

func tableHeader(pdf *gofpdf.Fpdf, cols []string, widths []float64) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 7, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func tableRow(pdf *gofpdf.Fpdf, cells []string, widths []float64) {
	pdf.SetFont("Arial", "", 9)
	for i, cell := range cells {
		pdf.CellFormat(widths[i], 7, cell, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)
}

func emptyRow(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Arial", "I", 10)
	pdf.Cell(0, 7, text)
	pdf.Ln(7)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
