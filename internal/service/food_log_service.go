package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"fitsync_backend/internal/model"
	"fitsync_backend/internal/repository"
	"fitsync_backend/internal/util"

	"gorm.io/gorm"
)

type FoodLogService struct {
	Repo    *repository.FoodLogRepository
	Storage *StorageService
}

func NewFoodLogService(repo *repository.FoodLogRepository, storage *StorageService) *FoodLogService {
	return &FoodLogService{Repo: repo, Storage: storage}
}

// CreateFoodLogInput 创建饮食记录。营养数值由外部识别服务产出，这里只接收结果
type CreateFoodLogInput struct {
	InputMethod         model.FoodInputMethod      `json:"inputMethod" binding:"required,oneof=image manual multi-dish"`
	ImageURL            string                     `json:"imageUrl"`
	FoodName            string                     `json:"foodName" binding:"required"`
	DishName            string                     `json:"dishName"`
	BrandedProduct      *model.BrandedProduct      `json:"brandedProduct"`
	NutritionSources    []model.NutritionSource    `json:"nutritionSources"`
	Calories            float64                    `json:"calories" binding:"required,gte=0"`
	ServingSize         string                     `json:"servingSize" binding:"required"`
	Nutrients           model.Nutrients            `json:"nutrients"`
	AllergyWarnings     *model.AllergyWarnings     `json:"allergyWarnings"`
	UserAllergies       []string                   `json:"userAllergies"`
	HealthyAlternatives []model.HealthyAlternative `json:"healthyAlternatives"`
	Confidence          string                     `json:"confidence"`
	Notes               string                     `json:"notes"`
	IngredientsList     string                     `json:"ingredientsList"`
}

func (s *FoodLogService) Create(userID uint, input CreateFoodLogInput) (*model.FoodLog, error) {
	log := &model.FoodLog{
		UserID:          userID,
		AnalyzedAt:      time.Now(),
		InputMethod:     input.InputMethod,
		ImageURL:        input.ImageURL,
		FoodName:        input.FoodName,
		DishName:        input.DishName,
		Calories:        input.Calories,
		ServingSize:     input.ServingSize,
		Nutrients:       input.Nutrients,
		Confidence:      input.Confidence,
		Notes:           input.Notes,
		IngredientsList: input.IngredientsList,
	}
	if log.Confidence == "" {
		log.Confidence = "medium"
	}

	if input.BrandedProduct != nil {
		log.BrandedProduct, _ = json.Marshal(input.BrandedProduct)
	}
	if len(input.NutritionSources) > 0 {
		log.NutritionSources, _ = json.Marshal(input.NutritionSources)
	}
	if input.AllergyWarnings != nil {
		log.AllergyWarnings, _ = json.Marshal(input.AllergyWarnings)
	}
	if len(input.UserAllergies) > 0 {
		log.UserAllergies, _ = json.Marshal(input.UserAllergies)
	}
	if len(input.HealthyAlternatives) > 0 {
		log.HealthyAlternatives, _ = json.Marshal(input.HealthyAlternatives)
	}

	if err := s.Repo.Create(log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *FoodLogService) findOwned(userID, logID uint) (*model.FoodLog, error) {
	log, err := s.Repo.FindByID(logID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrFoodLogNotFound
		}
		return nil, err
	}
	if log.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return log, nil
}

func (s *FoodLogService) Get(userID, logID uint) (*model.FoodLog, error) {
	return s.findOwned(userID, logID)
}

type UpdateFoodLogInput struct {
	FoodName    string           `json:"foodName"`
	DishName    string           `json:"dishName"`
	Calories    *float64         `json:"calories"`
	ServingSize string           `json:"servingSize"`
	Nutrients   *model.Nutrients `json:"nutrients"`
	Notes       string           `json:"notes"`
}

func (s *FoodLogService) Update(userID, logID uint, input UpdateFoodLogInput) (*model.FoodLog, error) {
	log, err := s.findOwned(userID, logID)
	if err != nil {
		return nil, err
	}
	if input.FoodName != "" {
		log.FoodName = input.FoodName
	}
	if input.DishName != "" {
		log.DishName = input.DishName
	}
	if input.Calories != nil {
		log.Calories = *input.Calories
	}
	if input.ServingSize != "" {
		log.ServingSize = input.ServingSize
	}
	if input.Nutrients != nil {
		log.Nutrients = *input.Nutrients
	}
	if input.Notes != "" {
		log.Notes = input.Notes
	}
	if err := s.Repo.Update(log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *FoodLogService) Delete(userID, logID uint) error {
	log, err := s.findOwned(userID, logID)
	if err != nil {
		return err
	}
	return s.Repo.Delete(log.ID)
}

func (s *FoodLogService) List(userID uint, page, limit int, from, to *time.Time) ([]model.FoodLog, int64, error) {
	return s.Repo.List(userID, page, limit, from, to)
}

// DailySummary 某日的热量与营养素汇总
type DailySummary struct {
	Date   string                  `json:"date"`
	Totals *repository.DailyTotals `json:"totals"`
	Logs   []model.FoodLog         `json:"logs"`
}

func (s *FoodLogService) Summary(userID uint, date time.Time) (*DailySummary, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1)

	totals, err := s.Repo.TotalsBetween(userID, start, end)
	if err != nil {
		return nil, err
	}
	logs, err := s.Repo.ListBetween(userID, start, end)
	if err != nil {
		return nil, err
	}

	return &DailySummary{
		Date:   start.Format(util.DateFormat),
		Totals: totals,
		Logs:   logs,
	}, nil
}

// UploadImage 上传餐食照片
func (s *FoodLogService) UploadImage(ctx context.Context, userID uint, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, []string{util.MimeImage})
	if err != nil {
		return "", util.ErrUnsupportedMediaType
	}
	if _, err := src.Seek(0, 0); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("food/%d_%s%s", userID, model.GenerateUUID(), filepath.Ext(file.Filename))
	return s.Storage.Upload(ctx, filename, src, file.Size, mimeType)
}
