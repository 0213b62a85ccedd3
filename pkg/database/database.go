package database

import (
	"fitsync_backend/internal/config"
	"fitsync_backend/internal/model"
	"encoding/json"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Assessment{},
		&model.AssessmentQuestionTemplate{},
		&model.FoodLog{},
		&model.Workout{},
		&model.Program{},
		&model.ProgramSession{},
		&model.Post{},
		&model.Comment{},
		&model.Reaction{},
		&model.Vote{},
		&model.MoodCheckin{},
		&model.LeaderboardStats{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认的每日评估题库（为空时插入一批通用健康问卷模板）
	var tplCount int64
	db.Model(&model.AssessmentQuestionTemplate{}).Count(&tplCount)
	if tplCount == 0 {
		seedQuestionTemplates(db)
	}

	return db, nil
}

func seedQuestionTemplates(db *gorm.DB) {
	type seedChoice struct {
		ID    string
		Text  string
		Value int
	}
	mkChoices := func(cs []seedChoice) json.RawMessage {
		list := make([]model.Choice, len(cs))
		for i, c := range cs {
			list[i] = model.Choice{ID: c.ID, Text: c.Text, Value: c.Value}
		}
		raw, _ := json.Marshal(list)
		return raw
	}

	scale := []seedChoice{
		{"a", "Not at all", 1},
		{"b", "A little", 3},
		{"c", "Moderately", 5},
		{"d", "Quite a bit", 7},
		{"e", "Very much", 9},
	}

	defaults := []model.AssessmentQuestionTemplate{
		{
			Question:   "How are you feeling today overall?",
			Choices:    mkChoices([]seedChoice{{"a", "Terrible", 1}, {"b", "Not great", 3}, {"c", "Okay", 5}, {"d", "Good", 7}, {"e", "Great", 9}}),
			Suggestion: "Checking in with yourself daily builds emotional awareness.",
			Category:   model.CategorySentiment,
			Difficulty: "easy",
			Enabled:    true,
		},
		{
			Question:   "How well did you sleep last night?",
			Choices:    mkChoices(scale),
			Suggestion: "Aim for 7-9 hours of sleep and a consistent bedtime.",
			Category:   model.CategoryLifestyle,
			Difficulty: "easy",
			Enabled:    true,
		},
		{
			Question:   "How stressed have you felt over the past day?",
			Choices:    mkChoices(scale),
			Suggestion: "Short breathing exercises can lower acute stress quickly.",
			Category:   model.CategorySentiment,
			Difficulty: "medium",
			Enabled:    true,
		},
		{
			Question:   "Did you manage to move or exercise today?",
			Choices:    mkChoices([]seedChoice{{"a", "Not at all", 1}, {"b", "A short walk", 4}, {"c", "A light workout", 6}, {"d", "A full session", 9}}),
			Suggestion: "Even 15 minutes of activity counts toward your daily goal.",
			Category:   model.CategoryHealth,
			Difficulty: "easy",
			Enabled:    true,
		},
		{
			Question:   "How satisfied are you with what you ate today?",
			Choices:    mkChoices(scale),
			Suggestion: "Logging meals makes it easier to spot patterns in your diet.",
			Category:   model.CategoryLifestyle,
			Difficulty: "medium",
			Enabled:    true,
		},
	}
	for _, t := range defaults {
		db.Create(&t)
	}
}
