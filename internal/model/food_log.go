package model

import (
	"encoding/json"
	"time"
)

type FoodInputMethod string

const (
	InputImage     FoodInputMethod = "image"
	InputManual    FoodInputMethod = "manual"
	InputMultiDish FoodInputMethod = "multi-dish"
)

// BrandedProduct 品牌食品信息
type BrandedProduct struct {
	IsBranded     bool              `json:"isBranded"`
	BrandName     string            `json:"brandName,omitempty"`
	ProductName   string            `json:"productName,omitempty"`
	Ingredients   string            `json:"ingredients,omitempty"`
	PurchaseLinks map[string]string `json:"purchaseLinks,omitempty"`
}

// NutritionSource 营养数据来源
type NutritionSource struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	Reliability string `json:"reliability"` // high / medium / low
}

// AllergyWarnings 过敏原提示
type AllergyWarnings struct {
	Detected   []string `json:"detected,omitempty"`
	MayContain []string `json:"mayContain,omitempty"`
	Warning    string   `json:"warning,omitempty"`
}

// HealthyAlternative 更健康的替代建议
type HealthyAlternative struct {
	Name          string  `json:"name"`
	Reason        string  `json:"reason"`
	CaloriesSaved float64 `json:"caloriesSaved"`
}

// Nutrients 营养成分，全部以克/毫克计
type Nutrients struct {
	Protein      float64 `gorm:"default:0" json:"protein"`
	Carbs        float64 `gorm:"default:0" json:"carbs"`
	Fat          float64 `gorm:"default:0" json:"fat"`
	Fiber        float64 `gorm:"default:0" json:"fiber"`
	Sugar        float64 `gorm:"default:0" json:"sugar"`
	SaturatedFat float64 `gorm:"default:0" json:"saturatedFat"`
	TransFat     float64 `gorm:"default:0" json:"transFat"`
	Sodium       float64 `gorm:"default:0" json:"sodium"`
	Cholesterol  float64 `gorm:"default:0" json:"cholesterol"`
	Potassium    float64 `gorm:"default:0" json:"potassium"`
	VitaminA     float64 `gorm:"default:0" json:"vitaminA"`
	VitaminC     float64 `gorm:"default:0" json:"vitaminC"`
	VitaminD     float64 `gorm:"default:0" json:"vitaminD"`
	Calcium      float64 `gorm:"default:0" json:"calcium"`
	Iron         float64 `gorm:"default:0" json:"iron"`
}

// swagger:model FoodLog
// FoodLog 饮食记录，营养数值由外部识别服务产出后提交
type FoodLog struct {
	BaseModel
	UserID              uint            `gorm:"not null;index:idx_food_logs_user_analyzed" json:"userId"`
	AnalyzedAt          time.Time       `gorm:"default:CURRENT_TIMESTAMP(3);index:idx_food_logs_user_analyzed" json:"analyzedAt"`
	InputMethod         FoodInputMethod `gorm:"type:enum('image','manual','multi-dish');not null" json:"inputMethod"`
	ImageURL            string          `gorm:"size:255" json:"imageUrl,omitempty"`
	FoodName            string          `gorm:"size:200;not null;index" json:"foodName"`
	DishName            string          `gorm:"size:200" json:"dishName,omitempty"`
	BrandedProduct      json.RawMessage `gorm:"type:json" json:"brandedProduct,omitempty"`      // JSON: BrandedProduct
	NutritionSources    json.RawMessage `gorm:"type:json" json:"nutritionSources,omitempty"`    // JSON: []NutritionSource
	RecipeLinks         json.RawMessage `gorm:"type:json" json:"recipeLinks,omitempty"`         // JSON: []{title,source,url}
	Calories            float64         `gorm:"not null" json:"calories"`
	ServingSize         string          `gorm:"size:100;not null" json:"servingSize"`
	Nutrients           Nutrients       `gorm:"embedded;embeddedPrefix:nutrient_" json:"nutrients"`
	AllergyWarnings     json.RawMessage `gorm:"type:json" json:"allergyWarnings,omitempty"`     // JSON: AllergyWarnings
	UserAllergies       json.RawMessage `gorm:"type:json" json:"userAllergies,omitempty"`       // JSON: []string
	HealthyAlternatives json.RawMessage `gorm:"type:json" json:"healthyAlternatives,omitempty"` // JSON: []HealthyAlternative
	Confidence          string          `gorm:"type:enum('high','medium','low');default:'medium'" json:"confidence"`
	Notes               string          `gorm:"size:500" json:"notes,omitempty"`
	IngredientsList     string          `gorm:"size:1000" json:"ingredientsList,omitempty"`
}

func (FoodLog) TableName() string {
	return "food_logs"
}
