package model

type WorkoutCategory string

const (
	WorkoutBodyweight WorkoutCategory = "bodyweight"
	WorkoutEquipment  WorkoutCategory = "equipment"
)

type WorkoutType string

const (
	WorkoutChest      WorkoutType = "chest"
	WorkoutArms       WorkoutType = "arms"
	WorkoutLegs       WorkoutType = "legs"
	WorkoutCore       WorkoutType = "core"
	WorkoutBack       WorkoutType = "back"
	WorkoutShoulders  WorkoutType = "shoulders"
	WorkoutFullBody   WorkoutType = "full_body"
	WorkoutStretching WorkoutType = "stretching"
)

// swagger:model Workout
// Workout 动作库条目，动画由管理员上传
type Workout struct {
	BaseModel
	Category        WorkoutCategory `gorm:"type:enum('bodyweight','equipment');not null" json:"category"`
	Type            WorkoutType     `gorm:"type:enum('chest','arms','legs','core','back','shoulders','full_body','stretching');not null;index" json:"type"`
	Name            string          `gorm:"size:200;not null" json:"name"`
	Description     string          `gorm:"size:1000" json:"description"`
	AnimationURL    string          `gorm:"size:255" json:"animationUrl"`
	ThumbnailURL    string          `gorm:"size:255" json:"thumbnailUrl"`
	EquipmentNeeded string          `gorm:"size:200" json:"equipmentNeeded"` // e.g. "dumbbells", "barbell", "none"
	DurationSeconds float64         `gorm:"default:0" json:"durationSeconds"`
}

func (Workout) TableName() string {
	return "workouts"
}
