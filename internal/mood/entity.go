package mood

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Mood struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(32);uniqueIndex;not null" json:"name"`
}

// DefaultMoods are the labels the classifier predicts, capitalised.
var DefaultMoods = []string{"Happy", "Sad", "Angry", "Neutral", "Fear", "Surprise", "Disgust"}

// DailyMood is one user's mood for one calendar day.
type DailyMood struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_date" json:"user_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_date" json:"date"`
	MoodID    uint      `gorm:"not null;index" json:"mood_id"`
	Notes     *string   `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (d *DailyMood) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

func Models() []interface{} {
	return []interface{}{&Mood{}, &DailyMood{}}
}
