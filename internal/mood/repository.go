package mood

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Seed(names []string) error
	GetMoodByName(name string) (*Mood, error)
	GetDaily(userID uuid.UUID, date time.Time) (*DailyMood, error)
	CreateDaily(d *DailyMood) error
	MoodNameOn(userID uuid.UUID, date time.Time) (*string, error)
	CountSince(userID uuid.UUID, from time.Time) (map[string]int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Seed inserts the named moods, leaving existing ones untouched.
func (r *repository) Seed(names []string) error {
	moods := make([]Mood, 0, len(names))
	for _, n := range names {
		moods = append(moods, Mood{Name: n})
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&moods).Error
}

func (r *repository) GetMoodByName(name string) (*Mood, error) {
	var m Mood
	if err := r.db.Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *repository) GetDaily(userID uuid.UUID, date time.Time) (*DailyMood, error) {
	var d DailyMood
	if err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) CreateDaily(d *DailyMood) error {
	return r.db.Create(d).Error
}

func (r *repository) MoodNameOn(userID uuid.UUID, date time.Time) (*string, error) {
	var names []string
	err := r.db.Model(&DailyMood{}).
		Joins("JOIN moods ON moods.id = daily_moods.mood_id").
		Where("daily_moods.user_id = ? AND daily_moods.date = ?", userID, date).
		Limit(1).
		Pluck("moods.name", &names).Error
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, nil
	}
	return &names[0], nil
}

// CountSince counts the user's recorded moods by name from the given date on.
func (r *repository) CountSince(userID uuid.UUID, from time.Time) (map[string]int, error) {
	var rows []struct {
		Name  string
		Total int
	}
	err := r.db.Model(&DailyMood{}).
		Select("moods.name AS name, COUNT(daily_moods.id) AS total").
		Joins("JOIN moods ON moods.id = daily_moods.mood_id").
		Where("daily_moods.user_id = ? AND daily_moods.date >= ?", userID, from).
		Group("moods.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Name] = row.Total
	}
	return counts, nil
}
