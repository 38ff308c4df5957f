package user

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(u *User) error
	GetByID(id uuid.UUID) (*User, error)
	GetByUsername(username string) (*User, error)
	ExistsByUsernameOrEmail(username, email string) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) find(query string, args ...interface{}) (*User, error) {
	var u User
	if err := r.db.Where(query, args...).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(id uuid.UUID) (*User, error) {
	return r.find("id = ?", id)
}

func (r *userRepository) GetByUsername(username string) (*User, error) {
	return r.find("username = ?", username)
}

func (r *userRepository) ExistsByUsernameOrEmail(username, email string) (bool, error) {
	var n int64
	err := r.db.Model(&User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	return n > 0, err
}
