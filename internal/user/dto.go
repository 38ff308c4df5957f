package user

import "github.com/google/uuid"

type RegisterDTO struct {
	FullName string `json:"full_name" validate:"required,max=255"`
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Age      int    `json:"age" validate:"gte=0"`
}

type LoginDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Age      int       `json:"age"`
}

func toResponse(u *User) *UserResponse {
	return &UserResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Username: u.Username,
		Email:    u.Email,
		Age:      u.Age,
	}
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type StatResponse struct {
	FullName    string         `json:"full_name"`
	Age         int            `json:"age"`
	TodayMood   *string        `json:"today_mood"`
	MonthlyMood map[string]int `json:"monthly_mood"`
	Score       float64        `json:"score"`
	PointEarned int            `json:"point_earned"`
}

type ConditionDTO struct {
	Summary string `json:"summary" validate:"required,max=4000"`
}
