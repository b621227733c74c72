package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	UserID          int64     `json:"user_id"`
	UUID            string    `json:"user_uuid"`
	Username        string    `json:"user_username"`
	Email           string    `json:"user_email"`
	AlertWebhookURL *string   `json:"user_alert_webhook_url"` // nil disables alerting for this user
	CreatedOn       time.Time `json:"created_on"`
	UpdatedOn       time.Time `json:"updated_on"`
	IsDeleted       bool      `json:"is_deleted"`
}

func NewUser(username, email string) *User {
	return &User{
		UUID:     uuid.NewString(),
		Username: username,
		Email:    email,
	}
}
