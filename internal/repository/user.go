package repository

import (
	"context"

	"github.com/remindly/remindly/internal/database"
	"github.com/remindly/remindly/internal/models"
)

type UserRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, user_uuid, user_username, user_email, user_alert_webhook_url, created_on, updated_on, is_deleted`

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO users (user_uuid, user_username, user_email, user_alert_webhook_url)
		 VALUES ($1, $2, $3, $4)
		 RETURNING user_id, created_on, updated_on`,
		user.UUID, user.Username, user.Email, user.AlertWebhookURL,
	).Scan(&user.UserID, &user.CreatedOn, &user.UpdatedOn)
}

func (r *UserRepository) GetByUUID(ctx context.Context, userUUID string) (*models.User, error) {
	user := &models.User{}
	err := r.db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_uuid = $1 AND is_deleted = FALSE`,
		userUUID,
	).Scan(&user.UserID, &user.UUID, &user.Username, &user.Email, &user.AlertWebhookURL,
		&user.CreatedOn, &user.UpdatedOn, &user.IsDeleted)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListActive returns all users that have not been soft-deleted. The
// alert sweep walks this list.
func (r *UserRepository) ListActive(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE is_deleted = FALSE ORDER BY user_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.UserID, &user.UUID, &user.Username, &user.Email, &user.AlertWebhookURL,
			&user.CreatedOn, &user.UpdatedOn, &user.IsDeleted); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// SetAlertWebhookURL updates the destination for due-soon alerts.
// Passing nil disables alerting for the user.
func (r *UserRepository) SetAlertWebhookURL(ctx context.Context, userUUID string, url *string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE users SET user_alert_webhook_url = $1, updated_on = CURRENT_TIMESTAMP WHERE user_uuid = $2`,
		url, userUUID,
	)
	return err
}
