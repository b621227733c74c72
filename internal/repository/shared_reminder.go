package repository

import (
	"context"

	"github.com/remindly/remindly/internal/database"
	"github.com/remindly/remindly/internal/models"
)

type SharedReminderRepository struct {
	db *database.DB
}

func NewSharedReminderRepository(db *database.DB) *SharedReminderRepository {
	return &SharedReminderRepository{db: db}
}

func (r *SharedReminderRepository) Share(ctx context.Context, share *models.SharedReminder) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO shared_reminders (shared_reminder_uuid, shared_reminder_reminder_uuid, shared_reminder_user_uuid)
		 VALUES ($1, $2, $3)
		 RETURNING shared_reminder_id, created_on, updated_on`,
		share.UUID, share.ReminderUUID, share.UserUUID,
	).Scan(&share.SharedReminderID, &share.CreatedOn, &share.UpdatedOn)
}

func (r *SharedReminderRepository) Unshare(ctx context.Context, reminderUUID, userUUID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE shared_reminders SET is_deleted = TRUE, updated_on = CURRENT_TIMESTAMP
		 WHERE shared_reminder_reminder_uuid = $1 AND shared_reminder_user_uuid = $2`,
		reminderUUID, userUUID,
	)
	return err
}

// ListSharedWith returns the incomplete reminders other users have
// shared with the given user. The join walks shared_reminders to the
// reminder and both user rows so soft-deleted links, reminders, or
// accounts on either side drop the row.
func (r *SharedReminderRepository) ListSharedWith(ctx context.Context, userUUID string) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT r.reminder_id, r.reminder_uuid, r.reminder_url_slug, r.reminder_title,
			COALESCE(r.reminder_desc, ''), COALESCE(r.reminder_link, ''), r.reminder_type,
			r.reminder_recurrence_type, COALESCE(r.reminder_recurrence_rrule, ''),
			r.reminder_date_start, r.reminder_date_end, r.reminder_is_completed, r.reminder_user_uuid,
			r.created_on, r.updated_on, r.is_deleted
		 FROM shared_reminders sr
		 JOIN reminders r ON sr.shared_reminder_reminder_uuid = r.reminder_uuid
		 JOIN users recipient ON sr.shared_reminder_user_uuid = recipient.user_uuid
		 JOIN users owner ON r.reminder_user_uuid = owner.user_uuid
		 WHERE sr.shared_reminder_user_uuid = $1
			AND sr.is_deleted = FALSE
			AND r.is_deleted = FALSE
			AND r.reminder_is_completed = FALSE
			AND recipient.is_deleted = FALSE
			AND owner.is_deleted = FALSE
		 ORDER BY r.reminder_date_start`,
		userUUID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

// ListRecipients returns the users a reminder has been shared with.
func (r *SharedReminderRepository) ListRecipients(ctx context.Context, reminderUUID string) ([]*models.User, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT u.user_id, u.user_uuid, u.user_username, u.user_email, u.user_alert_webhook_url,
			u.created_on, u.updated_on, u.is_deleted
		 FROM shared_reminders sr
		 JOIN users u ON sr.shared_reminder_user_uuid = u.user_uuid
		 WHERE sr.shared_reminder_reminder_uuid = $1
			AND sr.is_deleted = FALSE
			AND u.is_deleted = FALSE
		 ORDER BY u.user_username`,
		reminderUUID,
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
