package repository

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/remindly/remindly/internal/database"
	"github.com/remindly/remindly/internal/models"
	"github.com/remindly/remindly/internal/recur"
)

type ReminderRepository struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// ResolvedReminder pairs a fetched record with its computed next
// occurrence. The resolution is kept beside the record rather than
// merged into it; view code pairs them explicitly.
type ResolvedReminder struct {
	Reminder   *models.Reminder
	Resolution recur.Resolution
}

const reminderColumns = `reminder_id, reminder_uuid, reminder_url_slug, reminder_title,
	COALESCE(reminder_desc, ''), COALESCE(reminder_link, ''), reminder_type,
	reminder_recurrence_type, COALESCE(reminder_recurrence_rrule, ''),
	reminder_date_start, reminder_date_end, reminder_is_completed, reminder_user_uuid,
	created_on, updated_on, is_deleted`

func scanReminder(row interface{ Scan(...any) error }) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	err := row.Scan(&reminder.ReminderID, &reminder.UUID, &reminder.Slug, &reminder.Title,
		&reminder.Description, &reminder.Link, &reminder.Type,
		&reminder.RecurrenceType, &reminder.RecurrenceRule,
		&reminder.DateStart, &reminder.DateEnd, &reminder.IsCompleted, &reminder.OwnerUUID,
		&reminder.CreatedOn, &reminder.UpdatedOn, &reminder.IsDeleted)
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *models.Reminder) error {
	return r.db.Pool.QueryRow(ctx,
		`INSERT INTO reminders (reminder_uuid, reminder_url_slug, reminder_title, reminder_desc,
			reminder_link, reminder_type, reminder_recurrence_type, reminder_recurrence_rrule,
			reminder_date_start, reminder_date_end, reminder_user_uuid)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING reminder_id, created_on, updated_on`,
		reminder.UUID, reminder.Slug, reminder.Title, reminder.Description,
		reminder.Link, reminder.Type, reminder.RecurrenceType, reminder.RecurrenceRule,
		reminder.DateStart, reminder.DateEnd, reminder.OwnerUUID,
	).Scan(&reminder.ReminderID, &reminder.CreatedOn, &reminder.UpdatedOn)
}

func (r *ReminderRepository) GetByUUID(ctx context.Context, reminderUUID string) (*models.Reminder, error) {
	return scanReminder(r.db.Pool.QueryRow(ctx,
		`SELECT `+reminderColumns+` FROM reminders WHERE reminder_uuid = $1 AND is_deleted = FALSE`,
		reminderUUID,
	))
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *models.Reminder) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET reminder_title = $1, reminder_desc = $2, reminder_link = $3,
			reminder_type = $4, reminder_recurrence_type = $5, reminder_recurrence_rrule = $6,
			reminder_date_start = $7, reminder_date_end = $8, reminder_is_completed = $9,
			updated_on = CURRENT_TIMESTAMP
		 WHERE reminder_uuid = $10 AND reminder_user_uuid = $11`,
		reminder.Title, reminder.Description, reminder.Link,
		reminder.Type, reminder.RecurrenceType, reminder.RecurrenceRule,
		reminder.DateStart, reminder.DateEnd, reminder.IsCompleted,
		reminder.UUID, reminder.OwnerUUID,
	)
	return err
}

func (r *ReminderRepository) SetCompleted(ctx context.Context, reminderUUID string, completed bool) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET reminder_is_completed = $1, updated_on = CURRENT_TIMESTAMP
		 WHERE reminder_uuid = $2`,
		completed, reminderUUID,
	)
	return err
}

// Delete soft-deletes a reminder; rows are never removed.
func (r *ReminderRepository) Delete(ctx context.Context, reminderUUID, ownerUUID string) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE reminders SET is_deleted = TRUE, updated_on = CURRENT_TIMESTAMP
		 WHERE reminder_uuid = $1 AND reminder_user_uuid = $2`,
		reminderUUID, ownerUUID,
	)
	return err
}

// ListOpenByOwner returns a user's incomplete reminders ordered by
// start date, the working set for both dashboards and alert sweeps.
func (r *ReminderRepository) ListOpenByOwner(ctx context.Context, ownerUUID string) ([]*models.Reminder, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+` FROM reminders
		 WHERE reminder_user_uuid = $1 AND reminder_is_completed = FALSE AND is_deleted = FALSE
		 ORDER BY reminder_date_start`,
		ownerUUID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

// ListUpcomingNonRecurring returns up to limit one-time reminders due
// on or after now, soonest first. A non-positive limit falls back to
// the default dashboard window.
func (r *ReminderRepository) ListUpcomingNonRecurring(ctx context.Context, ownerUUID string, now time.Time, limit int) ([]*models.Reminder, error) {
	if limit <= 0 {
		limit = recur.DefaultWindow
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+` FROM reminders
		 WHERE reminder_user_uuid = $1 AND reminder_recurrence_type = 'NONE'
			AND reminder_is_completed = FALSE AND is_deleted = FALSE
			AND reminder_date_end >= $2
		 ORDER BY reminder_date_end
		 LIMIT $3`,
		ownerUUID, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

// ListOverdueNonRecurring returns up to limit one-time reminders whose
// due date has passed.
func (r *ReminderRepository) ListOverdueNonRecurring(ctx context.Context, ownerUUID string, now time.Time, limit int) ([]*models.Reminder, error) {
	if limit <= 0 {
		limit = recur.DefaultWindow
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+` FROM reminders
		 WHERE reminder_user_uuid = $1 AND reminder_recurrence_type = 'NONE'
			AND reminder_is_completed = FALSE AND is_deleted = FALSE
			AND reminder_date_end < $2
		 ORDER BY reminder_date_end
		 LIMIT $3`,
		ownerUUID, now, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectReminders(rows)
}

// ListUpcomingRecurring returns a user's recurring reminders with
// their resolved next occurrences, ordered by that occurrence and
// truncated to limit. Recurring reminders have no mandatory end date,
// so the selection cannot happen in SQL; every candidate is fetched
// and resolved here.
func (r *ReminderRepository) ListUpcomingRecurring(ctx context.Context, ownerUUID string, now time.Time, limit int) ([]ResolvedReminder, error) {
	if limit <= 0 {
		limit = recur.DefaultWindow
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+reminderColumns+` FROM reminders
		 WHERE reminder_user_uuid = $1 AND reminder_recurrence_type <> 'NONE'
			AND reminder_is_completed = FALSE AND is_deleted = FALSE
		 ORDER BY reminder_date_start`,
		ownerUUID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders, err := collectReminders(rows)
	if err != nil {
		return nil, err
	}

	resolved := make([]ResolvedReminder, 0, len(reminders))
	for _, reminder := range reminders {
		resolved = append(resolved, ResolvedReminder{
			Reminder:   reminder,
			Resolution: recur.Resolve(reminder.RecurrenceType, reminder.RecurrenceRule, reminder.DateStart, reminder.DateEnd, now),
		})
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Resolution.Sort.Before(resolved[j].Resolution.Sort)
	})
	if limit > 0 && len(resolved) > limit {
		resolved = resolved[:limit]
	}
	return resolved, nil
}

func collectReminders(rows pgx.Rows) ([]*models.Reminder, error) {
	var reminders []*models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}
