package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/eventflow/eventflow-api/internal/model"
)

// RegistrationRepo persists event registrations. Events themselves live in
// the external catalog; only the (user, event) pairing is stored locally.
type RegistrationRepo struct{ DB *sql.DB }

func NewRegistrationRepo(db *sql.DB) *RegistrationRepo { return &RegistrationRepo{DB: db} }

// Create inserts a registration row and returns its id.
func (r *RegistrationRepo) Create(ctx context.Context, userID uint64, eventID, status string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO event_registrations (user_id, event_id, registration_date, status) VALUES (?,?,?,?)",
		userID, eventID, time.Now().UTC(), status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListRecent returns the newest registrations across all users, for the
// admin dashboard.
func (r *RegistrationRepo) ListRecent(ctx context.Context, limit int) ([]model.EventRegistration, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, event_id, registration_date, status FROM event_registrations ORDER BY registration_date DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

// ListByUser returns the user's registrations, newest first.
func (r *RegistrationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.EventRegistration, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, event_id, registration_date, status FROM event_registrations WHERE user_id=? ORDER BY registration_date DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRegistrations(rows)
}

func scanRegistrations(rows *sql.Rows) ([]model.EventRegistration, error) {
	var out []model.EventRegistration
	for rows.Next() {
		var reg model.EventRegistration
		if err := rows.Scan(&reg.ID, &reg.UserID, &reg.EventID, &reg.RegistrationDate, &reg.Status); err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, rows.Err()
}
