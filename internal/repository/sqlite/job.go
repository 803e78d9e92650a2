package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/crm/pkg/models"
)

// CreateJob persists the job row and one job_people row per person id.
// Both go through a single transaction: either the job and all its
// assignments commit, or none do.
func (r *SQLiteRepo) CreateJob(ctx context.Context, j *models.Job, personIDs []string) error {
	if j == nil {
		return fmt.Errorf("job is nil")
	}

	j.ID = newID()
	j.Created = now()
	if j.Status == "" {
		j.Status = models.JobStatusPending
	}

	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO jobs (id, title, description, status, scheduled_at, address, fee, client_id, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		j.ID, j.Title, nullable(j.Description), j.Status, j.ScheduledAt, nullable(j.Address), j.Fee, j.ClientID, j.Created); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := insertAssignments(ctx, tx, j.ID, personIDs); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepo) GetJob(ctx context.Context, id string) (*models.Job, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, title, description, status, scheduled_at, address, fee, client_id, created FROM jobs WHERE id = ?`, id)
	j, err := scanJob(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	return j, nil
}

func (r *SQLiteRepo) GetJobWithPeople(ctx context.Context, id string) (*models.JobWithPeople, error) {
	j, err := r.GetJob(ctx, id)
	if err != nil || j == nil {
		return nil, err
	}

	rows, err := r.conn.QueryRows(ctx, `SELECT person_id FROM job_people WHERE job_id = ? ORDER BY person_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assigned := []string{}
	for rows.Next() {
		var pid string
		if err := rows.Scan(&pid); err != nil {
			return nil, err
		}

		assigned = append(assigned, pid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.JobWithPeople{Job: *j, AssignedPeople: assigned}, nil
}

// ListJobsWithPeople reads all jobs in creation order and materializes each
// job's assigned person ids. The linking table is read once and grouped in
// memory rather than queried per job.
func (r *SQLiteRepo) ListJobsWithPeople(ctx context.Context) ([]models.JobWithPeople, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, title, description, status, scheduled_at, address, fee, client_id, created FROM jobs ORDER BY created, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		j, err := scanJob(rows.Scan)
		if err != nil {
			return nil, err
		}

		jobs = append(jobs, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	assignments, err := r.conn.QueryRows(ctx, `SELECT job_id, person_id FROM job_people ORDER BY job_id, person_id`)
	if err != nil {
		return nil, err
	}
	defer assignments.Close()

	byJob := make(map[string][]string)
	for assignments.Next() {
		var jobID, personID string
		if err := assignments.Scan(&jobID, &personID); err != nil {
			return nil, err
		}

		byJob[jobID] = append(byJob[jobID], personID)
	}
	if err := assignments.Err(); err != nil {
		return nil, err
	}

	out := make([]models.JobWithPeople, 0, len(jobs))
	for _, j := range jobs {
		assigned := byJob[j.ID]
		if assigned == nil {
			assigned = []string{}
		}

		out = append(out, models.JobWithPeople{Job: j, AssignedPeople: assigned})
	}

	return out, nil
}

// UpdateJob applies only the supplied fields. When AssignedPeople is
// supplied the existing assignment set is replaced wholesale: delete all
// linking rows for the job, insert the new set, same transaction as the
// row update.
func (r *SQLiteRepo) UpdateJob(ctx context.Context, id string, u *models.JobUpdate) (*models.JobWithPeople, error) {
	if u == nil {
		return nil, fmt.Errorf("job update is nil")
	}

	cur, err := r.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, nil
	}

	if u.Title != nil {
		cur.Title = *u.Title
	}
	if u.Description != nil {
		cur.Description = *u.Description
	}
	if u.Status != nil {
		cur.Status = *u.Status
	}
	if u.ScheduledAt != nil {
		cur.ScheduledAt = u.ScheduledAt
	}
	if u.Address != nil {
		cur.Address = *u.Address
	}
	if u.Fee != nil {
		cur.Fee = u.Fee
	}
	if u.ClientID != nil {
		cur.ClientID = *u.ClientID
	}

	tx, err := r.conn.BeginTx(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE jobs SET title = ?, description = ?, status = ?, scheduled_at = ?, address = ?, fee = ?, client_id = ? WHERE id = ?`,
		cur.Title, nullable(cur.Description), cur.Status, cur.ScheduledAt, nullable(cur.Address), cur.Fee, cur.ClientID, id); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if u.AssignedPeople != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM job_people WHERE job_id = ?`, id); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
		if err := insertAssignments(ctx, tx, id, *u.AssignedPeople); err != nil {
			_ = tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetJobWithPeople(ctx, id)
}

// DeleteJob removes the job row; linking rows go with it via ON DELETE CASCADE.
func (r *SQLiteRepo) DeleteJob(ctx context.Context, id string) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// AddPersonToJob inserts the (job, person) pair. It returns false without
// error when the job or person does not exist or the pair is already
// assigned.
func (r *SQLiteRepo) AddPersonToJob(ctx context.Context, jobID, personID string) (bool, error) {
	var count int
	row := r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM jobs WHERE id = ?`, jobID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	row = r.conn.QueryRow(ctx, `SELECT COUNT(1) FROM people WHERE id = ?`, personID)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	if count == 0 {
		return false, nil
	}

	// primary key on (job_id, person_id) keeps the pair unique; an existing
	// pair makes the insert a no-op
	res, err := r.conn.Exec(ctx, `INSERT OR IGNORE INTO job_people (job_id, person_id) VALUES (?, ?)`, jobID, personID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (r *SQLiteRepo) RemovePersonFromJob(ctx context.Context, jobID, personID string) (bool, error) {
	res, err := r.conn.Exec(ctx, `DELETE FROM job_people WHERE job_id = ? AND person_id = ?`, jobID, personID)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func insertAssignments(ctx context.Context, tx *sql.Tx, jobID string, personIDs []string) error {
	for _, pid := range personIDs {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO job_people (job_id, person_id) VALUES (?, ?)`, jobID, pid); err != nil {
			return fmt.Errorf("assign person %s to job %s: %w", pid, jobID, err)
		}
	}

	return nil
}

func scanJob(scan func(dest ...any) error) (*models.Job, error) {
	var j models.Job
	var description, address sql.NullString
	var scheduledAt, fee sql.NullInt64
	if err := scan(&j.ID, &j.Title, &description, &j.Status, &scheduledAt, &address, &fee, &j.ClientID, &j.Created); err != nil {
		return nil, err
	}

	j.Description = description.String
	j.Address = address.String
	if scheduledAt.Valid {
		v := scheduledAt.Int64
		j.ScheduledAt = &v
	}
	if fee.Valid {
		v := fee.Int64
		j.Fee = &v
	}

	return &j, nil
}
