package jobs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ripconsole/internal/services"
)

// Create inserts a job record and returns the stored copy.
func (s *Store) Create(ctx context.Context, job *Job) (*Job, error) {
	if job == nil {
		return nil, errors.New("job is nil")
	}
	if _, ok := ParseStatus(string(job.Status)); !ok {
		return nil, services.Wrap(services.ErrValidation, "jobs", "create", fmt.Sprintf("unknown status %q", job.Status), nil)
	}
	now := time.Now().UTC()
	start := job.StartTime
	if start.IsZero() {
		start = now
	}
	videoType := job.VideoType
	if videoType == "" {
		videoType = VideoTypeUnknown
	}
	timestamp := now.Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO jobs (
            title, title_manual, year, label, path, status, video_type,
            start_time, stop_time, created_at, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nullableString(job.Title),
		nullableString(job.TitleManual),
		nullableString(job.Year),
		nullableString(job.Label),
		nullableString(job.Path),
		job.Status,
		videoType,
		start.UTC().Format(time.RFC3339Nano),
		nullableTime(job.StopTime),
		timestamp,
		timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID fetches a job by identifier. A missing job yields (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*Job, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// FindByIDs returns the jobs matching ids in request order. Duplicate and
// unknown ids are skipped.
func (s *Store) FindByIDs(ctx context.Context, ids []int64) ([]*Job, error) {
	ctx = ensureContext(ctx)
	unique := dedupeIDs(ids)
	if len(unique) == 0 {
		return nil, nil
	}
	args := make([]any, len(unique))
	for i, id := range unique {
		args[i] = id
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id IN (`+makePlaceholders(len(unique))+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	found, err := scanJobs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}

	byID := make(map[int64]*Job, len(found))
	for _, job := range found {
		byID[job.ID] = job
	}
	ordered := make([]*Job, 0, len(found))
	for _, id := range unique {
		if job, ok := byID[id]; ok {
			ordered = append(ordered, job)
		}
	}
	return ordered, nil
}

// ListEligibleForBatchRename returns completed series jobs with an output
// path, most recently started first.
func (s *Store) ListEligibleForBatchRename(ctx context.Context) ([]*Job, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs
         WHERE status = ? AND video_type = ? AND path IS NOT NULL AND path != ''
         ORDER BY start_time DESC, id DESC`,
		StatusSuccess, VideoTypeSeries)
	if err != nil {
		return nil, fmt.Errorf("list eligible jobs: %w", err)
	}
	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan eligible jobs: %w", err)
	}
	return jobs, nil
}

// List returns jobs filtered by status set (or all jobs when no status is
// provided), most recently started first.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Job, error) {
	ctx = ensureContext(ctx)
	var (
		rows *sql.Rows
		err  error
	)
	baseQuery := `SELECT ` + jobColumns + ` FROM jobs`
	orderClause := ` ORDER BY start_time DESC, id DESC`
	if len(statuses) == 0 {
		rows, err = s.db.QueryContext(ctx, baseQuery+orderClause)
	} else {
		args := make([]any, len(statuses))
		for i, status := range statuses {
			args[i] = status
		}
		rows, err = s.db.QueryContext(ctx,
			baseQuery+` WHERE status IN (`+makePlaceholders(len(statuses))+`)`+orderClause, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan jobs: %w", err)
	}
	return jobs, nil
}

// Update persists the mutable fields of an existing job in a single statement.
func (s *Store) Update(ctx context.Context, job *Job) error {
	if job == nil {
		return errors.New("job is nil")
	}
	job.UpdatedAt = time.Now().UTC()
	res, err := s.execWithRetry(
		ctx,
		`UPDATE jobs
         SET title = ?, title_manual = ?, year = ?, label = ?, path = ?,
             status = ?, video_type = ?, stop_time = ?, updated_at = ?
         WHERE id = ?`,
		nullableString(job.Title),
		nullableString(job.TitleManual),
		nullableString(job.Year),
		nullableString(job.Label),
		nullableString(job.Path),
		job.Status,
		job.VideoType,
		nullableTime(job.StopTime),
		job.UpdatedAt.Format(time.RFC3339Nano),
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job rows affected: %w", err)
	}
	if affected == 0 {
		return services.Wrap(services.ErrNotFound, "jobs", "update", fmt.Sprintf("job %d", job.ID), nil)
	}
	return nil
}

// UpdateRenamedPath records a completed folder rename. Only path, and
// title_manual when titleManual is non-nil, are written. The row must still
// hold oldPath; otherwise ErrConflict is returned and nothing changes.
func (s *Store) UpdateRenamedPath(ctx context.Context, id int64, oldPath, newPath string, titleManual *string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	query := `UPDATE jobs SET path = ?, updated_at = ? WHERE id = ? AND path = ?`
	args := []any{nullableString(newPath), now, id, oldPath}
	if titleManual != nil {
		query = `UPDATE jobs SET path = ?, title_manual = ?, updated_at = ? WHERE id = ? AND path = ?`
		args = []any{nullableString(newPath), nullableString(*titleManual), now, id, oldPath}
	}

	res, err := s.execWithRetry(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update job path: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job path rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return services.Wrap(services.ErrNotFound, "jobs", "update path", fmt.Sprintf("job %d", id), nil)
	}
	return services.Wrap(services.ErrConflict, "jobs", "update path",
		fmt.Sprintf("job %d path changed to %q since it was loaded", id, current.Path), nil)
}

// Stats returns the number of jobs per status. Every known status is present.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int, len(knownStatuses))
	for _, status := range knownStatuses {
		stats[status] = 0
	}
	for rows.Next() {
		var (
			status string
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[Status(status)] = count
	}
	return stats, rows.Err()
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
