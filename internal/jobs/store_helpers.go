package jobs

import (
	"database/sql"
	"errors"
	"time"
)

const jobColumns = "id, title, title_manual, year, label, path, status, video_type, start_time, stop_time, created_at, updated_at"

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id          int64
		title       sql.NullString
		titleManual sql.NullString
		year        sql.NullString
		label       sql.NullString
		path        sql.NullString
		statusStr   string
		videoType   sql.NullString
		startRaw    sql.NullString
		stopRaw     sql.NullString
		createdRaw  sql.NullString
		updatedRaw  sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&title,
		&titleManual,
		&year,
		&label,
		&path,
		&statusStr,
		&videoType,
		&startRaw,
		&stopRaw,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:          id,
		Title:       title.String,
		TitleManual: titleManual.String,
		Year:        year.String,
		Label:       label.String,
		Path:        path.String,
		Status:      Status(statusStr),
		VideoType:   ParseVideoType(videoType.String),
	}
	if started, err := parseTimeString(startRaw.String); err == nil {
		job.StartTime = started
	}
	if stopRaw.Valid {
		if stopped, err := parseTimeString(stopRaw.String); err == nil {
			job.StopTime = &stopped
		}
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		job.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		job.UpdatedAt = updated
	}
	return job, nil
}

func scanJobs(rows *sql.Rows) ([]*Job, error) {
	defer rows.Close()
	var out []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
