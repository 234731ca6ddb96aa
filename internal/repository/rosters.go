package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/sysu-ecnc-dev/duty-roster/backend/internal/domain"
)

func (r *Repository) InsertRoster(roster *domain.Roster) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	people, err := json.Marshal(roster.People)
	if err != nil {
		return err
	}

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO rosters (name, people)
		VALUES ($1, $2)
		RETURNING id, created_at, version
	`

	if err := tx.QueryRowContext(ctx, query, roster.Name, string(people)).Scan(&roster.ID, &roster.CreatedAt, &roster.Version); err != nil {
		return err
	}

	for i, item := range roster.Days {
		query := `
			INSERT INTO roster_days (roster_id, position, day, score, fallback)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		var dayID int64
		if err := tx.QueryRowContext(ctx, query, roster.ID, i, item.Day, item.Score, item.Fallback).Scan(&dayID); err != nil {
			return err
		}

		for j, personID := range item.Members {
			query := `
				INSERT INTO roster_day_members (roster_day_id, position, person_id)
				VALUES ($1, $2, $3)
			`

			if _, err := tx.ExecContext(ctx, query, dayID, j, personID); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetRosterByID(id int64) (*domain.Roster, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT
			ro.name,
			ro.people,
			ro.created_at,
			ro.version,
			rd.id,
			rd.day,
			rd.score,
			rd.fallback,
			rdm.person_id
		FROM rosters ro
		LEFT JOIN roster_days rd ON ro.id = rd.roster_id
		LEFT JOIN roster_day_members rdm ON rd.id = rdm.roster_day_id
		WHERE ro.id = $1
		ORDER BY rd.position, rdm.position
	`

	rows, err := r.dbpool.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roster := &domain.Roster{
		ID:     id,
		Days:   make([]domain.DayAssignment, 0),
		Counts: make(map[string]int),
	}

	found := false
	var people []byte
	dayIndex := make(map[int64]int) // roster_days.id -> roster.Days 下标

	for rows.Next() {
		var row struct {
			dayID    sql.NullInt64
			day      sql.NullString
			score    sql.NullInt32
			fallback sql.NullBool
			personID sql.NullString
		}

		dst := []any{
			&roster.Name,
			&people,
			&roster.CreatedAt,
			&roster.Version,
			&row.dayID,
			&row.day,
			&row.score,
			&row.fallback,
			&row.personID,
		}

		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		found = true

		if !row.dayID.Valid {
			// 没有任何日期的排班，业务上不会出现
			continue
		}

		idx, exists := dayIndex[row.dayID.Int64]
		if !exists {
			idx = len(roster.Days)
			dayIndex[row.dayID.Int64] = idx
			roster.Days = append(roster.Days, domain.DayAssignment{
				Day:      row.day.String,
				Members:  make([]string, 0, domain.TeamSize),
				Score:    int(row.score.Int32),
				Fallback: row.fallback.Bool,
			})
		}

		if !row.personID.Valid {
			continue
		}

		roster.Days[idx].Members = append(roster.Days[idx].Members, row.personID.String)
		roster.Counts[row.personID.String]++
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, sql.ErrNoRows
	}

	if err := json.Unmarshal(people, &roster.People); err != nil {
		return nil, err
	}

	return roster, nil
}

// GetAllRosters 只返回元数据，不包含每天的排班
func (r *Repository) GetAllRosters() ([]*domain.Roster, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, name, created_at, version FROM rosters ORDER BY id DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rosters := make([]*domain.Roster, 0)
	for rows.Next() {
		roster := &domain.Roster{}
		dst := []any{&roster.ID, &roster.Name, &roster.CreatedAt, &roster.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		rosters = append(rosters, roster)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return rosters, nil
}

func (r *Repository) DeleteRoster(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	// roster_days 和 roster_day_members 通过 ON DELETE CASCADE 一并删除
	query := `DELETE FROM rosters WHERE id = $1`

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
