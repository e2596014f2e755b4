package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type problemRepo struct {
	db *sql.DB
}

func (r *problemRepo) Save(ctx context.Context, p *ArchivedProblem) (string, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `INSERT INTO problems
		(id, created_at, family, tier, seed, version, data) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, formatTime(p.CreatedAt), p.Family, p.Tier, p.Seed, p.Version, string(p.Data),
	)
	if err != nil {
		return "", fmt.Errorf("save problem: %w", err)
	}
	return p.ID, nil
}

const problemColumns = `id, created_at, family, tier, seed, version, data`

func scanProblem(s scanner) (ArchivedProblem, error) {
	var p ArchivedProblem
	var ts, data string
	if err := s.Scan(&p.ID, &ts, &p.Family, &p.Tier, &p.Seed, &p.Version, &data); err != nil {
		return p, err
	}
	p.Data = []byte(data)
	var err error
	p.CreatedAt, err = parseTime(ts)
	return p, err
}

func (r *problemRepo) Get(ctx context.Context, id string) (*ArchivedProblem, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+problemColumns+" FROM problems WHERE id = ?", id)
	p, err := scanProblem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get problem %s: %w", id, err)
	}
	return &p, nil
}

func (r *problemRepo) List(ctx context.Context, limit int) ([]ArchivedProblem, error) {
	q := "SELECT " + problemColumns + " FROM problems ORDER BY created_at DESC, id"
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	defer rows.Close()

	var out []ArchivedProblem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan problem: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
