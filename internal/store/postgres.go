package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/Sumitagarwal-i/intellibrief/pkg/models"
)

const briefsSchema = `
CREATE TABLE IF NOT EXISTS briefs (
	id                   BIGSERIAL PRIMARY KEY,
	company_name         TEXT NOT NULL,
	website              TEXT NOT NULL DEFAULT '',
	user_intent          TEXT NOT NULL,
	summary              TEXT NOT NULL,
	pitch_angle          TEXT NOT NULL,
	subject_line         TEXT NOT NULL,
	what_not_to_pitch    TEXT NOT NULL,
	signal_tag           TEXT NOT NULL,
	news                 JSONB NOT NULL DEFAULT '[]',
	tech_stack           JSONB NOT NULL DEFAULT '[]',
	tech_stack_data      JSONB NOT NULL DEFAULT '[]',
	job_signals          JSONB NOT NULL DEFAULT '[]',
	intelligence_sources JSONB NOT NULL DEFAULT '{}',
	hiring_trends        TEXT NOT NULL DEFAULT '',
	news_trends          TEXT NOT NULL DEFAULT '',
	company_logo         TEXT NOT NULL DEFAULT '',
	created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_briefs_created_at ON briefs (created_at DESC);
`

// PostgresStore persists briefs in a single briefs table. Signal arrays
// are stored as JSONB so the read path returns them exactly as written.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the connection, verifies it, and ensures the
// schema exists.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, briefsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Insert(ctx context.Context, b *models.Brief) error {
	news, err := json.Marshal(b.News)
	if err != nil {
		return fmt.Errorf("marshal news: %w", err)
	}
	techStack, err := json.Marshal(b.TechStack)
	if err != nil {
		return fmt.Errorf("marshal tech stack: %w", err)
	}
	techData, err := json.Marshal(b.TechStackData)
	if err != nil {
		return fmt.Errorf("marshal tech stack data: %w", err)
	}
	jobs, err := json.Marshal(b.JobSignals)
	if err != nil {
		return fmt.Errorf("marshal job signals: %w", err)
	}
	sources, err := json.Marshal(b.IntelligenceSources)
	if err != nil {
		return fmt.Errorf("marshal intelligence sources: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO briefs (
			company_name, website, user_intent,
			summary, pitch_angle, subject_line, what_not_to_pitch, signal_tag,
			news, tech_stack, tech_stack_data, job_signals,
			intelligence_sources, hiring_trends, news_trends, company_logo
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		RETURNING id, created_at`,
		b.CompanyName, b.Website, b.UserIntent,
		b.Summary, b.PitchAngle, b.SubjectLine, b.WhatNotToPitch, b.SignalTag,
		news, techStack, techData, jobs,
		sources, b.HiringTrends, b.NewsTrends, b.CompanyLogo,
	)
	if err := row.Scan(&b.ID, &b.CreatedAt); err != nil {
		return fmt.Errorf("insert brief: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListAll(ctx context.Context) ([]models.Brief, error) {
	rows, err := s.db.QueryContext(ctx, selectBrief+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list briefs: %w", err)
	}
	defer rows.Close()

	var briefs []models.Brief
	for rows.Next() {
		b, err := scanBrief(rows)
		if err != nil {
			return nil, err
		}
		briefs = append(briefs, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list briefs: %w", err)
	}
	return briefs, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*models.Brief, error) {
	rows, err := s.db.QueryContext(ctx, selectBrief+` WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get brief: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get brief: %w", err)
		}
		return nil, ErrNotFound
	}
	return scanBrief(rows)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

const selectBrief = `
	SELECT id, company_name, website, user_intent,
		summary, pitch_angle, subject_line, what_not_to_pitch, signal_tag,
		news, tech_stack, tech_stack_data, job_signals,
		intelligence_sources, hiring_trends, news_trends, company_logo,
		created_at
	FROM briefs`

func scanBrief(rows *sql.Rows) (*models.Brief, error) {
	var (
		b         models.Brief
		news      []byte
		techStack []byte
		techData  []byte
		jobs      []byte
		sources   []byte
	)
	if err := rows.Scan(
		&b.ID, &b.CompanyName, &b.Website, &b.UserIntent,
		&b.Summary, &b.PitchAngle, &b.SubjectLine, &b.WhatNotToPitch, &b.SignalTag,
		&news, &techStack, &techData, &jobs,
		&sources, &b.HiringTrends, &b.NewsTrends, &b.CompanyLogo,
		&b.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("scan brief: %w", err)
	}
	if err := json.Unmarshal(news, &b.News); err != nil {
		return nil, fmt.Errorf("decode news: %w", err)
	}
	if err := json.Unmarshal(techStack, &b.TechStack); err != nil {
		return nil, fmt.Errorf("decode tech stack: %w", err)
	}
	if err := json.Unmarshal(techData, &b.TechStackData); err != nil {
		return nil, fmt.Errorf("decode tech stack data: %w", err)
	}
	if err := json.Unmarshal(jobs, &b.JobSignals); err != nil {
		return nil, fmt.Errorf("decode job signals: %w", err)
	}
	if err := json.Unmarshal(sources, &b.IntelligenceSources); err != nil {
		return nil, fmt.Errorf("decode intelligence sources: %w", err)
	}
	return &b, nil
}
