package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const TemplatesSchema = `
	CREATE TABLE IF NOT EXISTS templates (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		code VARCHAR NOT NULL UNIQUE,
		description VARCHAR,
		standard VARCHAR,
		version VARCHAR,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const SectionsSchema = `
	CREATE TABLE IF NOT EXISTS sections (
		id VARCHAR PRIMARY KEY,
		template_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL,
		code VARCHAR NOT NULL,
		description VARCHAR,
		ord INTEGER NOT NULL DEFAULT 0
	);
`

const QuestionsSchema = `
	CREATE TABLE IF NOT EXISTS questions (
		id VARCHAR PRIMARY KEY,
		section_id VARCHAR NOT NULL,
		code VARCHAR NOT NULL,
		text VARCHAR NOT NULL,
		description VARCHAR,
		question_type VARCHAR NOT NULL,
		choices JSON,
		is_required BOOLEAN NOT NULL DEFAULT TRUE,
		ord INTEGER NOT NULL DEFAULT 0,
		weight INTEGER NOT NULL DEFAULT 1,
		max_score INTEGER NOT NULL DEFAULT 5
	);
`

const AuditsSchema = `
	CREATE TABLE IF NOT EXISTS audits (
		id VARCHAR PRIMARY KEY,
		code VARCHAR NOT NULL UNIQUE,
		name VARCHAR NOT NULL,
		description VARCHAR,
		template_id VARCHAR NOT NULL,
		organization_id VARCHAR NOT NULL,
		level_type VARCHAR NOT NULL,
		level_unit_id VARCHAR NOT NULL,
		level_unit_name VARCHAR,
		status VARCHAR NOT NULL DEFAULT 'draft',
		total_questions INTEGER NOT NULL DEFAULT 0,
		answered_questions INTEGER NOT NULL DEFAULT 0,
		score DOUBLE NOT NULL DEFAULT 0,
		start_date TIMESTAMP NULL,
		end_date TIMESTAMP NULL,
		completed_at TIMESTAMP NULL,
		created_by VARCHAR,
		assigned_to VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

const AnswersSchema = `
	CREATE TABLE IF NOT EXISTS answers (
		id VARCHAR NOT NULL,
		audit_id VARCHAR NOT NULL,
		question_id VARCHAR NOT NULL,
		kind VARCHAR,
		value_bool BOOLEAN,
		value_scale INTEGER,
		value_choice VARCHAR,
		value_text VARCHAR,
		comments VARCHAR,
		answered_by VARCHAR,
		answered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		score DOUBLE NOT NULL DEFAULT 0,
		max_score DOUBLE NOT NULL DEFAULT 0,
		PRIMARY KEY (audit_id, question_id)
	);
`

const RecommendationsSchema = `
	CREATE TABLE IF NOT EXISTS recommendations (
		id VARCHAR PRIMARY KEY,
		audit_id VARCHAR NOT NULL,
		section_id VARCHAR,
		question_id VARCHAR,
		title VARCHAR NOT NULL,
		description VARCHAR,
		action_required VARCHAR,
		priority VARCHAR NOT NULL,
		category VARCHAR NOT NULL,
		status VARCHAR NOT NULL DEFAULT 'pending',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	TemplatesSchema,
	SectionsSchema,
	QuestionsSchema,
	AuditsSchema,
	AnswersSchema,
	RecommendationsSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
