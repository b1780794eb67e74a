package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time. A single pooled connection plus a
	// busy timeout makes concurrent writes queue instead of surfacing
	// SQLITE_BUSY, so a lost race reaches the unique index and fails as a
	// constraint violation.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. The unique index on active claim case
// numbers is what makes two racing claims resolve to exactly one winner.
func (db *DB) RunMigrations() error {
	migration := `
-- Users and role memberships
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL DEFAULT '',
    first_name TEXT NOT NULL DEFAULT '',
    last_name TEXT NOT NULL DEFAULT '',
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE user_roles (
    user_id TEXT NOT NULL,
    role TEXT NOT NULL CHECK(role IN ('Tech', 'Lead', 'Phone Analyst', 'Manager')),
    PRIMARY KEY (user_id, role),
    FOREIGN KEY (user_id) REFERENCES users(id)
);

-- API tokens, stored hashed
CREATE TABLE api_tokens (
    token_hash TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (user_id) REFERENCES users(id)
);
CREATE INDEX idx_token_user ON api_tokens(user_id);

-- Active claims: one per case number, enforced by the store
CREATE TABLE active_claims (
    id TEXT PRIMARY KEY,
    casenum TEXT NOT NULL UNIQUE,
    user TEXT NOT NULL,
    claim_time TIMESTAMP NOT NULL
);
CREATE INDEX idx_active_user ON active_claims(user);

-- Complete claims, awaiting review: one per case number, like active claims
CREATE TABLE complete_claims (
    id TEXT PRIMARY KEY,
    casenum TEXT NOT NULL UNIQUE,
    user TEXT NOT NULL,
    lead TEXT,
    claim_time TIMESTAMP NOT NULL,
    complete_time TIMESTAMP NOT NULL
);
CREATE INDEX idx_complete_user ON complete_claims(user);

-- Reviewed claims: the durable history, multiple rows per case
CREATE TABLE reviewed_claims (
    id TEXT PRIMARY KEY,
    casenum TEXT NOT NULL,
    tech TEXT NOT NULL,
    lead TEXT NOT NULL,
    claim_time TIMESTAMP NOT NULL,
    complete_time TIMESTAMP NOT NULL,
    review_time TIMESTAMP NOT NULL,
    status TEXT NOT NULL CHECK(status IN (
        'checked', 'done', 'kudos',
        'pingedlow', 'pingedmed', 'pingedhigh',
        'acknowledged', 'resolved'
    )),
    comment TEXT NOT NULL DEFAULT '',
    acknowledge_comment TEXT NOT NULL DEFAULT ''
);
CREATE INDEX idx_reviewed_casenum ON reviewed_claims(casenum);
CREATE INDEX idx_reviewed_tech ON reviewed_claims(tech);
CREATE INDEX idx_reviewed_lead ON reviewed_claims(lead);
CREATE INDEX idx_reviewed_status ON reviewed_claims(status);
CREATE INDEX idx_reviewed_review_time ON reviewed_claims(review_time);

-- Parent cases: knowledge-base records outside the lifecycle
CREATE TABLE parent_cases (
    id TEXT PRIMARY KEY,
    case_number TEXT NOT NULL UNIQUE,
    description TEXT NOT NULL,
    solution TEXT,
    active INTEGER NOT NULL DEFAULT 1,
    created_by TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX idx_parent_active ON parent_cases(active);

-- Evaluations: per-tech period summaries
CREATE TABLE evaluations (
    id TEXT PRIMARY KEY,
    tech TEXT NOT NULL,
    evaluator TEXT NOT NULL,
    period_start TIMESTAMP NOT NULL,
    period_end TIMESTAMP NOT NULL,
    cases_reviewed INTEGER NOT NULL DEFAULT 0,
    quality_score REAL,
    ping_count INTEGER NOT NULL DEFAULT 0,
    kudos_count INTEGER NOT NULL DEFAULT 0,
    strengths TEXT NOT NULL DEFAULT '',
    areas_for_improvement TEXT NOT NULL DEFAULT '',
    additional_comments TEXT NOT NULL DEFAULT '',
    overall_rating INTEGER CHECK(overall_rating BETWEEN 1 AND 5),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
CREATE INDEX idx_eval_tech ON evaluations(tech);
CREATE INDEX idx_eval_created ON evaluations(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
