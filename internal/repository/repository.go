package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/trustners-ux/trustner-platform-sub000/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on a unique constraint violation
	ErrDuplicate = errors.New("already exists")
)

const uniqueViolation = "23505"

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var schema = []string{
	`CREATE SCHEMA IF NOT EXISTS planner`,
	`CREATE TABLE IF NOT EXISTS planner.users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS planner.plans (
		id           UUID PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES planner.users(id),
		status       TEXT NOT NULL,
		draft        TEXT NOT NULL,
		draft_hmac   TEXT NOT NULL,
		steps        JSONB NOT NULL DEFAULT '{}',
		profile      JSONB,
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL,
		generated_at TIMESTAMPTZ,
		reminded_at  TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS planner.analyses (
		id            BIGSERIAL PRIMARY KEY,
		plan_id       UUID NOT NULL REFERENCES planner.plans(id),
		overall_score INT NOT NULL,
		result        JSONB NOT NULL,
		generated_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS analyses_plan_idx ON planner.analyses (plan_id, generated_at DESC)`,
}

// EnsureSchema creates the planner schema and tables if they are missing
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO planner.users (username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("user %s: %w", user.Email, ErrDuplicate)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, `WHERE email = $1`, email)
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findUser(ctx, `WHERE id = $1`, id)
}

func (r *Repository) findUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at, updated_at
		FROM planner.users ` + where
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreatePlan inserts a new draft plan
func (r *Repository) CreatePlan(ctx context.Context, plan *models.Plan) error {
	steps, err := json.Marshal(plan.Steps)
	if err != nil {
		return fmt.Errorf("failed to encode steps: %w", err)
	}
	// JSONB is bound as a string; lib/pq sends []byte as bytea.
	query := `
		INSERT INTO planner.plans (id, user_id, status, draft, draft_hmac, steps, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query, plan.ID, plan.UserID, plan.Status, plan.Draft, plan.DraftTag, string(steps)).
		Scan(&plan.CreatedAt, &plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}
	return nil
}

// FindPlan retrieves a plan by id
func (r *Repository) FindPlan(ctx context.Context, id string) (*models.Plan, error) {
	plan := &models.Plan{}
	var steps []byte
	var profile []byte
	var generatedAt sql.NullTime
	query := `
		SELECT id, user_id, status, draft, draft_hmac, steps, profile, created_at, updated_at, generated_at
		FROM planner.plans
		WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&plan.ID, &plan.UserID, &plan.Status, &plan.Draft, &plan.DraftTag,
		&steps, &profile, &plan.CreatedAt, &plan.UpdatedAt, &generatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	if err := json.Unmarshal(steps, &plan.Steps); err != nil {
		return nil, fmt.Errorf("failed to decode steps: %w", err)
	}
	if len(profile) > 0 {
		plan.Profile = &models.FinancialProfile{}
		if err := json.Unmarshal(profile, plan.Profile); err != nil {
			return nil, fmt.Errorf("failed to decode profile: %w", err)
		}
	}
	if generatedAt.Valid {
		plan.GeneratedAt = &generatedAt.Time
	}
	return plan, nil
}

// UpdatePlanDraft stores a new sealed draft and its step status
func (r *Repository) UpdatePlanDraft(ctx context.Context, plan *models.Plan) error {
	steps, err := json.Marshal(plan.Steps)
	if err != nil {
		return fmt.Errorf("failed to encode steps: %w", err)
	}
	query := `
		UPDATE planner.plans
		SET draft = $2, draft_hmac = $3, steps = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`
	err = r.db.QueryRowContext(ctx, query, plan.ID, plan.Draft, plan.DraftTag, string(steps)).Scan(&plan.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("plan %s: %w", plan.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	return nil
}

// SaveAnalysis marks the plan generated with its finalized profile and
// appends the analysis, in one transaction
func (r *Repository) SaveAnalysis(ctx context.Context, plan *models.Plan, result *models.AnalysisResult) error {
	profile, err := json.Marshal(plan.Profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	body, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE planner.plans
		SET status = $2, profile = $3, generated_at = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`,
		plan.ID, models.PlanStatusGenerated, string(profile), result.GeneratedAt)
	if err != nil {
		return fmt.Errorf("failed to update plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("plan %s: %w", plan.ID, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO planner.analyses (plan_id, overall_score, result, generated_at)
		VALUES ($1, $2, $3, $4)`,
		plan.ID, result.OverallScore, string(body), result.GeneratedAt); err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit analysis: %w", err)
	}
	plan.Status = models.PlanStatusGenerated
	generatedAt := result.GeneratedAt
	plan.GeneratedAt = &generatedAt
	return nil
}

// LatestAnalysis returns the most recent analysis of a plan
func (r *Repository) LatestAnalysis(ctx context.Context, planID string) (*models.AnalysisResult, error) {
	var body []byte
	query := `
		SELECT result
		FROM planner.analyses
		WHERE plan_id = $1
		ORDER BY generated_at DESC
		LIMIT 1`
	err := r.db.QueryRowContext(ctx, query, planID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("analysis for plan %s: %w", planID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}

	result := &models.AnalysisResult{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	return result, nil
}

// PlansDueForReview lists generated plans last analysed before cutoff that
// have not been reminded since
func (r *Repository) PlansDueForReview(ctx context.Context, cutoff time.Time) ([]models.PlanReminder, error) {
	query := `
		SELECT p.id, u.email, u.username, p.generated_at,
			(SELECT a.overall_score FROM planner.analyses a
			 WHERE a.plan_id = p.id ORDER BY a.generated_at DESC LIMIT 1)
		FROM planner.plans p
		JOIN planner.users u ON u.id = p.user_id
		WHERE p.status = $1
			AND p.generated_at < $2
			AND (p.reminded_at IS NULL OR p.reminded_at < p.generated_at)
		ORDER BY p.generated_at`
	rows, err := r.db.QueryContext(ctx, query, models.PlanStatusGenerated, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query plans due for review: %w", err)
	}
	defer rows.Close()

	var due []models.PlanReminder
	for rows.Next() {
		var pr models.PlanReminder
		var score sql.NullInt64
		if err := rows.Scan(&pr.PlanID, &pr.Email, &pr.Username, &pr.GeneratedAt, &score); err != nil {
			return nil, fmt.Errorf("failed to scan plan reminder: %w", err)
		}
		pr.Score = int(score.Int64)
		due = append(due, pr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate plans due for review: %w", err)
	}
	return due, nil
}

// MarkReminded records that a review reminder went out
func (r *Repository) MarkReminded(ctx context.Context, planID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE planner.plans SET reminded_at = $2 WHERE id = $1`, planID, at)
	if err != nil {
		return fmt.Errorf("failed to mark plan %s reminded: %w", planID, err)
	}
	return nil
}
