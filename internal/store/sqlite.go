package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteRepository persists plans in a SQLite database. Inputs are stored as
// a YAML document so the schema survives new input fields without migration.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (and if needed creates) the database at dbPath.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) migrate() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS plans (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			inputs     TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate plans table: %w", err)
	}
	return nil
}

// Create stores a new plan snapshot.
func (r *SQLiteRepository) Create(p Plan) (Plan, error) {
	p = normalize(p)
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	inputs, err := yaml.Marshal(p.Inputs)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to encode inputs: %w", err)
	}

	_, err = r.db.Exec(
		`INSERT INTO plans (id, name, created_at, updated_at, inputs) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.CreatedAt.Format(time.RFC3339), p.UpdatedAt.Format(time.RFC3339), string(inputs),
	)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to create plan: %w", err)
	}
	return p, nil
}

// Get returns the plan with the given ID.
func (r *SQLiteRepository) Get(id string) (Plan, error) {
	row := r.db.QueryRow(
		`SELECT id, name, created_at, updated_at, inputs FROM plans WHERE id = ?`, id)

	p, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Plan{}, ErrNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("failed to get plan: %w", err)
	}
	return p, nil
}

// List returns all plans ordered by creation time.
func (r *SQLiteRepository) List() ([]Plan, error) {
	rows, err := r.db.Query(
		`SELECT id, name, created_at, updated_at, inputs FROM plans ORDER BY created_at, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var plans []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Update replaces an existing plan snapshot.
func (r *SQLiteRepository) Update(p Plan) (Plan, error) {
	p = normalize(p)
	p.UpdatedAt = time.Now().UTC()

	inputs, err := yaml.Marshal(p.Inputs)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to encode inputs: %w", err)
	}

	result, err := r.db.Exec(
		`UPDATE plans SET name = ?, updated_at = ?, inputs = ? WHERE id = ?`,
		p.Name, p.UpdatedAt.Format(time.RFC3339), string(inputs), p.ID,
	)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to update plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Plan{}, fmt.Errorf("failed to update plan: %w", err)
	}
	if affected == 0 {
		return Plan{}, ErrNotFound
	}

	return r.Get(p.ID)
}

// Delete removes a plan snapshot.
func (r *SQLiteRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete plan: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (Plan, error) {
	var p Plan
	var createdAt, updatedAt, inputs string

	if err := row.Scan(&p.ID, &p.Name, &createdAt, &updatedAt, &inputs); err != nil {
		return Plan{}, err
	}

	var err error
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return Plan{}, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return Plan{}, fmt.Errorf("invalid updated_at %q: %w", updatedAt, err)
	}
	if err = yaml.Unmarshal([]byte(inputs), &p.Inputs); err != nil {
		return Plan{}, fmt.Errorf("invalid inputs document: %w", err)
	}
	return p, nil
}
