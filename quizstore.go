package mcqgenerator

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps generated question sets queryable across web requests.
// It runs sqlite on an in-memory DSN, so every set dies with the
// process; nothing persists across sessions.
type Store struct {
	db *sql.DB
}

// SetInfo is the listing row for a stored question set.
type SetInfo struct {
	ID        string `json:"id"`
	Requested int    `json:"requested"`
	Generated int    `json:"generated"`
}

const memoryDSN = "file::memory:?cache=shared"

// OpenStore opens the in-memory store and creates its tables.
func OpenStore() (*Store, error) {
	db, err := sql.Open("sqlite3", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	// A second pool connection would see a fresh empty database
	// despite the shared cache once the first closes; keep one.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping store: %w", err)
	}

	store := &Store{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the store; all stored sets are gone afterwards.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS question_sets (
			id TEXT PRIMARY KEY,
			requested INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS questions (
			set_id TEXT NOT NULL,
			question_num INTEGER NOT NULL,
			prompt TEXT NOT NULL,
			options TEXT NOT NULL,
			answer TEXT NOT NULL,
			PRIMARY KEY (set_id, question_num),
			FOREIGN KEY (set_id) REFERENCES question_sets(id)
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute %s: %w", query, err)
		}
	}
	return nil
}

// SaveSet stores a question set and its questions.
func (s *Store) SaveSet(set *QuestionSet) error {
	_, err := s.db.Exec(
		"INSERT INTO question_sets (id, requested, created_at) VALUES (?, ?, ?)",
		set.ID, set.Requested, set.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save question set: %w", err)
	}

	for i, q := range set.Questions {
		optionsJSON, err := OptionsToJSON(q.Options)
		if err != nil {
			return err
		}
		_, err = s.db.Exec(
			"INSERT INTO questions (set_id, question_num, prompt, options, answer) VALUES (?, ?, ?, ?, ?)",
			set.ID, i+1, q.Prompt, optionsJSON, q.Answer,
		)
		if err != nil {
			return fmt.Errorf("failed to save question %d: %w", i+1, err)
		}
	}
	return nil
}

// GetSet retrieves a question set by ID.
func (s *Store) GetSet(id string) (*QuestionSet, error) {
	var set QuestionSet
	err := s.db.QueryRow(
		"SELECT id, requested, created_at FROM question_sets WHERE id = ?",
		id,
	).Scan(&set.ID, &set.Requested, &set.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("question set not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT prompt, options, answer FROM questions WHERE set_id = ? ORDER BY question_num",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var q Question
		var optionsJSON string
		if err := rows.Scan(&q.Prompt, &optionsJSON, &q.Answer); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.Options, err = JSONToOptions(optionsJSON)
		if err != nil {
			return nil, err
		}
		set.Questions = append(set.Questions, q)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating questions: %w", err)
	}

	return &set, nil
}

// ListSets returns stored sets newest first, optionally limited.
func (s *Store) ListSets(limit int) ([]SetInfo, error) {
	query := `SELECT qs.id, qs.requested, COUNT(q.set_id)
		FROM question_sets qs LEFT JOIN questions q ON q.set_id = qs.id
		GROUP BY qs.id ORDER BY qs.created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list question sets: %w", err)
	}
	defer rows.Close()

	var infos []SetInfo
	for rows.Next() {
		var info SetInfo
		if err := rows.Scan(&info.ID, &info.Requested, &info.Generated); err != nil {
			return nil, fmt.Errorf("failed to scan question set: %w", err)
		}
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question sets: %w", err)
	}

	return infos, nil
}

// Helper function to convert options slice to JSON string
func OptionsToJSON(options []string) (string, error) {
	data, err := json.Marshal(options)
	if err != nil {
		return "", fmt.Errorf("failed to marshal options: %w", err)
	}
	return string(data), nil
}

// Helper function to convert JSON string to options slice
func JSONToOptions(optionsJSON string) ([]string, error) {
	var options []string
	err := json.Unmarshal([]byte(optionsJSON), &options)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}
	return options, nil
}
