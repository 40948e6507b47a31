// Package archive provides SQLite-backed storage for finished interview
// transcripts. Live session state never touches the archive; a transcript is
// written exactly once, after the interview has ended.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/intervu-dev/intervu/internal/interview"
)

// Record is one archived interview.
type Record struct {
	ID            string
	SessionID     string
	RoleID        string
	Phase         string
	QuestionCount int
	Cause         string
	ElapsedSec    int
	CreatedAt     time.Time
	Messages      []interview.Message
}

// Summary is the listing form of a Record, without the transcript body.
type Summary struct {
	ID            string
	RoleID        string
	Phase         string
	QuestionCount int
	Cause         string
	ElapsedSec    int
	CreatedAt     time.Time
	MessageCount  int
}

// Store provides SQLite-backed persistence for interview transcripts.
type Store struct {
	db *sql.DB
}

// NewStore opens the SQLite database at dbPath and creates tables if they don't exist.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createTables(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS interviews (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL,
		role_id TEXT NOT NULL,
		phase TEXT NOT NULL,
		question_count INTEGER NOT NULL,
		cause TEXT NOT NULL,
		elapsed_sec INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS transcript_messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		interview_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		FOREIGN KEY (interview_id) REFERENCES interviews(id)
	);
	`
	_, err := db.Exec(schema)
	return err
}

// Save archives a finished interview and returns the stored record. The
// transcript is written in a single transaction so a partial archive can
// never be observed.
func (s *Store) Save(rec Record) (*Record, error) {
	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO interviews (id, session_id, role_id, phase, question_count, cause, elapsed_sec, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionID, rec.RoleID, rec.Phase, rec.QuestionCount, rec.Cause, rec.ElapsedSec, rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert interview: %w", err)
	}

	for i, msg := range rec.Messages {
		_, err = tx.Exec(
			`INSERT INTO transcript_messages (interview_id, position, role, content)
			 VALUES (?, ?, ?, ?)`,
			rec.ID, i, msg.Role, msg.Content,
		)
		if err != nil {
			return nil, fmt.Errorf("insert message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	return &rec, nil
}

// Get retrieves an archived interview with its full transcript.
// Returns nil when no record exists for id.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, role_id, phase, question_count, cause, elapsed_sec, created_at
		 FROM interviews WHERE id = ?`,
		id,
	)

	var rec Record
	err := row.Scan(&rec.ID, &rec.SessionID, &rec.RoleID, &rec.Phase, &rec.QuestionCount, &rec.Cause, &rec.ElapsedSec, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan interview: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT role, content
		 FROM transcript_messages
		 WHERE interview_id = ?
		 ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var msg interview.Message
		if err := rows.Scan(&msg.Role, &msg.Content); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		rec.Messages = append(rec.Messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return &rec, nil
}

// List returns summaries of the most recently archived interviews.
func (s *Store) List(limit int) ([]Summary, error) {
	rows, err := s.db.Query(
		`SELECT i.id, i.role_id, i.phase, i.question_count, i.cause, i.elapsed_sec, i.created_at,
		        COALESCE(COUNT(m.id), 0) as message_count
		 FROM interviews i
		 LEFT JOIN transcript_messages m ON i.id = m.interview_id
		 GROUP BY i.id
		 ORDER BY i.created_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query interviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.RoleID, &sum.Phase, &sum.QuestionCount, &sum.Cause, &sum.ElapsedSec, &sum.CreatedAt, &sum.MessageCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, sum)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return summaries, nil
}
