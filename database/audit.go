package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

// AuditEntry is one executed moderation action, as recorded in the audit log.
type AuditEntry struct {
	ID        int64
	GuildID   string
	SubjectID string
	IssuerID  string
	Action    string
	Reason    string
	CreatedAt time.Time
}

// InitAuditDB opens the audit database, creating it and its schema if needed.
func InitAuditDB(dbPath string) (*sql.DB, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createAuditTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create audit table: %w", err)
	}

	log.Println("Successfully connected to the audit database at", dbPath)
	return db, nil
}

func createAuditTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS audit_log (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        guild_id TEXT,
        subject_id TEXT,
        issuer_id TEXT,
        action TEXT,
        reason TEXT,
        created_at INTEGER
    );`
	_, err := db.Exec(query)
	return err
}

// RecordAction appends one executed moderation action to the audit log.
func RecordAction(db *sql.DB, guildID, subjectID, issuerID, action, reason string) error {
	query := `INSERT INTO audit_log (guild_id, subject_id, issuer_id, action, reason, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	stmt, err := db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare audit insert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(guildID, subjectID, issuerID, action, reason, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record audit entry for %s: %w", subjectID, err)
	}
	return nil
}

// RecentActions returns the newest audit entries for a guild, newest first.
func RecentActions(db *sql.DB, guildID string, limit int) ([]AuditEntry, error) {
	if limit <= 0 || limit > 25 {
		limit = 25
	}
	query := `SELECT id, guild_id, subject_id, issuer_id, action, reason, created_at
	          FROM audit_log WHERE guild_id = ? ORDER BY id DESC LIMIT ?`
	rows, err := db.Query(query, guildID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var e AuditEntry
		var created int64
		if err := rows.Scan(&e.ID, &e.GuildID, &e.SubjectID, &e.IssuerID, &e.Action, &e.Reason, &created); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		e.CreatedAt = time.Unix(created, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
