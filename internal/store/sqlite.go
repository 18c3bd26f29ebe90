// Package store provides data persistence implementations.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"bettrack/internal/errors"
	"bettrack/internal/models"
)

// SQLiteStore implements DataStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based data store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.NewStoreError("open", "database", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, errors.NewStoreError("init", "schema", err)
	}
	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Bets table for the settled and pending bet history
	CREATE TABLE IF NOT EXISTS bets (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		stake REAL NOT NULL,
		odds REAL NOT NULL,
		outcome TEXT NOT NULL,
		profit REAL NOT NULL,
		competition TEXT,
		bet_type TEXT,
		tipster TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Tipster registry
	CREATE TABLE IF NOT EXISTS tipsters (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT,
		website TEXT,
		telegram TEXT,
		speciality TEXT,
		active INTEGER DEFAULT 1,
		notes TEXT,
		registered_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Risk alert log
	CREATE TABLE IF NOT EXISTS risk_alerts (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		recommendation TEXT,
		data TEXT,
		timestamp DATETIME NOT NULL,
		severity REAL NOT NULL,
		acknowledged INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Settings table
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Create indexes for performance
	CREATE INDEX IF NOT EXISTS idx_bets_timestamp ON bets(timestamp);
	CREATE INDEX IF NOT EXISTS idx_bets_tipster ON bets(tipster);
	CREATE INDEX IF NOT EXISTS idx_bets_competition ON bets(competition);
	CREATE INDEX IF NOT EXISTS idx_alerts_timestamp ON risk_alerts(timestamp);
	CREATE INDEX IF NOT EXISTS idx_alerts_kind ON risk_alerts(kind);
	CREATE INDEX IF NOT EXISTS idx_alerts_acknowledged ON risk_alerts(acknowledged);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Bets Methods
// ============================================================================

// SaveBets inserts or replaces bet records in one transaction. Records with
// an empty ID are assigned one.
func (s *SQLiteStore) SaveBets(ctx context.Context, records []models.BetRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("begin", "transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO bets (id, timestamp, stake, odds, outcome, profit, competition, bet_type, tipster)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.NewStoreError("prepare", "statement", err)
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		if r.ID == "" {
			r.ID = uuid.NewString()
		}
		_, err := stmt.ExecContext(ctx, r.ID, r.Timestamp, r.Stake, r.Odds, string(r.Outcome), r.Profit, r.Competition, r.BetType, r.Tipster)
		if err != nil {
			return errors.NewStoreError("insert", "bet", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("commit", "transaction", err)
	}
	return nil
}

// GetBets retrieves bet records in chronological order.
func (s *SQLiteStore) GetBets(ctx context.Context, filter BetFilter) ([]models.BetRecord, error) {
	query := "SELECT id, timestamp, stake, odds, outcome, profit, competition, bet_type, tipster, created_at FROM bets WHERE 1=1"
	args := []interface{}{}

	if filter.Tipster != "" {
		query += " AND tipster = ?"
		args = append(args, filter.Tipster)
	}
	if filter.Competition != "" {
		query += " AND competition = ?"
		args = append(args, filter.Competition)
	}
	if filter.BetType != "" {
		query += " AND bet_type = ?"
		args = append(args, filter.BetType)
	}
	if !filter.StartDate.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.EndDate)
	}
	query += " ORDER BY timestamp ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("query", "bets", err)
	}
	defer rows.Close()

	var records []models.BetRecord
	for rows.Next() {
		var r models.BetRecord
		var outcome string
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Stake, &r.Odds, &outcome, &r.Profit, &r.Competition, &r.BetType, &r.Tipster, &r.CreatedAt); err != nil {
			return nil, errors.NewStoreError("scan", "bet", err)
		}
		r.Outcome = models.Outcome(outcome)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("iterate", "bets", err)
	}
	return records, nil
}

// DeleteBet removes one bet record.
func (s *SQLiteStore) DeleteBet(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM bets WHERE id = ?", id)
	if err != nil {
		return errors.NewStoreError("delete", "bet", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrDataNotFound
	}
	return nil
}

// ============================================================================
// Tipster Registry Methods
// ============================================================================

// SaveTipster registers a new tipster. The name must be unique.
func (s *SQLiteStore) SaveTipster(ctx context.Context, t *models.Tipster) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.RegisteredAt.IsZero() {
		t.RegisteredAt = time.Now()
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM tipsters WHERE name = ?", t.Name).Scan(&exists)
	if err != nil {
		return errors.NewStoreError("check", "tipster", err)
	}
	if exists > 0 {
		return errors.ErrTipsterExists
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tipsters (id, name, description, website, telegram, speciality, active, notes, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Description, t.Website, t.Telegram, t.Speciality, boolToInt(t.Active), t.Notes, t.RegisteredAt)
	if err != nil {
		return errors.NewStoreError("insert", "tipster", err)
	}
	return nil
}

// GetTipsters lists registered tipsters, ordered by name.
func (s *SQLiteStore) GetTipsters(ctx context.Context, activeOnly bool) ([]models.Tipster, error) {
	query := "SELECT id, name, description, website, telegram, speciality, active, notes, registered_at FROM tipsters"
	if activeOnly {
		query += " WHERE active = 1"
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStoreError("query", "tipsters", err)
	}
	defer rows.Close()

	var tipsters []models.Tipster
	for rows.Next() {
		var t models.Tipster
		var active int
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Website, &t.Telegram, &t.Speciality, &active, &t.Notes, &t.RegisteredAt); err != nil {
			return nil, errors.NewStoreError("scan", "tipster", err)
		}
		t.Active = active != 0
		tipsters = append(tipsters, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("iterate", "tipsters", err)
	}
	return tipsters, nil
}

// UpdateTipster rewrites a registered tipster's profile.
func (s *SQLiteStore) UpdateTipster(ctx context.Context, t *models.Tipster) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tipsters SET name = ?, description = ?, website = ?, telegram = ?, speciality = ?, active = ?, notes = ?
		WHERE id = ?
	`, t.Name, t.Description, t.Website, t.Telegram, t.Speciality, boolToInt(t.Active), t.Notes, t.ID)
	if err != nil {
		return errors.NewStoreError("update", "tipster", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrTipsterNotFound
	}
	return nil
}

// DeleteTipster removes a tipster from the registry. Bet records keep their
// tipster attribution.
func (s *SQLiteStore) DeleteTipster(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM tipsters WHERE id = ?", id)
	if err != nil {
		return errors.NewStoreError("delete", "tipster", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrTipsterNotFound
	}
	return nil
}

// ============================================================================
// Risk Alert Log Methods
// ============================================================================

// SaveAlerts appends alerts to the log, assigning IDs to alerts that lack
// one, and returns the stored alerts.
func (s *SQLiteStore) SaveAlerts(ctx context.Context, alerts []models.RiskAlert) ([]models.RiskAlert, error) {
	if len(alerts) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewStoreError("begin", "transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO risk_alerts (id, kind, level, message, recommendation, data, timestamp, severity, acknowledged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, errors.NewStoreError("prepare", "statement", err)
	}
	defer stmt.Close()

	stored := make([]models.RiskAlert, len(alerts))
	for i, a := range alerts {
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		data, _ := json.Marshal(a.Data)
		_, err := stmt.ExecContext(ctx, a.ID, string(a.Kind), string(a.Level), a.Message, a.Recommendation, string(data), a.Timestamp, a.Severity, boolToInt(a.Acknowledged))
		if err != nil {
			return nil, errors.NewStoreError("insert", "alert", err)
		}
		stored[i] = a
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewStoreError("commit", "transaction", err)
	}
	return stored, nil
}

// RecentAlerts retrieves logged alerts, newest first.
func (s *SQLiteStore) RecentAlerts(ctx context.Context, filter AlertFilter) ([]models.RiskAlert, error) {
	query := "SELECT id, kind, level, message, recommendation, data, timestamp, severity, acknowledged FROM risk_alerts WHERE 1=1"
	args := []interface{}{}

	if filter.Kind != "" {
		query += " AND kind = ?"
		args = append(args, string(filter.Kind))
	}
	if filter.Unacknowledged {
		query += " AND acknowledged = 0"
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since)
	}
	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.NewStoreError("query", "alerts", err)
	}
	defer rows.Close()

	var alerts []models.RiskAlert
	for rows.Next() {
		var a models.RiskAlert
		var kind, level, data string
		var acknowledged int
		if err := rows.Scan(&a.ID, &kind, &level, &a.Message, &a.Recommendation, &data, &a.Timestamp, &a.Severity, &acknowledged); err != nil {
			return nil, errors.NewStoreError("scan", "alert", err)
		}
		a.Kind = models.AlertKind(kind)
		a.Level = models.RiskLevel(level)
		a.Acknowledged = acknowledged != 0
		if data != "" {
			_ = json.Unmarshal([]byte(data), &a.Data)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("iterate", "alerts", err)
	}
	return alerts, nil
}

// AcknowledgeAlert marks one logged alert as acknowledged.
func (s *SQLiteStore) AcknowledgeAlert(ctx context.Context, alertID string) error {
	res, err := s.db.ExecContext(ctx, "UPDATE risk_alerts SET acknowledged = 1 WHERE id = ?", alertID)
	if err != nil {
		return errors.NewStoreError("acknowledge", "alert", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrDataNotFound
	}
	return nil
}

// ============================================================================
// Settings Methods
// ============================================================================

// GetSetting reads one settings value.
func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", errors.ErrDataNotFound
	}
	if err != nil {
		return "", errors.NewStoreError("get", "setting", err)
	}
	return value, nil
}

// SetSetting writes one settings value.
func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return errors.NewStoreError("set", "setting", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
