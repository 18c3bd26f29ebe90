// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"
	"time"

	"bettrack/internal/models"
)

// DataStore defines the interface for data persistence.
type DataStore interface {
	// Bets
	SaveBets(ctx context.Context, records []models.BetRecord) error
	GetBets(ctx context.Context, filter BetFilter) ([]models.BetRecord, error)
	DeleteBet(ctx context.Context, id string) error

	// Tipster registry
	SaveTipster(ctx context.Context, t *models.Tipster) error
	GetTipsters(ctx context.Context, activeOnly bool) ([]models.Tipster, error)
	UpdateTipster(ctx context.Context, t *models.Tipster) error
	DeleteTipster(ctx context.Context, id string) error

	// Risk alert log
	SaveAlerts(ctx context.Context, alerts []models.RiskAlert) ([]models.RiskAlert, error)
	RecentAlerts(ctx context.Context, filter AlertFilter) ([]models.RiskAlert, error)
	AcknowledgeAlert(ctx context.Context, alertID string) error

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Lifecycle
	Close() error
}

// BetFilter represents filters for querying bet records. Zero-value fields
// are ignored; results come back in chronological order.
type BetFilter struct {
	Tipster     string
	Competition string
	BetType     string
	StartDate   time.Time
	EndDate     time.Time
	Limit       int
}

// AlertFilter represents filters for querying the risk alert log.
type AlertFilter struct {
	Kind           models.AlertKind
	Unacknowledged bool
	Since          time.Time
	Limit          int
}
