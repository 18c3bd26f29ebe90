package store

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bettrack/internal/models"
)

const sampleCSV = `id,timestamp,stake,odds,outcome,profit,competition,bet_type,tipster
,2026-02-01 15:00:00,25,1.85,WON,21.25,Premier League,Over 2.5,alice
,2026-02-02,50,2.40,LOST,-50,,1X2,bob
,2026-02-03 10:00:00,0,2.00,WON,10,,,
,2026-02-04 10:00:00,10,0.95,LOST,-10,,,
,not-a-date,10,2.00,WON,10,,,
,2026-02-05 10:00:00,10,2.00,SETTLED,10,,,
`

func TestImportCSV(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	summary, err := ImportCSV(ctx, s, "bets.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 4, summary.Skipped, "zero stake, odds under 1, bad date and unknown outcome all skip")
	assert.Len(t, summary.Errors, 4)

	got, err := s.GetBets(ctx, BetFilter{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Tipster)
	// Date-only rows get midnight.
	assert.Equal(t, 0, got[1].Timestamp.Hour())
}

func TestImportCSVUnreadable(t *testing.T) {
	s := newTestStore(t)

	_, err := ImportCSV(context.Background(), s, "bets.csv", strings.NewReader(""))
	assert.Error(t, err)
}

func TestExportCSVRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records := []models.BetRecord{{
		Timestamp:   time.Date(2026, 2, 1, 15, 0, 0, 0, time.UTC),
		Stake:       25,
		Odds:        1.85,
		Outcome:     models.OutcomeWon,
		Profit:      21.25,
		Competition: "Premier League",
		BetType:     "Over 2.5",
		Tipster:     "alice",
	}}
	require.NoError(t, s.SaveBets(ctx, records))

	var buf bytes.Buffer
	n, err := ExportCSV(ctx, s, BetFilter{}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	summary, err := ImportCSV(ctx, s, "export.csv", &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Imported)
	assert.Zero(t, summary.Skipped)
}
