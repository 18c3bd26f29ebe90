package store

import (
	"context"
	"io"
	"time"

	"github.com/gocarina/gocsv"

	"bettrack/internal/errors"
	"bettrack/internal/models"
	"bettrack/internal/performance"
)

// importBatchSize is how many validated rows are written per transaction.
const importBatchSize = 500

// betRow is the CSV wire format for a bet record.
type betRow struct {
	ID          string  `csv:"id"`
	Timestamp   string  `csv:"timestamp"`
	Stake       float64 `csv:"stake"`
	Odds        float64 `csv:"odds"`
	Outcome     string  `csv:"outcome"`
	Profit      float64 `csv:"profit"`
	Competition string  `csv:"competition"`
	BetType     string  `csv:"bet_type"`
	Tipster     string  `csv:"tipster"`
}

// ImportSummary reports the result of a CSV import.
type ImportSummary struct {
	Imported int
	Skipped  int
	Errors   []error
}

const csvTimeLayout = "2006-01-02 15:04:05"

// ImportCSV reads bet records from r and persists the valid ones. Malformed
// rows are skipped and counted rather than aborting the import.
func ImportCSV(ctx context.Context, ds DataStore, name string, r io.Reader) (ImportSummary, error) {
	var rows []betRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return ImportSummary{}, errors.NewImportError(name, 0, "unreadable CSV", err)
	}

	var summary ImportSummary
	collector := performance.NewBatchCollector(importBatchSize, func(batch []models.BetRecord) error {
		if err := ds.SaveBets(ctx, batch); err != nil {
			return err
		}
		summary.Imported += len(batch)
		return nil
	})

	for i, row := range rows {
		// data line number, counting the header
		line := i + 2
		rec, err := rowToRecord(row)
		if err != nil {
			summary.Skipped++
			summary.Errors = append(summary.Errors, errors.NewImportError(name, line, "invalid row", err))
			continue
		}
		if err := collector.Add(rec); err != nil {
			return summary, err
		}
	}
	if err := collector.Flush(); err != nil {
		return summary, err
	}
	return summary, nil
}

// ExportCSV writes the filtered bet history to w as CSV.
func ExportCSV(ctx context.Context, ds DataStore, filter BetFilter, w io.Writer) (int, error) {
	records, err := ds.GetBets(ctx, filter)
	if err != nil {
		return 0, err
	}

	rows := make([]betRow, len(records))
	for i, rec := range records {
		rows[i] = betRow{
			ID:          rec.ID,
			Timestamp:   rec.Timestamp.Format(csvTimeLayout),
			Stake:       rec.Stake,
			Odds:        rec.Odds,
			Outcome:     string(rec.Outcome),
			Profit:      rec.Profit,
			Competition: rec.Competition,
			BetType:     rec.BetType,
			Tipster:     rec.Tipster,
		}
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return 0, err
	}
	return len(rows), nil
}

func rowToRecord(row betRow) (models.BetRecord, error) {
	ts, err := parseTimestamp(row.Timestamp)
	if err != nil {
		return models.BetRecord{}, errors.NewValidationError("timestamp", row.Timestamp, "unrecognized format")
	}
	if row.Stake <= 0 {
		return models.BetRecord{}, errors.NewValidationError("stake", row.Stake, "must be positive")
	}
	if row.Odds <= 1 {
		return models.BetRecord{}, errors.NewValidationError("odds", row.Odds, "must exceed 1.0")
	}
	outcome := models.Outcome(row.Outcome)
	if !outcome.Valid() {
		return models.BetRecord{}, errors.NewValidationError("outcome", row.Outcome, "unknown outcome")
	}

	return models.BetRecord{
		ID:          row.ID,
		Timestamp:   ts,
		Stake:       row.Stake,
		Odds:        row.Odds,
		Outcome:     outcome,
		Profit:      row.Profit,
		Competition: row.Competition,
		BetType:     row.BetType,
		Tipster:     row.Tipster,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	layouts := []string{csvTimeLayout, "2006-01-02", time.RFC3339}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
