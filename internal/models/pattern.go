package models

// Pattern represents a statistically filtered profitable betting pattern.
// Patterns are immutable result objects produced by the miner.
type Pattern struct {
	Name        string
	Description string
	Conditions  map[string]string
	SampleSize  int
	WinRate     float64 // 0-100
	AvgROI      float64 // percent
	Confidence  float64 // 0-1
	Level       RiskLevel
}
