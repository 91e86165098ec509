package models

import "time"

// StockRecord is one row of the precomputed indicator dataset.
// K, D and J are stochastic-oscillator scores, RSI is the 14-day
// Relative Strength Index. Values are nominally 0-100 but the
// dataset is trusted as-is and never clamped.
type StockRecord struct {
	Code string  `json:"code"`
	K    float64 `json:"k"`
	D    float64 `json:"d"`
	J    float64 `json:"j"`
	RSI  float64 `json:"rsi"`
}

// DatasetStatus describes the currently loaded dataset snapshot.
type DatasetStatus struct {
	Source      string    `json:"source"`
	RecordCount int       `json:"record_count"`
	LoadedAt    time.Time `json:"loaded_at"`
}
