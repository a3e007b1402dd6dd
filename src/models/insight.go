package models

// MInsight is one derived natural-language summary statement.
type MInsight struct {
	Label string `json:"label"` // short display label, e.g. "Top product"
	Text  string `json:"text"`
}
