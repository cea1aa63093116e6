package models

import "time"

// SourceConfig describes one collection watched by the activity feed:
// how to label its items, which field carries the creation timestamp and
// which field to surface as the item title.
type SourceConfig struct {
	Label      string `json:"label"`
	Category   string `json:"category"`
	SortField  string `json:"sortField"`
	TitleField string `json:"titleField"`
}

// ActivityItem is one entry in the merged admin activity feed. It is derived
// transiently from source snapshots and never persisted; the feed is rebuilt
// in full on every update from any watched collection.
type ActivityItem struct {
	Source    string    `json:"source"`
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Category  string    `json:"category"`
	Label     string    `json:"label"`
	Title     string    `json:"title"`
}
