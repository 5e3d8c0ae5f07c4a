package models

import "time"

// StoredFile is an uploaded file as seen in the storage directory
type StoredFile struct {
	Name    string    `json:"name"` // "{4 random chars}-{original name}"
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// Digest summarises the uploads made during a reporting period
type Digest struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Period      string       `json:"period"` // "daily" or "weekly"
	TotalFiles  int          `json:"total_files"`
	TotalBytes  int64        `json:"total_bytes"`
	Files       []StoredFile `json:"files"`
}
