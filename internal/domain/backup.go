package domain

import "time"

// ExportVersion tags every exported dataset. Import accepts any payload that
// passes the shape check regardless of this tag.
const ExportVersion = "1.0"

// ExportPayload is the full-dataset document written by export and
// auto-backup and consumed by import.
type ExportPayload struct {
	Assets           []Asset    `json:"assets"`
	Customers        []Customer `json:"customers"`
	ProductTypes     []string   `json:"productTypes"`
	AppPassword      string     `json:"appPassword"`
	SecurityQuestion string     `json:"securityQuestion"`
	SecurityAnswer   string     `json:"securityAnswer"`
	ExportDate       time.Time  `json:"exportDate"`
	Version          string     `json:"version"`
}

// AutoBackupRecord is the single auto-backup slot. Timestamp is Unix
// milliseconds of the last run, 0 when no backup has ever run.
type AutoBackupRecord struct {
	Data      *ExportPayload
	Timestamp int64
}
