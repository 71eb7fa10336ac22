package project

import "time"

// Upload is a stored media reference. The file itself lives in the object
// store; only the returned URL and declared type are persisted.
type Upload struct {
	ID         uint
	ProjectID  uint
	FileURL    string
	FileType   string
	UploadedAt time.Time
}

// ReportUpload attaches a media reference to a report.
type ReportUpload struct {
	ID         uint
	ReportID   uint
	FileURL    string
	FileType   string
	UploadedAt time.Time
}
