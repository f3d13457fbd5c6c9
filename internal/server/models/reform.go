package models

import "time"

// DefaultReformType is recorded for every guide until guide templates exist.
const DefaultReformType = "example_reform_type"

// Reform is a generated reform guide for one classified garment.
type Reform struct {
	ID          int64
	ReformType  string
	Cloth       string
	Target      string
	Trim        string
	Description string
	FileName    string
	ContentType string
	Path        string
}

// Log links a user, an uploaded image and the guide generated from it.
type Log struct {
	ID        int64
	UserID    int64
	ImageID   int64
	GuideID   int64
	CreatedAt time.Time
}

// LogEntry is the listing view of a Log: where the image is and what was detected.
type LogEntry struct {
	ImagePath  string
	ImageCloth string
}
