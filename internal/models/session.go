package models

import "time"

// Session is the persisted record of an analysis session
type Session struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SessionFile is one raw input file accepted into a session. Files are
// replayed in Seq order to rebuild the session after a restart.
type SessionFile struct {
	ID        int64     `json:"id" db:"id"`
	SessionID string    `json:"sessionId" db:"session_id"`
	Seq       int       `json:"seq" db:"seq"`
	Name      string    `json:"name" db:"name"`
	Kind      string    `json:"kind" db:"kind"`
	Content   []byte    `json:"-" db:"content"`
	Size      int64     `json:"size" db:"size"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// File kinds
const (
	FileKindCSV       = "csv"
	FileKindFloorplan = "floorplan"
	FileKindVideo     = "video"
	FileKindYoutube   = "youtube"
)

// SessionState summarizes the in-memory state of a session
type SessionState struct {
	Session
	Users        []UserInfo   `json:"users"`
	Codes        []CodeInfo   `json:"codes"`
	Timeline     TimelineInfo `json:"timeline"`
	Floorplan    *Floorplan   `json:"floorplan,omitempty"`
	Video        *VideoState  `json:"video,omitempty"`
	DataHasCodes bool         `json:"dataHasCodes"`
	Files        []string     `json:"files"`
}

// IngestReport describes the outcome of loading one file
type IngestReport struct {
	File        string  `json:"file"`
	Kind        string  `json:"kind"`
	DataType    string  `json:"dataType,omitempty"`
	Entity      string  `json:"entity,omitempty"`
	RowsTotal   int     `json:"rowsTotal"`
	RowsUsed    int     `json:"rowsUsed"`
	RowsSkipped int     `json:"rowsSkipped"`
	MaxTime     float64 `json:"maxTime"`
}

// FileError reports a file that could not be merged into a session
type FileError struct {
	File    string `json:"file"`
	Message string `json:"message"`
}

// LoadResult collects the outcome of merging several files. A failed file
// leaves the files around it unaffected.
type LoadResult struct {
	Reports []IngestReport `json:"reports"`
	Errors  []FileError    `json:"errors"`
}
