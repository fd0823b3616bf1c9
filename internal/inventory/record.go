// Package inventory walks a project tree and produces one FileRecord per
// regular file, optionally with a content digest for duplicate detection.
package inventory

import "time"

// Action is the disposition the planner assigns to a FileRecord. Every record
// receives exactly one action.
type Action string

const (
	KeepInPlace      Action = "KEEP_IN_PLACE"
	MoveToDest       Action = "MOVE_TO_DEST"
	ArchiveDuplicate Action = "ARCHIVE_DUPLICATE"
	ArchiveNotNeeded Action = "ARCHIVE_NOT_NEEDED"
	ArchiveUnknown   Action = "ARCHIVE_UNKNOWN"
)

// FileRecord is the metadata snapshot of one scanned file. RelPath is the
// stable identity for reporting; AbsPath goes stale once a move executes.
type FileRecord struct {
	RelPath     string    `json:"rel_path"`
	AbsPath     string    `json:"abs_path"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"mtime"`
	Digest      string    `json:"sha256,omitempty"`
	Action      Action    `json:"action"`
	Reason      string    `json:"reason"`
	DestRelPath string    `json:"dest_rel_path,omitempty"`
}
