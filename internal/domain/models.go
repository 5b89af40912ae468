package domain

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// FileRecord represents one catalog entry as returned by the search API.
// Records are immutable once received; they live for one render pass.
type FileRecord struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size,omitempty"`
	Caption  string `json:"caption,omitempty"`
	FileType string `json:"file_type,omitempty"`
	Year     int    `json:"year,omitempty"`
}

// fileRecordAlias avoids recursion in UnmarshalJSON
type fileRecordAlias FileRecord

// UnmarshalJSON accepts the id field as either a JSON string or a number;
// the backend stores opaque identifiers and is not consistent about the type.
func (r *FileRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		fileRecordAlias
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = FileRecord(raw.fileRecordAlias)
	if len(raw.ID) > 0 {
		var s string
		if err := json.Unmarshal(raw.ID, &s); err == nil {
			r.ID = s
		} else {
			r.ID = strings.Trim(string(raw.ID), `"`)
		}
	}
	return nil
}

// Known file type tags
const (
	TypePDF     = "pdf"
	TypeVideo   = "mp4"
	TypeMKV     = "mkv"
	TypeArchive = "zip"
	TypeUnknown = "unknown"
)

// sniffTypes are matched as substrings when a file name has no usable extension
var sniffTypes = []string{TypePDF, TypeVideo, TypeMKV, TypeArchive}

// ResolvedType returns the record's declared file type, or infers one from the
// file name: extension first, then sniffing known substrings, else "unknown".
func (r FileRecord) ResolvedType() string {
	if t := strings.TrimSpace(r.FileType); t != "" {
		return strings.ToLower(t)
	}
	return InferType(r.FileName)
}

// InferType derives a file type tag from a file name.
func InferType(fileName string) string {
	name := strings.ToLower(strings.TrimSpace(fileName))
	if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
		return ext
	}
	for _, t := range sniffTypes {
		if strings.Contains(name, t) {
			return t
		}
	}
	return TypeUnknown
}

// SortOrder is the feed's sort direction on insertion order.
type SortOrder string

const (
	SortDesc SortOrder = "desc" // newest first, the default
	SortAsc  SortOrder = "asc"
)

// Toggle returns the opposite sort order.
func (s SortOrder) Toggle() SortOrder {
	if s == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// Query holds the free-text query and filters for one search request.
type Query struct {
	Text string
	Year int    // 0 means no year filter
	Type string // "" means no type filter
	Sort SortOrder
}

// IsEmpty reports whether the query carries no text and no filters.
func (q Query) IsEmpty() bool {
	return strings.TrimSpace(q.Text) == "" && q.Year == 0 && q.Type == ""
}
