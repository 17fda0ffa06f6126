package domain

import (
	"image"
	"time"
)

// Sheet and column names of the report artifact.
const (
	SheetExtractedText = "Extracted Text"
	SheetTagCounts     = "Tag Counts"

	ColumnExtractedText = "Extracted Text"
	ColumnTag           = "Tag"
	ColumnCount         = "Count"
)

// PageImage is one rasterized page of a submitted document
type PageImage struct {
	Number int         // 1-indexed page number
	Image  image.Image // RGB raster at the configured DPI
	Path   string      // PNG written for inspection, empty if not persisted
}

// Mask is the binarized red-ink layer of a page
type Mask struct {
	Number int
	Image  *image.Gray
}

// Record is a single identifier code found on a page.
// Tag is nil when the code carries no run of two or more uppercase letters.
type Record struct {
	Code string  `json:"code"`
	Tag  *string `json:"tag,omitempty"`
	Page int     `json:"page"`
}

// HasTag reports whether a tag was derived for the record
func (r Record) HasTag() bool {
	return r.Tag != nil && *r.Tag != ""
}

// TagValue returns the tag or an empty string when absent
func (r Record) TagValue() string {
	if r.Tag == nil {
		return ""
	}
	return *r.Tag
}

// TagCount is one row of the tag summary.
// JSON keys match what the upload frontend reads.
type TagCount struct {
	Tag   string `json:"Tag"`
	Count int    `json:"Count"`
}

// Report is the in-memory form of the two-sheet artifact
type Report struct {
	RunID     string
	Pages     int
	Records   []Record
	TagCounts []TagCount
}

// RunResult is what a successful submission hands back to the caller
type RunResult struct {
	RunID       string    `json:"run_id"`
	Pages       int       `json:"pages"`
	Records     int       `json:"records"`
	Tags        int       `json:"tags"`
	CompletedAt time.Time `json:"completed_at"`
}
