package service

import (
	"sort"

	"red-tag-extractor/internal/domain"
)

// CountTags tallies record tags. Rows are ordered by descending count; equal
// counts keep the order in which the tag was first seen. Records without a
// tag are not counted.
func CountTags(records []domain.Record) []domain.TagCount {
	index := make(map[string]int)
	var counts []domain.TagCount
	for _, rec := range records {
		if !rec.HasTag() {
			continue
		}
		tag := rec.TagValue()
		if i, ok := index[tag]; ok {
			counts[i].Count++
			continue
		}
		index[tag] = len(counts)
		counts = append(counts, domain.TagCount{Tag: tag, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// MergePages concatenates per-page records in page order.
func MergePages(pages [][]domain.Record) []domain.Record {
	total := 0
	for _, recs := range pages {
		total += len(recs)
	}
	merged := make([]domain.Record, 0, total)
	for _, recs := range pages {
		merged = append(merged, recs...)
	}
	return merged
}

// BuildReport assembles the in-memory artifact for a run.
func BuildReport(runID string, pageRecords [][]domain.Record) *domain.Report {
	records := MergePages(pageRecords)
	return &domain.Report{
		RunID:     runID,
		Pages:     len(pageRecords),
		Records:   records,
		TagCounts: CountTags(records),
	}
}
