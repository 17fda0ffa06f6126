package service

import (
	"regexp"

	"red-tag-extractor/internal/domain"
)

var (
	// four alphanumeric segments joined by exactly three hyphens, whole token
	codePattern = regexp.MustCompile(`^[A-Za-z0-9]+-[A-Za-z0-9]+-[A-Za-z0-9]+-[A-Za-z0-9]+$`)
	tagPattern  = regexp.MustCompile(`[A-Z]{2,}`)
)

// IsCode reports whether token has the identifier shape, e.g. AB12-CD34-EF56-GH78.
func IsCode(token string) bool {
	return codePattern.MatchString(token)
}

// DeriveTag returns the first run of two or more uppercase letters in code.
// The second return value is false when the code carries no such run.
func DeriveTag(code string) (string, bool) {
	tag := tagPattern.FindString(code)
	return tag, tag != ""
}

// ExtractRecords turns the recognized words of one page into records.
// Words that do not look like a code are OCR noise and are dropped.
// Repeated codes are kept as separate records.
func ExtractRecords(page int, words []string) []domain.Record {
	var records []domain.Record
	for _, word := range words {
		if !IsCode(word) {
			continue
		}
		rec := domain.Record{Code: word, Page: page}
		if tag, ok := DeriveTag(word); ok {
			rec.Tag = &tag
		}
		records = append(records, rec)
	}
	return records
}
