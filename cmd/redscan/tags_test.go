package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"red-tag-extractor/internal/domain"
	"red-tag-extractor/internal/service"
)

func TestPrintTags(t *testing.T) {
	var buf bytes.Buffer
	if err := printTags(&buf, []domain.TagCount{{Tag: "XY", Count: 12}, {Tag: "ABC", Count: 3}}); err != nil {
		t.Fatal(err)
	}
	want := "TAG  COUNT\nXY   12\nABC  3\n"
	if buf.String() != want {
		t.Fatalf("printTags() = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	printTags(&buf, nil)
	if strings.TrimSpace(buf.String()) != "no tags found" {
		t.Fatalf("unexpected empty output %q", buf.String())
	}
}

func TestTagsCommand(t *testing.T) {
	dir := t.TempDir()
	tag := "AB"
	store := service.NewFileReportStore(dir, "codes.xlsx", newLogger())
	err := store.Publish(&domain.Report{
		RunID:     "run-1",
		Pages:     1,
		Records:   []domain.Record{{Code: "AB12-CD34-EF56-GH78", Tag: &tag, Page: 1}},
		TagCounts: []domain.TagCount{{Tag: "AB", Count: 1}},
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"tags", filepath.Join(dir, "codes.xlsx")})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("tags command failed: %v", err)
	}
	if !strings.Contains(out.String(), "AB   1") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
