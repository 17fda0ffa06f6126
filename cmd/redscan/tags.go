package main

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"red-tag-extractor/internal/domain"
	"red-tag-extractor/internal/service"
)

var tagsCmd = &cobra.Command{
	Use:   "tags <file.xlsx>",
	Short: "Print the tag counts of a workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := service.NewFileReportStore(filepath.Dir(args[0]), filepath.Base(args[0]), newLogger())
		tags, err := store.TagCounts()
		if err != nil {
			return err
		}
		return printTags(cmd.OutOrStdout(), tags)
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func printTags(w io.Writer, tags []domain.TagCount) error {
	if len(tags) == 0 {
		_, err := fmt.Fprintln(w, "no tags found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tCOUNT")
	for _, t := range tags {
		fmt.Fprintf(tw, "%s\t%d\n", t.Tag, t.Count)
	}
	return tw.Flush()
}
