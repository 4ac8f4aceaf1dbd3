package main

import (
	"fmt"
	"path/filepath"

	"party-advisor-be/pkg/knowledge"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>...",
		Short: "Show which knowledge base each file name belongs to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			classifier := knowledge.NewClassifier(knowledge.DefaultKeywords())
			for _, path := range args {
				name := filepath.Base(path)
				category := classifier.Classify(name)
				if category == knowledge.Unclassified {
					color.Yellow("%-8s %s", "PENDING", name)
					continue
				}
				fmt.Printf("%-8s %s (%s)\n", category, name, category.Title())
			}
			return nil
		},
	}
}
