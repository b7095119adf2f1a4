package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var documentJSON bool

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Inspect indexed documents",
	Long:  `View the metadata or content of an indexed document.`,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print document content",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

func init() {
	documentGetCmd.Flags().BoolVar(&documentJSON, "json", false, "output document as JSON")

	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return fmt.Errorf("search service: %w", errServicesNotConfigured)
	}

	ctx := cmd.Context()
	if err := ensureIndex(ctx); err != nil {
		return err
	}

	doc, err := searchService.Document(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if documentJSON {
		return outputJSON(cmd, doc)
	}

	cmd.Printf("ID:          %s\n", doc.ID)
	cmd.Printf("Title:       %s\n", doc.Title)
	cmd.Printf("Type:        %s\n", doc.Type)
	cmd.Printf("URL:         %s\n", doc.URL)
	if doc.Description != "" {
		cmd.Printf("Description: %s\n", doc.Description)
	}
	if doc.Category != "" {
		cmd.Printf("Category:    %s\n", doc.Category)
	}
	if len(doc.Tags) > 0 {
		cmd.Printf("Tags:        %s\n", strings.Join(doc.Tags, ", "))
	}
	if doc.Date != "" {
		cmd.Printf("Date:        %s\n", doc.Date)
	}
	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return fmt.Errorf("search service: %w", errServicesNotConfigured)
	}

	ctx := cmd.Context()
	if err := ensureIndex(ctx); err != nil {
		return err
	}

	doc, err := searchService.Document(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}

	cmd.Println(doc.Content)
	return nil
}
