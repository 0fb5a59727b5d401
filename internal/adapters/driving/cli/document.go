package cli

import (
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
)

const timeFormat = "2006-01-02 15:04:05"

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage corpus documents",
	Long:  `List, view, compare, or reprocess documents discovered in the corpus folder.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documents",
	Args:  cobra.NoArgs,
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentContentCmd = &cobra.Command{
	Use:   "content [doc-id]",
	Short: "Print extracted text",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentContent,
}

var documentSimilarCmd = &cobra.Command{
	Use:   "similar [doc-id]",
	Short: "Find documents similar to a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentSimilar,
}

var documentReprocessCmd = &cobra.Command{
	Use:   "reprocess [doc-id]",
	Short: "Extract and analyse a single document again",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentReprocess,
}

var documentStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show processing progress",
	Args:  cobra.NoArgs,
	RunE:  runDocumentStats,
}

var documentOpenCmd = &cobra.Command{
	Use:   "open [doc-id]",
	Short: "Open document in default application",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentOpen,
}

var (
	listPage          int
	listPageSize      int
	listProcessedOnly bool

	similarThreshold float64
	similarLimit     int
)

// openCommand starts the platform opener. Replaced in tests.
var openCommand = func(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

func init() {
	documentListCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number")
	documentListCmd.Flags().IntVarP(&listPageSize, "page-size", "n", domain.DefaultPageSize, "documents per page")
	documentListCmd.Flags().BoolVar(&listProcessedOnly, "processed", false, "only list processed documents")

	documentSimilarCmd.Flags().Float64VarP(&similarThreshold, "threshold", "t", domain.DefaultSimilarThreshold, "minimum similarity between 0 and 1")
	documentSimilarCmd.Flags().IntVarP(&similarLimit, "limit", "n", domain.DefaultSimilarLimit, "maximum number of documents")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentContentCmd)
	documentCmd.AddCommand(documentSimilarCmd)
	documentCmd.AddCommand(documentReprocessCmd)
	documentCmd.AddCommand(documentStatsCmd)
	documentCmd.AddCommand(documentOpenCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	page, err := documentService.List(commandContext(cmd), driving.ListOptions{
		ProcessedOnly: listProcessedOnly,
		Page:          listPage,
		PageSize:      listPageSize,
	})
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(page.Documents) == 0 {
		cmd.Println("No documents found.")
		return nil
	}

	for i := range page.Documents {
		doc := &page.Documents[i]
		status := "pending"
		if doc.Processed {
			status = "processed"
		}
		cmd.Printf("  %s\n", doc.ID)
		cmd.Printf("    File:   %s (%s, %d bytes)\n", doc.Filename, doc.Kind, doc.Size)
		cmd.Printf("    Status: %s\n", status)
		cmd.Println()
	}

	p := page.Pagination
	cmd.Printf("Total: %d documents (page %d of %d)\n", p.Total, p.Page, p.Pages)
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	docID := args[0]

	doc, err := documentService.Get(commandContext(cmd), docID)
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  File:      %s\n", doc.Filename)
	cmd.Printf("  Path:      %s\n", doc.FilePath)
	cmd.Printf("  Type:      %s\n", doc.Kind)
	cmd.Printf("  Size:      %d bytes\n", doc.Size)
	cmd.Printf("  Processed: %t\n", doc.Processed)
	cmd.Printf("  Created:   %s\n", doc.CreatedAt.Format(timeFormat))
	cmd.Printf("  Updated:   %s\n", doc.UpdatedAt.Format(timeFormat))

	if doc.Content != nil {
		c := doc.Content
		cmd.Printf("  Words:     %d\n", c.WordCount)
		cmd.Printf("  Analysed:  %s\n", c.ProcessedAt.Format(timeFormat))
		if len(c.Keywords) > 0 {
			keywords := append([]string(nil), c.Keywords...)
			sort.Strings(keywords)
			cmd.Printf("\n  Keywords:  %s\n", strings.Join(keywords, ", "))
		}
		if c.Summary != "" {
			cmd.Println("\n  Summary:")
			cmd.Printf("    %s\n", c.Summary)
		}
	}

	return nil
}

func runDocumentContent(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	doc, err := documentService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document content: %w", err)
	}
	if doc.Content == nil {
		return fmt.Errorf("failed to get document content: %w", domain.ErrNoContent)
	}

	cmd.Println(doc.Content.RawText)
	return nil
}

func runDocumentSimilar(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search")
	}

	var threshold *float64
	if cmd.Flags().Changed("threshold") {
		t := similarThreshold
		threshold = &t
	}

	similar, err := searchService.Similar(commandContext(cmd), args[0], threshold, similarLimit)
	if err != nil {
		return fmt.Errorf("failed to find similar documents: %w", err)
	}

	if len(similar) == 0 {
		cmd.Println("No similar documents found.")
		return nil
	}

	for i := range similar {
		sd := &similar[i]
		cmd.Printf("  [%d] %s %s\n", i+1, sd.Document.Title(),
			render(cmd, scoreStyle, "("+formatPercent(domain.Percent(sd.Similarity))+")"))
		cmd.Println(render(cmd, mutedStyle, "      "+sd.Document.ID))
	}
	return nil
}

func runDocumentReprocess(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	docID := args[0]
	cmd.Printf("Reprocessing document %s...\n", docID)

	doc, err := documentService.Reprocess(commandContext(cmd), docID)
	if err != nil {
		return fmt.Errorf("failed to reprocess document: %w", err)
	}

	words := 0
	if doc.Content != nil {
		words = doc.Content.WordCount
	}
	cmd.Printf("Document %s reprocessed successfully (%d words).\n", doc.Filename, words)
	return nil
}

func runDocumentStats(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	stats, err := documentService.Stats(commandContext(cmd))
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	printHeading(cmd, "Corpus")
	cmd.Printf("  Documents: %d\n", stats.Total)
	cmd.Printf("  Processed: %d (%s)\n", stats.Processed, formatPercent(stats.ProcessedPercentage()))
	cmd.Println()

	for _, kind := range domain.AllFileKinds() {
		ks, ok := stats.ByKind[kind]
		if !ok {
			continue
		}
		cmd.Printf("  %-5s %d/%d processed\n", kind, ks.Processed, ks.Total)
	}
	if ks, ok := stats.ByKind[domain.FileKindUnknown]; ok {
		cmd.Printf("  %-5s %d unsupported\n", "other", ks.Total)
	}
	return nil
}

func runDocumentOpen(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errNotConfigured("document")
	}

	doc, err := documentService.Get(commandContext(cmd), args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if err := openCommand(doc.FilePath); err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}

	cmd.Printf("Opened document %s in default application.\n", doc.Filename)
	return nil
}
