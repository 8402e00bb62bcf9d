package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/aegismedical/eresus/internal/config"
	"github.com/aegismedical/eresus/internal/domain"
	"github.com/aegismedical/eresus/internal/logging"
)

// HistoryCmd manages saved arrest logs
type HistoryCmd struct {
	Delete HistoryDeleteCmd `cmd:"delete" aliases:"del" help:"Delete a saved arrest log"`
	Export HistoryExportCmd `cmd:"export" help:"Write arrest summaries to text files"`
	List   HistoryListCmd   `cmd:"list" help:"List saved arrest logs" default:"1"`
	View   HistoryViewCmd   `cmd:"view" help:"Show the summary of a saved arrest log"`
}

// HistoryListCmd lists saved arrest logs
type HistoryListCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table" short:"f"`
}

// Run executes the list command
func (h *HistoryListCmd) Run(cli *CLI) error {
	logs, err := cli.Container.HistoryService.List(context.Background())
	if err != nil {
		return err
	}

	if h.Format == "json" {
		return printJSON(logs)
	}

	if len(logs) == 0 {
		fmt.Println("No saved arrest logs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tOUTCOME\tSHOCKS\tADRENALINE\tEVENTS")
	for _, log := range logs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			log.ID,
			log.StartedAt.Local().Format("2006-01-02 15:04"),
			domain.FormatDuration(log.TotalDurationSeconds),
			log.Outcome,
			log.Counters[domain.CounterShock],
			log.Counters[domain.CounterAdrenaline],
			len(log.Events),
		)
	}
	return w.Flush()
}

// HistoryViewCmd shows one saved arrest log
type HistoryViewCmd struct {
	Format string `help:"Output format: text or json" enum:"text,json" default:"text" short:"f"`
	ID     string `arg:"" help:"ID of the arrest log"`
}

// Run executes the view command
func (h *HistoryViewCmd) Run(cli *CLI) error {
	ctx := context.Background()

	if h.Format == "json" {
		log, err := cli.Container.HistoryService.Get(ctx, h.ID)
		if err != nil {
			return err
		}
		return printJSON(log)
	}

	summary, err := cli.Container.HistoryService.Summary(ctx, h.ID)
	if err != nil {
		return err
	}
	fmt.Print(summary)
	if !strings.HasSuffix(summary, "\n") {
		fmt.Println()
	}
	return nil
}

// HistoryDeleteCmd deletes a saved arrest log
type HistoryDeleteCmd struct {
	Force bool   `help:"Delete without confirmation" short:"f"`
	ID    string `arg:"" help:"ID of the arrest log to delete"`
}

// Run executes the delete command
func (h *HistoryDeleteCmd) Run(cli *CLI) error {
	ctx := context.Background()
	logging.Logger.Info("Executing history delete command", "id", h.ID, "force", h.Force)

	log, err := cli.Container.HistoryService.Get(ctx, h.ID)
	if err != nil {
		return err
	}

	if !h.Force && !confirmDeletion(log) {
		return nil
	}

	if err := cli.Container.HistoryService.Delete(ctx, h.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted arrest log %s\n", h.ID)
	return nil
}

func confirmDeletion(log *domain.SavedLog) bool {
	fmt.Printf("WARNING: This will permanently delete the arrest log started %s (%s, %s)\n",
		log.StartedAt.Local().Format("2006-01-02 15:04"),
		log.Outcome,
		domain.FormatDuration(log.TotalDurationSeconds))
	fmt.Print("\nContinue? (y/N): ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		logging.Logger.Info("User cancelled arrest log deletion", "id", log.ID)
		fmt.Println("Cancelled")
		return false
	}
	return true
}

// HistoryExportCmd writes summaries of saved logs to a directory
type HistoryExportCmd struct {
	Dir string   `help:"Directory to write summaries to (defaults to the configured export directory)"`
	IDs []string `arg:"" optional:"" name:"id" help:"IDs of the logs to export (all when omitted)"`
}

// Run executes the export command
func (h *HistoryExportCmd) Run(cli *CLI) error {
	dir := cli.Container.ExportDir
	if h.Dir != "" {
		dir = config.ExpandPath(h.Dir)
	}

	paths, err := cli.Container.HistoryService.ExportSummaries(context.Background(), dir, h.IDs)
	if err != nil {
		return err
	}

	if len(paths) == 0 {
		fmt.Println("No saved arrest logs to export.")
		return nil
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	fmt.Printf("\nExported %d summaries to %s\n", len(paths), dir)
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
