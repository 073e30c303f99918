package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/abdul-hamid-achik/neo/packages/db"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List exchanges recorded with --history",
	Long: `List the most recent exchanges stored in the history database.

Examples:
  neo history --history neo.db
  neo history --history neo.db --limit 50
  neo history --history neo.db --clear`,
	Args: cobra.NoArgs,
	RunE: historyCommand,
}

var (
	historyLimitFlag int
	historyClearFlag bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "l", db.DefaultLimit, "Number of entries to show")
	historyCmd.Flags().BoolVar(&historyClearFlag, "clear", false, "Delete all recorded exchanges")
}

type historyJSON struct {
	ID         int64  `json:"id"`
	RequestID  string `json:"requestId,omitempty"`
	Method     string `json:"method"`
	Address    string `json:"address"`
	Route      string `json:"route"`
	Status     int    `json:"status"`
	Bytes      int    `json:"bytes"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

func historyCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return reportError(cmd, err)
	}
	if s.config.History == "" {
		return reportError(cmd, exitWith(ExitUsageError, errors.New("no history database: set --history, NEO_HISTORY or history in the config file")))
	}

	store, err := db.NewClient(s.config.History)
	if err != nil {
		return reportError(cmd, exitWith(ExitConfigError, err))
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if historyClearFlag {
		if err := store.Clear(ctx); err != nil {
			return reportError(cmd, exitWith(ExitConfigError, err))
		}
		fmt.Fprintf(out, "Cleared history in %s\n", store.Path())
		return nil
	}

	entries, err := store.List(ctx, historyLimitFlag)
	if err != nil {
		return reportError(cmd, exitWith(ExitConfigError, err))
	}

	if s.config.Output == "json" {
		rows := make([]historyJSON, len(entries))
		for i, e := range entries {
			rows[i] = historyJSON{
				ID:         e.ID,
				RequestID:  e.RequestID,
				Method:     e.Method,
				Address:    e.Address,
				Route:      e.Route,
				Status:     e.Status,
				Bytes:      e.Bytes,
				DurationMs: e.DurationMs,
				Error:      e.Error,
				CreatedAt:  e.CreatedAt.Format(time.RFC3339),
			}
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rows)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No exchanges recorded")
		return nil
	}

	if s.config.GetNoColor() {
		color.NoColor = true
	}
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tMETHOD\tTARGET\tSTATUS\tBYTES\tDURATION")
	for _, e := range entries {
		status := fmt.Sprintf("%d", e.Status)
		switch {
		case e.Error != "":
			status = red("error")
		case e.Status >= 400 || e.Status == 0:
			status = red(status)
		default:
			status = green(status)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s%s\t%s\t%d\t%dms\n",
			e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Method, e.Address, e.Route, status, e.Bytes, e.DurationMs)
	}
	return w.Flush()
}
