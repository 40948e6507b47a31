// history.go implements the "intervu history" command listing archived
// transcripts.
package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/intervu-dev/intervu/internal/archive"
	"github.com/intervu-dev/intervu/internal/config"
	"github.com/intervu-dev/intervu/internal/interview"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "List archived interviews, or print one transcript",
	Long: `Without arguments, list the most recently archived interviews.
With an archive id, print that interview's full transcript.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}

	store, err := archive.NewStore(filepath.Join(dir, "archive.db"))
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer func() { _ = store.Close() }()

	if len(args) == 1 {
		return printTranscript(store, args[0])
	}
	return listArchive(store)
}

func listArchive(store *archive.Store) error {
	summaries, err := store.List(historyLimit)
	if err != nil {
		return fmt.Errorf("listing archive: %w", err)
	}
	if len(summaries) == 0 {
		fmt.Println("No archived interviews yet. Finish one with: intervu")
		return nil
	}

	fmt.Println("Archived Interviews")
	fmt.Println()
	for _, sum := range summaries {
		fmt.Printf("  %s  %s  %-30s  %-10s  %2d questions  %s\n",
			sum.ID[:8],
			sum.CreatedAt.Format("2006-01-02 15:04"),
			sum.RoleID,
			endLabel(sum.Cause),
			sum.QuestionCount,
			formatSeconds(sum.ElapsedSec),
		)
	}
	fmt.Println()
	fmt.Println("Show a transcript with: intervu history <id>")

	return nil
}

func printTranscript(store *archive.Store, id string) error {
	rec, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("reading archive: %w", err)
	}
	if rec == nil {
		// Allow the short prefix shown by the list.
		rec, err = findByPrefix(store, id)
		if err != nil {
			return err
		}
	}

	fmt.Printf("Interview %s\n", rec.ID)
	fmt.Printf("Role: %s    Ended: %s    Time: %s\n",
		rec.RoleID, endLabel(rec.Cause), formatSeconds(rec.ElapsedSec))
	fmt.Println()

	for _, msg := range rec.Messages {
		speaker := "Interviewer"
		if msg.Role == interview.RoleUser {
			speaker = "You"
		}
		fmt.Printf("%s:\n%s\n\n", speaker, msg.Content)
	}

	return nil
}

// findByPrefix resolves a shortened archive id to a full record.
func findByPrefix(store *archive.Store, prefix string) (*archive.Record, error) {
	summaries, err := store.List(1000)
	if err != nil {
		return nil, fmt.Errorf("listing archive: %w", err)
	}
	for _, sum := range summaries {
		if strings.HasPrefix(sum.ID, prefix) {
			return store.Get(sum.ID)
		}
	}
	return nil, fmt.Errorf("no archived interview matches %q", prefix)
}

// endLabel maps a termination cause to a display label.
func endLabel(cause string) string {
	switch cause {
	case "manual":
		return "ended early"
	case "inline", "polled":
		return "completed"
	default:
		return cause
	}
}

// formatSeconds formats an elapsed second count as m:ss or h:mm:ss.
func formatSeconds(total int) string {
	h := total / 3600
	m := total % 3600 / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of interviews to list")
}
