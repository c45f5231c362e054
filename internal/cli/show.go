package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"NewsLens/internal/app"
	"NewsLens/internal/disclosure"
	"NewsLens/internal/domain"
	"NewsLens/internal/infrastructure/parser"
)

var showTimeout time.Duration

var showCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Show a story preview and its full content",
	Long: `Selects the story with the given id (or url), prints the preview at once,
then waits for the detail payload and prints the final content. If the detail
cannot be loaded the preview stays as the article body.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	showCmd.Flags().DurationVarP(&showTimeout, "timeout", "t", 15*time.Second, "how long to wait for the full article")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	key := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	updates := make(chan disclosure.Snapshot, 16)
	application, err := newApplication(cfg, app.WithObserver(func(s disclosure.Snapshot) {
		select {
		case updates <- s:
		default:
		}
	}))
	if err != nil {
		return err
	}
	defer shutdown(cmd, application)

	ctx := commandContext(cmd)
	if err := application.Run(ctx); err != nil {
		cmd.PrintErrln("Could not load news. Try again later.")
		return err
	}

	rec, ok := application.Store.Lookup(key)
	if !ok {
		return fmt.Errorf("story %q not found", key)
	}

	snap := application.Disclosure.Select(ctx, rec)
	printSelection(cmd, snap.Selection, "Preview")

	if snap.State == disclosure.StateDetailPending {
		final, err := awaitDetail(updates, snap.Generation, showTimeout)
		switch {
		case err != nil:
			cmd.Println()
			cmd.Println("Full article is still loading; the preview above is all we have.")
		case final.State == disclosure.StateDetailFailed:
			cmd.Println()
			cmd.Println("Full article unavailable; the preview above is the final content.")
		default:
			cmd.Println()
			printSelection(cmd, final.Selection, "Article")
		}
		if err == nil {
			// The failure notification is sent after the state is published.
			application.Disclosure.Wait()
		}
	}

	application.Disclosure.Close()
	return nil
}

var errDetailTimeout = errors.New("detail still pending")

func awaitDetail(updates <-chan disclosure.Snapshot, generation uint64, timeout time.Duration) (disclosure.Snapshot, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case s := <-updates:
			if s.Generation != generation {
				continue
			}
			if s.State == disclosure.StateDetailReady || s.State == disclosure.StateDetailFailed {
				return s, nil
			}
		case <-timer.C:
			return disclosure.Snapshot{}, errDetailTimeout
		}
	}
}

func printSelection(cmd *cobra.Command, sel *domain.ArticleSelection, heading string) {
	if sel == nil {
		return
	}

	cmd.Printf("== %s: %s ==\n", heading, sel.Title)
	cmd.Printf("By %s · %s", sel.Author, sel.ReadTime)
	if sel.PublishedAt != "" {
		cmd.Printf(" · %s", sel.PublishedAt)
	}
	cmd.Printf(" · confidence %.0f%%\n", sel.Confidence*100)
	if len(sel.Tags) > 0 {
		cmd.Printf("Tags: %s\n", strings.Join(sel.Tags, ", "))
	}
	cmd.Println()
	cmd.Println(parser.ExtractText(sel.Content))
	if sel.URL != "" {
		cmd.Printf("\nOriginal: %s\n", sel.URL)
	}
}
