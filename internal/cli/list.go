package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"NewsLens/internal/domain"
	"NewsLens/internal/store"
)

var (
	listSentiment string
	listSearch    string
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stories for one sentiment",
	Long: `Fetches the listing, removes duplicates and prints the stories matching
the sentiment tab and search text, together with per-sentiment counts.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listSentiment, "sentiment", "s", "", "Positive, Neutral or Negative (default from config)")
	listCmd.Flags().StringVarP(&listSearch, "search", "q", "", "case-insensitive text to match in title, description or category")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	application, err := newApplication(cfg)
	if err != nil {
		return err
	}
	defer shutdown(cmd, application)

	if err := application.Run(commandContext(cmd)); err != nil {
		cmd.PrintErrln("Could not load news. Try again later.")
		return err
	}

	if listSentiment != "" {
		if err := application.Store.SetSentiment(domain.Sentiment(listSentiment)); err != nil {
			return err
		}
	}
	application.Store.SetSearch(listSearch)

	view := application.Store.View()
	if listJSON {
		return outputListJSON(cmd, view)
	}
	outputListTable(cmd, view)
	return nil
}

type listRow struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	Category   string   `json:"category,omitempty"`
	Source     string   `json:"source,omitempty"`
	Confidence float64  `json:"confidence"`
	Tags       []string `json:"tags,omitempty"`
}

type listOutput struct {
	Sentiment domain.Sentiment         `json:"sentiment"`
	Search    string                   `json:"search,omitempty"`
	Counts    map[domain.Sentiment]int `json:"counts"`
	Articles  []listRow                `json:"articles"`
}

func outputListJSON(cmd *cobra.Command, view store.View) error {
	out := listOutput{
		Sentiment: view.Criteria.Sentiment,
		Search:    view.Criteria.Search,
		Counts:    view.Counts,
		Articles:  make([]listRow, 0, len(view.Visible)),
	}
	for _, rec := range view.Visible {
		out.Articles = append(out.Articles, listRow{
			Key:        rec.Key(),
			Title:      rec.Title,
			Category:   rec.Category,
			Source:     rec.Source,
			Confidence: rec.Confidence,
			Tags:       rec.Tags,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputListTable(cmd *cobra.Command, view store.View) {
	cmd.Printf("Positive: %d  Neutral: %d  Negative: %d\n",
		view.Counts[domain.SentimentPositive],
		view.Counts[domain.SentimentNeutral],
		view.Counts[domain.SentimentNegative])
	cmd.Println()

	if len(view.Visible) == 0 {
		cmd.Println("No stories found.")
		return
	}

	for _, rec := range view.Visible {
		title := rec.Title
		if title == "" {
			title = "(untitled)"
		}
		cmd.Printf("[%s] %s", rec.Key(), title)
		if rec.Category != "" {
			cmd.Printf(" · %s", rec.Category)
		}
		cmd.Printf(" (%.0f%%)\n", rec.Confidence*100)
	}
}
