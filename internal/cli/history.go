package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/PneumoDetect/internal/app"
	"github.com/yildizm/PneumoDetect/internal/common"
	"github.com/yildizm/PneumoDetect/internal/formatter"
)

var (
	historySearch     string
	historyFilter     string
	historyLimit      int
	historyOutputFile string
)

// historyFetcher is the part of the API client the history command needs
type historyFetcher interface {
	FetchHistory(ctx context.Context) ([]common.AnalysisResult, error)
}

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List previous analyses stored by the service",
		Long: `Fetch the analysis history from the classification service.

Results can be narrowed by an ID substring and by prediction.

Examples:
  pneumodetect history
  pneumodetect history --filter pneumonia
  pneumodetect history --search 4f2 -o json`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().StringVarP(&historySearch, "search", "s", "", "only show results whose ID contains this text")
	cmd.Flags().StringVarP(&historyFilter, "filter", "f", "all", "prediction filter (all, pneumonia, normal)")
	cmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show at most this many results (0 = all)")
	cmd.Flags().StringVar(&historyOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	filter, err := common.ParsePredictionFilter(historyFilter)
	if err != nil {
		return err
	}

	client, err := newAPIClient(GetGlobalConfig())
	if err != nil {
		return err
	}

	report, err := fetchHistoryReport(commandContext(cmd), client, historyQuery{
		Search: historySearch,
		Filter: filter,
		Limit:  historyLimit,
	}, time.Now())
	if err != nil {
		return err
	}

	GetLogger("history").Debug("showing %d results", len(report.Results))
	return writeReport(cmd, report, historyOutputFile)
}

// historyQuery narrows the fetched history
type historyQuery struct {
	Search string
	Filter common.PredictionFilter
	Limit  int
}

// fetchHistoryReport fetches and filters the history into a report
func fetchHistoryReport(ctx context.Context, client historyFetcher, q historyQuery, now time.Time) (*formatter.Report, error) {
	history, err := client.FetchHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}

	results := app.FilterHistory(history, q.Search, q.Filter)
	if q.Limit > 0 && len(results) > q.Limit {
		results = results[:q.Limit]
	}

	return &formatter.Report{
		Results:     results,
		GeneratedAt: now,
	}, nil
}
