package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nightrate/nightrate/internal/backend"
	"github.com/nightrate/nightrate/internal/model"
)

func validateDateRange(from, to string) error {
	var fromT, toT time.Time
	var err error
	if from != "" {
		if fromT, err = time.Parse("2006-01-02", from); err != nil {
			return fmt.Errorf("--from must be YYYY-MM-DD: %q", from)
		}
	}
	if to != "" {
		if toT, err = time.Parse("2006-01-02", to); err != nil {
			return fmt.Errorf("--to must be YYYY-MM-DD: %q", to)
		}
	}
	if (from == "") != (to == "") {
		return fmt.Errorf("--from and --to must be given together")
	}
	if from != "" && toT.Before(fromT) {
		return fmt.Errorf("--to %s is before --from %s", to, from)
	}
	return nil
}

func (a App) cmdPricing(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("pricing", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	from := fs.String("from", "", "Range start YYYY-MM-DD")
	to := fs.String("to", "", "Range end YYYY-MM-DD")
	withAI := fs.Bool("analyze", false, "Run AI analysis on the fetched nights")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if err := validateDateRange(*from, *to); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	nights, err := s.client.FetchPricing(context.Background(), backend.DateRange{From: *from, To: *to})
	if err != nil {
		return wrapBackendError(err)
	}
	if !*withAI {
		return a.printNights(g, nights)
	}
	return a.runAnalysis(g, s, nights)
}

func (a App) cmdAnalyze(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	from := fs.String("from", "", "Range start YYYY-MM-DD")
	to := fs.String("to", "", "Range end YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if err := validateDateRange(*from, *to); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	nights, err := s.client.FetchPricing(context.Background(), backend.DateRange{From: *from, To: *to})
	if err != nil {
		return wrapBackendError(err)
	}
	return a.runAnalysis(g, s, nights)
}

func (a App) printNights(g globalFlags, nights []model.NightData) error {
	if g.JSON {
		return writeJSON(nights)
	}
	if len(nights) == 0 {
		fmt.Println("No pricing data available")
		return nil
	}
	if g.Plain {
		for _, n := range nights {
			writePlainRow(n.Date, money(n.YourPrice), money(n.MarketAvgPrice), n.DayOfWeek, n.Event)
		}
		return nil
	}
	fmt.Printf("%d night(s)\n", len(nights))
	for _, n := range nights {
		line := fmt.Sprintf("%s  yours %s  market %s", n.Date, money(n.YourPrice), money(n.MarketAvgPrice))
		if n.Event != "" {
			line += "  [" + n.Event + "]"
		}
		fmt.Println(line)
	}
	return nil
}

type analysisOutput struct {
	Suggestions  []model.Suggestion `json:"suggestions"`
	Chunks       int                `json:"chunks"`
	FailedChunks int                `json:"failed_chunks"`
}

func (a App) runAnalysis(g globalFlags, s *session, nights []model.NightData) error {
	if len(nights) == 0 {
		if g.JSON {
			return writeJSON(analysisOutput{Suggestions: []model.Suggestion{}})
		}
		fmt.Println("No pricing data available")
		return nil
	}
	analysis, err := s.client.Analyze(context.Background(), nights)
	if err != nil {
		return wrapBackendError(err)
	}
	if analysis.Partial() {
		fmt.Fprintf(os.Stderr, "warning: %d of %d analysis chunk(s) failed; showing partial results\n",
			analysis.FailedChunks, analysis.Chunks)
		if g.Verbose {
			for _, cerr := range analysis.ChunkErrors {
				fmt.Fprintf(os.Stderr, "  %v\n", cerr)
			}
		}
	}
	suggestions := backend.MergeSuggestions(nights, analysis.Results)
	if g.JSON {
		return writeJSON(analysisOutput{
			Suggestions:  suggestions,
			Chunks:       analysis.Chunks,
			FailedChunks: analysis.FailedChunks,
		})
	}
	if g.Plain {
		for _, sg := range suggestions {
			writePlainRow(sg.Date, formatMoney(sg.CurrentPrice), formatMoney(sg.SuggestedPrice),
				fmt.Sprintf("%.0f", sg.Confidence), sg.InsightTag)
		}
		return nil
	}
	for _, sg := range suggestions {
		marker := " "
		if sg.FromAI {
			marker = "*"
		}
		fmt.Printf("%s %s  %s -> %s", marker, sg.Date, formatMoney(sg.CurrentPrice), formatMoney(sg.SuggestedPrice))
		if sg.FromAI {
			fmt.Printf("  (%.0f%% confidence)", sg.Confidence)
		}
		if sg.InsightTag != "" {
			fmt.Printf("  %s", sg.InsightTag)
		}
		fmt.Println()
		if g.Verbose {
			fmt.Printf("    %s\n", sg.Explanation)
		}
	}
	return nil
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatMoney(*v)
}
