package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nightrate/nightrate/internal/backend"
)

func (a App) cmdUpdate(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	date := fs.String("date", "", "Night to update, YYYY-MM-DD")
	price := fs.Float64("price", 0, "New price")
	priceType := fs.String("price-type", "fixed", "Price type")
	currency := fs.String("currency", "USD", "Currency code")
	children := fs.Bool("children", false, "Also update child listings")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if *date == "" {
		return newExitError(ExitInvalidUsage, "--date is required")
	}
	if _, err := time.Parse("2006-01-02", *date); err != nil {
		return newExitError(ExitInvalidUsage, "--date must be YYYY-MM-DD: %q", *date)
	}
	if *price <= 0 {
		return newExitError(ExitInvalidUsage, "--price must be positive")
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	result, err := s.client.UpdatePrice(context.Background(), backend.UpdateRequest{
		Date:           *date,
		Price:          *price,
		PriceType:      *priceType,
		Currency:       *currency,
		UpdateChildren: *children,
	})
	if err != nil {
		return wrapBackendError(err)
	}
	if !result.Success {
		msg := firstOr(result.ErrorDetails, result.Message)
		return newExitError(ExitBackendFailure, "update rejected: %s", firstOr(msg, "no detail given"))
	}
	if g.JSON {
		return writeJSON(result)
	}
	fmt.Printf("%s: %s\n", firstOr(result.UpdatedDate, *date), firstOr(result.Message, "price updated"))
	return nil
}
