package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nightrate/nightrate/internal/model"
)

var mainGuestChoices = []string{"Leisure", "Business", "Groups"}

// detailFlag collects repeated --detail tag=text pairs.
type detailFlag map[string]string

func (d detailFlag) String() string { return "" }

func (d detailFlag) Set(v string) error {
	tag, text, ok := strings.Cut(v, "=")
	if !ok || strings.TrimSpace(tag) == "" {
		return fmt.Errorf("expected tag=text, got %q", v)
	}
	d[strings.TrimSpace(tag)] = strings.TrimSpace(text)
	return nil
}

func (a App) cmdContext(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "context requires subcommand: set|show|clear")
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "set":
		return a.cmdContextSet(g, argv)
	case "show":
		return a.cmdContextShow(g, argv)
	case "clear":
		return a.cmdContextClear(g, argv)
	default:
		return newExitError(ExitInvalidUsage, "unknown context subcommand %q", sub)
	}
}

func (a App) cmdContextSet(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("context set", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	mainGuest := fs.String("main-guest", "", "Typical guest: Leisure|Business|Groups")
	features := fs.String("features", "", "Comma-separated special feature tags")
	goals := fs.String("goals", "", "Comma-separated pricing goal tags")
	details := detailFlag{}
	fs.Var(details, "detail", "Feature detail as tag=text (repeatable)")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	guest := strings.TrimSpace(*mainGuest)
	if guest != "" {
		matched := ""
		for _, choice := range mainGuestChoices {
			if strings.EqualFold(choice, guest) {
				matched = choice
				break
			}
		}
		if matched == "" {
			return newExitError(ExitInvalidUsage, "--main-guest must be one of Leisure|Business|Groups")
		}
		guest = matched
	}
	pctx := model.PropertyContext{
		MainGuest:      guest,
		SpecialFeature: splitTags(*features),
		PricingGoal:    splitTags(*goals),
		CreatedAt:      time.Now().UTC(),
	}
	if len(details) > 0 {
		pctx.SpecialFeatureDetails = details
	}
	if !pctx.Configured() {
		return newExitError(ExitInvalidUsage, "nothing to save: give at least one of --main-guest, --features, --goals")
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	// Saved wholesale: context edits replace the previous record entirely.
	if err := s.store.SavePropertyContext(pctx); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	return writeMaybeJSON(g, pctx)
}

func (a App) cmdContextShow(g globalFlags, args []string) error {
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	pctx, ok, err := s.store.LoadPropertyContext()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if !ok {
		if g.JSON {
			return writeJSON(nil)
		}
		fmt.Println("No property context saved")
		return nil
	}
	return writeMaybeJSON(g, pctx)
}

func (a App) cmdContextClear(g globalFlags, args []string) error {
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.ClearPropertyContext(); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	return writeMaybeJSON(g, map[string]any{"ok": true})
}

func splitTags(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
