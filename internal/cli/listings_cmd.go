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

func (a App) cmdListings(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("listings", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	showAll := fs.Bool("all", false, "Include hidden listings")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	listings, err := s.client.Listings(context.Background())
	if err != nil {
		return wrapBackendError(err)
	}
	selectable := backend.Selectable(listings)

	// Nothing selected yet: default to the first listing so the pricing
	// commands work out of the box. auto_select_listing=false disables this.
	if s.client.Property == nil && s.cfg.AutoSelect() && len(selectable) > 0 {
		selected := model.Select(selectable[0], time.Now())
		if err := s.store.SaveSelectedProperty(selected); err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
		s.client.Property = &selected
		if !g.Quiet && !g.JSON {
			fmt.Printf("Auto-selected %s (%s)\n", selected.Name, selected.ID)
		}
	}

	shown := selectable
	if *showAll {
		shown = listings
	}
	if g.JSON {
		return writeJSON(shown)
	}
	if len(shown) == 0 {
		fmt.Println("No listings found for this account")
		return nil
	}
	for _, l := range shown {
		marker := " "
		if s.client.Property != nil && s.client.Property.ID == l.ID {
			marker = "*"
		}
		hidden := ""
		if l.IsHidden {
			hidden = "\t(hidden)"
		}
		fmt.Printf("%s %s\t%s\t%s\t%d br\t%s%s\n", marker, l.ID, l.Name, l.Location(), l.NoOfBedrooms, l.PMS, hidden)
	}
	return nil
}

func (a App) cmdProperty(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "property requires subcommand: select|show|clear")
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "select":
		return a.cmdPropertySelect(g, argv)
	case "show":
		return a.cmdPropertyShow(g, argv)
	case "clear":
		return a.cmdPropertyClear(g, argv)
	default:
		return newExitError(ExitInvalidUsage, "unknown property subcommand %q", sub)
	}
}

func (a App) cmdPropertySelect(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("property select", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.String("id", "", "Listing ID")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if *id == "" {
		return newExitError(ExitInvalidUsage, "--id is required")
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	listings, err := s.client.Listings(context.Background())
	if err != nil {
		return wrapBackendError(err)
	}
	for _, l := range backend.Selectable(listings) {
		if l.ID != *id {
			continue
		}
		selected := model.Select(l, time.Now())
		if err := s.store.SaveSelectedProperty(selected); err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
		return writeMaybeJSON(g, selected)
	}
	return newExitError(ExitGenericFailure, "listing not found or hidden: %s", *id)
}

func (a App) cmdPropertyShow(g globalFlags, args []string) error {
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	prop, ok, err := s.store.LoadSelectedProperty()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if !ok {
		if g.JSON {
			return writeJSON(nil)
		}
		fmt.Println("No property selected")
		return nil
	}
	return writeMaybeJSON(g, prop)
}

func (a App) cmdPropertyClear(g globalFlags, args []string) error {
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.ClearSelectedProperty(); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	return writeMaybeJSON(g, map[string]any{"ok": true})
}
