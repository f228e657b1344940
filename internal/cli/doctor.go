package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nightrate/nightrate/internal/config"
)

type doctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type doctorReport struct {
	OK       bool          `json:"ok"`
	Failures int           `json:"failures"`
	Warnings int           `json:"warnings"`
	Checks   []doctorCheck `json:"checks"`
}

func (a App) cmdDoctor(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	strict := fs.Bool("strict", false, "Treat warnings as failures")
	offline := fs.Bool("offline", false, "Skip the backend reachability probe")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if len(fs.Args()) != 0 {
		return newExitError(ExitInvalidUsage, "usage: nightrate doctor [--strict] [--offline]")
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	report := a.runDoctorChecks(s, g.StateDir, *offline)
	effectiveFailures := report.Failures
	if *strict {
		effectiveFailures += report.Warnings
	}
	if g.JSON {
		if err := writeJSON(report); err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
	} else {
		for _, c := range report.Checks {
			fmt.Printf("%s\t%s\t%s\n", strings.ToUpper(c.Status), c.Name, c.Message)
		}
		fmt.Printf("summary\tfailures=%d\twarnings=%d\n", report.Failures, report.Warnings)
	}
	if effectiveFailures > 0 {
		if *strict && report.Warnings > 0 && report.Failures == 0 {
			return newExitError(ExitGenericFailure, "doctor strict mode found %d warning(s)", report.Warnings)
		}
		return newExitError(ExitGenericFailure, "doctor found %d failing check(s)", report.Failures)
	}
	return nil
}

func (a App) runDoctorChecks(s *session, stateOverride string, offline bool) doctorReport {
	checks := []doctorCheck{}
	add := func(name, status, message string) {
		checks = append(checks, doctorCheck{Name: name, Status: status, Message: message})
	}

	if hasKey, err := s.store.HasAPIKey(); err != nil {
		add("auth.key", "fail", err.Error())
	} else if !hasKey {
		add("auth.key", "fail", "no PriceLabs key stored; run nightrate auth login")
	} else {
		add("auth.key", "ok", "PriceLabs key present")
	}

	if _, ok, err := s.store.LoadSelectedProperty(); err != nil {
		add("property.selected", "fail", err.Error())
	} else if !ok {
		add("property.selected", "warn", "no property selected; run nightrate listings")
	} else {
		add("property.selected", "ok", "property selected")
	}

	if dir, err := config.ConfigDir(); err != nil {
		add("paths.config", "fail", err.Error())
	} else if err := ensureWritableDir(dir); err != nil {
		add("paths.config", "fail", err.Error())
	} else {
		add("paths.config", "ok", dir)
	}

	if dir, err := config.StateDir(stateOverride); err != nil {
		add("paths.state", "fail", err.Error())
	} else if err := ensureWritableDir(dir); err != nil {
		add("paths.state", "fail", err.Error())
	} else {
		add("paths.state", "ok", dir)
	}

	if offline {
		add("backend.reachable", "warn", "skipped (--offline)")
	} else if base, err := s.client.Resolver.Resolve(context.Background()); err != nil {
		add("backend.reachable", "fail", err.Error())
	} else {
		add("backend.reachable", "ok", base)
	}

	report := doctorReport{Checks: checks}
	for _, c := range checks {
		switch c.Status {
		case "fail":
			report.Failures++
		case "warn":
			report.Warnings++
		}
	}
	report.OK = report.Failures == 0
	return report
}

func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".nightrate-write-test")
	if err := os.WriteFile(probe, []byte("ok\n"), 0o600); err != nil {
		return err
	}
	if err := os.Remove(probe); err != nil {
		return err
	}
	return nil
}
