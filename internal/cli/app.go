package cli

import (
	"fmt"
	"strings"
)

type App struct {
	Version string
}

type globalFlags struct {
	JSON     bool
	Plain    bool
	Quiet    bool
	Verbose  bool
	NoInput  bool
	StateDir string
	Help     bool
	Version  bool
}

func NewApp(version string) App {
	return App{Version: version}
}

var commandNames = []string{
	"pricing", "analyze", "update", "chat", "listings", "property",
	"context", "auth", "config", "doctor", "completion", "help", "version",
}

func (a App) Run(args []string) error {
	g, rest, err := parseGlobal(args)
	if err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if g.Help {
		return a.help(nil)
	}
	if g.Version {
		fmt.Println(a.Version)
		return nil
	}
	if len(rest) == 0 {
		return a.help(nil)
	}
	cmd := rest[0]
	argv := rest[1:]

	switch cmd {
	case "help", "-h", "--help":
		return a.help(argv)
	case "--version", "version":
		fmt.Println(a.Version)
		return nil
	case "pricing":
		return a.cmdPricing(g, argv)
	case "analyze":
		return a.cmdAnalyze(g, argv)
	case "update":
		return a.cmdUpdate(g, argv)
	case "chat":
		return a.cmdChat(g, argv)
	case "listings":
		return a.cmdListings(g, argv)
	case "property":
		return a.cmdProperty(g, argv)
	case "context":
		return a.cmdContext(g, argv)
	case "auth":
		return a.cmdAuth(g, argv)
	case "config":
		return a.cmdConfig(g, argv)
	case "doctor":
		return a.cmdDoctor(g, argv)
	case "completion":
		return a.cmdCompletion(g, argv)
	default:
		if suggestion := suggestClosest(cmd, commandNames); suggestion != "" {
			return newExitError(ExitInvalidUsage, "unknown command %q (did you mean %q?)\n\n%s", cmd, suggestion, usageText())
		}
		return newExitError(ExitInvalidUsage, "unknown command %q\n\n%s", cmd, usageText())
	}
}

func parseGlobal(args []string) (globalFlags, []string, error) {
	var g globalFlags
	for len(args) > 0 {
		a := args[0]
		switch a {
		case "-h", "--help":
			g.Help = true
			args = args[1:]
		case "--version":
			g.Version = true
			args = args[1:]
		case "--json":
			g.JSON = true
			args = args[1:]
		case "--plain":
			g.Plain = true
			args = args[1:]
		case "-q", "--quiet":
			g.Quiet = true
			args = args[1:]
		case "-v", "--verbose":
			g.Verbose = true
			args = args[1:]
		case "--no-input":
			g.NoInput = true
			args = args[1:]
		case "--state-dir":
			if len(args) < 2 {
				return g, nil, fmt.Errorf("--state-dir requires a value")
			}
			g.StateDir = args[1]
			args = args[2:]
		default:
			if strings.HasPrefix(a, "-") {
				return g, nil, fmt.Errorf("unknown global flag %q", a)
			}
			return g, args, nil
		}
	}
	return g, args, nil
}
