package cli

import (
	"fmt"
	"strings"
)

func (a App) help(args []string) error {
	fmt.Print(helpText(args))
	return nil
}

func helpText(args []string) string {
	if len(args) == 0 {
		return usageText()
	}
	k := strings.ToLower(strings.Join(args, " "))
	switch k {
	case "analyze":
		return analyzeHelpText()
	case "chat":
		return chatHelpText()
	case "doctor":
		return doctorHelpText()
	default:
		return usageText()
	}
}

func usageText() string {
	return `nightrate - PriceLabs pricing assistant client

USAGE:
  nightrate [global flags] <command> [args]

COMMANDS:
  pricing     Fetch nightly pricing data for the selected property
  analyze     Fetch pricing data and run AI analysis over it
  update      Push a price override for a single date
  chat        Talk to the pricing assistant (send|history|list|delete|new)
  listings    List the account's listings and pick one
  property    Manage the selected property (select|show|clear)
  context     Manage the saved property context (set|show|clear)
  auth        Manage credentials (login|status|logout)
  config      Read and write behavior settings (get|set|path)
  doctor      Run preflight checks
  completion  Print shell completion script (bash|zsh|fish)
  version     Print version

GLOBAL FLAGS:
  --json       Machine-readable output
  --plain      Tab-separated output
  -q, --quiet  Suppress informational output
  -v, --verbose  Extra diagnostics on stderr
  --no-input   Never prompt; fail instead
  --state-dir <dir>  Override the state directory

Run "nightrate help <command>" for command details.
`
}

func analyzeHelpText() string {
	return `nightrate analyze - Fetch pricing data and run AI analysis

USAGE:
  nightrate analyze [--from YYYY-MM-DD --to YYYY-MM-DD] [global flags]

RULES:
  - Dates are both given or both omitted; omitted means the backend default window
  - Nights are analyzed in chunks of 5, sequentially, with a delay between chunks
  - A failed chunk does not abort the run; remaining chunks still execute

OUTPUT:
  - --json: {suggestions, chunks, failed_chunks}
  - human: one row per night, AI suggestion merged where available
`
}

func chatHelpText() string {
	return `nightrate chat - Talk to the pricing assistant

USAGE:
  nightrate chat send <message...> [global flags]
  nightrate chat history [global flags]
  nightrate chat list [global flags]
  nightrate chat delete --id <conversation-id> [--force] [global flags]
  nightrate chat new [global flags]

BEHAVIOR:
  - send continues the stored conversation; if the server no longer knows it,
    a fresh conversation is started automatically
  - new forgets the stored conversation id without contacting the server
`
}

func doctorHelpText() string {
	return `nightrate doctor - Run preflight checks

USAGE:
  nightrate doctor [--strict] [--offline] [global flags]

CHECKS:
  - stored PriceLabs key
  - selected property
  - config/state path writability
  - backend reachability (skipped with --offline)

BEHAVIOR:
  - default: warnings do not fail the command
  - --strict: warnings are treated as failures
`
}
