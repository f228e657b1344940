package cli

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nightrate/nightrate/internal/model"
	"github.com/nightrate/nightrate/internal/store"
)

func (a App) cmdAuth(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "auth requires subcommand: login|status|logout")
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "login":
		return a.cmdAuthLogin(g, argv)
	case "status":
		return a.cmdAuthStatus(g, argv)
	case "logout":
		return a.cmdAuthLogout(g, argv)
	default:
		return newExitError(ExitInvalidUsage, "unknown auth subcommand %q", sub)
	}
}

func (a App) cmdAuthLogin(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("auth login", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	apiKey := fs.String("api-key", "", "PriceLabs API key")
	pms := fs.String("pms", "", "PMS provider (airbnb|vrbo|yourporter|smartbnb|ownerrez)")
	openAIKey := fs.String("openai-key", "", "Optional OpenAI key for analysis features")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}

	key := strings.TrimSpace(*apiKey)
	if key == "" {
		if g.NoInput {
			return newExitError(ExitInvalidUsage, "--api-key is required with --no-input")
		}
		fmt.Fprint(os.Stderr, "PriceLabs API key: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return newExitError(ExitInvalidUsage, "reading API key: %v", err)
		}
		key = strings.TrimSpace(line)
	}
	if err := store.ValidateAPIKey(key); err != nil {
		return wrapExitError(ExitInvalidUsage, err)
	}

	provider := ""
	if *pms != "" {
		normalized, err := store.ValidatePMS(*pms)
		if err != nil {
			return wrapExitError(ExitInvalidUsage, err)
		}
		provider = normalized
	}

	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg, _, err := s.store.LoadAPIConfig()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	cfg.PriceLabs.APIKey = key
	if provider != "" {
		cfg.PriceLabs.PMS = provider
	}
	if *openAIKey != "" {
		cfg.OpenAI = &model.OpenAIConfig{APIKey: strings.TrimSpace(*openAIKey)}
	}
	if err := s.store.SaveAPIConfig(cfg); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}

	if !g.Quiet {
		fmt.Println("Credentials saved")
	}
	return nil
}

// cmdAuthStatus reports whether keys exist without ever echoing them.
func (a App) cmdAuthStatus(g globalFlags, args []string) error {
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	cfg, ok, err := s.store.LoadAPIConfig()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	status := map[string]any{
		"pricelabs_key": ok && strings.TrimSpace(cfg.PriceLabs.APIKey) != "",
		"openai_key":    ok && cfg.OpenAI != nil && strings.TrimSpace(cfg.OpenAI.APIKey) != "",
		"pms":           "",
	}
	if ok && cfg.PriceLabs.PMS != "" {
		status["pms"] = cfg.PriceLabs.PMS
	}
	if g.JSON {
		return writeJSON(status)
	}
	fmt.Printf("PriceLabs key: %s\n", configuredWord(status["pricelabs_key"].(bool)))
	fmt.Printf("OpenAI key:    %s\n", configuredWord(status["openai_key"].(bool)))
	if pms, _ := status["pms"].(string); pms != "" {
		fmt.Printf("PMS:           %s\n", pms)
	}
	return nil
}

func (a App) cmdAuthLogout(g globalFlags, args []string) error {
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.ClearAPIConfig(); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if !g.Quiet {
		fmt.Println("Credentials removed")
	}
	return nil
}

func configuredWord(ok bool) string {
	if ok {
		return "configured"
	}
	return "not set"
}
