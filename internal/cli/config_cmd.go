package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nightrate/nightrate/internal/config"
	"github.com/nightrate/nightrate/internal/store"
)

var configKeys = []string{
	"backend_urls", "request_timeout_seconds", "probe_timeout_seconds",
	"chunk_delay_ms", "model", "pms", "auto_select_listing",
}

func (a App) cmdConfig(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "config requires subcommand: get|set|path")
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "get":
		return a.cmdConfigGet(g, argv)
	case "set":
		return a.cmdConfigSet(g, argv)
	case "path":
		path, err := config.ConfigPath()
		if err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
		fmt.Println(path)
		return nil
	default:
		return newExitError(ExitInvalidUsage, "unknown config subcommand %q", sub)
	}
}

func (a App) cmdConfigGet(g globalFlags, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if len(args) == 0 {
		if g.JSON {
			return writeJSON(cfg)
		}
		for _, key := range configKeys {
			fmt.Printf("%s=%s\n", key, configValue(cfg, key))
		}
		return nil
	}
	key := args[0]
	if !knownConfigKey(key) {
		return unknownConfigKeyError(key)
	}
	fmt.Println(configValue(cfg, key))
	return nil
}

func (a App) cmdConfigSet(g globalFlags, args []string) error {
	if len(args) != 2 {
		return newExitError(ExitInvalidUsage, "usage: nightrate config set <key> <value>")
	}
	key, value := args[0], args[1]
	if !knownConfigKey(key) {
		return unknownConfigKeyError(key)
	}
	cfg, err := config.Load()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if err := applyConfigValue(&cfg, key, value); err != nil {
		return wrapExitError(ExitInvalidUsage, err)
	}
	if err := config.Save(cfg); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	if !g.Quiet {
		fmt.Printf("%s=%s\n", key, configValue(cfg, key))
	}
	return nil
}

func knownConfigKey(key string) bool {
	for _, k := range configKeys {
		if k == key {
			return true
		}
	}
	return false
}

func unknownConfigKeyError(key string) error {
	if suggestion := suggestClosest(key, configKeys); suggestion != "" {
		return newExitError(ExitInvalidUsage, "unknown config key %q (did you mean %q?)", key, suggestion)
	}
	return newExitError(ExitInvalidUsage, "unknown config key %q (keys: %s)", key, strings.Join(configKeys, ", "))
}

func configValue(cfg config.Config, key string) string {
	switch key {
	case "backend_urls":
		return strings.Join(cfg.BackendURLs, ",")
	case "request_timeout_seconds":
		return strconv.Itoa(cfg.RequestTimeoutSec)
	case "probe_timeout_seconds":
		return strconv.Itoa(cfg.ProbeTimeoutSec)
	case "chunk_delay_ms":
		return strconv.Itoa(cfg.ChunkDelayMS)
	case "model":
		return cfg.Model
	case "pms":
		return cfg.PMS
	case "auto_select_listing":
		return strconv.FormatBool(cfg.AutoSelect())
	}
	return ""
}

func applyConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "backend_urls":
		urls := []string{}
		for _, u := range strings.Split(value, ",") {
			u = strings.TrimSpace(u)
			if u == "" {
				continue
			}
			if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
				return fmt.Errorf("backend URL %q must start with http:// or https://", u)
			}
			urls = append(urls, u)
		}
		cfg.BackendURLs = urls
	case "request_timeout_seconds":
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		cfg.RequestTimeoutSec = n
	case "probe_timeout_seconds":
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		cfg.ProbeTimeoutSec = n
	case "chunk_delay_ms":
		n, err := parsePositive(value)
		if err != nil {
			return err
		}
		cfg.ChunkDelayMS = n
	case "model":
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("model cannot be empty")
		}
		cfg.Model = strings.TrimSpace(value)
	case "pms":
		normalized, err := store.ValidatePMS(value)
		if err != nil {
			return err
		}
		cfg.PMS = normalized
	case "auto_select_listing":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_select_listing expects true or false")
		}
		cfg.AutoSelectListing = &b
	}
	return nil
}

func parsePositive(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive integer, got %q", value)
	}
	return n, nil
}
