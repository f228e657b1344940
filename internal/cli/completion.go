package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (a App) cmdCompletion(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "usage: nightrate completion <bash|zsh|fish> | nightrate completion path <bash|zsh|fish>")
	}
	if len(args) == 2 && strings.EqualFold(args[0], "path") {
		p, err := completionInstallPath(args[1])
		if err != nil {
			return err
		}
		fmt.Println(p)
		return nil
	}
	if len(args) != 1 {
		return newExitError(ExitInvalidUsage, "usage: nightrate completion <bash|zsh|fish> | nightrate completion path <bash|zsh|fish>")
	}
	switch strings.ToLower(args[0]) {
	case "bash":
		fmt.Print(bashCompletionScript())
		return nil
	case "zsh":
		fmt.Print(zshCompletionScript())
		return nil
	case "fish":
		fmt.Print(fishCompletionScript())
		return nil
	default:
		return newExitError(ExitInvalidUsage, "unsupported shell %q (use bash, zsh, or fish)", args[0])
	}
}

func completionInstallPath(shell string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", newExitError(ExitGenericFailure, "cannot resolve user home directory")
	}
	switch strings.ToLower(strings.TrimSpace(shell)) {
	case "zsh":
		return filepath.Join(home, ".zsh", "completions", "_nightrate"), nil
	case "bash":
		return filepath.Join(home, ".local", "share", "bash-completion", "completions", "nightrate"), nil
	case "fish":
		return filepath.Join(home, ".config", "fish", "completions", "nightrate.fish"), nil
	default:
		return "", newExitError(ExitInvalidUsage, "unsupported shell %q (use bash, zsh, or fish)", shell)
	}
}

func bashCompletionScript() string {
	return `#!/usr/bin/env bash
_nightrate_completions() {
  local cur prev words cword
  _init_completion -n : || return

  local commands="pricing analyze update chat listings property context auth config doctor completion help version"
  local chat_sub="send history list delete new"
  local property_sub="select show clear"
  local context_sub="set show clear"
  local auth_sub="login status logout"
  local config_sub="get set path"

  if [[ ${cword} -eq 1 ]]; then
    COMPREPLY=( $(compgen -W "${commands}" -- "${cur}") )
    return
  fi

  case "${words[1]}" in
    chat) COMPREPLY=( $(compgen -W "${chat_sub}" -- "${cur}") ) ;;
    property) COMPREPLY=( $(compgen -W "${property_sub}" -- "${cur}") ) ;;
    context) COMPREPLY=( $(compgen -W "${context_sub}" -- "${cur}") ) ;;
    auth) COMPREPLY=( $(compgen -W "${auth_sub}" -- "${cur}") ) ;;
    config) COMPREPLY=( $(compgen -W "${config_sub}" -- "${cur}") ) ;;
    completion) COMPREPLY=( $(compgen -W "bash zsh fish" -- "${cur}") ) ;;
  esac
}
complete -F _nightrate_completions nightrate
`
}

func zshCompletionScript() string {
	return `#compdef nightrate
_nightrate() {
  local -a commands
  commands=(
    'pricing:Fetch nightly pricing data'
    'analyze:Fetch pricing data and run AI analysis'
    'update:Push a single-date price override'
    'chat:Talk to the pricing assistant'
    'listings:List account listings'
    'property:Manage the selected property'
    'context:Manage the saved property context'
    'auth:Manage credentials'
    'config:Read or write settings'
    'doctor:Run preflight checks'
    'completion:Generate shell completion'
    'help:Show help'
    'version:Show version'
  )

  local -a chat_sub
  chat_sub=('send' 'history' 'list' 'delete' 'new')
  local -a property_sub
  property_sub=('select' 'show' 'clear')
  local -a context_sub
  context_sub=('set' 'show' 'clear')
  local -a auth_sub
  auth_sub=('login' 'status' 'logout')
  local -a config_sub
  config_sub=('get' 'set' 'path')

  if (( CURRENT == 2 )); then
    _describe 'command' commands
    return
  fi

  case "$words[2]" in
    chat) _describe 'chat command' chat_sub ;;
    property) _describe 'property command' property_sub ;;
    context) _describe 'context command' context_sub ;;
    auth) _describe 'auth command' auth_sub ;;
    config) _describe 'config action' config_sub ;;
    completion) _values 'shell' bash zsh fish ;;
  esac
}
_nightrate "$@"
`
}

func fishCompletionScript() string {
	return `complete -c nightrate -f
complete -c nightrate -n '__fish_use_subcommand' -a 'pricing' -d 'Fetch nightly pricing data'
complete -c nightrate -n '__fish_use_subcommand' -a 'analyze' -d 'Fetch pricing data and run AI analysis'
complete -c nightrate -n '__fish_use_subcommand' -a 'update' -d 'Push a single-date price override'
complete -c nightrate -n '__fish_use_subcommand' -a 'chat' -d 'Talk to the pricing assistant'
complete -c nightrate -n '__fish_use_subcommand' -a 'listings' -d 'List account listings'
complete -c nightrate -n '__fish_use_subcommand' -a 'property' -d 'Manage the selected property'
complete -c nightrate -n '__fish_use_subcommand' -a 'context' -d 'Manage the saved property context'
complete -c nightrate -n '__fish_use_subcommand' -a 'auth' -d 'Manage credentials'
complete -c nightrate -n '__fish_use_subcommand' -a 'config' -d 'Read or write settings'
complete -c nightrate -n '__fish_use_subcommand' -a 'doctor' -d 'Run preflight checks'
complete -c nightrate -n '__fish_use_subcommand' -a 'completion' -d 'Generate shell completion'
complete -c nightrate -n '__fish_use_subcommand' -a 'help' -d 'Show help'
complete -c nightrate -n '__fish_use_subcommand' -a 'version' -d 'Show version'

complete -c nightrate -n '__fish_seen_subcommand_from chat' -a 'send history list delete new'
complete -c nightrate -n '__fish_seen_subcommand_from property' -a 'select show clear'
complete -c nightrate -n '__fish_seen_subcommand_from context' -a 'set show clear'
complete -c nightrate -n '__fish_seen_subcommand_from auth' -a 'login status logout'
complete -c nightrate -n '__fish_seen_subcommand_from config' -a 'get set path'
complete -c nightrate -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish'
`
}
