package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nightrate/nightrate/internal/backend"
)

func (a App) cmdChat(g globalFlags, args []string) error {
	if len(args) == 0 {
		return newExitError(ExitInvalidUsage, "chat requires subcommand: send|history|list|delete|new")
	}
	sub := args[0]
	argv := args[1:]
	switch sub {
	case "send":
		return a.cmdChatSend(g, argv)
	case "history":
		return a.cmdChatHistory(g, argv)
	case "list":
		return a.cmdChatList(g, argv)
	case "delete":
		return a.cmdChatDelete(g, argv)
	case "new":
		return a.cmdChatNew(g, argv)
	default:
		return newExitError(ExitInvalidUsage, "unknown chat subcommand %q", sub)
	}
}

func (a App) cmdChatSend(g globalFlags, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		return newExitError(ExitInvalidUsage, "usage: nightrate chat send <message>")
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	convID, _, err := s.store.LoadConversationID()
	if err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}

	reply, err := s.client.Chat(context.Background(), message, convID)
	if err != nil && convID != "" && errors.Is(err, backend.ErrNotFound) {
		// The persisted conversation is gone on the backend. Drop the stale
		// id and restart with a fresh session instead of failing.
		if clearErr := s.store.ClearConversationID(); clearErr != nil {
			return wrapExitError(ExitGenericFailure, clearErr)
		}
		if g.Verbose {
			fmt.Fprintln(os.Stderr, "previous conversation no longer exists, starting a new one")
		}
		reply, err = s.client.Chat(context.Background(), message, "")
	}
	if err != nil {
		return wrapBackendError(err)
	}
	if reply.ConversationID != "" && reply.ConversationID != convID {
		if err := s.store.SaveConversationID(reply.ConversationID); err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
	}
	if g.JSON {
		return writeJSON(reply)
	}
	fmt.Println(reply.Response)
	return nil
}

func (a App) cmdChatHistory(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("chat history", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.String("id", "", "Conversation ID (defaults to the last used one)")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	convID := *id
	usedStored := false
	if convID == "" {
		stored, ok, err := s.store.LoadConversationID()
		if err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
		if !ok {
			if g.JSON {
				return writeJSON(map[string]any{"messages": []any{}})
			}
			fmt.Println("No previous conversation")
			return nil
		}
		convID = stored
		usedStored = true
	}

	history, err := s.client.History(context.Background(), convID)
	if err != nil {
		if usedStored {
			// Stale persisted id: clear it and fall back to a fresh session.
			// Losing the transcript is not a hard failure for the user.
			if clearErr := s.store.ClearConversationID(); clearErr != nil {
				return wrapExitError(ExitGenericFailure, clearErr)
			}
			if g.Verbose {
				fmt.Fprintf(os.Stderr, "could not load conversation %s: %v\n", convID, err)
			}
			if g.JSON {
				return writeJSON(map[string]any{"messages": []any{}})
			}
			fmt.Println("Previous conversation is gone; starting fresh next time")
			return nil
		}
		return wrapBackendError(err)
	}
	if g.JSON {
		return writeJSON(history)
	}
	if len(history.Messages) == 0 {
		fmt.Println("Conversation is empty")
		return nil
	}
	for _, m := range history.Messages {
		fmt.Printf("%s: %s\n", m.Role, m.Content)
	}
	return nil
}

func (a App) cmdChatList(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("chat list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	infos, err := s.client.Conversations(context.Background())
	if err != nil {
		return wrapBackendError(err)
	}
	if g.JSON {
		return writeJSON(infos)
	}
	if len(infos) == 0 {
		fmt.Println("No conversations")
		return nil
	}
	for _, info := range infos {
		writePlainRow(info.ConversationID, fmt.Sprintf("%d message(s)", info.MessageCount), info.LastMessageAt)
	}
	return nil
}

func (a App) cmdChatDelete(g globalFlags, args []string) error {
	fs := flag.NewFlagSet("chat delete", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	id := fs.String("id", "", "Conversation ID")
	force := fs.Bool("force", false, "Delete without confirmation")
	confirm := fs.String("confirm", "", "Confirmation token (conversation ID)")
	if err := fs.Parse(args); err != nil {
		return newExitError(ExitInvalidUsage, "%v", err)
	}
	if *id == "" {
		return newExitError(ExitInvalidUsage, "--id is required")
	}
	if !*force && *confirm != *id {
		return newExitError(ExitInvalidUsage, "destructive action: pass --force or --confirm with the conversation ID")
	}
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.client.DeleteConversation(context.Background(), *id); err != nil {
		return wrapBackendError(err)
	}
	if stored, _, _ := s.store.LoadConversationID(); stored == *id {
		if err := s.store.ClearConversationID(); err != nil {
			return wrapExitError(ExitGenericFailure, err)
		}
	}
	return writeMaybeJSON(g, map[string]any{"deleted": *id})
}

func (a App) cmdChatNew(g globalFlags, args []string) error {
	s, err := a.newSession(g)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.store.ClearConversationID(); err != nil {
		return wrapExitError(ExitGenericFailure, err)
	}
	return writeMaybeJSON(g, map[string]any{"ok": true})
}
