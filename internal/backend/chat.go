package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/nightrate/nightrate/internal/model"
)

type chatRequest struct {
	Message          string                   `json:"message"`
	ConversationID   string                   `json:"conversation_id,omitempty"`
	PropertyContext  *model.PropertyContext   `json:"property_context,omitempty"`
	SelectedProperty *selectedPropertyPayload `json:"selected_property,omitempty"`
}

// Chat sends one message. An empty conversationID starts a new conversation;
// the backend mints the id returned in the reply, which the caller should
// persist to resume the session later. Property context and selection are
// best-effort enrichment, not preconditions — chat works with both absent.
func (c *Client) Chat(ctx context.Context, message, conversationID string) (model.ChatReply, error) {
	req := chatRequest{
		Message:          message,
		ConversationID:   conversationID,
		SelectedProperty: c.propertyPayload(),
	}
	if c.Context != nil && c.Context.Configured() {
		req.PropertyContext = c.Context
	}
	var reply model.ChatReply
	if err := c.postJSON(ctx, "/chat", req, &reply); err != nil {
		return model.ChatReply{}, err
	}
	return reply, nil
}

type historyRequest struct {
	ConversationID string `json:"conversation_id"`
}

// History fetches the full transcript for a conversation id. A failure here
// usually means the backend no longer has the conversation; callers holding
// a persisted id should clear it and start fresh rather than retry.
func (c *Client) History(ctx context.Context, conversationID string) (model.ConversationHistory, error) {
	if conversationID == "" {
		return model.ConversationHistory{}, fmt.Errorf("%w: conversation id required", ErrValidation)
	}
	var history model.ConversationHistory
	if err := c.postJSON(ctx, "/get-conversation", historyRequest{ConversationID: conversationID}, &history); err != nil {
		return model.ConversationHistory{}, err
	}
	return history, nil
}

// Conversations lists the conversations the backend holds.
func (c *Client) Conversations(ctx context.Context) ([]model.ConversationInfo, error) {
	infos := []model.ConversationInfo{}
	if err := c.getJSON(ctx, "/conversations", &infos); err != nil {
		return nil, err
	}
	return infos, nil
}

// DeleteConversation removes a conversation from the backend.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	if conversationID == "" {
		return fmt.Errorf("%w: conversation id required", ErrValidation)
	}
	return c.do(ctx, "DELETE", "/conversation/"+url.PathEscape(conversationID), nil, nil)
}
