package sdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lingoflow/lingoflow-go/routes"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleUser  ChatRole = "user"
	ChatRoleTutor ChatRole = "tutor"
)

// ChatMessage is one message in the tutor conversation.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatPage is one page of conversation history, newest first.
type ChatPage struct {
	Messages   []ChatMessage `json:"messages"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// ChatClient wraps the tutor-chat endpoints.
type ChatClient struct {
	client *Client
}

// Send posts a user message and returns the tutor's reply.
func (c *ChatClient) Send(ctx context.Context, content string) (ChatMessage, error) {
	if c == nil || c.client == nil {
		return ChatMessage{}, ConfigError{Reason: "chat client not initialized"}
	}
	if strings.TrimSpace(content) == "" {
		return ChatMessage{}, ConfigError{Reason: "message content is required"}
	}
	payload := struct {
		Content string `json:"content"`
	}{Content: content}
	var reply ChatMessage
	if err := c.client.doJSON(ctx, http.MethodPost, routes.ChatMessages, payload, &reply, &requestState{}); err != nil {
		return ChatMessage{}, err
	}
	return reply, nil
}

// History returns a page of past messages. cursor "" starts from the most
// recent message; limit <= 0 leaves the page size to the server.
func (c *ChatClient) History(ctx context.Context, cursor string, limit int) (ChatPage, error) {
	if c == nil || c.client == nil {
		return ChatPage{}, ConfigError{Reason: "chat client not initialized"}
	}
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var page ChatPage
	if err := c.client.getJSON(ctx, joinQuery(routes.ChatMessages, q), &page); err != nil {
		return ChatPage{}, err
	}
	return page, nil
}
