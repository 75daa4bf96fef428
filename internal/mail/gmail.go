// ABOUTME: Minimal Gmail REST client for fetching unread messages
// ABOUTME: OAuth2-authenticated HTTP calls, MIME part decoding to plain text
package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/harper/inbox-triage/internal/models"
)

const (
	defaultBaseURL = "https://gmail.googleapis.com/gmail/v1"

	// GmailReadOnlyScope is the only scope the fetcher needs.
	GmailReadOnlyScope = "https://www.googleapis.com/auth/gmail.readonly"
)

// Credentials holds the OAuth2 client material and a previously granted
// refresh token for the mailbox owner.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// GmailClient fetches unread messages for a single mailbox.
type GmailClient struct {
	httpClient *http.Client
	baseURL    string
	maxResults int
}

// GmailOption adjusts client construction.
type GmailOption func(*GmailClient)

// WithBaseURL points the client at an alternate API endpoint.
func WithBaseURL(base string) GmailOption {
	return func(c *GmailClient) {
		c.baseURL = strings.TrimRight(base, "/")
	}
}

// WithHTTPClient replaces the authenticated transport entirely.
func WithHTTPClient(hc *http.Client) GmailOption {
	return func(c *GmailClient) {
		c.httpClient = hc
	}
}

// WithMaxResults caps how many unread messages a single fetch returns.
func WithMaxResults(n int) GmailOption {
	return func(c *GmailClient) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

// NewGmailClient builds a client whose transport refreshes access tokens
// from the stored refresh token as needed.
func NewGmailClient(ctx context.Context, creds Credentials, opts ...GmailOption) *GmailClient {
	conf := &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Scopes:       []string{GmailReadOnlyScope},
		Endpoint:     google.Endpoint,
	}
	token := &oauth2.Token{RefreshToken: creds.RefreshToken}

	client := &GmailClient{
		httpClient: conf.Client(ctx, token),
		baseURL:    defaultBaseURL,
		maxResults: 25,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

type messageList struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type messagePart struct {
	MimeType string `json:"mimeType"`
	Headers  []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"headers"`
	Body struct {
		Data string `json:"data"`
	} `json:"body"`
	Parts []messagePart `json:"parts"`
}

type message struct {
	ID      string      `json:"id"`
	Payload messagePart `json:"payload"`
}

// ListUnreadIDs returns the IDs of unread inbox messages, newest first.
func (c *GmailClient) ListUnreadIDs(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/users/me/messages?q=%s&maxResults=%d",
		c.baseURL, url.QueryEscape("is:unread in:inbox"), c.maxResults)

	var list messageList
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, fmt.Errorf("failed to list unread messages: %w", err)
	}

	ids := make([]string, 0, len(list.Messages))
	for _, m := range list.Messages {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// GetEmail fetches one message and flattens it to an IncomingEmail.
func (c *GmailClient) GetEmail(ctx context.Context, id string) (*models.IncomingEmail, error) {
	endpoint := fmt.Sprintf("%s/users/me/messages/%s?format=full", c.baseURL, url.PathEscape(id))

	var msg message
	if err := c.getJSON(ctx, endpoint, &msg); err != nil {
		return nil, fmt.Errorf("failed to fetch message %s: %w", id, err)
	}

	email := &models.IncomingEmail{ID: msg.ID}
	for _, h := range msg.Payload.Headers {
		switch strings.ToLower(h.Name) {
		case "from":
			email.Sender = h.Value
		case "to":
			email.Recipient = h.Value
		case "subject":
			email.Subject = h.Value
		}
	}
	email.Body = extractBody(&msg.Payload)
	return email, nil
}

// FetchUnread lists unread messages and fetches each one, skipping
// individual messages that fail to load.
func (c *GmailClient) FetchUnread(ctx context.Context) ([]models.IncomingEmail, error) {
	ids, err := c.ListUnreadIDs(ctx)
	if err != nil {
		return nil, err
	}

	emails := make([]models.IncomingEmail, 0, len(ids))
	for _, id := range ids {
		email, err := c.GetEmail(ctx, id)
		if err != nil {
			log.Printf("[Gmail] skipping message %s: %v", id, err)
			continue
		}
		emails = append(emails, *email)
	}
	return emails, nil
}

func (c *GmailClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("gmail API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// extractBody walks the MIME tree and returns the first text/plain part,
// falling back to the first text/html part when no plain text exists.
func extractBody(part *messagePart) string {
	if body := findPart(part, "text/plain"); body != "" {
		return body
	}
	return findPart(part, "text/html")
}

func findPart(part *messagePart, mimeType string) string {
	if strings.HasPrefix(part.MimeType, mimeType) && part.Body.Data != "" {
		if decoded, err := decodeBody(part.Body.Data); err == nil {
			return decoded
		}
	}
	for i := range part.Parts {
		if body := findPart(&part.Parts[i], mimeType); body != "" {
			return body
		}
	}
	return ""
}

// decodeBody handles Gmail's URL-safe base64, tolerating missing padding.
func decodeBody(data string) (string, error) {
	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(strings.TrimRight(data, "="))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
