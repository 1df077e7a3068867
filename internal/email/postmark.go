package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"queueless/internal/model"
)

const postmarkURL = "https://api.postmarkapp.com/email"

// Client relays contact form submissions to the support inbox via Postmark.
type Client struct {
	serverToken string
	fromEmail   string
	inboxEmail  string
	apiURL      string
	httpClient  *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithAPIURL overrides the Postmark endpoint, for tests.
func WithAPIURL(url string) Option {
	return func(cl *Client) {
		cl.apiURL = url
	}
}

func NewClient(serverToken, fromEmail, inboxEmail string, opts ...Option) *Client {
	c := &Client{
		serverToken: serverToken,
		fromEmail:   fromEmail,
		inboxEmail:  inboxEmail,
		apiURL:      postmarkURL,
		httpClient:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured returns true if the server token is set. When it is not, contact
// messages are stored but no email is relayed.
func (c *Client) Configured() bool {
	return c.serverToken != ""
}

type postmarkEmail struct {
	From     string `json:"From"`
	To       string `json:"To"`
	ReplyTo  string `json:"ReplyTo,omitempty"`
	Subject  string `json:"Subject"`
	TextBody string `json:"TextBody"`
}

// SendContactMessage forwards a stored contact submission to the support
// inbox, with Reply-To set to the sender so staff can answer directly.
func (c *Client) SendContactMessage(m *model.ContactMessage) error {
	if !c.Configured() {
		return fmt.Errorf("email client not configured: missing server token")
	}

	subject := fmt.Sprintf("Contact form: %s", m.Subject)
	textBody := fmt.Sprintf(
		"From: %s <%s>\nPhone: %s\nBusiness: %s\n\n%s",
		m.Name, m.Email, m.Phone, m.BusinessName, m.Message,
	)

	payload := postmarkEmail{
		From:     c.fromEmail,
		To:       c.inboxEmail,
		ReplyTo:  m.Email,
		Subject:  subject,
		TextBody: textBody,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequest("POST", c.apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("postmark API error: status %d", resp.StatusCode)
	}

	return nil
}
