// pkg/notify/notify.go

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"suratjalan/pkg/slip"
)

// TransportError is any failure to get a 200 from the messaging endpoint.
// Status is 0 when no response arrived.
type TransportError struct {
	Status int
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return "notify: " + e.Err.Error()
	}
	return fmt.Sprintf("notify: status %d: %s", e.Status, e.Body)
}

func (e *TransportError) Unwrap() error { return e.Err }

type Config struct {
	Token   string
	ChatID  string
	BaseURL string // default https://api.telegram.org
	Timeout time.Duration
}

// Dispatcher posts HTML messages to one Telegram chat. No retries.
type Dispatcher struct {
	token   string
	chatID  string
	baseURL string
	httpc   *http.Client
	now     func() time.Time
	loc     *time.Location
}

func New(cfg Config, loc *time.Location) *Dispatcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.telegram.org"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if loc == nil {
		loc = time.Local
	}
	return &Dispatcher{
		token:   cfg.Token,
		chatID:  cfg.ChatID,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   &http.Client{Timeout: cfg.Timeout},
		now:     time.Now,
		loc:     loc,
	}
}

func (d *Dispatcher) Enabled() bool { return d != nil && d.token != "" && d.chatID != "" }

// Deliver sends text with parse_mode HTML.
func (d *Dispatcher) Deliver(ctx context.Context, text string) error {
	if !d.Enabled() {
		return &TransportError{Err: fmt.Errorf("telegram token or chat id not configured")}
	}
	b, _ := json.Marshal(map[string]string{
		"chat_id":    d.chatID,
		"text":       text,
		"parse_mode": "HTML",
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/bot"+d.token+"/sendMessage", bytes.NewReader(b))
	if err != nil {
		return &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpc.Do(req)
	if err != nil {
		// the URL carries the token
		return &TransportError{Err: fmt.Errorf("send message: %s", strings.ReplaceAll(err.Error(), d.token, "***"))}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &TransportError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}

// Send reports whether text was delivered. Failures are logged, never returned.
func (d *Dispatcher) Send(ctx context.Context, text string) bool {
	if err := d.Deliver(ctx, text); err != nil {
		log.Printf("[notify] %v", err)
		return false
	}
	return true
}

// SendSummary delivers the aggregate message for slips under label.
func (d *Dispatcher) SendSummary(ctx context.Context, slips []slip.Slip, label string) bool {
	return d.Send(ctx, SummaryMessage(slips, label, d.now().In(d.loc)))
}

func (d *Dispatcher) AnnounceCreated(ctx context.Context, s slip.Slip) bool {
	if !d.Enabled() {
		return false
	}
	return d.Send(ctx, CreatedMessage(s, d.now().In(d.loc)))
}
