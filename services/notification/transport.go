package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// SMTPMailer sends plain-text mail through an SMTP relay. Port 465 uses implicit TLS;
// other ports upgrade with STARTTLS when the relay offers it.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	msg, err := m.newMessage(to, subject, body)
	if err != nil {
		return err
	}
	client, err := m.newClient()
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send to %s: %w", to, err)
	}
	return nil
}

// newMessage builds a UTF-8 message; non-ASCII headers are RFC 2047 encoded.
func (m *SMTPMailer) newMessage(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}
	msg.Subject(headerLine.Replace(subject))
	msg.SetBodyString(mail.TypeTextPlain, body)
	return msg, nil
}

var headerLine = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

func (m *SMTPMailer) newClient() (*mail.Client, error) {
	opts := []mail.Option{mail.WithPort(m.Port)}
	if m.Port == 465 {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if m.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(m.Timeout))
	}
	if m.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.Username),
			mail.WithPassword(m.Password))
	}
	return mail.NewClient(m.Host, opts...)
}

// HTTPSMSSender posts messages to a JSON SMS gateway.
type HTTPSMSSender struct {
	URL    string
	APIKey string
	Sender string
	Client *http.Client
}

func NewHTTPSMSSender(url, apiKey, sender string) *HTTPSMSSender {
	return &HTTPSMSSender{
		URL:    url,
		APIKey: apiKey,
		Sender: sender,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type smsRequest struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Message string `json:"message"`
}

func (s *HTTPSMSSender) Send(ctx context.Context, to, body string) error {
	payload, err := json.Marshal(smsRequest{From: s.Sender, To: to, Message: body})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.APIKey)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sms gateway returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// LogMailer writes mail to the log instead of sending it.
type LogMailer struct {
	Logger *zap.Logger
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.Logger.Info("email transport not configured; logging message",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}

// LogSMSSender writes text messages to the log instead of sending them.
type LogSMSSender struct {
	Logger *zap.Logger
}

func (s *LogSMSSender) Send(_ context.Context, to, body string) error {
	s.Logger.Info("sms transport not configured; logging message",
		zap.String("to", to),
		zap.String("body", body))
	return nil
}
