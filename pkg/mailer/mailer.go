package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	To       []string
}

// Mailer sends HTML mail to a fixed recipient list.
type Mailer struct {
	cfg    Config
	sender gomail.Sender // nil: dial per message
}

func New(cfg Config) *Mailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Mailer{cfg: cfg}
}

// WithSender routes messages through s instead of dialing SMTP.
func (m *Mailer) WithSender(s gomail.Sender) *Mailer {
	m.sender = s
	return m
}

func (m *Mailer) Enabled() bool {
	return m != nil && (m.cfg.Host != "" || m.sender != nil) && m.cfg.From != "" && len(m.cfg.To) > 0
}

func (m *Mailer) Message(subject, html string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)
	return msg
}

func (m *Mailer) Send(subject, html string) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer not configured")
	}
	msg := m.Message(subject, html)
	if m.sender != nil {
		return gomail.Send(m.sender, msg)
	}
	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
