package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers mail through an SMTP relay using gomail.
type SMTPSender struct {
	cfg Config
}

func NewSMTPSender(cfg Config) (*SMTPSender, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}
	return &SMTPSender{cfg: cfg}, nil
}

func (s *SMTPSender) SendInvite(to, name, role, tempPassword string) error {
	body, err := renderInvite(name, role, tempPassword, s.cfg.BaseURL+"/login")
	if err != nil {
		return err
	}
	return s.send(to, "You have been invited to ToolHub", body)
}

func (s *SMTPSender) SendPasswordReset(to, name, resetURL string) error {
	body, err := renderPasswordReset(name, resetURL)
	if err != nil {
		return err
	}
	return s.send(to, "ToolHub password reset", body)
}

func (s *SMTPSender) SendNotification(to, subject, message string) error {
	body, err := renderNotification(subject, message)
	if err != nil {
		return err
	}
	return s.send(to, subject, body)
}

func (s *SMTPSender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.FromEmail, s.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
