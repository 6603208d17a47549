package email

import "toolhub_backend/internal/logger"

// NoopSender logs instead of delivering. Used when SMTP is not configured
// so local development does not need a relay.
type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) SendInvite(to, name, role, tempPassword string) error {
	logger.Info("email delivery disabled, dropping invite", "to", to, "role", role)
	return nil
}

func (s *NoopSender) SendPasswordReset(to, name, resetURL string) error {
	logger.Info("email delivery disabled, dropping password reset", "to", to)
	return nil
}

func (s *NoopSender) SendNotification(to, subject, message string) error {
	logger.Info("email delivery disabled, dropping notification", "to", to, "subject", subject)
	return nil
}
