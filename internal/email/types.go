package email

// Sender delivers the transactional mail ToolHub produces. The SMTP
// implementation is the production path; tests substitute a mock.
type Sender interface {
	// SendInvite delivers the invitation for a freshly provisioned account,
	// including the temporary password the user must change on first login.
	SendInvite(to, name, role, tempPassword string) error

	// SendPasswordReset delivers a reset link built from the reset token.
	SendPasswordReset(to, name, resetURL string) error

	// SendNotification delivers a plain notification email.
	SendNotification(to, subject, message string) error
}

// Config holds SMTP connection and sender-identity settings.
type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	BaseURL   string
}
