package mocks

// MockEmailSender records sent mail instead of delivering it.
type MockEmailSender struct {
	Invites        []SentInvite
	PasswordResets []SentPasswordReset
	Notifications  []SentNotification
	SendError      error
}

type SentInvite struct {
	To           string
	Name         string
	Role         string
	TempPassword string
}

type SentPasswordReset struct {
	To       string
	Name     string
	ResetURL string
}

type SentNotification struct {
	To      string
	Subject string
	Message string
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

func (m *MockEmailSender) SendInvite(to, name, role, tempPassword string) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.Invites = append(m.Invites, SentInvite{To: to, Name: name, Role: role, TempPassword: tempPassword})
	return nil
}

func (m *MockEmailSender) SendPasswordReset(to, name, resetURL string) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.PasswordResets = append(m.PasswordResets, SentPasswordReset{To: to, Name: name, ResetURL: resetURL})
	return nil
}

func (m *MockEmailSender) SendNotification(to, subject, message string) error {
	if m.SendError != nil {
		return m.SendError
	}
	m.Notifications = append(m.Notifications, SentNotification{To: to, Subject: subject, Message: message})
	return nil
}
