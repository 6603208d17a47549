package email

import (
	"bytes"
	"fmt"
	"html/template"
)

var inviteTemplate = template.Must(template.New("invite").Parse(`
<html>
<body>
  <h2>Welcome to ToolHub, {{.Name}}!</h2>
  <p>An account has been created for you with the role <b>{{.Role}}</b>.</p>
  <p>Your temporary password is: <code>{{.TempPassword}}</code></p>
  <p>You will be asked to change it the first time you sign in.</p>
  <p><a href="{{.LoginURL}}">Sign in to ToolHub</a></p>
</body>
</html>`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<html>
<body>
  <h2>Password reset</h2>
  <p>Hello {{.Name}},</p>
  <p>A password reset was requested for your ToolHub account.
     If this was not you, ignore this email.</p>
  <p><a href="{{.ResetURL}}">Reset your password</a></p>
  <p>The link expires in one hour.</p>
</body>
</html>`))

var notificationTemplate = template.Must(template.New("notification").Parse(`
<html>
<body>
  <h2>{{.Subject}}</h2>
  <p>{{.Message}}</p>
</body>
</html>`))

func renderInvite(name, role, tempPassword, loginURL string) (string, error) {
	var buf bytes.Buffer
	err := inviteTemplate.Execute(&buf, map[string]string{
		"Name":         name,
		"Role":         role,
		"TempPassword": tempPassword,
		"LoginURL":     loginURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render invite template: %w", err)
	}
	return buf.String(), nil
}

func renderPasswordReset(name, resetURL string) (string, error) {
	var buf bytes.Buffer
	err := passwordResetTemplate.Execute(&buf, map[string]string{
		"Name":     name,
		"ResetURL": resetURL,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render password reset template: %w", err)
	}
	return buf.String(), nil
}

func renderNotification(subject, message string) (string, error) {
	var buf bytes.Buffer
	err := notificationTemplate.Execute(&buf, map[string]string{
		"Subject": subject,
		"Message": message,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render notification template: %w", err)
	}
	return buf.String(), nil
}
