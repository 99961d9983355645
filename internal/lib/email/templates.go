package email

import "fmt"

type Template string

const (
	TemplateWelcome           Template = "welcome"
	TemplateAdminNotification Template = "admin_notification"
	TemplateTestResult        Template = "test_result"
)

func (t Template) file() string {
	return string(t) + ".html"
}

// ParseTemplate validates a template name received from a caller.
func ParseTemplate(name string) (Template, error) {
	switch t := Template(name); t {
	case TemplateWelcome, TemplateAdminNotification, TemplateTestResult:
		return t, nil
	default:
		return "", fmt.Errorf("unknown email template %q", name)
	}
}

type WelcomeData struct {
	UserName string
	Credits  int64
	JoinedOn string
}

type AdminNotificationData struct {
	UserName     string
	UserEmail    string
	UserID       string
	RegisteredAt string
}

// TestResultData renders the result email. A zero Rank hides the rank line.
type TestResultData struct {
	UserName string
	TestType string
	Score    float64
	Rank     int
}
