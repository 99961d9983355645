package email

// PreviewData holds sample values for rendering each template locally.
var PreviewData = map[Template]any{
	TemplateWelcome: WelcomeData{
		UserName: "Alex Athlete",
		Credits:  100,
		JoinedOn: "January 2, 2026",
	},
	TemplateAdminNotification: AdminNotificationData{
		UserName:     "Alex Athlete",
		UserEmail:    "alex@example.com",
		UserID:       "00000000-0000-0000-0000-000000000001",
		RegisteredAt: "Fri, 02 Jan 2026 10:00:00 UTC",
	},
	TemplateTestResult: TestResultData{
		UserName: "Alex Athlete",
		TestType: "push-ups",
		Score:    87.5,
		Rank:     12,
	},
}

// Preview renders name with its sample data.
func (c *Client) Preview(name Template) (string, error) {
	return c.Render(name, PreviewData[name])
}
