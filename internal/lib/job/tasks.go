package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskWelcome           = "email:welcome"
	TaskAdminNotification = "email:admin_notification"
	TaskTestResult        = "email:test_result"
	TaskRecomputeRanks    = "leaderboard:recompute_ranks"
)

const (
	emailMaxRetry = 3
	emailTimeout  = 30 * time.Second

	recomputeDelay  = 2 * time.Second
	recomputeUnique = 10 * time.Second
)

type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

type AdminNotificationPayload struct {
	UserID    string `json:"user_id"`
	UserEmail string `json:"user_email"`
	UserName  string `json:"user_name"`
}

type TestResultEmailPayload struct {
	To       string  `json:"to"`
	UserName string  `json:"user_name"`
	TestType string  `json:"test_type"`
	Score    float64 `json:"score"`
	Rank     int     `json:"rank,omitempty"`
}

func newEmailTask(taskType string, payload any) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		taskType,
		b,
		asynq.MaxRetry(emailMaxRetry),
		asynq.Queue("default"),
		asynq.Timeout(emailTimeout),
	), nil
}

func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	return newEmailTask(TaskWelcome, WelcomeEmailPayload{To: to, Name: name})
}

func NewAdminNotificationTask(userID, userEmail, userName string) (*asynq.Task, error) {
	return newEmailTask(TaskAdminNotification, AdminNotificationPayload{
		UserID:    userID,
		UserEmail: userEmail,
		UserName:  userName,
	})
}

func NewTestResultEmailTask(p TestResultEmailPayload) (*asynq.Task, error) {
	return newEmailTask(TaskTestResult, p)
}

// NewRecomputeRanksTask carries no payload. Unique collapses bursts of score
// changes into a single recompute.
func NewRecomputeRanksTask() *asynq.Task {
	return asynq.NewTask(
		TaskRecomputeRanks,
		nil,
		asynq.MaxRetry(5),
		asynq.Queue("low"),
		asynq.ProcessIn(recomputeDelay),
		asynq.Unique(recomputeUnique),
		asynq.Timeout(time.Minute),
	)
}
