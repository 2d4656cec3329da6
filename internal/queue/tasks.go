package queue

import (
	"encoding/json"

	"github.com/ghostform/ghostform/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOTPEmail delivers a one-time passcode by email.
	TaskOTPEmail = constants.TaskOTPEmail
)

// OTPEmailPayload is the OTP email task payload.
type OTPEmailPayload struct {
	Email   string `json:"email"`
	Code    string `json:"code"`
	Purpose string `json:"purpose"`
}

// NewOTPEmailTask creates an OTP email task.
func NewOTPEmailTask(payload OTPEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOTPEmail, body), nil
}
