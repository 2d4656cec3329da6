package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ghostform/ghostform/internal/logger"
	"github.com/ghostform/ghostform/internal/provider"
	"github.com/ghostform/ghostform/internal/queue"
	"github.com/ghostform/ghostform/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles queued tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register wires task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOTPEmail, c.handleOTPEmail)
}

func (c *Consumer) handleOTPEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_otp_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OTPEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_otp_email_unmarshal_failed", "error", err)
		return err
	}
	email := strings.TrimSpace(payload.Email)
	code := strings.TrimSpace(payload.Code)
	if email == "" || code == "" {
		logger.Debugw("worker_otp_email_skip_invalid_payload", "purpose", payload.Purpose)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_otp_email_skip_email_service_nil", "purpose", payload.Purpose)
		return nil
	}
	if err := c.EmailService.SendOTPEmail(email, code, payload.Purpose); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfigured):
			logger.Warnw("worker_otp_email_skip_delivery_unavailable", "purpose", payload.Purpose, "error", err)
			return nil
		case errors.Is(err, service.ErrEmailRecipientRejected):
			logger.Warnw("worker_otp_email_recipient_rejected", "purpose", payload.Purpose)
			return nil
		default:
			logger.Warnw("worker_otp_email_send_failed", "purpose", payload.Purpose, "error", err)
			return err
		}
	}
	return nil
}
