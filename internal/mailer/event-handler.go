package mailer

import (
	"encoding/json"

	"github.com/nqvinh-dev/minishop/internal/dto"
	"go.uber.org/zap"
)

// EventHandler turns queued OTP events into outgoing mail.
type EventHandler struct {
	mail *MailService
	log  *zap.SugaredLogger
}

func NewEventHandler(mail *MailService, log *zap.SugaredLogger) *EventHandler {
	return &EventHandler{mail: mail, log: log}
}

func (h *EventHandler) HandleMessage(message string) error {
	var event dto.OtpMailEvent
	if err := json.Unmarshal([]byte(message), &event); err != nil {
		h.log.Warnw("invalid otp event payload", "payload", message)
		return err
	}

	return h.mail.SendOtpMail(event.Email, event.FullName, event.Otp)
}
