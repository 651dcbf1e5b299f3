package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skillsync/internal/infrastructure/email"

	"go.uber.org/zap"
)

type MessageInput struct {
	StudentID    string
	StudentEmail string
	StudentName  string
	Message      string
	SenderID     string
}

type InterviewInput struct {
	StudentID    string
	StudentEmail string
	Date         string
	Time         string
	Type         string
	Notes        string
}

type CommunicationUsecase interface {
	SendMessage(ctx context.Context, in MessageInput) (string, error)
	ScheduleInterview(ctx context.Context, in InterviewInput) (string, error)
}

type Communication struct {
	mailer email.Sender
	logger *zap.Logger
}

func NewCommunicationUsecase(mailer email.Sender, logger *zap.Logger) *Communication {
	if logger == nil {
		logger = zap.NewNop()
	}
	if mailer == nil {
		mailer = email.LogSender{Logger: logger}
	}
	return &Communication{mailer: mailer, logger: logger.Named("communication")}
}

// SendMessage returns the confirmation text shown to the recruiter.
func (u *Communication) SendMessage(ctx context.Context, in MessageInput) (string, error) {
	to := strings.TrimSpace(in.StudentEmail)
	if to == "" || strings.TrimSpace(in.Message) == "" {
		return "", ErrInvalidInput
	}

	if err := u.mailer.Send(ctx, email.RecruiterMessage(to, in.StudentName, in.Message)); err != nil {
		return "", u.sendErr(err, to)
	}
	u.logger.Info("message sent",
		zap.String("student_id", in.StudentID),
		zap.String("sender_id", in.SenderID),
	)
	return fmt.Sprintf("Message sent to %s", strings.TrimSpace(in.StudentName)), nil
}

func (u *Communication) ScheduleInterview(ctx context.Context, in InterviewInput) (string, error) {
	to := strings.TrimSpace(in.StudentEmail)
	if to == "" || strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" {
		return "", ErrInvalidInput
	}

	if err := u.mailer.Send(ctx, email.InterviewInvite(to, in.Date, in.Time, pickDefault(strings.TrimSpace(in.Type), "Video"), in.Notes)); err != nil {
		return "", u.sendErr(err, to)
	}
	u.logger.Info("interview scheduled", zap.String("student_id", in.StudentID), zap.String("date", in.Date))
	return fmt.Sprintf("Interview scheduled for %s at %s. Invite sent to %s.", in.Date, in.Time, to), nil
}

func (u *Communication) sendErr(err error, to string) error {
	u.logger.Warn("email delivery failed", zap.String("to", to), zap.Error(err))
	if errors.Is(err, email.ErrSendFailed) {
		return ErrEmailDelivery
	}
	return ErrInternal
}
