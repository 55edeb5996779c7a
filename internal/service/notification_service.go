package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	mail "github.com/go-mail/mail/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
	"github.com/edunexus-dev/cu-admissions-api/pkg/config"
	"github.com/edunexus-dev/cu-admissions-api/pkg/jobs"
)

const jobTypeRegistrationConfirmation = "registration-confirmation"

// MailSender delivers one message. Satisfied by the go-mail dialer.
type MailSender interface {
	DialAndSend(m ...*mail.Message) error
}

// RegistrationNotice is the payload of a confirmation job. FormPDF holds
// the rendered registration form; FormURL points at its stored copy.
type RegistrationNotice struct {
	StudentName       string
	StudentEmail      string
	ApplicationNumber string
	UID               string
	FormPDF           []byte
	FormURL           string
}

// NotificationService sends registration confirmations through a
// background queue. Delivery is best effort: enqueue failures and send
// failures are logged, never bubbled up to the submission flow.
type NotificationService struct {
	queue   *jobs.Queue
	sender  MailSender
	from    string
	enabled bool
	logger  *zap.Logger
}

// NewNotificationService wires the mail dialer and worker queue.
func NewNotificationService(cfg config.NotificationsConfig, smtp config.SMTPConfig, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &NotificationService{
		from:    smtp.From,
		enabled: cfg.Enabled && smtp.Host != "" && smtp.From != "",
		logger:  logger,
	}
	if s.enabled {
		dialer := mail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Password)
		dialer.StartTLSPolicy = mail.MandatoryStartTLS
		dialer.TLSConfig = &tls.Config{
			ServerName:         smtp.Host,
			InsecureSkipVerify: smtp.SkipTLSVerify,
		}
		s.sender = dialer
	}
	s.queue = jobs.NewQueue("notifications", s.handle, jobs.QueueConfig{
		Workers:    cfg.WorkerConcurrency,
		MaxRetries: cfg.WorkerRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return s
}

// Start launches the delivery workers.
func (s *NotificationService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the workers.
func (s *NotificationService) Stop() {
	s.queue.Stop()
}

// Enabled reports whether mail delivery is configured.
func (s *NotificationService) Enabled() bool {
	return s.enabled
}

// NotifyRegistered queues a confirmation email for a finalized
// submission. Returns false when the notice could not be queued.
func (s *NotificationService) NotifyRegistered(student *models.Student, applicationNumber string, formPDF []byte, formURL string) bool {
	if !s.enabled {
		s.logger.Debug("notifications disabled, skipping confirmation",
			zap.String("application_number", applicationNumber))
		return false
	}
	notice := RegistrationNotice{
		StudentName:       student.FullName,
		StudentEmail:      student.Email,
		ApplicationNumber: applicationNumber,
		UID:               student.UID,
		FormPDF:           formPDF,
		FormURL:           formURL,
	}
	err := s.queue.Enqueue(jobs.Job{
		ID:      uuid.NewString(),
		Type:    jobTypeRegistrationConfirmation,
		Payload: notice,
	})
	if err != nil {
		s.logger.Error("failed to queue registration confirmation",
			zap.String("email", student.Email), zap.Error(err))
		return false
	}
	return true
}

func (s *NotificationService) handle(ctx context.Context, job jobs.Job) error {
	notice, ok := job.Payload.(RegistrationNotice)
	if !ok {
		return fmt.Errorf("unexpected payload type %T", job.Payload)
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", notice.StudentEmail)
	m.SetHeader("Subject", fmt.Sprintf("CU Registration Confirmed - %s", notice.ApplicationNumber))
	m.SetBody("text/html", registrationNoticeBody(notice))
	if len(notice.FormPDF) > 0 {
		m.AttachReader(
			fmt.Sprintf("cu-registration-%s.pdf", notice.ApplicationNumber),
			bytes.NewReader(notice.FormPDF),
		)
	}

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send registration confirmation: %w", err)
	}
	s.logger.Info("registration confirmation sent",
		zap.String("email", notice.StudentEmail),
		zap.String("application_number", notice.ApplicationNumber))
	return nil
}

func registrationNoticeBody(n RegistrationNotice) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<p>Dear %s,</p>
<p>Your CU registration has been submitted successfully.</p>
<p><strong>Application Number:</strong> %s<br>
<strong>UID:</strong> %s</p>`, n.StudentName, n.ApplicationNumber, n.UID)
	if n.FormURL != "" {
		fmt.Fprintf(&b, `
<p>Your registration form: <a href="%s">%s</a></p>`, n.FormURL, n.FormURL)
	}
	b.WriteString(`
<p>Please keep this number for all future correspondence.</p>`)
	return b.String()
}
