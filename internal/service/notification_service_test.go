package service

import (
	"bytes"
	"context"
	"testing"

	mail "github.com/go-mail/mail/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edunexus-dev/cu-admissions-api/internal/models"
	"github.com/edunexus-dev/cu-admissions-api/pkg/config"
	"github.com/edunexus-dev/cu-admissions-api/pkg/jobs"
)

type captureSender struct {
	messages []*mail.Message
}

func (c *captureSender) DialAndSend(m ...*mail.Message) error {
	c.messages = append(c.messages, m...)
	return nil
}

func TestNotificationService_DisabledSkipsDelivery(t *testing.T) {
	svc := NewNotificationService(config.NotificationsConfig{Enabled: false}, config.SMTPConfig{}, zap.NewNop())
	student := &models.Student{FullName: "Rahul Sen", Email: "rahul@example.edu", UID: "1012250042"}

	require.False(t, svc.Enabled())
	require.False(t, svc.NotifyRegistered(student, "0170001", []byte("%PDF-1.4"), "https://cdn.example.edu/form.pdf"))
}

func TestNotificationService_ConfirmationAttachesForm(t *testing.T) {
	sender := &captureSender{}
	svc := &NotificationService{
		sender:  sender,
		from:    "no-reply@example.edu",
		enabled: true,
		logger:  zap.NewNop(),
	}

	err := svc.handle(context.Background(), jobs.Job{
		Type: jobTypeRegistrationConfirmation,
		Payload: RegistrationNotice{
			StudentName:       "Rahul Sen",
			StudentEmail:      "rahul@example.edu",
			ApplicationNumber: "0170001",
			UID:               "1012250042",
			FormPDF:           []byte("%PDF-1.4 registration form"),
			FormURL:           "https://cdn.example.edu/2025/CCF/students/1012250042/adm-reg-forms/0170001.pdf",
		},
	})
	require.NoError(t, err)
	require.Len(t, sender.messages, 1)

	var buf bytes.Buffer
	_, err = sender.messages[0].WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	require.Contains(t, raw, "cu-registration-0170001.pdf")
	require.Contains(t, raw, "rahul@example.edu")
}

func TestRegistrationNoticeBodyLinksForm(t *testing.T) {
	withURL := registrationNoticeBody(RegistrationNotice{
		StudentName:       "Rahul Sen",
		ApplicationNumber: "0170001",
		UID:               "1012250042",
		FormURL:           "https://cdn.example.edu/form.pdf",
	})
	require.Contains(t, withURL, `href="https://cdn.example.edu/form.pdf"`)

	withoutURL := registrationNoticeBody(RegistrationNotice{
		StudentName:       "Rahul Sen",
		ApplicationNumber: "0170001",
		UID:               "1012250042",
	})
	require.NotContains(t, withoutURL, "href=")
	require.Contains(t, withoutURL, "0170001")
}
