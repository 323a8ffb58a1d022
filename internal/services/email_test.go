package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"weddingplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	to, subject string
	calls       int
	err         error
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.calls++
	m.to, m.subject = to, subject
	return m.err
}

type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(name string, data any) (string, string, string, error) {
	return "subject:" + name, "<p>" + name + "</p>", name, r.err
}

func TestEmailService(t *testing.T) {
	ctx := context.Background()
	mailer := &recordingMailer{}
	svc := NewEmailService(mailer, stubRenderer{}, testLogger())

	require.NoError(t, svc.SendWelcome(ctx, &domain.WelcomeEmailData{Email: "ann@example.com"}))
	assert.Equal(t, "ann@example.com", mailer.to)
	assert.Equal(t, "subject:welcome", mailer.subject)

	require.NoError(t, svc.SendBookingInquiry(ctx, &domain.BookingInquiryEmailData{VendorEmail: "bloom@example.com"}))
	assert.Equal(t, "bloom@example.com", mailer.to)
	assert.Equal(t, "subject:booking_inquiry", mailer.subject)

	// An empty digest is not sent.
	require.NoError(t, svc.SendTaskReminder(ctx, &domain.TaskReminderEmailData{Email: "ann@example.com"}))
	assert.Equal(t, 2, mailer.calls)
	require.NoError(t, svc.SendTaskReminder(ctx, &domain.TaskReminderEmailData{
		Email: "ann@example.com",
		Tasks: []domain.ReminderTask{{Title: "Book venue", DueDate: time.Now()}},
	}))
	assert.Equal(t, 3, mailer.calls)

	require.Error(t, svc.SendWelcome(ctx, nil))
}

func TestEmailService_Failures(t *testing.T) {
	ctx := context.Background()

	failing := NewEmailService(&recordingMailer{}, stubRenderer{err: errors.New("no template")}, testLogger())
	err := failing.SendWelcome(ctx, &domain.WelcomeEmailData{Email: "ann@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render welcome")

	mailer := &recordingMailer{err: errors.New("throttled")}
	svc := NewEmailService(mailer, stubRenderer{}, testLogger())
	err = svc.SendBookingInquiry(ctx, &domain.BookingInquiryEmailData{VendorEmail: "bloom@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send booking_inquiry")
}
