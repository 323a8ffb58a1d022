package services

import (
	"context"
	"fmt"
	"log/slog"

	"weddingplanner/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendWelcome sends a welcome email using the "welcome" template.
func (s *emailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if data == nil {
		return fmt.Errorf("welcome email data is nil")
	}
	return s.send(ctx, "welcome", data.Email, data)
}

// SendBookingInquiry notifies a vendor of a new booking using the "booking_inquiry" template.
func (s *emailService) SendBookingInquiry(ctx context.Context, data *domain.BookingInquiryEmailData) error {
	if data == nil {
		return fmt.Errorf("booking inquiry email data is nil")
	}
	return s.send(ctx, "booking_inquiry", data.VendorEmail, data)
}

// SendTaskReminder sends the upcoming-task digest using the "task_reminder" template.
func (s *emailService) SendTaskReminder(ctx context.Context, data *domain.TaskReminderEmailData) error {
	if data == nil {
		return fmt.Errorf("task reminder email data is nil")
	}
	if len(data.Tasks) == 0 {
		return nil
	}
	return s.send(ctx, "task_reminder", data.Email, data)
}

func (s *emailService) send(ctx context.Context, template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", template, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", template, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", template, "to", to)
	return nil
}
