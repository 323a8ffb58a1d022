package domain

import (
	"context"
	"time"
)

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email.
type WelcomeEmailData struct {
	Email  string
	Name   string
	Role   Role
	AppURL string
}

// BookingInquiryEmailData holds data for the email a vendor receives on a new booking.
type BookingInquiryEmailData struct {
	VendorEmail string
	VendorName  string
	CoupleName  string
	EventTitle  string
	Service     string
	Date        *time.Time
	Amount      float64
	AppURL      string
}

// ReminderTask is one line of a task reminder email.
type ReminderTask struct {
	Title      string
	EventTitle string
	DueDate    time.Time
	Priority   TaskPriority
}

// TaskReminderEmailData holds data for the periodic task reminder.
type TaskReminderEmailData struct {
	Email      string
	Name       string
	WindowDays int
	Tasks      []ReminderTask
	AppURL     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendBookingInquiry(ctx context.Context, data *BookingInquiryEmailData) error
	SendTaskReminder(ctx context.Context, data *TaskReminderEmailData) error
}
