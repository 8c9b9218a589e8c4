package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrental-backend/internal/config"
	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

type emailService struct {
	cfg config.EmailConfig
}

// NewEmailService sends customer notifications through SendGrid. With
// email disabled every send becomes a logged no-op, which keeps local
// development free of an API key.
func NewEmailService(cfg config.EmailConfig) EmailService {
	return &emailService{cfg: cfg}
}

func (s *emailService) send(toEmail, toName, subject, plainText string) error {
	if !s.cfg.Enabled {
		logger.Debug("email disabled, skipping send", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.From)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	client := sendgrid.NewSendClient(s.cfg.APIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", response.StatusCode, response.Body)
	}

	logger.Debug("email sent", "to", toEmail, "subject", subject)
	return nil
}

func centsToDollars(cents int32) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func (s *emailService) SendBookingConfirmation(ctx context.Context, email, name string, booking *domain.Booking) error {
	subject := fmt.Sprintf("Booking %s received", booking.Code)
	body := fmt.Sprintf("Hello %s,\n\nWe received your booking %s from %s to %s.\nEstimated total: %s.\n\nWe will confirm it shortly.\n\nThe Car Rental Team",
		name, booking.Code, booking.StartDate, booking.EndDate, centsToDollars(booking.TotalAmountCents))
	return s.send(email, name, subject, body)
}

func (s *emailService) SendBookingCancellation(ctx context.Context, email, name string, booking *domain.Booking) error {
	subject := fmt.Sprintf("Booking %s cancelled", booking.Code)
	body := fmt.Sprintf("Hello %s,\n\nYour booking %s (%s to %s) has been cancelled.\n\nThe Car Rental Team",
		name, booking.Code, booking.StartDate, booking.EndDate)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendInvoiceReceipt(ctx context.Context, email, name string, invoice *domain.Invoice) error {
	subject := fmt.Sprintf("Your rental invoice #%d", invoice.ID)
	body := fmt.Sprintf("Hello %s,\n\nThank you for returning your vehicle. Your invoice:\n\n"+
		"  Rental days: %d\n  Base amount: %s\n  Late fee: %s\n  Damage fee: %s\n  Other charges: %s\n  Tax: %s\n  Total: %s\n\nThe Car Rental Team",
		name, invoice.RentalDays,
		centsToDollars(invoice.BaseAmountCents), centsToDollars(invoice.LateFeeCents),
		centsToDollars(invoice.DamageFeeCents), centsToDollars(invoice.OtherChargesCents),
		centsToDollars(invoice.TaxAmountCents), centsToDollars(invoice.TotalAmountCents))
	return s.send(email, name, subject, body)
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name string, overdue *domain.OverdueReturn) error {
	subject := fmt.Sprintf("Your %s %s return is overdue", overdue.VehicleMake, overdue.VehicleModel)
	body := fmt.Sprintf("Hello %s,\n\nThe %s %s (%s) you rented was due back on %s and is now %d day(s) overdue.\n"+
		"Please return it as soon as possible, or contact us to extend the booking.\n\nThe Car Rental Team",
		name, overdue.VehicleMake, overdue.VehicleModel, overdue.Registration,
		overdue.ExpectedReturnDate, overdue.DaysOverdue)
	return s.send(email, name, subject, body)
}
