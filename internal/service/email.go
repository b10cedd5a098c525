package service

import (
	"context"
	"fmt"

	"greenloop-backend/internal/domain"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email: status %d, body %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *emailService) SendSettlementCompleted(ctx context.Context, email, name string, res *domain.SettlementResult) error {
	subject := fmt.Sprintf("Your return has been settled (borrow #%d)", res.Transaction.ID)

	var body string
	switch res.Outcome {
	case domain.OutcomeReturned:
		body = fmt.Sprintf("Hello %s,\n\nThanks for returning your container on time. Your full deposit of %d has been refunded and you earned %d reward points.",
			name, res.Refund, res.RewardPoints)
	case domain.OutcomeReturnLate:
		body = fmt.Sprintf("Hello %s,\n\nYour container came back %d unit(s) late. A late fee of %d was deducted and %d was refunded to your wallet.",
			name, res.LateUnits, res.Fee, res.Refund)
	case domain.OutcomeRejected:
		body = fmt.Sprintf("Hello %s,\n\nUnfortunately your return could not be accepted and the deposit of %d was forfeited.",
			name, res.Fee)
	case domain.OutcomeLost:
		body = fmt.Sprintf("Hello %s,\n\nYour borrowed container was never returned and has been marked lost. The deposit of %d was forfeited.",
			name, res.Fee)
	}
	body += "\n\nBest regards,\nThe GreenLoop Team"

	return s.send(email, name, subject, body)
}

func (s *emailService) SendDueReminder(ctx context.Context, email, name string, bt *domain.BorrowTransaction) error {
	subject := "Your borrowed container is due soon"
	body := fmt.Sprintf("Hello %s,\n\nYour borrow #%d is due on %s. Return it on time to get your full deposit back and earn reward points.\n\nBest regards,\nThe GreenLoop Team",
		name, bt.ID, bt.DueDate.Format("Jan 2, 2006 at 15:04 MST"))
	return s.send(email, name, subject, body)
}
