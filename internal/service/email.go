package service

import (
	"context"
	"fmt"
	"html"

	"rentnest-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// NewEmailService returns a SendGrid sender, or a sender that only logs when
// no API key is configured.
func NewEmailService(apiKey, fromAddress, fromName string) EmailService {
	if apiKey == "" {
		logger.Warn("SendGrid API key not set, emails will be logged only")
		return &logEmailService{}
	}
	return &sendGridEmailService{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

type sendGridEmailService struct {
	client *sendgrid.Client
	from   *mail.Email
}

func (s *sendGridEmailService) send(ctx context.Context, toAddress, toName, subject, plainText, htmlContent string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", toAddress, "subject", subject)
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail(toName, toAddress), plainText, htmlContent)
	response, err := s.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	} else if err != nil {
		err = fmt.Errorf("failed to send email: %w", err)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", toAddress)
	return err
}

func (s *sendGridEmailService) SendInquiryReceived(ctx context.Context, ownerEmail, ownerName, listingTitle, seekerName, message string) error {
	m := inquiryReceivedMessage(ownerName, listingTitle, seekerName, message)
	return s.send(ctx, ownerEmail, ownerName, m.subject, m.text, m.html)
}

func (s *sendGridEmailService) SendInquiryResponse(ctx context.Context, seekerEmail, seekerName, listingTitle, response string) error {
	m := inquiryResponseMessage(seekerName, listingTitle, response)
	return s.send(ctx, seekerEmail, seekerName, m.subject, m.text, m.html)
}

func (s *sendGridEmailService) SendPendingInquiryDigest(ctx context.Context, ownerEmail, ownerName string, pending int32) error {
	m := pendingDigestMessage(ownerName, pending)
	return s.send(ctx, ownerEmail, ownerName, m.subject, m.text, m.html)
}

type logEmailService struct{}

func (logEmailService) SendInquiryReceived(ctx context.Context, ownerEmail, ownerName, listingTitle, seekerName, message string) error {
	m := inquiryReceivedMessage(ownerName, listingTitle, seekerName, message)
	logger.Info("Email (not sent)", "to", ownerEmail, "subject", m.subject)
	return nil
}

func (logEmailService) SendInquiryResponse(ctx context.Context, seekerEmail, seekerName, listingTitle, response string) error {
	m := inquiryResponseMessage(seekerName, listingTitle, response)
	logger.Info("Email (not sent)", "to", seekerEmail, "subject", m.subject)
	return nil
}

func (logEmailService) SendPendingInquiryDigest(ctx context.Context, ownerEmail, ownerName string, pending int32) error {
	m := pendingDigestMessage(ownerName, pending)
	logger.Info("Email (not sent)", "to", ownerEmail, "subject", m.subject)
	return nil
}

type emailMessage struct {
	subject string
	text    string
	html    string
}

func inquiryReceivedMessage(ownerName, listingTitle, seekerName, message string) emailMessage {
	return emailMessage{
		subject: fmt.Sprintf("New inquiry for %s", listingTitle),
		text: fmt.Sprintf("Hi %s,\n\n%s sent an inquiry about %s:\n\n%s\n\nSign in to respond.",
			ownerName, seekerName, listingTitle, message),
		html: fmt.Sprintf(`<p>Hi %s,</p><p><strong>%s</strong> sent an inquiry about <strong>%s</strong>:</p><blockquote>%s</blockquote><p>Sign in to respond.</p>`,
			html.EscapeString(ownerName), html.EscapeString(seekerName), html.EscapeString(listingTitle), html.EscapeString(message)),
	}
}

func inquiryResponseMessage(seekerName, listingTitle, response string) emailMessage {
	return emailMessage{
		subject: fmt.Sprintf("The owner of %s replied", listingTitle),
		text: fmt.Sprintf("Hi %s,\n\nThe owner of %s replied to your inquiry:\n\n%s",
			seekerName, listingTitle, response),
		html: fmt.Sprintf(`<p>Hi %s,</p><p>The owner of <strong>%s</strong> replied to your inquiry:</p><blockquote>%s</blockquote>`,
			html.EscapeString(seekerName), html.EscapeString(listingTitle), html.EscapeString(response)),
	}
}

func pendingDigestMessage(ownerName string, pending int32) emailMessage {
	noun := "inquiries"
	if pending == 1 {
		noun = "inquiry"
	}
	return emailMessage{
		subject: fmt.Sprintf("You have %d unanswered %s", pending, noun),
		text: fmt.Sprintf("Hi %s,\n\n%d %s on your listings are still waiting for a reply.",
			ownerName, pending, noun),
		html: fmt.Sprintf(`<p>Hi %s,</p><p>%d %s on your listings are still waiting for a reply.</p>`,
			html.EscapeString(ownerName), pending, noun),
	}
}
