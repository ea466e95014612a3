// Package services содержит сервис рассылки писем тренерам
// об истекающих абонементах их клиентов.
package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/trainer-memberships/internal/lib/localdate"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/smtp"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// SenderService отправляет письма через SMTP.
type SenderService struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport smtp.TransportInterface, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendInfoExpiringMembership разбирает сообщение планировщика и пишет тренеру
// об истекающем абонементе клиента.
func (s *SenderService) SendInfoExpiringMembership(body []byte) error {
	const op = "services.sender.SendInfoExpiringMembership"
	var message models.ExpiringMembership
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	if message.TrainerEmail == "" {
		s.log.Warn("trainer has no email, notification dropped", slog.String("client_id", message.ClientID))
		return nil
	}

	subject := fmt.Sprintf("Абонемент клиента %s скоро закончится", message.ClientName)
	if err := s.sendEmail([]string{message.TrainerEmail}, subject, expiringBody(message)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func expiringBody(m models.ExpiringMembership) string {
	var when string
	switch m.DaysLeft {
	case 0:
		when = "сегодня"
	case 1:
		when = "завтра"
	default:
		when = fmt.Sprintf("через %d дн.", m.DaysLeft)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", m.TrainerUsername)
	fmt.Fprintf(&b, "Абонемент клиента %s заканчивается %s (%s).\n", m.ClientName, when, localdate.Format(m.EndDate))
	if m.ClientPhone != "" {
		fmt.Fprintf(&b, "Телефон клиента: %s\n", m.ClientPhone)
	}
	b.WriteString("\nНе забудьте предложить продление.")
	return b.String()
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		// После Quit соединение уже закрыто, ошибку Close игнорируем.
		_ = client.Close()
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
