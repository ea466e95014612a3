// Package services содержит планировщик, который ищет истекающие абонементы
// клиентов и публикует уведомления для тренеров в RabbitMQ.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trainer-memberships/internal/lib/localdate"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-memberships/internal/membership"
	"github.com/magabrotheeeer/trainer-memberships/internal/metrics"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// MembershipRepository ищет абонементы с датой окончания в диапазоне.
type MembershipRepository interface {
	FindMembershipsEndingBetween(ctx context.Context, from, to time.Time) ([]models.ExpiringMembership, error)
}

// SchedulerService периодически публикует уведомления об истекающих абонементах.
type SchedulerService struct {
	repo      MembershipRepository
	publisher rabbitmq.Publisher
	clock     membership.Clock
	log       *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo MembershipRepository, publisher rabbitmq.Publisher,
	clock membership.Clock, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		clock:     clock,
		log:       log,
	}
}

// Run выполняет проверку сразу и затем каждые interval, пока не отменён ctx.
func (s *SchedulerService) Run(ctx context.Context, interval time.Duration) {
	s.runNotifyExpiring(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.runNotifyExpiring(ctx)
		}
	}
}

func (s *SchedulerService) runNotifyExpiring(ctx context.Context) {
	s.log.Info("starting search for expiring memberships")
	published, err := s.NotifyExpiring(ctx)
	if err != nil {
		s.log.Error("failed to notify about expiring memberships", sl.Err(err))
		return
	}
	s.log.Info("expiring memberships processed", slog.Int("published", published))
}

// NotifyExpiring публикует по сообщению на каждого клиента, чей абонемент
// сегодня имеет статус expiring. Возвращает число опубликованных сообщений.
// Ошибка публикации одного сообщения не прерывает остальные.
func (s *SchedulerService) NotifyExpiring(ctx context.Context) (int, error) {
	const op = "services.scheduler.NotifyExpiring"

	today := s.clock.Today()
	candidates, err := s.repo.FindMembershipsEndingBetween(ctx, today,
		today.AddDate(0, 0, membership.ExpiringWindowDays))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	published := 0
	for _, m := range candidates {
		if membership.Classify(m.EndDate, today) != models.StatusExpiring {
			continue
		}
		m.DaysLeft = localdate.DaysBetween(today, m.EndDate)

		err = rabbitmq.PublishMessage(s.publisher, rabbitmq.NotificationsExchange, rabbitmq.ExpiringRoutingKey, m)
		if err != nil {
			metrics.NotificationsPublishedTotal.WithLabelValues("error").Inc()
			s.log.Error("failed to publish message", slog.String("client_id", m.ClientID), sl.Err(err))
			continue
		}
		metrics.NotificationsPublishedTotal.WithLabelValues("ok").Inc()
		published++
	}
	return published, nil
}
