// Package licenses отвечает за лицензию тренера: проверку доступа
// к приложению и активацию лицензионного ключа.
package licenses

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/trainer-memberships/internal/license"
	"github.com/magabrotheeeer/trainer-memberships/internal/membership"
	"github.com/magabrotheeeer/trainer-memberships/internal/metrics"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// Repository описывает методы хранилища лицензий.
type Repository interface {
	GetLicenseByTrainer(ctx context.Context, trainerID string) (*models.License, error)
	GetLicenseByKey(ctx context.Context, key string) (*models.License, error)
	AssignLicense(ctx context.Context, key, trainerID string, now time.Time) (*models.License, error)
}

// Service проверяет и активирует лицензии.
type Service struct {
	repo  Repository
	clock membership.Clock
	log   *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, clock membership.Clock, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		clock: clock,
		log:   log,
	}
}

// Status возвращает решение проверки доступа для пользователя и его лицензию,
// если она есть. Ошибка означает сбой хранилища, а не отказ в доступе.
func (s *Service) Status(ctx context.Context, user *models.User) (license.Decision, *models.License, error) {
	const op = "services.licenses.Status"

	var lic *models.License
	if user != nil && user.Role != models.RoleSuperuser {
		var err error
		lic, err = s.repo.GetLicenseByTrainer(ctx, user.UUID)
		if err != nil && !errors.Is(err, models.ErrLicenseNotFound) {
			return license.Decision{}, nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	decision := license.Evaluate(user, lic, s.clock.Now())
	metrics.LicenseDecisionsTotal.WithLabelValues(string(decision.Reason)).Inc()
	return decision, lic, nil
}

// Redeem закрепляет лицензионный ключ за тренером.
// Повторная активация своего же ключа не считается ошибкой.
func (s *Service) Redeem(ctx context.Context, trainerID, key string) (*models.License, error) {
	const op = "services.licenses.Redeem"

	lic, err := s.repo.GetLicenseByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if lic.TrainerID != nil {
		if *lic.TrainerID == trainerID {
			return lic, nil
		}
		return nil, fmt.Errorf("%s: %w", op, models.ErrLicenseAlreadyAssigned)
	}

	now := s.clock.Now()
	if lic.Status == models.LicenseExpired || lic.ExpiryDate.Before(now) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrLicenseExpired)
	}

	assigned, err := s.repo.AssignLicense(ctx, key, trainerID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("license redeemed", slog.String("trainer_id", trainerID))
	return assigned, nil
}
