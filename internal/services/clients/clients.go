// Package clients содержит бизнес-логику работы с клиентами тренера:
// запись, изменение, продление и удаление абонементов, проверку дублей
// документа и кэш списка клиентов.
package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/trainer-memberships/internal/lib/localdate"
	"github.com/magabrotheeeer/trainer-memberships/internal/lib/sl"
	"github.com/magabrotheeeer/trainer-memberships/internal/membership"
	"github.com/magabrotheeeer/trainer-memberships/internal/metrics"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// Repository определяет методы хранилища клиентов. Все методы, кроме
// чтения по документу, ограничены тренером-владельцем.
type Repository interface {
	CreateClient(ctx context.Context, c models.Client) (*models.Client, error)
	GetClient(ctx context.Context, trainerID, id string) (*models.Client, error)
	ListClients(ctx context.Context, trainerID string) ([]models.Client, error)
	FindClientsByIdentity(ctx context.Context, trainerID string, docType models.DocumentType, cedula string) ([]models.Client, error)
	UpdateClient(ctx context.Context, c models.Client) (*models.Client, error)
	UpdateMembershipWindow(ctx context.Context, trainerID, id string, start, end time.Time, months int) (*models.Client, error)
	RemoveClient(ctx context.Context, trainerID, id string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Update(ctx context.Context, key string, result any, modify func() any, expiration time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// Service реализует операции над клиентами тренера.
type Service struct {
	repo   Repository
	roster *Roster
	clock  membership.Clock
	log    *slog.Logger
	newID  func() string
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, cache Cache, clock membership.Clock, log *slog.Logger, rosterTTL time.Duration) *Service {
	return &Service{
		repo:   repo,
		roster: NewRoster(repo, cache, rosterTTL, log),
		clock:  clock,
		log:    log,
		newID:  uuid.NewString,
	}
}

// Create записывает нового клиента тренера.
func (s *Service) Create(ctx context.Context, trainerID string, req models.DummyClient) (*models.Client, error) {
	const op = "services.clients.Create"

	c, err := buildClient(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.ID = s.newID()
	c.TrainerID = trainerID

	if err = s.checkIdentity(ctx, trainerID, c.DocumentType, c.Cedula, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	created, err := s.repo.CreateClient(ctx, c)
	if err != nil {
		s.afterWriteError(ctx, trainerID, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new client", slog.String("id", created.ID), slog.String("trainer_id", trainerID))

	s.roster.Merge(ctx, trainerID, func(list []models.Client) []models.Client {
		return append([]models.Client{*created}, list...)
	})
	return membership.Apply(created, s.clock.Today()), nil
}

// Update перезаписывает данные клиента, включая окно абонемента.
func (s *Service) Update(ctx context.Context, trainerID, id string, req models.DummyClient) (*models.Client, error) {
	const op = "services.clients.Update"

	c, err := buildClient(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.ID = id
	c.TrainerID = trainerID

	if err = s.checkIdentity(ctx, trainerID, c.DocumentType, c.Cedula, id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.UpdateClient(ctx, c)
	if err != nil {
		s.afterWriteError(ctx, trainerID, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("updated client", slog.String("id", id))

	s.roster.Merge(ctx, trainerID, replaceClient(*updated))
	return membership.Apply(updated, s.clock.Today()), nil
}

// Renew продлевает абонемент клиента на months месяцев. Без startDate
// окно начинается сегодня; старая дата окончания не учитывается.
func (s *Service) Renew(ctx context.Context, trainerID, id string, req models.DummyRenewal) (*models.Client, error) {
	const op = "services.clients.Renew"

	var explicitStart *time.Time
	if req.StartDate != "" {
		start, err := localdate.Parse(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidDate)
		}
		explicitStart = &start
	}
	if req.DurationMonths < 1 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidDuration)
	}

	current, err := s.repo.GetClient(ctx, trainerID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	window, err := membership.Renew(*current, req.DurationMonths, explicitStart, s.clock.Today())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	renewed, err := s.repo.UpdateMembershipWindow(ctx, trainerID, id,
		window.StartDate, window.EndDate, window.DurationMonths)
	if err != nil {
		s.afterWriteError(ctx, trainerID, err)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	metrics.RenewalsTotal.Inc()
	s.log.Info("renewed membership",
		slog.String("id", id),
		slog.String("start_date", localdate.Format(window.StartDate)),
		slog.String("end_date", localdate.Format(window.EndDate)),
	)

	s.roster.Merge(ctx, trainerID, replaceClient(*renewed))
	return membership.Apply(renewed, s.clock.Today()), nil
}

// Remove удаляет клиента тренера.
func (s *Service) Remove(ctx context.Context, trainerID, id string) error {
	const op = "services.clients.Remove"

	if err := s.repo.RemoveClient(ctx, trainerID, id); err != nil {
		s.afterWriteError(ctx, trainerID, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("removed client", slog.String("id", id))

	s.roster.Merge(ctx, trainerID, func(list []models.Client) []models.Client {
		out := list[:0]
		for _, c := range list {
			if c.ID != id {
				out = append(out, c)
			}
		}
		return out
	})
	return nil
}

// Read возвращает клиента со статусом на сегодня.
func (s *Service) Read(ctx context.Context, trainerID, id string) (*models.Client, error) {
	const op = "services.clients.Read"

	if c, ok := s.roster.Find(ctx, trainerID, id); ok {
		return membership.Apply(c, s.clock.Today()), nil
	}
	c, err := s.repo.GetClient(ctx, trainerID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return membership.Apply(c, s.clock.Today()), nil
}

// List возвращает клиентов тренера со статусами на сегодня.
// Пустой status — без фильтра.
func (s *Service) List(ctx context.Context, trainerID string, status models.MembershipStatus) ([]models.Client, error) {
	const op = "services.clients.List"

	list, err := s.roster.Load(ctx, trainerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	today := s.clock.Today()
	result := make([]models.Client, 0, len(list))
	for i := range list {
		membership.Apply(&list[i], today)
		if status == "" || list[i].Status == status {
			result = append(result, list[i])
		}
	}
	return result, nil
}

// afterWriteError перечитывает список клиентов после ошибки хранилища.
// Дубль документа и ненайденный клиент не расходят кэш с базой,
// для них перечитывание не нужно.
func (s *Service) afterWriteError(ctx context.Context, trainerID string, err error) {
	if errors.Is(err, models.ErrDuplicateIdentity) {
		metrics.DuplicateIdentityTotal.Inc()
		return
	}
	if errors.Is(err, models.ErrClientNotFound) {
		return
	}
	s.log.Warn("store write failed, resyncing client list", slog.String("trainer_id", trainerID), sl.Err(err))
	s.roster.Resync(ctx, trainerID)
}

func buildClient(req models.DummyClient) (models.Client, error) {
	start, err := localdate.Parse(req.StartDate)
	if err != nil {
		return models.Client{}, models.ErrInvalidDate
	}
	docType := models.DocumentType(req.DocumentType)
	if !docType.Valid() {
		return models.Client{}, models.ErrInvalidDocumentType
	}
	end, err := membership.EndDate(start, req.DurationMonths)
	if err != nil {
		return models.Client{}, err
	}
	return models.Client{
		FullName:       req.FullName,
		Phone:          req.Phone,
		Email:          req.Email,
		DocumentType:   docType,
		Cedula:         req.Cedula,
		StartDate:      start,
		DurationMonths: req.DurationMonths,
		EndDate:        end,
	}, nil
}

func replaceClient(updated models.Client) func([]models.Client) []models.Client {
	return func(list []models.Client) []models.Client {
		for i := range list {
			if list[i].ID == updated.ID {
				list[i] = updated
			}
		}
		return list
	}
}
