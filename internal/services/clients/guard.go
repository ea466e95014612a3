package clients

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/trainer-memberships/internal/metrics"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// checkIdentity отклоняет запись, если у тренера уже есть другой клиент
// с тем же типом документа и номером. excludeID — клиент, которого
// сейчас изменяют.
//
// Проверка не атомарна с последующей записью: окончательно дубль
// отсекает уникальный индекс clients_trainer_identity_uq.
func (s *Service) checkIdentity(ctx context.Context, trainerID string,
	docType models.DocumentType, cedula, excludeID string) error {
	matches, err := s.repo.FindClientsByIdentity(ctx, trainerID, docType, cedula)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if m.ID == excludeID {
			continue
		}
		metrics.DuplicateIdentityTotal.Inc()
		s.log.Info("duplicate client document rejected",
			slog.String("trainer_id", trainerID),
			slog.String("existing_id", m.ID),
		)
		return &models.DuplicateIdentityError{
			DocumentType: docType,
			Cedula:       cedula,
			ExistingID:   m.ID,
		}
	}
	return nil
}
