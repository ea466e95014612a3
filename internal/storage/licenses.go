package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

func scanLicense(row scanner) (*models.License, error) {
	var l models.License
	var status string
	var trainerID sql.NullString
	if err := row.Scan(&l.LicenseKey, &l.ExpiryDate, &status, &trainerID); err != nil {
		return nil, err
	}
	l.Status = models.LicenseStatus(status)
	if trainerID.Valid {
		l.TrainerID = &trainerID.String
	}
	return &l, nil
}

// GetLicenseByTrainer возвращает лицензию тренера с самой поздней датой окончания.
func (s *Storage) GetLicenseByTrainer(ctx context.Context, trainerID string) (*models.License, error) {
	const op = "storage.GetLicenseByTrainer"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT license_key, expiry_date, status, trainer_id
			  FROM licenses
			  WHERE trainer_id = $1
			  ORDER BY expiry_date DESC
			  LIMIT 1`
	l, err := scanLicense(s.DB.QueryRowContext(ctx, query, trainerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrLicenseNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// GetLicenseByKey возвращает лицензию по ключу.
func (s *Storage) GetLicenseByKey(ctx context.Context, key string) (*models.License, error) {
	const op = "storage.GetLicenseByKey"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT license_key, expiry_date, status, trainer_id
			  FROM licenses
			  WHERE license_key = $1`
	l, err := scanLicense(s.DB.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrLicenseNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}

// AssignLicense закрепляет свободный действующий ключ за тренером.
// Условие trainer_id IS NULL в том же UPDATE не даёт двум тренерам
// получить один ключ. Если ни одна строка не подошла, возвращается
// ErrLicenseAlreadyAssigned.
func (s *Storage) AssignLicense(ctx context.Context, key, trainerID string, now time.Time) (*models.License, error) {
	const op = "storage.AssignLicense"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE licenses
			  SET trainer_id = $1
			  WHERE license_key = $2
			    AND trainer_id IS NULL
			    AND status = 'active'
			    AND expiry_date >= $3
			  RETURNING license_key, expiry_date, status, trainer_id`
	l, err := scanLicense(s.DB.QueryRowContext(ctx, query, trainerID, key, now))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrLicenseAlreadyAssigned)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return l, nil
}
