package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

const identityConstraint = "clients_trainer_identity_uq"

const clientColumns = `id, trainer_id, full_name, phone, email, document_type, cedula,
		start_date, duration_months, end_date, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(row scanner) (*models.Client, error) {
	var c models.Client
	var docType string
	if err := row.Scan(&c.ID, &c.TrainerID, &c.FullName, &c.Phone, &c.Email, &docType, &c.Cedula,
		&c.StartDate, &c.DurationMonths, &c.EndDate, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.DocumentType = models.DocumentType(docType)
	return &c, nil
}

func identityError(err error, c models.Client) error {
	if uniqueViolation(err) == identityConstraint {
		return &models.DuplicateIdentityError{DocumentType: c.DocumentType, Cedula: c.Cedula}
	}
	return err
}

// CreateClient вставляет нового клиента и возвращает сохранённую запись.
func (s *Storage) CreateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	const op = "storage.CreateClient"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `INSERT INTO clients (id, trainer_id, full_name, phone, email, document_type, cedula,
			      start_date, duration_months, end_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + clientColumns
	row := s.DB.QueryRowContext(ctx, query,
		c.ID, c.TrainerID, c.FullName, c.Phone, c.Email, string(c.DocumentType), c.Cedula,
		c.StartDate, c.DurationMonths, c.EndDate)
	created, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, identityError(err, c))
	}
	return created, nil
}

// GetClient возвращает клиента тренера по ID.
func (s *Storage) GetClient(ctx context.Context, trainerID, id string) (*models.Client, error) {
	const op = "storage.GetClient"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND trainer_id = $2`
	c, err := scanClient(s.DB.QueryRowContext(ctx, query, id, trainerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrClientNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// ListClients возвращает всех клиентов тренера, новые первыми.
func (s *Storage) ListClients(ctx context.Context, trainerID string) ([]models.Client, error) {
	const op = "storage.ListClients"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + `
			  FROM clients
			  WHERE trainer_id = $1
			  ORDER BY created_at DESC, id`
	return s.queryClients(ctx, op, query, trainerID)
}

// FindClientsByIdentity ищет клиентов тренера с тем же документом.
func (s *Storage) FindClientsByIdentity(ctx context.Context, trainerID string,
	docType models.DocumentType, cedula string) ([]models.Client, error) {
	const op = "storage.FindClientsByIdentity"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT ` + clientColumns + `
			  FROM clients
			  WHERE trainer_id = $1 AND document_type = $2 AND cedula = $3`
	return s.queryClients(ctx, op, query, trainerID, string(docType), cedula)
}

func (s *Storage) queryClients(ctx context.Context, op, query string, args ...any) ([]models.Client, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]models.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateClient перезаписывает данные клиента тренера.
func (s *Storage) UpdateClient(ctx context.Context, c models.Client) (*models.Client, error) {
	const op = "storage.UpdateClient"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE clients
			  SET full_name = $1, phone = $2, email = $3, document_type = $4, cedula = $5,
			      start_date = $6, duration_months = $7, end_date = $8
			  WHERE id = $9 AND trainer_id = $10
			  RETURNING ` + clientColumns
	row := s.DB.QueryRowContext(ctx, query,
		c.FullName, c.Phone, c.Email, string(c.DocumentType), c.Cedula,
		c.StartDate, c.DurationMonths, c.EndDate, c.ID, c.TrainerID)
	updated, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrClientNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, identityError(err, c))
	}
	return updated, nil
}

// UpdateMembershipWindow перезаписывает окно абонемента клиента.
func (s *Storage) UpdateMembershipWindow(ctx context.Context, trainerID, id string,
	start, end time.Time, months int) (*models.Client, error) {
	const op = "storage.UpdateMembershipWindow"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `UPDATE clients
			  SET start_date = $1, end_date = $2, duration_months = $3
			  WHERE id = $4 AND trainer_id = $5
			  RETURNING ` + clientColumns
	updated, err := scanClient(s.DB.QueryRowContext(ctx, query, start, end, months, id, trainerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, models.ErrClientNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// RemoveClient удаляет клиента тренера.
func (s *Storage) RemoveClient(ctx context.Context, trainerID, id string) error {
	const op = "storage.RemoveClient"
	if err := checkCtx(ctx, op); err != nil {
		return err
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1 AND trainer_id = $2`, id, trainerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrClientNotFound)
	}
	return nil
}

// FindMembershipsEndingBetween возвращает абонементы всех тренеров с датой
// окончания в отрезке [from, to] вместе с контактами тренера.
func (s *Storage) FindMembershipsEndingBetween(ctx context.Context, from, to time.Time) ([]models.ExpiringMembership, error) {
	const op = "storage.FindMembershipsEndingBetween"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	query := `SELECT u.email, u.username, c.id, c.full_name, c.phone, c.end_date
			  FROM clients c
			  JOIN users u ON u.uid = c.trainer_id
			  WHERE c.end_date BETWEEN $1 AND $2
			  ORDER BY c.end_date, c.id`
	rows, err := s.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.ExpiringMembership
	for rows.Next() {
		var m models.ExpiringMembership
		if err = rows.Scan(&m.TrainerEmail, &m.TrainerUsername, &m.ClientID,
			&m.ClientName, &m.ClientPhone, &m.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
