package service

import (
	"context"
	"errors"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/purelife/storefront/internal/domain"
	"github.com/purelife/storefront/internal/email"
	"github.com/purelife/storefront/internal/repository"
	"github.com/purelife/storefront/internal/telemetry"
)

// ContactService handles contact form submissions and admin triage.
type ContactService interface {
	Submit(ctx context.Context, q *domain.ContactQuery) (*domain.ContactQuery, error)
	ListQueries(ctx context.Context, limit, offset int32) ([]domain.ContactQuery, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.ContactQuery, error)
}

type contactService struct {
	repo   repository.Querier
	emails *email.Service
	logger *slog.Logger
}

// NewContactService creates a new ContactService instance. The email
// service may be nil, in which case no acknowledgement is sent.
func NewContactService(repo repository.Querier, emails *email.Service, logger *slog.Logger) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactService{
		repo:   repo,
		emails: emails,
		logger: logger,
	}
}

// Submit stores a contact query and sends an acknowledgement email.
// A failed acknowledgement is logged; the submission still succeeds.
func (s *contactService) Submit(ctx context.Context, q *domain.ContactQuery) (*domain.ContactQuery, error) {
	const op = "ContactService.Submit"

	q.Name = strings.TrimSpace(q.Name)
	q.Subject = strings.TrimSpace(q.Subject)
	q.Message = strings.TrimSpace(q.Message)
	q.Email = normalizeEmail(q.Email)

	var verr error
	if q.Name == "" {
		verr = domain.AddFieldError(verr, "name", "name is required")
	}
	if _, err := mail.ParseAddress(q.Email); err != nil {
		verr = domain.AddFieldError(verr, "email", "a valid email is required")
	}
	if q.Subject == "" {
		verr = domain.AddFieldError(verr, "subject", "subject is required")
	}
	if q.Message == "" {
		verr = domain.AddFieldError(verr, "message", "message is required")
	}
	if verr != nil {
		if ve, ok := verr.(*domain.ValidationError); ok {
			ve.Op = op
		}
		return nil, verr
	}

	created, err := s.repo.CreateContactQuery(ctx, q)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to store contact query")
	}

	if s.emails != nil {
		ack := email.ContactAcknowledgementEmail{
			Name:  created.Name,
			Email: created.Email,
			Topic: created.Subject,
		}
		if err := s.emails.SendContactAcknowledgement(ctx, ack); err != nil {
			s.logger.Error("failed to send contact acknowledgement",
				"query_id", created.ID, "error", err)
			if telemetry.Business != nil {
				telemetry.Business.EmailFailed.WithLabelValues("contact_acknowledgement").Inc()
			}
		} else if telemetry.Business != nil {
			telemetry.Business.EmailSent.WithLabelValues("contact_acknowledgement").Inc()
		}
	}

	return created, nil
}

func (s *contactService) ListQueries(ctx context.Context, limit, offset int32) ([]domain.ContactQuery, error) {
	const op = "ContactService.ListQueries"

	queries, err := s.repo.ListContactQueries(ctx, limit, offset)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to list contact queries")
	}
	return queries, nil
}

func (s *contactService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.ContactQuery, error) {
	const op = "ContactService.UpdateStatus"

	if !domain.ValidQueryStatus(status) {
		return nil, domain.NewValidationError(op, "status", "status must be new, read, or resolved")
	}

	updated, err := s.repo.UpdateContactQueryStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound(op, "contact query", id.String())
		}
		return nil, domain.Internal(err, op, "failed to update contact query")
	}
	return updated, nil
}
