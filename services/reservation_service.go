package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/yashrajoria/restaurant-service/common/errors"
	"github.com/yashrajoria/restaurant-service/models"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
	"github.com/yashrajoria/restaurant-service/repository"
	"go.uber.org/zap"
)

type ReservationService interface {
	Create(ctx context.Context, caller Caller, req *models.CreateReservationRequest) (*models.Reservation, error)
	Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Reservation, error)
	List(ctx context.Context, caller Caller, page models.Page) ([]models.Reservation, int64, error)
	Update(ctx context.Context, id uuid.UUID, req *models.UpdateReservationRequest) (*models.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, caller Caller, id uuid.UUID) (*models.Reservation, error)
	QRCode(ctx context.Context, caller Caller, id uuid.UUID) ([]byte, error)
}

type reservationServiceImpl struct {
	repo    repository.ReservationRepository
	qr      QRGenerator
	metrics *awspkg.MetricsClient
	logger  *zap.Logger
	now     func() time.Time
}

func NewReservationService(repo repository.ReservationRepository, qr QRGenerator, metrics *awspkg.MetricsClient, logger *zap.Logger) ReservationService {
	return &reservationServiceImpl{
		repo:    repo,
		qr:      qr,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *reservationServiceImpl) Create(ctx context.Context, caller Caller, req *models.CreateReservationRequest) (*models.Reservation, error) {
	if caller.UserID == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if req.Time == nil || !req.Time.After(s.now()) {
		return nil, apperrors.Validation(map[string]string{"time": "must be in the future"})
	}

	person := models.DefaultPartySize
	if req.Person != nil {
		person = *req.Person
	}

	reservation := &models.Reservation{
		UserID:   *caller.UserID,
		Name:     strings.TrimSpace(req.Name),
		Time:     req.Time.UTC(),
		Person:   person,
		Status:   models.ReservationPending,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, apperrors.Internal("Failed to create reservation", err)
	}

	s.logger.Info("reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.Time("time", reservation.Time),
		zap.Int("person", reservation.Person),
	)
	recordCountAsync(s.metrics, awspkg.MetricReservationsCreated)
	return reservation, nil
}

func (s *reservationServiceImpl) Get(ctx context.Context, caller Caller, id uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id, caller.Scope())
	if err != nil {
		return nil, notFoundOr(err, "Reservation not found")
	}
	return reservation, nil
}

func (s *reservationServiceImpl) List(ctx context.Context, caller Caller, page models.Page) ([]models.Reservation, int64, error) {
	reservations, total, err := s.repo.List(ctx, page, caller.Scope())
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list reservations", err)
	}
	return reservations, total, nil
}

func (s *reservationServiceImpl) Update(ctx context.Context, id uuid.UUID, req *models.UpdateReservationRequest) (*models.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id, repository.StaffScope())
	if err != nil {
		return nil, notFoundOr(err, "Reservation not found")
	}

	if req.Name != nil {
		reservation.Name = strings.TrimSpace(*req.Name)
	}
	if req.Time != nil {
		if !req.Time.After(s.now()) {
			return nil, apperrors.Validation(map[string]string{"time": "must be in the future"})
		}
		reservation.Time = req.Time.UTC()
	}
	if req.Person != nil {
		reservation.Person = *req.Person
	}
	if req.Status != nil {
		reservation.Status = models.ReservationStatus(*req.Status)
	}
	if req.IsActive != nil {
		reservation.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, apperrors.Internal("Failed to update reservation", err)
	}
	return reservation, nil
}

func (s *reservationServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "Reservation not found")
	}
	return nil
}

// Cancel is open to the owner and staff while the reservation is still
// upcoming and not already cancelled.
func (s *reservationServiceImpl) Cancel(ctx context.Context, caller Caller, id uuid.UUID) (*models.Reservation, error) {
	reservation, err := s.repo.FindByID(ctx, id, caller.Scope())
	if err != nil {
		return nil, notFoundOr(err, "Reservation not found")
	}
	if reservation.Status == models.ReservationCancelled || !reservation.Time.After(s.now()) {
		return nil, apperrors.ErrReservationClosed
	}

	reservation.Status = models.ReservationCancelled
	if err := s.repo.Update(ctx, reservation); err != nil {
		return nil, apperrors.Internal("Failed to cancel reservation", err)
	}

	s.logger.Info("reservation cancelled", zap.String("reservation_id", id.String()))
	return reservation, nil
}

// QRCode renders the check-in code of a live reservation as PNG.
func (s *reservationServiceImpl) QRCode(ctx context.Context, caller Caller, id uuid.UUID) ([]byte, error) {
	reservation, err := s.repo.FindByID(ctx, id, caller.Scope())
	if err != nil {
		return nil, notFoundOr(err, "Reservation not found")
	}
	if reservation.Status == models.ReservationCancelled {
		return nil, apperrors.BadRequest("Reservation is cancelled")
	}

	png, err := s.qr.Generate(reservation.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to generate QR code", err)
	}
	return png, nil
}
