package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/store"
	"agency-backend/internal/timeutil"
)

type QuotationService struct {
	store    *store.Store
	remote   *remote.Client
	notifier *Notifier
	log      zerolog.Logger
}

func NewQuotationService(st *store.Store, rc *remote.Client, notifier *Notifier) *QuotationService {
	return &QuotationService{
		store:    st,
		remote:   rc,
		notifier: notifier,
		log:      logger.WithComponent("quotations"),
	}
}

func (s *QuotationService) List() []models.Quotation {
	return s.store.Snapshot().Quotations
}

// Create validates the request, recomputes the total from the items and
// persists the quotation. In remote mode the upstream write happens first and
// its returned entity is what gets folded in; a failed upstream write leaves
// the aggregate untouched.
func (s *QuotationService) Create(ctx context.Context, req models.CreateQuotationRequest) (models.Quotation, error) {
	if req.ClientName == "" {
		return models.Quotation{}, fmt.Errorf("%w: clientName is required", ErrInvalid)
	}
	if len(req.Items) == 0 {
		return models.Quotation{}, fmt.Errorf("%w: at least one item is required", ErrInvalid)
	}
	for _, item := range req.Items {
		if item.Price < 0 {
			return models.Quotation{}, fmt.Errorf("%w: item price cannot be negative", ErrInvalid)
		}
	}

	items := make([]models.ServiceItem, len(req.Items))
	copy(items, req.Items)
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if items[i].Quantity <= 0 {
			items[i].Quantity = 1
		}
	}

	q := models.Quotation{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		Date:        req.Date,
		Items:       items,
		Currency:    req.Currency.OrDefault(),
		Status:      models.QuotationPending,
		Note:        req.Note,
	}
	if q.Date == "" {
		q.Date = timeutil.Today()
	}
	q.Total = q.ItemsTotal()

	if s.remote != nil {
		created, err := s.remote.CreateQuotation(ctx, q)
		if err != nil {
			return models.Quotation{}, err
		}
		q = created
	} else {
		q.ID = uuid.NewString()
	}

	s.store.Update(func(d models.AppData) models.AppData {
		d.Quotations = append([]models.Quotation{q}, d.Quotations...)
		return d
	})
	s.log.Info().Str("id", q.ID).Str("client", q.ClientName).Float64("total", q.Total).Msg("quotation created")

	if q.ClientPhone != "" {
		agency := s.store.Snapshot().Settings.Name
		body := fmt.Sprintf("عزيزي %s، تم إنشاء عرض سعر لكم بقيمة %s %s من %s.",
			q.ClientName, formatAmount(q.Total), q.Currency, agency)
		s.notifier.Notify(ctx, q.ClientPhone, body)
	}
	return q, nil
}

// SetStatus applies a status transition. Transitions are not terminal; an
// accepted quotation can still be rejected later.
func (s *QuotationService) SetStatus(ctx context.Context, id string, status models.QuotationStatus) (models.Quotation, error) {
	switch status {
	case models.QuotationPending, models.QuotationAccepted, models.QuotationRejected:
	default:
		return models.Quotation{}, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	var current *models.Quotation
	for _, q := range s.store.Snapshot().Quotations {
		if q.ID == id {
			current = &q
			break
		}
	}
	if current == nil {
		return models.Quotation{}, fmt.Errorf("%w: quotation %s", ErrNotFound, id)
	}

	updated := *current
	updated.Status = status
	if s.remote != nil {
		fromServer, err := s.remote.SetQuotationStatus(ctx, id, status)
		if err != nil {
			return models.Quotation{}, err
		}
		updated = fromServer
	}

	s.store.Update(func(d models.AppData) models.AppData {
		for i := range d.Quotations {
			if d.Quotations[i].ID == id {
				d.Quotations[i] = updated
				break
			}
		}
		return d
	})
	s.log.Info().Str("id", id).Str("status", string(status)).Msg("quotation status changed")
	return updated, nil
}

// Delete removes a quotation. Deleting an id that does not exist is a no-op.
func (s *QuotationService) Delete(ctx context.Context, id string) error {
	if s.remote != nil {
		if err := ignoreNotFound(s.remote.DeleteQuotation(ctx, id)); err != nil {
			return err
		}
	}
	s.store.Update(func(d models.AppData) models.AppData {
		out := d.Quotations[:0]
		for _, q := range d.Quotations {
			if q.ID != id {
				out = append(out, q)
			}
		}
		d.Quotations = out
		return d
	})
	return nil
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
