package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/store"
	"agency-backend/internal/timeutil"
)

type VoucherService struct {
	store    *store.Store
	remote   *remote.Client
	notifier *Notifier
	log      zerolog.Logger
}

func NewVoucherService(st *store.Store, rc *remote.Client, notifier *Notifier) *VoucherService {
	return &VoucherService{
		store:    st,
		remote:   rc,
		notifier: notifier,
		log:      logger.WithComponent("vouchers"),
	}
}

// List returns the ledger, optionally filtered to one category. The category
// views (expenses, withdrawals, freelance settlements) are all projections of
// the same collection.
func (s *VoucherService) List(category models.VoucherCategory) []models.Voucher {
	vouchers := s.store.Snapshot().Vouchers
	if category == "" {
		return vouchers
	}
	out := make([]models.Voucher, 0, len(vouchers))
	for _, v := range vouchers {
		if v.Category == category {
			out = append(out, v)
		}
	}
	return out
}

func validateVoucher(req models.CreateVoucherRequest) error {
	switch req.Type {
	case models.VoucherReceipt, models.VoucherPayment:
	default:
		return fmt.Errorf("%w: type must be RECEIPT or PAYMENT", ErrInvalid)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	if req.PartyName == "" {
		return fmt.Errorf("%w: partyName is required", ErrInvalid)
	}
	switch req.Category {
	case "", models.CategorySalary, models.CategoryDaily, models.CategoryGeneral,
		models.CategoryVoucher, models.CategoryOwnerWithdrawal, models.CategoryFreelance:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, req.Category)
	}
	return nil
}

// Create records a cash movement. Receipts with a phone number and salary
// payments with a phone number trigger a notification text after the voucher
// is persisted; updates never do.
func (s *VoucherService) Create(ctx context.Context, req models.CreateVoucherRequest) (models.Voucher, error) {
	if err := validateVoucher(req); err != nil {
		return models.Voucher{}, err
	}

	v := models.Voucher{
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    req.Currency.OrDefault(),
		Date:        req.Date,
		Description: req.Description,
		PartyName:   req.PartyName,
		PartyPhone:  req.PartyPhone,
		Category:    req.Category,
	}
	if v.Date == "" {
		v.Date = timeutil.Today()
	}
	if v.Category == "" {
		v.Category = models.CategoryVoucher
	}

	if s.remote != nil {
		created, err := s.remote.CreateVoucher(ctx, v)
		if err != nil {
			return models.Voucher{}, err
		}
		v = created
	} else {
		v.ID = uuid.NewString()
	}

	s.store.Update(func(d models.AppData) models.AppData {
		d.Vouchers = append([]models.Voucher{v}, d.Vouchers...)
		return d
	})
	s.log.Info().Str("id", v.ID).Str("type", string(v.Type)).Str("category", string(v.Category)).
		Float64("amount", v.Amount).Msg("voucher created")

	s.notifyCreated(ctx, v)
	return v, nil
}

func (s *VoucherService) notifyCreated(ctx context.Context, v models.Voucher) {
	if v.PartyPhone == "" {
		return
	}
	agency := s.store.Snapshot().Settings.Name
	switch {
	case v.Type == models.VoucherReceipt:
		body := fmt.Sprintf("عزيزي %s، تم استلام مبلغ %s %s منكم. شكراً لتعاملكم معنا. %s",
			v.PartyName, formatAmount(v.Amount), v.Currency, agency)
		s.notifier.Notify(ctx, v.PartyPhone, body)
	case v.Type == models.VoucherPayment && v.Category == models.CategorySalary:
		body := fmt.Sprintf("عزيزي %s، تم صرف راتبكم بمبلغ %s %s. %s",
			v.PartyName, formatAmount(v.Amount), v.Currency, agency)
		s.notifier.Notify(ctx, v.PartyPhone, body)
	}
}

// Update replaces an existing voucher's fields. No notification is sent.
func (s *VoucherService) Update(ctx context.Context, id string, req models.CreateVoucherRequest) (models.Voucher, error) {
	if err := validateVoucher(req); err != nil {
		return models.Voucher{}, err
	}

	var found bool
	for _, v := range s.store.Snapshot().Vouchers {
		if v.ID == id {
			found = true
			break
		}
	}
	if !found {
		return models.Voucher{}, fmt.Errorf("%w: voucher %s", ErrNotFound, id)
	}

	updated := models.Voucher{
		ID:          id,
		Type:        req.Type,
		Amount:      req.Amount,
		Currency:    req.Currency.OrDefault(),
		Date:        req.Date,
		Description: req.Description,
		PartyName:   req.PartyName,
		PartyPhone:  req.PartyPhone,
		Category:    req.Category,
	}
	if updated.Date == "" {
		updated.Date = timeutil.Today()
	}
	if updated.Category == "" {
		updated.Category = models.CategoryVoucher
	}

	if s.remote != nil {
		fromServer, err := s.remote.UpdateVoucher(ctx, updated)
		if err != nil {
			return models.Voucher{}, err
		}
		updated = fromServer
	}

	s.store.Update(func(d models.AppData) models.AppData {
		for i := range d.Vouchers {
			if d.Vouchers[i].ID == id {
				d.Vouchers[i] = updated
				break
			}
		}
		return d
	})
	return updated, nil
}

// Delete removes a voucher. Deleting an id that does not exist is a no-op.
func (s *VoucherService) Delete(ctx context.Context, id string) error {
	if s.remote != nil {
		if err := ignoreNotFound(s.remote.DeleteVoucher(ctx, id)); err != nil {
			return err
		}
	}
	s.store.Update(func(d models.AppData) models.AppData {
		out := d.Vouchers[:0]
		for _, v := range d.Vouchers {
			if v.ID != id {
				out = append(out, v)
			}
		}
		d.Vouchers = out
		return d
	})
	return nil
}

// Settle folds a freelancer's unpaid work items for a period into a single
// payment voucher in the FREELANCE category.
func (s *VoucherService) Settle(ctx context.Context, req models.SettlementRequest) (models.Voucher, error) {
	if req.PartyName == "" {
		return models.Voucher{}, fmt.Errorf("%w: partyName is required", ErrInvalid)
	}
	if len(req.Items) == 0 {
		return models.Voucher{}, fmt.Errorf("%w: at least one item is required", ErrInvalid)
	}

	var total float64
	descriptions := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Price <= 0 {
			return models.Voucher{}, fmt.Errorf("%w: item price must be positive", ErrInvalid)
		}
		total += item.Price
		if item.Description != "" {
			descriptions = append(descriptions, item.Description)
		}
	}

	description := fmt.Sprintf("تسوية مستحقات %s", req.Month)
	if len(descriptions) > 0 {
		description += ": " + strings.Join(descriptions, "، ")
	}

	return s.Create(ctx, models.CreateVoucherRequest{
		Type:        models.VoucherPayment,
		Amount:      total,
		Currency:    req.Currency,
		Date:        req.Date,
		Description: description,
		PartyName:   req.PartyName,
		PartyPhone:  req.PartyPhone,
		Category:    models.CategoryFreelance,
	})
}
