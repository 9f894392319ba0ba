package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/store"
	"agency-backend/internal/timeutil"
)

type ContractService struct {
	store  *store.Store
	remote *remote.Client
	log    zerolog.Logger
}

func NewContractService(st *store.Store, rc *remote.Client) *ContractService {
	return &ContractService{
		store:  st,
		remote: rc,
		log:    logger.WithComponent("contracts"),
	}
}

func (s *ContractService) List() []models.Contract {
	return s.store.Snapshot().Contracts
}

func (s *ContractService) Create(ctx context.Context, req models.CreateContractRequest) (models.Contract, error) {
	if req.PartyAName == "" || req.PartyBName == "" {
		return models.Contract{}, fmt.Errorf("%w: both party names are required", ErrInvalid)
	}
	if req.Subject == "" {
		return models.Contract{}, fmt.Errorf("%w: subject is required", ErrInvalid)
	}
	if req.TotalValue < 0 {
		return models.Contract{}, fmt.Errorf("%w: totalValue cannot be negative", ErrInvalid)
	}

	clauses := make([]models.ContractClause, len(req.Clauses))
	copy(clauses, req.Clauses)
	for i := range clauses {
		if clauses[i].ID == "" {
			clauses[i].ID = uuid.NewString()
		}
	}

	c := models.Contract{
		Date:        req.Date,
		PartyAName:  req.PartyAName,
		PartyATitle: req.PartyATitle,
		PartyBName:  req.PartyBName,
		PartyBTitle: req.PartyBTitle,
		Subject:     req.Subject,
		TotalValue:  req.TotalValue,
		Currency:    req.Currency.OrDefault(),
		Clauses:     clauses,
		Status:      req.Status,
	}
	if c.Date == "" {
		c.Date = timeutil.Today()
	}
	if c.Status == "" {
		c.Status = models.ContractActive
	}

	if s.remote != nil {
		created, err := s.remote.CreateContract(ctx, c)
		if err != nil {
			return models.Contract{}, err
		}
		c = created
	} else {
		c.ID = uuid.NewString()
	}

	s.store.Update(func(d models.AppData) models.AppData {
		d.Contracts = append([]models.Contract{c}, d.Contracts...)
		return d
	})
	s.log.Info().Str("id", c.ID).Str("subject", c.Subject).Msg("contract created")
	return c, nil
}

// Delete removes a contract. Deleting an id that does not exist is a no-op.
func (s *ContractService) Delete(ctx context.Context, id string) error {
	if s.remote != nil {
		if err := ignoreNotFound(s.remote.DeleteContract(ctx, id)); err != nil {
			return err
		}
	}
	s.store.Update(func(d models.AppData) models.AppData {
		out := d.Contracts[:0]
		for _, c := range d.Contracts {
			if c.ID != id {
				out = append(out, c)
			}
		}
		d.Contracts = out
		return d
	})
	return nil
}
