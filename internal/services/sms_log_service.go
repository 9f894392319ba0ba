package services

import (
	"context"

	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/store"
)

type SMSLogService struct {
	store  *store.Store
	remote *remote.Client
	log    zerolog.Logger
}

func NewSMSLogService(st *store.Store, rc *remote.Client) *SMSLogService {
	return &SMSLogService{
		store:  st,
		remote: rc,
		log:    logger.WithComponent("smslogs"),
	}
}

func (s *SMSLogService) List() []models.SMSLog {
	return s.store.Snapshot().SMSLogs
}

// Clear wipes the whole log. In remote mode every entry is deleted upstream
// first; an upstream failure aborts before any local change, so the log is
// never half-cleared locally while fully present upstream.
func (s *SMSLogService) Clear(ctx context.Context) error {
	if s.remote != nil {
		for _, entry := range s.store.Snapshot().SMSLogs {
			if err := ignoreNotFound(s.remote.DeleteSMSLog(ctx, entry.ID)); err != nil {
				return err
			}
		}
	}
	s.store.Update(func(d models.AppData) models.AppData {
		d.SMSLogs = []models.SMSLog{}
		return d
	})
	s.log.Info().Msg("sms log cleared")
	return nil
}
