package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/metrics"
	"agency-backend/internal/models"
	"agency-backend/internal/remote"
	"agency-backend/internal/sms"
	"agency-backend/internal/store"
	"agency-backend/internal/timeutil"
)

// Notifier sends notification texts and records every attempt in the SMS
// log, success or failure. Delivery problems never propagate to the caller;
// the business operation that triggered the notification has already
// completed when Notify runs.
type Notifier struct {
	store    *store.Store
	remote   *remote.Client
	provider sms.Provider
	log      zerolog.Logger
}

func NewNotifier(st *store.Store, rc *remote.Client, provider sms.Provider) *Notifier {
	return &Notifier{
		store:    st,
		remote:   rc,
		provider: provider,
		log:      logger.WithComponent("notifier"),
	}
}

// Notify delivers one message. Nothing happens when the recipient is empty
// or messaging is disabled in settings; otherwise the attempt is logged.
func (n *Notifier) Notify(ctx context.Context, to, body string) {
	if to == "" || n.provider == nil {
		return
	}
	if n.remote == nil && !n.store.Snapshot().Settings.Twilio.IsEnabled {
		return
	}

	entry := models.SMSLog{
		To:        to,
		Body:      body,
		Status:    models.SMSStatusSuccess,
		Timestamp: timeutil.Timestamp(),
	}
	if err := n.provider.Send(ctx, to, body); err != nil {
		entry.Status = models.SMSStatusFailed
		entry.Error = err.Error()
		n.log.Warn().Err(err).Str("to", to).Msg("notification failed")
	}
	metrics.SMSAttemptsTotal.WithLabelValues(entry.Status).Inc()

	if n.remote != nil {
		if created, err := n.remote.CreateSMSLog(ctx, entry); err == nil {
			entry = created
		} else {
			n.log.Warn().Err(err).Msg("sms log upload failed, keeping local entry")
			entry.ID = uuid.NewString()
		}
	} else {
		entry.ID = uuid.NewString()
	}

	n.store.Update(func(d models.AppData) models.AppData {
		d.SMSLogs = append([]models.SMSLog{entry}, d.SMSLogs...)
		return d
	})
}
