package sms

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agency-backend/internal/logger"
	"agency-backend/internal/models"
)

var ErrProviderDisabled = errors.New("sms: provider disabled or not configured")

const twilioAPIBase = "https://api.twilio.com/2010-04-01"

// TwilioProvider sends messages through the Twilio Messages API using
// basic auth and a form-encoded POST. Credentials live in agency settings,
// so the provider re-reads them on every send.
type TwilioProvider struct {
	settings func() models.TwilioConfig
	baseURL  string
	http     *http.Client
	log      zerolog.Logger
}

func NewTwilioProvider(settings func() models.TwilioConfig) *TwilioProvider {
	return &TwilioProvider{
		settings: settings,
		baseURL:  twilioAPIBase,
		http:     &http.Client{Timeout: 15 * time.Second},
		log:      logger.WithComponent("sms"),
	}
}

func (p *TwilioProvider) Send(ctx context.Context, to, body string) error {
	cfg := p.settings()
	if !cfg.IsEnabled || cfg.AccountSID == "" || cfg.AuthToken == "" {
		return ErrProviderDisabled
	}

	from := cfg.FromNumber
	if from == "" {
		from = cfg.SenderName
	}

	form := url.Values{}
	form.Set("To", NormalizeNumber(to))
	form.Set("From", from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", p.baseURL, cfg.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("sms: build request: %w", err)
	}
	req.SetBasicAuth(cfg.AccountSID, cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		p.log.Warn().Int("status", resp.StatusCode).Str("to", to).Msg("twilio rejected message")
		return fmt.Errorf("sms: twilio status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	p.log.Info().Str("to", to).Msg("sms delivered to provider")
	return nil
}
