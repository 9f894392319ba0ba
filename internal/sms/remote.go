package sms

import (
	"context"
	"errors"

	"agency-backend/internal/remote"
)

// RemoteProvider routes message delivery through the upstream API, which
// holds the provider credentials server-side in remote mode.
type RemoteProvider struct {
	client *remote.Client
}

func NewRemoteProvider(client *remote.Client) *RemoteProvider {
	return &RemoteProvider{client: client}
}

func (p *RemoteProvider) Send(ctx context.Context, to, body string) error {
	ok, errMsg := p.client.SendSMS(ctx, NormalizeNumber(to), body)
	if !ok {
		if errMsg == "" {
			errMsg = "upstream delivery failed"
		}
		return errors.New("sms: " + errMsg)
	}
	return nil
}
