package sms

import (
	"context"
	"sync"
)

// SentMessage is one message captured by the mock provider.
type SentMessage struct {
	To   string
	Body string
}

// MockProvider records messages instead of sending them. Used in tests and
// in deployments that have no SMS credentials yet.
type MockProvider struct {
	mu   sync.Mutex
	Sent []SentMessage
	Fail error
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Send(_ context.Context, to, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Sent = append(m.Sent, SentMessage{To: to, Body: body})
	return nil
}

func (m *MockProvider) Messages() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMessage(nil), m.Sent...)
}
