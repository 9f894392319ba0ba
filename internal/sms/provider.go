package sms

import (
	"context"
	"strings"
)

// Provider delivers one text message. Implementations must not mutate
// application state; the calling service records the attempt in the log.
type Provider interface {
	Send(ctx context.Context, to, body string) error
}

// NormalizeNumber converts local Iraqi numbers to E.164. Numbers already in
// international form pass through unchanged.
func NormalizeNumber(raw string) string {
	n := strings.TrimSpace(raw)
	n = strings.ReplaceAll(n, " ", "")
	n = strings.ReplaceAll(n, "-", "")
	if strings.HasPrefix(n, "+") {
		return n
	}
	if strings.HasPrefix(n, "00") {
		return "+" + n[2:]
	}
	if strings.HasPrefix(n, "07") {
		return "+964" + n[1:]
	}
	return n
}
