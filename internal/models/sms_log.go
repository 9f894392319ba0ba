package models

// SMS log status values
const (
	SMSStatusSuccess = "SUCCESS"
	SMSStatusFailed  = "FAILED"
)

// SMSLog records one notification attempt. Append-only; admins may bulk-clear.
type SMSLog struct {
	ID        string `json:"id"`
	To        string `json:"to"`
	Body      string `json:"body"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}
