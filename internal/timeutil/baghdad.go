package timeutil

import "time"

// Baghdad is the agency's local time zone (UTC+3, no DST)
var Baghdad *time.Location

func init() {
	var err error
	Baghdad, err = time.LoadLocation("Asia/Baghdad")
	if err != nil {
		// Fallback: create fixed zone if Asia/Baghdad not available
		Baghdad = time.FixedZone("AST", 3*60*60)
	}
}

// Now returns the current time in Baghdad time
func Now() time.Time {
	return time.Now().In(Baghdad)
}

// Today returns the current date as an ISO date string in Baghdad time
func Today() string {
	return Now().Format("2006-01-02")
}

// Timestamp returns the current time formatted for SMS log entries
func Timestamp() string {
	return Now().Format(time.RFC3339)
}
