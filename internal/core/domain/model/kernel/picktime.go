package kernel

import (
	"time"

	"picking/internal/pkg/errs"
)

// PickTimeLayout is the wire format for picked_at timestamps exchanged with
// handheld clients: "Mon, 02 Jan 2006 15:04:05 MST" (RFC 1123).
const PickTimeLayout = time.RFC1123

// ParsePickTime parses a picked_at timestamp from its wire representation.
// Returns a ValueIsInvalidError if the string does not match PickTimeLayout;
// callers treat that as a per-record failure, never as a batch failure.
func ParsePickTime(s string) (time.Time, error) {
	t, err := time.Parse(PickTimeLayout, s)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("picked_at", err)
	}
	return t, nil
}

// FormatPickTime renders a timestamp in the wire format expected by handheld
// clients.
func FormatPickTime(t time.Time) string {
	return t.Format(PickTimeLayout)
}
