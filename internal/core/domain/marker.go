package domain

import "time"

// Marker records that a fingerprint was last built successfully.
// Only the presence of a marker matters for cache decisions; its content is informational.
type Marker struct {
	Fingerprint Fingerprint `json:"fingerprint,omitzero"`
	BuiltAt     time.Time   `json:"built_at,omitzero"`
}
