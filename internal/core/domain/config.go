// Package domain contains the core types of the build cache.
package domain

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// SourceMethod selects how a watched file contributes to a fingerprint.
type SourceMethod string

const (
	// SourceMethodMtime contributes the file path and its modification time.
	// It is cheap, but misses changes that keep the timestamp and invalidates on touch-without-change.
	SourceMethodMtime SourceMethod = "mtime"
	// SourceMethodContent contributes the full file content.
	// It is precise, but reads every watched byte on every check.
	SourceMethodContent SourceMethod = "content"
	// SourceMethodChecksum contributes the file path and an xxhash of its content.
	// It is as precise as content with a fixed-size contribution per file.
	SourceMethodChecksum SourceMethod = "checksum"
)

// DefaultSourceMethod is used when a watch declares no source method.
const DefaultSourceMethod = SourceMethodMtime

// ParseSourceMethod validates a user supplied source method.
// An empty string selects DefaultSourceMethod.
func ParseSourceMethod(s string) (SourceMethod, error) {
	switch SourceMethod(s) {
	case "":
		return DefaultSourceMethod, nil
	case SourceMethodMtime, SourceMethodContent, SourceMethodChecksum:
		return SourceMethod(s), nil
	default:
		return "", zerr.With(ErrInvalidSourceMethod, "source_method", s)
	}
}

// Identity distinguishes cache-able units that share one cache directory.
// Integer identities are stored in their decimal form, so IntIdentity(1) equals Identity("1").
type Identity string

// IntIdentity returns the identity for an integer id.
func IntIdentity(n int) Identity {
	return Identity(strconv.Itoa(n))
}

// String returns the textual form of the identity.
func (id Identity) String() string {
	return string(id)
}

// Watch lists the paths whose contents or metadata contribute to a fingerprint.
type Watch struct {
	Paths        []string
	SourceMethod SourceMethod
}

// WatchPaths returns a Watch over paths using the default source method.
func WatchPaths(paths ...string) Watch {
	return Watch{Paths: paths}
}

// Method returns the configured source method, falling back to DefaultSourceMethod.
func (w Watch) Method() SourceMethod {
	if w.SourceMethod == "" {
		return DefaultSourceMethod
	}
	return w.SourceMethod
}

// Configuration describes one cache-able unit of work.
// Every field, including Extra, is folded into the fingerprint.
type Configuration struct {
	// Environment is a short label such as "development" or "production".
	Environment string
	// Identity distinguishes units sharing one cache directory.
	Identity Identity
	// Watch lists the inputs whose changes invalidate the cache.
	Watch Watch
	// Entry is the opaque builder payload. An empty entry turns the build into a no-op.
	Entry any
	// Debug raises log verbosity for this unit.
	Debug bool
	// Build holds the settings of the builder itself, such as its command line and environment.
	// A change to any of them invalidates the cache like a change to the sources does.
	Build map[string]any
	// Extra holds arbitrary additional fields.
	// Keys that collide with the named fields above are shadowed by them.
	Extra map[string]any
}

// Validate checks the caller contract: environment and identity are required
// and must not contain FingerprintSeparator, so the prefixes of two units never overlap.
func (c Configuration) Validate() error {
	if c.Environment == "" {
		return zerr.With(ErrInvalidConfiguration, "missing", "environment")
	}
	if c.Identity == "" {
		return zerr.With(ErrInvalidConfiguration, "missing", "identity")
	}
	for field, value := range map[string]string{"environment": c.Environment, "identity": c.Identity.String()} {
		if strings.Contains(value, FingerprintSeparator) {
			return zerr.With(zerr.With(ErrInvalidConfiguration, "field", field), "value", value)
		}
	}
	return nil
}

// Prefix returns the {environment}_{identity} scope of this configuration.
func (c Configuration) Prefix() string {
	return IdentityPrefix(c.Environment, c.Identity)
}

// HasEntry reports whether the builder has anything to build.
// nil, empty strings, and empty maps, slices and arrays count as nothing.
func (c Configuration) HasEntry() bool {
	if c.Entry == nil {
		return false
	}
	v := reflect.ValueOf(c.Entry)
	switch v.Kind() {
	case reflect.String, reflect.Map, reflect.Slice, reflect.Array:
		return v.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !v.IsNil()
	default:
		return true
	}
}

// Canonical returns the deterministic serialized form of the configuration.
// encoding/json sorts map keys, so two configurations that differ only in
// the order their Extra or Entry maps were built serialize identically.
func (c Configuration) Canonical() ([]byte, error) {
	paths := c.Watch.Paths
	if paths == nil {
		paths = []string{}
	}

	doc := make(map[string]any, len(c.Extra)+6)
	for k, v := range c.Extra {
		doc[k] = v
	}
	doc["environment"] = c.Environment
	doc["identity"] = c.Identity.String()
	doc["watch"] = map[string]any{
		"paths":        paths,
		"sourceMethod": string(c.Watch.Method()),
	}
	doc["entry"] = c.Entry
	doc["debug"] = c.Debug
	if len(c.Build) > 0 {
		doc["build"] = c.Build
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, ErrConfigSerializeFailed.Error()), "prefix", c.Prefix())
	}
	return data, nil
}
