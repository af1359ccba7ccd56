package domain

import "strings"

// FingerprintSeparator joins the environment, identity and digest of a fingerprint.
const FingerprintSeparator = "_"

// Fingerprint identifies a configuration together with a summary of its watched inputs.
// It has the form {environment}_{identity}_{digest}.
type Fingerprint string

// NewFingerprint assembles a fingerprint from its parts.
func NewFingerprint(environment string, identity Identity, digest string) Fingerprint {
	return Fingerprint(IdentityPrefix(environment, identity) + FingerprintSeparator + digest)
}

// IdentityPrefix returns the {environment}_{identity} prefix shared by every
// cache entry of one unit, valid or stale.
func IdentityPrefix(environment string, identity Identity) string {
	return environment + FingerprintSeparator + identity.String()
}

// EntryPrefix returns the prefix used to purge the entries of one unit.
// It ends with the separator so identity 1 never matches the entries of identity 10.
func EntryPrefix(environment string, identity Identity) string {
	return IdentityPrefix(environment, identity) + FingerprintSeparator
}

// String returns the fingerprint as a plain string.
func (f Fingerprint) String() string {
	return string(f)
}

// Prefix returns the {environment}_{identity} part of the fingerprint.
func (f Fingerprint) Prefix() string {
	i := strings.LastIndex(string(f), FingerprintSeparator)
	if i < 0 {
		return ""
	}
	return string(f[:i])
}

// Digest returns the hexadecimal digest part of the fingerprint.
func (f Fingerprint) Digest() string {
	i := strings.LastIndex(string(f), FingerprintSeparator)
	if i < 0 {
		return string(f)
	}
	return string(f[i+1:])
}
