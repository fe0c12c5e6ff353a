// Package booking holds the lifecycle rules for booking records that do
// not depend on the store: vaccination certificate validation, the
// services list codec, and partial-update merge semantics. Handlers run
// these checks before any row is written so a failed validation never
// leaves a partial write behind.
package booking

import (
	"errors"
	"strings"
)

// MaxCertificateLen caps the encoded certificate size. A 1 MiB source
// file grows to roughly 1.37 MiB of base64 text, so the ceiling is set
// to 1.4 * 1024 * 1024 encoded characters.
const MaxCertificateLen = 14 * 1024 * 1024 / 10

// certificatePrefix is the required data-URI marker at the start of an
// encoded certificate payload.
const certificatePrefix = "data:"

// ErrCertificateTooLarge is returned when the encoded payload exceeds
// MaxCertificateLen, independent of its content.
var ErrCertificateTooLarge = errors.New("vaccination certificate too large")

// ErrCertificateFormat is returned when the payload does not begin with
// the data-URI prefix.
var ErrCertificateFormat = errors.New("invalid vaccination certificate format")

// ValidateCertificate checks an optional certificate payload. A nil or
// empty payload passes; a present payload must fit the size ceiling and
// carry the data-URI prefix.
func ValidateCertificate(cert *string) error {
	if cert == nil || *cert == "" {
		return nil
	}
	if len(*cert) > MaxCertificateLen {
		return ErrCertificateTooLarge
	}
	if !strings.HasPrefix(*cert, certificatePrefix) {
		return ErrCertificateFormat
	}
	return nil
}
