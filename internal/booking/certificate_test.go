package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestValidateCertificate_absentPasses(t *testing.T) {
	assert.NoError(t, ValidateCertificate(nil))
	assert.NoError(t, ValidateCertificate(strPtr("")))
}

func TestValidateCertificate_validDataURI(t *testing.T) {
	cert := "data:application/pdf;base64,JVBERi0xLjQK"
	assert.NoError(t, ValidateCertificate(&cert))
}

func TestValidateCertificate_tooLarge(t *testing.T) {
	// One char over the ceiling; a data: prefix must not rescue it
	// because the size check runs first.
	cert := "data:" + strings.Repeat("a", MaxCertificateLen-4)
	assert.ErrorIs(t, ValidateCertificate(&cert), ErrCertificateTooLarge)
}

func TestValidateCertificate_atCeilingPasses(t *testing.T) {
	cert := "data:" + strings.Repeat("a", MaxCertificateLen-5)
	assert.Len(t, cert, MaxCertificateLen)
	assert.NoError(t, ValidateCertificate(&cert))
}

func TestValidateCertificate_badFormat(t *testing.T) {
	for _, cert := range []string{"JVBERi0xLjQK", "http://example.com/cert.pdf", "DATA:application/pdf;base64,x"} {
		assert.ErrorIs(t, ValidateCertificate(strPtr(cert)), ErrCertificateFormat, "payload %q", cert)
	}
}
