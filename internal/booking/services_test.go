package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeServices(t *testing.T) {
	assert.Equal(t, "[]", EncodeServices(nil))
	assert.Equal(t, "[]", EncodeServices([]string{}))
	assert.Equal(t, `["boarding","grooming"]`, EncodeServices([]string{"boarding", "grooming"}))
}

func TestDecodeServices(t *testing.T) {
	assert.Equal(t, []string{"boarding", "grooming"}, DecodeServices(`["boarding","grooming"]`))
	assert.Equal(t, []string{}, DecodeServices("[]"))
}

func TestDecodeServices_toleratesBadRows(t *testing.T) {
	for _, raw := range []string{"", "null", "not json", `{"a":1}`, `[1,2]`} {
		assert.Equal(t, []string{}, DecodeServices(raw), "raw %q", raw)
	}
}

func TestServicesRoundTrip(t *testing.T) {
	in := []string{"daycare", "training walk"}
	assert.Equal(t, in, DecodeServices(EncodeServices(in)))
}
