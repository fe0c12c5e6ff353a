package booking

import "encoding/json"

// EncodeServices serializes a service-name list to the JSON array form
// stored in bookings.services. A nil list encodes as an empty array so
// the column never holds NULL or malformed text.
func EncodeServices(services []string) string {
	if services == nil {
		services = []string{}
	}
	b, err := json.Marshal(services)
	if err != nil {
		// a []string cannot fail to marshal; keep the column well formed anyway
		return "[]"
	}
	return string(b)
}

// DecodeServices parses the stored JSON array back into a list. Legacy
// rows with empty or malformed payloads decode to an empty list rather
// than failing the whole read.
func DecodeServices(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var services []string
	if err := json.Unmarshal([]byte(raw), &services); err != nil || services == nil {
		return []string{}
	}
	return services
}
