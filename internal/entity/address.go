package domain

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrIncompleteAddress = errors.New("delivery address incomplete")

// DeliveryAddress is the structured delivery destination. Earlier storefront
// revisions persisted it as a bare free-text string; ParseStoredAddress
// accepts both shapes so old sessions keep working.
type DeliveryAddress struct {
	Country string `json:"country"`
	State   string `json:"state"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Validate requires all four fields to be non-blank before checkout may
// proceed. Whitespace-only values count as blank.
func (a DeliveryAddress) Validate() error {
	if strings.TrimSpace(a.Country) == "" ||
		strings.TrimSpace(a.State) == "" ||
		strings.TrimSpace(a.Address) == "" ||
		strings.TrimSpace(a.Phone) == "" {
		return ErrIncompleteAddress
	}
	return nil
}

// ParseStoredAddress decodes an address read back from the session store.
// Legacy sessions hold a JSON string (or even a raw unquoted string); current
// sessions hold the structured object. An empty payload yields a zero value.
func ParseStoredAddress(raw []byte) (DeliveryAddress, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return DeliveryAddress{}, nil
	}
	if strings.HasPrefix(s, "{") {
		var a DeliveryAddress
		if err := json.Unmarshal([]byte(s), &a); err != nil {
			return DeliveryAddress{}, err
		}
		return a, nil
	}
	// legacy string form: the whole thing is the free-text location
	var legacy string
	if err := json.Unmarshal([]byte(s), &legacy); err != nil {
		legacy = s
	}
	return DeliveryAddress{Address: legacy}, nil
}
