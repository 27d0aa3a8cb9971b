package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Millis is a unix timestamp in milliseconds, the backend's encoding for
// product and order dates. It decodes from a JSON number or numeric string.
type Millis int64

func MillisOf(t time.Time) Millis {
	return Millis(t.UnixMilli())
}

func (m Millis) Time() time.Time {
	return time.UnixMilli(int64(m))
}

func (m *Millis) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if s == "" {
		*m = 0
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Some documents carry an ISO date instead.
		t, terr := time.Parse(time.RFC3339, s)
		if terr != nil {
			return fmt.Errorf("millis: cannot decode %q", s)
		}
		*m = MillisOf(t)
		return nil
	}
	*m = Millis(n)
	return nil
}

// PriceTiers is a product's quantity price list. The backend stores it as a
// JSON-encoded string; decoding also accepts a plain array.
type PriceTiers []QuantityPrice

func (p PriceTiers) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	inner, err := json.Marshal([]QuantityPrice(p))
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(inner))
}

func (p *PriceTiers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*p = nil
			return nil
		}
		data = []byte(s)
	}
	var tiers []QuantityPrice
	if err := json.Unmarshal(data, &tiers); err != nil {
		return fmt.Errorf("quantity price list: %w", err)
	}
	*p = tiers
	return nil
}

// Encode renders the tiers in the form the add-product endpoint expects.
func (p PriceTiers) Encode() (string, error) {
	b, err := json.Marshal([]QuantityPrice(p))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
