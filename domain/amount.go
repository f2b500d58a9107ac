package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Amount is a currency value that decodes from either a JSON number or a
// numeric string, the way form inputs arrive from the client.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*a = 0
		return nil
	}
	if s, ok := raw.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			*a = 0
			return nil
		}
		raw = s
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return fmt.Errorf("invalid amount %s: %w", string(data), err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid amount %s: not a finite number", string(data))
	}
	*a = Amount(v)
	return nil
}

func (a Amount) Float64() float64 {
	return float64(a)
}
