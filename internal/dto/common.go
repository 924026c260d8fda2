package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// LenientInt accepts JSON numbers and numeric strings. Anything else decodes to 0 so
// pagination input can be coerced instead of rejected. Values are clamped to the int32 range.
type LenientInt int

func (n *LenientInt) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if v, err := strconv.ParseInt(string(b), 10, 32); err == nil {
		*n = LenientInt(v)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil && !math.IsNaN(f) {
		*n = LenientInt(math.Max(math.MinInt32, math.Min(math.MaxInt32, math.Trunc(f))))
		return nil
	}
	*n = 0
	return nil
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
