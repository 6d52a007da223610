package careerapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// MonthKey is the time-axis key of every trend point.
const MonthKey = "month"

// TrendPoint is one row of the trend series. Metric names are free-form, so the
// point keeps the keys in the order the server sent them.
type TrendPoint struct {
	Month  string
	Keys   []string
	Values map[string]float64
}

// Value returns the metric value for key and whether the point carries it.
func (p TrendPoint) Value(key string) (float64, bool) {
	v, ok := p.Values[key]
	return v, ok
}

func (p *TrendPoint) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("trend point: expected object")
	}

	out := TrendPoint{Values: make(map[string]float64)}
	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("trend point: unexpected key token %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("trend point %q: %w", key, err)
		}
		if !seen[key] {
			seen[key] = true
			out.Keys = append(out.Keys, key)
		}

		if key == MonthKey {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return fmt.Errorf("trend point month: %w", err)
			}
			out.Month = s
			continue
		}

		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return fmt.Errorf("trend point %q: %w", key, err)
		}
		out.Values[key] = f
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*p = out
	return nil
}
