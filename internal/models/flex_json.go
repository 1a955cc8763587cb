package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// The raw source documents are produced by three different extractors and
// disagree on scalar encoding: the .bin extractor quotes every number, the
// CDN dump uses native JSON numbers, and both occasionally emit a single
// scalar where a per-rank array belongs. FlexFloat and FlexFloats accept
// all of those shapes and coerce to float64 transparently.

// FlexFloat is a float64 that also accepts a quoted number or null.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*f = 0
		return nil
	}
	if len(s) > 1 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("flex float: %w", err)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return fmt.Errorf("flex float %q: %w", str, err)
		}
		*f = FlexFloat(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex float: %w", err)
	}
	*f = FlexFloat(n)
	return nil
}

// Float returns the plain float64 value.
func (f FlexFloat) Float() float64 { return float64(f) }

// FlexFloats is a per-rank value sequence that also accepts a bare scalar,
// quoted numbers inside the array, or null.
type FlexFloats []float64

func (f *FlexFloats) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*f = nil
		return nil
	}
	if len(s) > 0 && s[0] == '[' {
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("flex floats: %w", err)
		}
		out := make([]float64, 0, len(raw))
		for _, r := range raw {
			var v FlexFloat
			if err := v.UnmarshalJSON(r); err != nil {
				return err
			}
			out = append(out, v.Float())
		}
		*f = out
		return nil
	}
	// Scalar where an array belongs: treat as a single-rank sequence.
	var v FlexFloat
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}
	*f = []float64{v.Float()}
	return nil
}

// Floats returns a copy as a plain slice.
func (f FlexFloats) Floats() []float64 {
	if len(f) == 0 {
		return nil
	}
	out := make([]float64, len(f))
	copy(out, f)
	return out
}

// First returns the rank-1 value, or fallback when the sequence is empty.
func (f FlexFloats) First(fallback float64) float64 {
	if len(f) == 0 {
		return fallback
	}
	return f[0]
}

// Last returns the max-rank value, or fallback when the sequence is empty.
func (f FlexFloats) Last(fallback float64) float64 {
	if len(f) == 0 {
		return fallback
	}
	return f[len(f)-1]
}
