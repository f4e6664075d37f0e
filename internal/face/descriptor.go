package face

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"

	faceerrors "github.com/jagatraya2508/absensi/internal/face/errors"
)

const (
	DescriptorLength = 128
	MatchThreshold   = 0.6
	// MinimumSimilarityPercent is the similarity reported at exactly MatchThreshold.
	MinimumSimilarityPercent = 40
)

// Descriptor is a face embedding, stored as a JSON array of numbers.
type Descriptor []float64

func (d Descriptor) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal([]float64(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *Descriptor) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("face descriptor: unsupported source %T", src)
	}

	var values []float64
	if err := json.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("face descriptor: %w", err)
	}
	*d = values
	return nil
}

type MatchResult struct {
	Distance          float64 `json:"distance"`
	Match             bool    `json:"match"`
	SimilarityPercent int     `json:"similarity"`
}

var noMatch = MatchResult{Distance: 1, Match: false, SimilarityPercent: 0}

// Compare returns the euclidean distance between two descriptors. A nil or
// dimension-mismatched pair never matches.
func Compare(a, b Descriptor) MatchResult {
	if a == nil || b == nil || len(a) != len(b) {
		return noMatch
	}

	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	d := math.Sqrt(sum)

	return MatchResult{
		Distance:          d,
		Match:             d < MatchThreshold,
		SimilarityPercent: similarity(d),
	}
}

func similarity(d float64) int {
	return int(math.Round(math.Max(0, (1-d)*100)))
}

func ValidateDescriptor(d Descriptor) error {
	if len(d) != DescriptorLength {
		return faceerrors.ErrInvalidDescriptorLength.WithDetails(map[string]int{
			"expected": DescriptorLength,
			"actual":   len(d),
		})
	}
	return nil
}
