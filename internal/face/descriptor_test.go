package face_test

import (
	"math"
	"testing"

	"github.com/jagatraya2508/absensi/internal/face"
	faceerrors "github.com/jagatraya2508/absensi/internal/face/errors"

	"github.com/stretchr/testify/assert"
)

func filled(v float64) face.Descriptor {
	d := make(face.Descriptor, face.DescriptorLength)
	for i := range d {
		d[i] = v
	}
	return d
}

// offsetFirst returns a copy of d whose first component is moved by delta,
// giving a distance of exactly |delta|.
func offsetFirst(d face.Descriptor, delta float64) face.Descriptor {
	cp := append(face.Descriptor(nil), d...)
	cp[0] += delta
	return cp
}

func TestCompare(t *testing.T) {
	base := filled(0.1)

	t.Run("identical descriptors match fully", func(t *testing.T) {
		r := face.Compare(base, base)
		assert.Equal(t, 0.0, r.Distance)
		assert.True(t, r.Match)
		assert.Equal(t, 100, r.SimilarityPercent)
	})

	t.Run("close descriptor matches", func(t *testing.T) {
		r := face.Compare(base, offsetFirst(base, 0.3))
		assert.InDelta(t, 0.3, r.Distance, 1e-9)
		assert.True(t, r.Match)
		assert.Equal(t, 70, r.SimilarityPercent)
	})

	t.Run("threshold distance does not match", func(t *testing.T) {
		r := face.Compare(base, offsetFirst(base, 0.7))
		assert.False(t, r.Match)
		assert.Equal(t, 30, r.SimilarityPercent)
	})

	t.Run("far descriptor clamps similarity at zero", func(t *testing.T) {
		r := face.Compare(base, offsetFirst(base, 2.5))
		assert.InDelta(t, 2.5, r.Distance, 1e-9)
		assert.False(t, r.Match)
		assert.Equal(t, 0, r.SimilarityPercent)
	})

	t.Run("nil input never matches", func(t *testing.T) {
		for _, r := range []face.MatchResult{face.Compare(nil, base), face.Compare(base, nil), face.Compare(nil, nil)} {
			assert.Equal(t, face.MatchResult{Distance: 1, Match: false, SimilarityPercent: 0}, r)
		}
	})

	t.Run("symmetric", func(t *testing.T) {
		other := offsetFirst(base, 0.42)
		assert.Equal(t, face.Compare(base, other), face.Compare(other, base))
	})

	t.Run("minimum similarity follows threshold", func(t *testing.T) {
		assert.Equal(t, face.MinimumSimilarityPercent, int(math.Round((1-face.MatchThreshold)*100)))
	})
}

func TestValidateDescriptor(t *testing.T) {
	assert.NoError(t, face.ValidateDescriptor(filled(0)))
	assert.ErrorIs(t, face.ValidateDescriptor(nil), faceerrors.ErrInvalidDescriptorLength)
	assert.ErrorIs(t, face.ValidateDescriptor(make(face.Descriptor, 127)), faceerrors.ErrInvalidDescriptorLength)
	assert.ErrorIs(t, face.ValidateDescriptor(make(face.Descriptor, 129)), faceerrors.ErrInvalidDescriptorLength)
}

func TestDescriptor_ScanValue(t *testing.T) {
	d := face.Descriptor{0.5, -0.25}

	v, err := d.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[0.5,-0.25]", v)

	var scanned face.Descriptor
	assert.NoError(t, scanned.Scan([]byte("[0.5,-0.25]")))
	assert.Equal(t, d, scanned)

	var empty face.Descriptor
	assert.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)

	nilValue, err := face.Descriptor(nil).Value()
	assert.NoError(t, err)
	assert.Nil(t, nilValue)

	assert.Error(t, scanned.Scan(42))
}
