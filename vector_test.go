package stage3d

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func BenchmarkMathInternalVector(b *testing.B) {

	b.StopTimer()

	maxSize := 1200

	vecs := make([]Vector, 0, maxSize)

	for i := 0; i < maxSize; i++ {
		vecs = append(vecs, NewVector(rand.Float64(), rand.Float64(), rand.Float64()))
	}

	b.ReportAllocs()
	b.StartTimer()

	for z := 0; z < b.N; z++ {
		for i := 0; i < maxSize-1; i++ {
			vecs[i] = vecs[i].Add(vecs[i+1]).Cross(vecs[i+1])
		}
	}

}

func TestVectorMath(t *testing.T) {

	a := NewVector(1, 2, 3)
	b := NewVector(-2, 0, 4)

	assert.Equal(t, NewVector(-1, 2, 7), a.Add(b))
	assert.Equal(t, NewVector(3, 2, -1), a.Sub(b))
	assert.InDelta(t, 10.0, a.Dot(b), 1e-12)
	assert.Equal(t, NewVector(8, -10, 4), a.Cross(b))
	assert.True(t, WorldRight.Cross(WorldUp).Equals(WorldBackward))

	assert.InDelta(t, 1, a.Unit().Magnitude(), 1e-12)
	assert.True(t, NewVectorZero().Unit().IsZero(), "a zero vector stays zero when normalized")

	assert.True(t, a.Lerp(b, 0.5).Equals(NewVector(-0.5, 1, 3.5)))
	assert.InDelta(t, 5, NewVector(0, 3, 0).Distance(NewVector(4, 0, 0)), 1e-12)

}
