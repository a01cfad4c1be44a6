package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext_Wraps(t *testing.T) {
	s := New(3)
	s = s.Next()
	assert.Equal(t, 1, s.Index)
	s = s.Next().Next()
	assert.Equal(t, 0, s.Index)
}

func TestPrev_Wraps(t *testing.T) {
	s := New(5).Prev()
	assert.Equal(t, 4, s.Index)
	assert.Equal(t, 3, s.Prev().Index)
}

func TestJump(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  int
	}{
		{name: "in range", index: 2, want: 2},
		{name: "last", index: 4, want: 4},
		{name: "too large", index: 5, want: 1},
		{name: "negative", index: -1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(5).Next().Jump(tt.index)
			assert.Equal(t, tt.want, s.Index)
		})
	}
}

func TestEmptyCarousel(t *testing.T) {
	s := New(0)
	assert.False(t, s.Active())
	assert.Equal(t, s, s.Next())
	assert.Equal(t, s, s.Prev())
	assert.Equal(t, s, s.Advance())
	assert.Equal(t, s, s.Jump(0))

	assert.Equal(t, 0, New(-3).Len)
}

func TestAdvanceFullCycle(t *testing.T) {
	s := New(4)
	seen := []int{}
	for i := 0; i < 8; i++ {
		s = s.Advance()
		seen = append(seen, s.Index)
	}
	assert.Equal(t, []int{1, 2, 3, 0, 1, 2, 3, 0}, seen)
	assert.True(t, s.Active())
}
