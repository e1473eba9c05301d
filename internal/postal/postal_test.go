package postal

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"01310100", "01310100", true},
		{"01310-100", "01310100", true},
		{" 01.310-100 ", "01310100", true},
		{"123", "123", false},
		{"", "", false},
		{"013101001", "013101001", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeCode(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, ok)
		})
	}
}

func TestLookupError(t *testing.T) {
	t.Run("message includes backend, category and code", func(t *testing.T) {
		err := NewLookupError(CategoryNotFound, "viacep", "00000000", "postal code not found", nil)
		assert.Equal(t, "postal lookup viacep [not_found] 00000000: postal code not found", err.Error())
	})

	t.Run("unwraps the underlying error", func(t *testing.T) {
		err := NewLookupError(CategoryTimeout, "viacep", "01310100", "request timeout", context.DeadlineExceeded)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "context deadline exceeded")
	})

	t.Run("category survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("fill: %w", NewLookupError(CategoryNotFound, "viacep", "00000000", "x", nil))
		assert.Equal(t, CategoryNotFound, GetCategory(err))
		assert.True(t, IsNotFound(err))
	})

	t.Run("foreign errors are transport failures", func(t *testing.T) {
		assert.Equal(t, CategoryTransport, GetCategory(errors.New("connection reset")))
		assert.False(t, IsNotFound(errors.New("connection reset")))
		assert.False(t, IsNotFound(nil))
	})
}
