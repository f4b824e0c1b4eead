package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff_Delay(t *testing.T) {
	t.Parallel()
	b, err := NewBackoff(Config{})
	require.NoError(t, err)

	testCases := []struct {
		attempt int
		want    time.Duration
	}{
		{attempt: 0, want: time.Minute},
		{attempt: 1, want: time.Minute},
		{attempt: 2, want: 2 * time.Minute},
		{attempt: 3, want: 4 * time.Minute},
		{attempt: 6, want: 32 * time.Minute},
		{attempt: 7, want: time.Hour},
		{attempt: 20, want: time.Hour},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, b.Delay(tc.attempt), "attempt=%d", tc.attempt)
	}
}

func TestNewBackoff(t *testing.T) {
	t.Parallel()
	_, err := NewBackoff(Config{BaseDelay: time.Hour, MaxDelay: time.Minute})
	assert.Error(t, err)

	b, err := NewBackoff(Config{BaseDelay: time.Second, MaxDelay: 5 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, b.Delay(3))
	assert.Equal(t, 5*time.Second, b.Delay(4))
}
