package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidSample(t *testing.T) {
	require.Equal(t, Sample(math.MinInt32), InvalidSample)
}
