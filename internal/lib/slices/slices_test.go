package slices_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/quintans/noovo/internal/lib/slices"
	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	got := slices.Map([]int{1, 2, 3}, strconv.Itoa)
	assert.Equal(t, []string{"1", "2", "3"}, got)
}

func TestCollect_SkipsFailures(t *testing.T) {
	got := slices.Collect([]string{"1", "x", "3"}, "parsing number", strconv.Atoi)
	assert.Equal(t, []int{1, 3}, got)
}

func TestCollect_AllFail(t *testing.T) {
	got := slices.Collect([]int{1, 2}, "failing", func(int) (int, error) {
		return 0, errors.New("boom")
	})
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
