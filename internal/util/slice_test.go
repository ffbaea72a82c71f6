package util_test

import (
	"testing"

	"github.com/robgonnella/btscan/internal/util"
	"github.com/stretchr/testify/assert"
)

func TestSlice(t *testing.T) {
	t.Run("finds included values", func(st *testing.T) {
		assert.True(st, util.SliceIncludes([]string{"minimal", "full"}, "full"))
		assert.False(st, util.SliceIncludes([]string{"minimal", "full"}, "fast"))
	})

	t.Run("removes duplicates keeping order", func(st *testing.T) {
		assert.Equal(st, []int{3, 1, 2}, util.Unique([]int{3, 1, 3, 2, 1}))
	})
}
