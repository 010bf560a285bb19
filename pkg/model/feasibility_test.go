package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCapacity(t *testing.T) {
	capacities := []int{2, 1, 0}

	t.Run("Within capacity", func(t *testing.T) {
		assert.True(t, ValidateCapacity(Assignment{"S1": {0, 1}, "S2": {0}, "S3": {}}, capacities))
	})

	t.Run("Empty assignment", func(t *testing.T) {
		assert.True(t, ValidateCapacity(Assignment{}, capacities))
		assert.True(t, ValidateCapacity(Assignment{}, nil))
	})

	t.Run("Capacity exceeded", func(t *testing.T) {
		assert.False(t, ValidateCapacity(Assignment{"S1": {1}, "S2": {1}}, capacities))
		assert.False(t, ValidateCapacity(Assignment{"S1": {0}, "S2": {0}, "S3": {0}}, capacities))
	})

	t.Run("Zero capacity course", func(t *testing.T) {
		assert.False(t, ValidateCapacity(Assignment{"S1": {2}}, capacities))
	})

	t.Run("Unknown course index", func(t *testing.T) {
		assert.False(t, ValidateCapacity(Assignment{"S1": {3}}, capacities))
		assert.False(t, ValidateCapacity(Assignment{"S1": {-1}}, capacities))
	})
}
