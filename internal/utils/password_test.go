package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordWeaknesses(t *testing.T) {
	assert.Empty(t, PasswordWeaknesses("Tr4vel-Planner!"))
	assert.Equal(t, []string{"shorter than 12 characters", "no uppercase letter", "no digit", "no special character"}, PasswordWeaknesses("secret"))
	assert.Equal(t, []string{"no special character"}, PasswordWeaknesses("TravelPlanner2025"))
}
