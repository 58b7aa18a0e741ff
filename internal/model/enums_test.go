package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifficultyLevels(t *testing.T) {
	assert.True(t, ValidDifficulty(DifficultyEasy))
	assert.True(t, ValidDifficulty(DifficultyExtraHard))
	assert.False(t, ValidDifficulty(0))
	assert.False(t, ValidDifficulty(5))

	assert.Equal(t, "easy", DifficultyLabel(DifficultyEasy))
	assert.Equal(t, "extra_hard", DifficultyLabel(DifficultyExtraHard))
	assert.Empty(t, DifficultyLabel(42))
}
