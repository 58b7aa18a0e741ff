package model

// Highlight marks an answer option for the client after the question has been
// answered. Until then every option carries HighlightDefault; is_correct is
// never sent before submission.
type Highlight string

const (
	HighlightDefault   Highlight = "DEFAULT"
	HighlightCorrect   Highlight = "CORRECT"
	HighlightIncorrect Highlight = "INCORRECT"
)

// Difficulty levels, stored as ints on the wire and in the database.
const (
	DifficultyEasy      = 1
	DifficultyMedium    = 2
	DifficultyHard      = 3
	DifficultyExtraHard = 4
)

var difficultyLabels = map[int]string{
	DifficultyEasy:      "easy",
	DifficultyMedium:    "medium",
	DifficultyHard:      "hard",
	DifficultyExtraHard: "extra_hard",
}

func ValidDifficulty(level int) bool {
	_, ok := difficultyLabels[level]
	return ok
}

func DifficultyLabel(level int) string {
	return difficultyLabels[level]
}
