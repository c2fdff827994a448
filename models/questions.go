package models

// moleculeQuestions is the canonical answer key for the memory game.
// Changing a correct answer here requires running the admin repair
// operation to backfill historical rows.
var moleculeQuestions = []MemoryQuestion{
	{
		Round:       1,
		Molecule:    "Aspirin",
		Description: "Pain reliever and anti-inflammatory",
		Options:     []string{"A", "B", "C", "D"},
		Correct:     "C",
	},
	{
		Round:       2,
		Molecule:    "Glutathione",
		Description: "Antioxidant that protects cells",
		Options:     []string{"A", "B", "C", "D"},
		Correct:     "A",
	},
	{
		Round:       3,
		Molecule:    "Dopamine",
		Description: "Neurotransmitter for movement and mood",
		Options:     []string{"A", "B", "C", "D"},
		Correct:     "D",
	},
}

// MoleculeQuestions returns the quiz rounds in order.
func MoleculeQuestions() []MemoryQuestion {
	out := make([]MemoryQuestion, len(moleculeQuestions))
	copy(out, moleculeQuestions)
	return out
}

// QuestionForRound returns the question for a 1-based round number.
func QuestionForRound(round int) (MemoryQuestion, bool) {
	for _, q := range moleculeQuestions {
		if q.Round == round {
			return q, true
		}
	}
	return MemoryQuestion{}, false
}
