package aiquiz

import "math/rand/v2"

const multipleChoiceWeight = 0.8

// TypeSampler picks the type of the next question.
type TypeSampler func() QuestionType

func DefaultSampler() QuestionType {
	if rand.Float64() < multipleChoiceWeight {
		return MultipleChoice
	}
	return MultipleAnswer
}

// SequenceSampler replays types in order and then repeats the last one.
func SequenceSampler(types ...QuestionType) TypeSampler {
	i := 0
	return func() QuestionType {
		if len(types) == 0 {
			return MultipleChoice
		}
		t := types[min(i, len(types)-1)]
		i++
		return t
	}
}
