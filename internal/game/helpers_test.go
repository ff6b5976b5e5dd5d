package game

import (
	"fmt"
	"sync"
	"time"

	"github.com/gokatarajesh/mathquest/internal/question"
)

var testNow = time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)

// fixtureQuestions returns n valid questions whose correct option is i%3.
func fixtureQuestions(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		a, b := i+2, i+1
		correct := a + b
		options := []string{
			fmt.Sprint(correct - 1),
			fmt.Sprint(correct + 1),
			fmt.Sprint(correct + 2),
		}
		pos := i % 3
		options[pos] = fmt.Sprint(correct)
		qs[i] = question.Question{
			ID:            fmt.Sprintf("fixture_%d", i),
			Type:          question.TypeMultipleChoice,
			Prompt:        fmt.Sprintf("%d + %d = ?", a, b),
			Options:       options,
			CorrectAnswer: pos,
			Explanation:   fmt.Sprintf("%d + %d = %d", a, b, correct),
			Difficulty:    question.DifficultyEasy,
			Category:      question.CategoryMentalMath,
			Skill:         "fixture",
			Operands:      []int{a, b},
		}
	}
	return qs
}

// wrongOption returns an option index other than the correct one.
func wrongOption(q question.Question) int {
	return (q.CorrectAnswer + 1) % len(q.Options)
}

// stubSource hands out fixture questions and counts draws.
type stubSource struct {
	mu    sync.Mutex
	draws int
	empty bool
}

func (s *stubSource) Sample(count int) []question.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws++
	if s.empty {
		return nil
	}
	return fixtureQuestions(count)
}

func (s *stubSource) ByCategory(category question.Category, count int) []question.Question {
	qs := s.Sample(count)
	for i := range qs {
		qs[i].Category = category
	}
	return qs
}

func (s *stubSource) Statistics() question.Statistics {
	return question.Statistics{question.CategoryMentalMath: 10}
}
