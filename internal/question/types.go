package question

import (
	"errors"
	"fmt"
)

// Type tags the interaction style of a question.
type Type string

const (
	TypeMultipleChoice   Type = "multiple_choice"
	TypeTrueFalse        Type = "true_false"
	TypeFillBlank        Type = "fill_blank"
	TypeShapeRecognition Type = "shape_recognition"
	// Only multiple choice questions are generated today.
)

// Difficulty constants for readability.
const (
	DifficultyEasy   = 1
	DifficultyMedium = 2
	DifficultyHard   = 3
)

// Category is one of the fixed topical buckets of the bank.
type Category string

const (
	CategoryShapes        Category = "plane_shapes"
	CategorySubtraction   Category = "subtraction_within_20"
	CategoryNumbers       Category = "numbers_to_100"
	CategoryMentalMath    Category = "mental_math_to_100"
	CategoryWrittenMath   Category = "written_math_to_100"
	CategoryRelationships Category = "quantity_relationships"
	CategoryCurrency      Category = "currency"
)

// Categories lists every category in bank order.
var Categories = []Category{
	CategoryShapes,
	CategorySubtraction,
	CategoryNumbers,
	CategoryMentalMath,
	CategoryWrittenMath,
	CategoryRelationships,
	CategoryCurrency,
}

var displayNames = map[Category]string{
	CategoryShapes:        "Plane shapes",
	CategorySubtraction:   "Subtraction with borrowing within 20",
	CategoryNumbers:       "Numbers to 100",
	CategoryMentalMath:    "Mental math to 100",
	CategoryWrittenMath:   "Written math to 100",
	CategoryRelationships: "Quantity relationships",
	CategoryCurrency:      "Knowing money (RMB)",
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	_, ok := displayNames[c]
	return ok
}

// DisplayName returns the human readable category title.
func (c Category) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// Question is immutable once generated. Skill and Operands are generation
// metadata: the sub-skill the item exercises and the numbers its prompt was
// built from (empty for fixed-content items).
type Question struct {
	ID            string   `json:"id"`
	Type          Type     `json:"type"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
	Difficulty    int      `json:"difficulty"`
	Category      Category `json:"category"`
	Skill         string   `json:"skill"`
	Operands      []int    `json:"operands,omitempty"`
}

var (
	ErrOptionCount      = errors.New("question must have 3 or 4 options")
	ErrDuplicateOption  = errors.New("question options must be distinct")
	ErrAnswerOutOfRange = errors.New("correct answer index out of range")
	ErrDifficulty       = errors.New("difficulty must be between 1 and 3")
	ErrUnknownCategory  = errors.New("unknown category")
)

// Validate checks the structural invariants every generated question must hold.
func (q Question) Validate() error {
	if len(q.Options) < 3 || len(q.Options) > 4 {
		return fmt.Errorf("%s: %w (got %d)", q.ID, ErrOptionCount, len(q.Options))
	}
	seen := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		if _, dup := seen[opt]; dup {
			return fmt.Errorf("%s: %w (%q)", q.ID, ErrDuplicateOption, opt)
		}
		seen[opt] = struct{}{}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return fmt.Errorf("%s: %w (%d)", q.ID, ErrAnswerOutOfRange, q.CorrectAnswer)
	}
	if q.Difficulty < DifficultyEasy || q.Difficulty > DifficultyHard {
		return fmt.Errorf("%s: %w (%d)", q.ID, ErrDifficulty, q.Difficulty)
	}
	if !q.Category.Valid() {
		return fmt.Errorf("%s: %w (%q)", q.ID, ErrUnknownCategory, q.Category)
	}
	return nil
}

// CorrectOption returns the text of the correct option.
func (q Question) CorrectOption() string {
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectAnswer]
}

// Clone returns a deep copy so callers can never alias pool storage.
func (q Question) Clone() Question {
	out := q
	out.Options = append([]string(nil), q.Options...)
	if q.Operands != nil {
		out.Operands = append([]int(nil), q.Operands...)
	}
	return out
}

// Statistics reports the generated pool size per category.
type Statistics map[Category]int
