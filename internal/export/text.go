// Package export serializes an ordered question sequence to plain text for
// the print/copy flow. It renders whatever order the listing pipeline
// produced and never reorders.
package export

import (
	"fmt"
	"strings"

	"github.com/questbank/questbank/internal/question"
)

// Render writes the questions as numbered plain text. Options are lettered
// A), B), ... in their stored order; answer lines appear only when
// includeAnswers is set.
func Render(qs []question.Question, includeAnswers bool) string {
	var b strings.Builder
	for i, q := range qs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, strings.TrimSpace(q.QuestionText))
		for j, opt := range q.OptionTexts() {
			fmt.Fprintf(&b, "   %s) %s\n", optionLetter(j), opt)
		}
		if includeAnswers && len(q.CorrectAnswer) > 0 {
			fmt.Fprintf(&b, "   Answer: %s\n", strings.Join(q.CorrectAnswer, ", "))
		}
	}
	return b.String()
}

// optionLetter labels options A..Z, then AA, AB, ... for oversized lists.
func optionLetter(i int) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < len(alphabet) {
		return string(alphabet[i])
	}
	return string(alphabet[i/len(alphabet)-1]) + string(alphabet[i%len(alphabet)])
}
