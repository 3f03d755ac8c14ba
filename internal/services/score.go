package services

import "strings"

// Scores accumulates the four signed axis totals. A positive value favors
// the E/S/T/J pole of its axis, a zero or negative value the I/N/F/P pole.
type Scores struct {
	EI int `json:"EI"`
	SN int `json:"SN"`
	TF int `json:"TF"`
	JP int `json:"JP"`
}

// Classify maps slider answers (0..5, aligned by position with questions)
// to the resolved four-letter type and the axis score vector.
//
// Slider positions map to the symmetric range -5..+5 with no neutral value:
// 0 is fully option A (-5), 5 fully option B (+5), 2 and 3 the minimal
// lean (-1/+1). Each contribution is multiplied by the question weight.
// When option A carries the E/S/T/J pole the weighted value is negated so
// that a positive axis total always means that pole, independent of which
// side the authored question put it on.
//
// Classify is a pure function: no validation, no I/O, same output for the
// same input. Indexes without a matching question are skipped; completeness
// is the caller's responsibility.
func Classify(answers []int, questions []*Question) (string, Scores) {
	var scores Scores

	for i, v := range answers {
		if i >= len(questions) || questions[i] == nil {
			continue
		}
		q := questions[i]

		raw := v*2 - 5
		weighted := raw * q.Weight
		if strings.Contains("ESTJ", q.OptionAValue) && q.OptionAValue != "" {
			weighted = -weighted
		}

		switch q.Axis {
		case "EI":
			scores.EI += weighted
		case "SN":
			scores.SN += weighted
		case "TF":
			scores.TF += weighted
		case "JP":
			scores.JP += weighted
		}
	}

	return scores.Type(), scores
}

// Type resolves the four letters from the score signs. Exactly zero picks
// the second pole, matching the strict >0 comparison of the accumulator.
func (s Scores) Type() string {
	var b strings.Builder
	if s.EI > 0 {
		b.WriteByte('E')
	} else {
		b.WriteByte('I')
	}
	if s.SN > 0 {
		b.WriteByte('S')
	} else {
		b.WriteByte('N')
	}
	if s.TF > 0 {
		b.WriteByte('T')
	} else {
		b.WriteByte('F')
	}
	if s.JP > 0 {
		b.WriteByte('J')
	} else {
		b.WriteByte('P')
	}
	return b.String()
}
