package services

import "fmt"

// ContentStore abstracts the read side of the authored quiz content.
type ContentStore interface {
	ListQuestions(locale string) []*Question
	GetType(mbtiType, locale string) *PersonalityType
	GetTypeByCode(typeCode, locale string) *PersonalityType
	ListTypes(locale string) []*PersonalityType
}

// ContentService serves questions and personality-type descriptions with
// the single-level locale fallback policy: a lookup that yields nothing in
// the requested locale is retried once against DefaultLocale, never more.
type ContentService struct {
	store ContentStore
}

func NewContentService(store ContentStore) *ContentService {
	return &ContentService{store: store}
}

// QuestionsWithFallback returns the active questions for locale ordered by
// question number, falling back to the default locale when none exist.
func (s *ContentService) QuestionsWithFallback(locale string) []*Question {
	qs := s.store.ListQuestions(locale)
	if len(qs) == 0 && locale != DefaultLocale {
		qs = s.store.ListQuestions(DefaultLocale)
	}
	return qs
}

// TypeWithFallback looks up the description for an MBTI type in locale,
// retrying the default locale on a miss.
func (s *ContentService) TypeWithFallback(mbtiType, locale string) *PersonalityType {
	pt := s.store.GetType(mbtiType, locale)
	if pt == nil && locale != DefaultLocale {
		pt = s.store.GetType(mbtiType, DefaultLocale)
	}
	return pt
}

// TypeByCodeWithFallback is TypeWithFallback keyed by the short type code.
func (s *ContentService) TypeByCodeWithFallback(typeCode, locale string) *PersonalityType {
	pt := s.store.GetTypeByCode(typeCode, locale)
	if pt == nil && locale != DefaultLocale {
		pt = s.store.GetTypeByCode(typeCode, DefaultLocale)
	}
	return pt
}

// TypesForLocale lists the active type descriptions authored in locale,
// ordered by MBTI type. The index page shows only what the locale has, so
// no fallback applies here.
func (s *ContentService) TypesForLocale(locale string) []*PersonalityType {
	return s.store.ListTypes(locale)
}

var axisPoles = map[string][2]string{
	"EI": {"E", "I"},
	"SN": {"S", "N"},
	"TF": {"T", "F"},
	"JP": {"J", "P"},
}

// ValidateQuestion enforces the authoring invariants the scoring engine
// depends on: the two option values must be the opposing poles of the
// question's axis (in either order), the number and weight positive, the
// locale and text present. Violations would silently misclassify results,
// so they are rejected at import time.
func ValidateQuestion(q *Question) error {
	if q == nil {
		return NewInvalidError("question required")
	}
	poles, ok := axisPoles[q.Axis]
	if !ok {
		return NewInvalidError(fmt.Sprintf("unknown axis %q", q.Axis))
	}
	a, b := q.OptionAValue, q.OptionBValue
	if !(a == poles[0] && b == poles[1]) && !(a == poles[1] && b == poles[0]) {
		return NewInvalidError(fmt.Sprintf("option values %q/%q do not match axis %s", a, b, q.Axis))
	}
	if q.Number < 1 {
		return NewInvalidError("question_number must be positive")
	}
	if q.Weight < 1 {
		return NewInvalidError("weight must be positive")
	}
	if q.Locale == "" {
		return NewInvalidError("locale required")
	}
	if q.Text == "" {
		return NewInvalidError("question_text required")
	}
	return nil
}

// ValidatePersonalityType checks the non-null narrative constraint and key
// identifiers before a type description is stored.
func ValidatePersonalityType(pt *PersonalityType) error {
	if pt == nil {
		return NewInvalidError("personality type required")
	}
	if !IsMBTIType(pt.MBTIType) {
		return NewInvalidError(fmt.Sprintf("unknown mbti type %q", pt.MBTIType))
	}
	if pt.Locale == "" {
		return NewInvalidError("locale required")
	}
	if pt.Title == "" {
		return NewInvalidError("title required")
	}
	if pt.BasicPersonality == "" || pt.LoveCharacteristics == "" ||
		pt.SuitablePartner == "" || pt.MatchingAdvice == "" {
		return NewInvalidError("narrative sections are required")
	}
	if pt.TypeCode != "" {
		if mbti, ok := CodeToMBTI(pt.TypeCode); !ok || mbti != pt.MBTIType {
			return NewInvalidError(fmt.Sprintf("type_code %q does not match %s", pt.TypeCode, pt.MBTIType))
		}
	}
	return nil
}
