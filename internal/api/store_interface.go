package api

// Store is the persistence surface shared by the in-memory store and the
// SQLite store. Read methods return nil on a miss; write methods that can
// legitimately fail report it, the rest log and swallow driver errors.
type Store interface {
	AddQuestion(q *Question)
	UpdateQuestion(q *Question) bool
	ListQuestions(locale string) []*Question

	AddPersonalityType(pt *PersonalityType)
	UpdatePersonalityType(pt *PersonalityType) bool
	GetPersonalityType(mbtiType, locale string) *PersonalityType
	GetPersonalityTypeByCode(typeCode, locale string) *PersonalityType
	ListPersonalityTypes(locale string) []*PersonalityType

	AddResult(r *QuizResult) error
	GetResult(uuid string) *QuizResult
	IncrementShareCount(uuid string) *QuizResult
	IncrementViewCount(uuid string) *QuizResult
	CountResults() int
}

var _ Store = (*memoryStore)(nil)
