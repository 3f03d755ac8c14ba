package services

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResultStore abstracts persistence for completed quiz attempts.
type ResultStore interface {
	InsertResult(r *QuizResult) error
	GetResult(uuid string) *QuizResult
	IncrementShare(uuid string) *QuizResult
	IncrementView(uuid string) *QuizResult
	CountResults() int
}

// SubmitRequest carries the sanitized submission payload into the service.
// The client computes the classification before submitting; Scores and
// Answers are stored verbatim so the result page can replay them.
type SubmitRequest struct {
	MBTIType  string
	Scores    *Scores
	Answers   []int
	Locale    string
	IPAddress string
	UserUUID  string
}

// SubmitResult is the externally visible identifier of the stored attempt.
type SubmitResult struct {
	UUID string
}

// QuizService hosts the result lifecycle: create once, read, bump counters.
type QuizService struct {
	store       ResultStore
	now         func() time.Time
	idGenerator func() string
}

func NewQuizService(store ResultStore) *QuizService {
	return &QuizService{
		store:       store,
		now:         func() time.Time { return time.Now().UTC() },
		idGenerator: uuid.NewString,
	}
}

// Submit validates and persists one completed attempt. Every field of the
// payload is required; a missing one rejects the call with no state change.
// The identifier is generated fresh per call, so uniqueness rests on the
// generator, not on retries.
func (s *QuizService) Submit(req SubmitRequest) (*SubmitResult, error) {
	mbtiType := strings.ToUpper(strings.TrimSpace(req.MBTIType))
	if mbtiType == "" || req.Scores == nil || len(req.Answers) == 0 || strings.TrimSpace(req.Locale) == "" {
		return nil, NewInvalidError("missing required fields")
	}
	if !IsMBTIType(mbtiType) {
		return nil, NewInvalidError("unknown mbti type")
	}

	r := &QuizResult{
		UUID:      s.idGenerator(),
		MBTIType:  mbtiType,
		Scores:    *req.Scores,
		Answers:   req.Answers,
		Locale:    req.Locale,
		CreatedAt: s.now(),
		IPAddress: req.IPAddress,
		UserUUID:  req.UserUUID,
	}
	if code, ok := MBTIToCode(mbtiType); ok {
		r.TypeCode = code
	}

	if err := s.store.InsertResult(r); err != nil {
		return nil, err
	}
	return &SubmitResult{UUID: r.UUID}, nil
}

// Result fetches a stored attempt by its identifier.
func (s *QuizService) Result(uuid string) (*QuizResult, error) {
	if strings.TrimSpace(uuid) == "" {
		return nil, NewInvalidError("uuid required")
	}
	r := s.store.GetResult(uuid)
	if r == nil {
		return nil, NewNotFoundError("result not found")
	}
	return r, nil
}

// Share bumps the share counter and returns the new count. A lost update
// under concurrent calls is acceptable for this counter; the SQLite store
// removes the race with an atomic update anyway.
func (s *QuizService) Share(uuid string) (int, error) {
	if strings.TrimSpace(uuid) == "" {
		return 0, NewInvalidError("uuid required")
	}
	r := s.store.IncrementShare(uuid)
	if r == nil {
		return 0, NewNotFoundError("result not found")
	}
	return r.ShareCount, nil
}

// View bumps the independent view counter, same contract as Share.
func (s *QuizService) View(uuid string) (int, error) {
	if strings.TrimSpace(uuid) == "" {
		return 0, NewInvalidError("uuid required")
	}
	r := s.store.IncrementView(uuid)
	if r == nil {
		return 0, NewNotFoundError("result not found")
	}
	return r.ViewCount, nil
}

// Total reports how many attempts have been stored.
func (s *QuizService) Total() int {
	return s.store.CountResults()
}
