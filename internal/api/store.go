package api

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/koilabs/koimbti/internal/services"
)

// Question is the stored form of one quiz item, partitioned by
// (question_number, locale).
type Question struct {
	ID           int64     `json:"id"`
	Number       int       `json:"question_number"`
	Axis         string    `json:"category"`
	Locale       string    `json:"locale"`
	Text         string    `json:"question_text"`
	OptionALabel string    `json:"option_a_label"`
	OptionBLabel string    `json:"option_b_label"`
	OptionAValue string    `json:"option_a_value"`
	OptionBValue string    `json:"option_b_value"`
	Weight       int       `json:"weight"`
	Active       bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PersonalityType is the stored description of one MBTI type in one locale,
// unique per (mbti_type, locale). Nil list fields mean the section was
// never authored; empty ones were authored with zero entries.
type PersonalityType struct {
	ID                       int64     `json:"id"`
	MBTIType                 string    `json:"mbti_type"`
	Locale                   string    `json:"locale"`
	Title                    string    `json:"title"`
	Subtitle                 string    `json:"subtitle,omitempty"`
	TypeCode                 string    `json:"type_code,omitempty"`
	BasicPersonality         string    `json:"basic_personality"`
	LoveCharacteristics      string    `json:"love_characteristics"`
	SuitablePartner          string    `json:"suitable_partner"`
	MatchingAdvice           string    `json:"matching_advice"`
	Strengths                []string  `json:"strengths"`
	Weaknesses               []string  `json:"weaknesses"`
	CompatibilityBest        []string  `json:"compatibility_best"`
	CompatibilityGood        []string  `json:"compatibility_good"`
	CompatibilityChallenging []string  `json:"compatibility_challenging"`
	FamousPeople             []string  `json:"famous_people"`
	Keywords                 []string  `json:"keywords"`
	IconURL                  string    `json:"icon_url,omitempty"`
	CoverImageURL            string    `json:"cover_image_url,omitempty"`
	Active                   bool      `json:"is_active"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// QuizResult is one persisted attempt, keyed by its external uuid.
type QuizResult struct {
	ID         int64           `json:"id"`
	UUID       string          `json:"uuid"`
	MBTIType   string          `json:"mbti_type"`
	TypeCode   string          `json:"type_code,omitempty"`
	Scores     services.Scores `json:"scores"`
	Answers    []int           `json:"answers"`
	Locale     string          `json:"locale"`
	ShareCount int             `json:"share_count"`
	ViewCount  int             `json:"view_count"`
	CreatedAt  time.Time       `json:"created_at"`
	IPAddress  string          `json:"ip_address,omitempty"`
	UserUUID   string          `json:"user_uuid,omitempty"`
}

// ErrDuplicateResult reports an identifier collision on insert. The uuid
// scheme makes this effectively unreachable; it exists so a collision is a
// loud failure instead of a silent overwrite.
var ErrDuplicateResult = errors.New("result uuid already exists")

type memoryStore struct {
	mu        sync.RWMutex
	questions []*Question
	types     []*PersonalityType
	results   map[string]*QuizResult
	nextID    int64
}

// NewMemoryStore builds an empty in-memory Store. Used when no SQLite path
// is configured, and by tests.
func NewMemoryStore() Store {
	return &memoryStore{results: map[string]*QuizResult{}}
}

func (s *memoryStore) nextSeq() int64 {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) AddQuestion(q *Question) {
	if q == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = s.nextSeq()
	now := time.Now().UTC()
	q.CreatedAt, q.UpdatedAt = now, now
	s.questions = append(s.questions, q)
}

func (s *memoryStore) UpdateQuestion(q *Question) bool {
	if q == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.questions {
		if cur.ID == q.ID {
			q.CreatedAt = cur.CreatedAt
			q.UpdatedAt = time.Now().UTC()
			s.questions[i] = q
			return true
		}
	}
	return false
}

func (s *memoryStore) ListQuestions(locale string) []*Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*Question{}
	for _, q := range s.questions {
		if q.Active && q.Locale == locale {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

func (s *memoryStore) AddPersonalityType(pt *PersonalityType) {
	if pt == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	pt.ID = s.nextSeq()
	now := time.Now().UTC()
	pt.CreatedAt, pt.UpdatedAt = now, now
	s.types = append(s.types, pt)
}

func (s *memoryStore) UpdatePersonalityType(pt *PersonalityType) bool {
	if pt == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, cur := range s.types {
		if cur.ID == pt.ID {
			pt.CreatedAt = cur.CreatedAt
			pt.UpdatedAt = time.Now().UTC()
			s.types[i] = pt
			return true
		}
	}
	return false
}

func (s *memoryStore) GetPersonalityType(mbtiType, locale string) *PersonalityType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pt := range s.types {
		if pt.Active && pt.Locale == locale && strings.EqualFold(pt.MBTIType, mbtiType) {
			return pt
		}
	}
	return nil
}

func (s *memoryStore) GetPersonalityTypeByCode(typeCode, locale string) *PersonalityType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, pt := range s.types {
		if pt.Active && pt.Locale == locale && strings.EqualFold(pt.TypeCode, typeCode) {
			return pt
		}
	}
	return nil
}

func (s *memoryStore) ListPersonalityTypes(locale string) []*PersonalityType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*PersonalityType{}
	for _, pt := range s.types {
		if pt.Active && pt.Locale == locale {
			out = append(out, pt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MBTIType < out[j].MBTIType })
	return out
}

func (s *memoryStore) AddResult(r *QuizResult) error {
	if r == nil {
		return errors.New("nil result")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.results[r.UUID]; ok {
		return ErrDuplicateResult
	}
	r.ID = s.nextSeq()
	s.results[r.UUID] = r
	return nil
}

func (s *memoryStore) GetResult(uuid string) *QuizResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.results[uuid]
}

func (s *memoryStore) IncrementShareCount(uuid string) *QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.results[uuid]
	if r == nil {
		return nil
	}
	r.ShareCount++
	return r
}

func (s *memoryStore) IncrementViewCount(uuid string) *QuizResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.results[uuid]
	if r == nil {
		return nil
	}
	r.ViewCount++
	return r
}

func (s *memoryStore) CountResults() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
