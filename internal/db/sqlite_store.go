package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"

	"github.com/koilabs/koimbti/internal/api"
	"github.com/koilabs/koimbti/internal/pkg/logger"
	"github.com/koilabs/koimbti/internal/services"
)

// SQLiteStore persists quiz content and results in a single SQLite file.
// Read methods return nil on a miss; writes that the Store interface
// declares infallible log driver errors and carry on.
type SQLiteStore struct {
	db  *sql.DB
	log *logger.Logger
}

var _ api.Store = (*SQLiteStore)(nil)

// Open opens the database file and applies the connection pragmas.
func Open(path string, log *logger.Logger) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	store, err := NewSQLiteStore(conn, log)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return store, nil
}

func NewSQLiteStore(conn *sql.DB, log *logger.Logger) (*SQLiteStore, error) {
	if conn == nil {
		return nil, errors.New("nil db")
	}
	if log == nil {
		log = logger.NewNop()
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, stmt := range pragmas {
		if _, err := conn.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: conn, log: log}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

// DB exposes the underlying handle, mainly so callers can run migrations.
func (s *SQLiteStore) DB() *sql.DB { return s.db }

func (s *SQLiteStore) logErr(prefix string, err error) {
	if err != nil {
		s.log.Error("sqlite store: "+prefix, "err", err)
	}
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func toNullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func fromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// encodeStringList keeps the authored-empty/absent distinction: nil maps
// to NULL, an empty slice to the literal "[]".
func encodeStringList(list []string) (sql.NullString, error) {
	if list == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(list)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func (s *SQLiteStore) decodeStringList(ns sql.NullString) []string {
	if !ns.Valid || strings.TrimSpace(ns.String) == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		s.logErr("decode string list", err)
		return nil
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func (s *SQLiteStore) decodeScores(raw string) services.Scores {
	var out services.Scores
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logErr("decode scores", err)
	}
	return out
}

func (s *SQLiteStore) decodeIntList(raw string) []int {
	var out []int
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		s.logErr("decode int list", err)
		return nil
	}
	return out
}

func (s *SQLiteStore) AddQuestion(q *api.Question) {
	if q == nil {
		return
	}
	now := time.Now().UTC()
	q.CreatedAt, q.UpdatedAt = now, now
	res, err := s.db.Exec(`
		INSERT INTO quiz_questions (
			question_number, category, locale, question_text,
			option_a_label, option_b_label, option_a_value, option_b_value,
			weight, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.Number, q.Axis, q.Locale, q.Text,
		q.OptionALabel, q.OptionBLabel, q.OptionAValue, q.OptionBValue,
		q.Weight, boolToInt(q.Active), q.CreatedAt, q.UpdatedAt)
	if err != nil {
		s.logErr("add question", err)
		return
	}
	if id, err := res.LastInsertId(); err == nil {
		q.ID = id
	}
}

func (s *SQLiteStore) UpdateQuestion(q *api.Question) bool {
	if q == nil {
		return false
	}
	q.UpdatedAt = time.Now().UTC()
	res, err := s.db.Exec(`
		UPDATE quiz_questions SET
			question_number = ?, category = ?, locale = ?, question_text = ?,
			option_a_label = ?, option_b_label = ?, option_a_value = ?, option_b_value = ?,
			weight = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		q.Number, q.Axis, q.Locale, q.Text,
		q.OptionALabel, q.OptionBLabel, q.OptionAValue, q.OptionBValue,
		q.Weight, boolToInt(q.Active), q.UpdatedAt, q.ID)
	if err != nil {
		s.logErr("update question", err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		s.logErr("update question rows", err)
		return false
	}
	return n > 0
}

const questionColumns = `
	id, question_number, category, locale, question_text,
	option_a_label, option_b_label, option_a_value, option_b_value,
	weight, is_active, created_at, updated_at`

func (s *SQLiteStore) scanQuestion(row interface{ Scan(...any) error }) (*api.Question, error) {
	var q api.Question
	var active int
	err := row.Scan(
		&q.ID, &q.Number, &q.Axis, &q.Locale, &q.Text,
		&q.OptionALabel, &q.OptionBLabel, &q.OptionAValue, &q.OptionBValue,
		&q.Weight, &active, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		return nil, err
	}
	q.Active = active != 0
	return &q, nil
}

func (s *SQLiteStore) ListQuestions(locale string) []*api.Question {
	rows, err := s.db.Query(`
		SELECT `+questionColumns+`
		FROM quiz_questions
		WHERE locale = ? AND is_active = 1
		ORDER BY question_number`, locale)
	if err != nil {
		s.logErr("list questions", err)
		return []*api.Question{}
	}
	defer rows.Close()

	out := []*api.Question{}
	for rows.Next() {
		q, err := s.scanQuestion(rows)
		if err != nil {
			s.logErr("scan question", err)
			continue
		}
		out = append(out, q)
	}
	s.logErr("list questions rows", rows.Err())
	return out
}

func (s *SQLiteStore) AddPersonalityType(pt *api.PersonalityType) {
	if pt == nil {
		return
	}
	now := time.Now().UTC()
	pt.CreatedAt, pt.UpdatedAt = now, now
	cols, err := encodeTypeLists(pt)
	if err != nil {
		s.logErr("encode type lists", err)
		return
	}
	res, err := s.db.Exec(`
		INSERT INTO personality_types (
			mbti_type, locale, title, subtitle, type_code,
			basic_personality, love_characteristics, suitable_partner, matching_advice,
			strengths, weaknesses, compatibility_best, compatibility_good,
			compatibility_challenging, famous_people, keywords,
			icon_url, cover_image_url, is_active, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pt.MBTIType, pt.Locale, pt.Title, toNullString(pt.Subtitle), toNullString(pt.TypeCode),
		pt.BasicPersonality, pt.LoveCharacteristics, pt.SuitablePartner, pt.MatchingAdvice,
		cols.strengths, cols.weaknesses, cols.best, cols.good,
		cols.challenging, cols.famous, cols.keywords,
		toNullString(pt.IconURL), toNullString(pt.CoverImageURL),
		boolToInt(pt.Active), pt.CreatedAt, pt.UpdatedAt)
	if err != nil {
		s.logErr("add personality type", err)
		return
	}
	if id, err := res.LastInsertId(); err == nil {
		pt.ID = id
	}
}

func (s *SQLiteStore) UpdatePersonalityType(pt *api.PersonalityType) bool {
	if pt == nil {
		return false
	}
	pt.UpdatedAt = time.Now().UTC()
	cols, err := encodeTypeLists(pt)
	if err != nil {
		s.logErr("encode type lists", err)
		return false
	}
	res, err := s.db.Exec(`
		UPDATE personality_types SET
			mbti_type = ?, locale = ?, title = ?, subtitle = ?, type_code = ?,
			basic_personality = ?, love_characteristics = ?, suitable_partner = ?, matching_advice = ?,
			strengths = ?, weaknesses = ?, compatibility_best = ?, compatibility_good = ?,
			compatibility_challenging = ?, famous_people = ?, keywords = ?,
			icon_url = ?, cover_image_url = ?, is_active = ?, updated_at = ?
		WHERE id = ?`,
		pt.MBTIType, pt.Locale, pt.Title, toNullString(pt.Subtitle), toNullString(pt.TypeCode),
		pt.BasicPersonality, pt.LoveCharacteristics, pt.SuitablePartner, pt.MatchingAdvice,
		cols.strengths, cols.weaknesses, cols.best, cols.good,
		cols.challenging, cols.famous, cols.keywords,
		toNullString(pt.IconURL), toNullString(pt.CoverImageURL),
		boolToInt(pt.Active), pt.UpdatedAt, pt.ID)
	if err != nil {
		s.logErr("update personality type", err)
		return false
	}
	n, err := res.RowsAffected()
	if err != nil {
		s.logErr("update personality type rows", err)
		return false
	}
	return n > 0
}

type typeListColumns struct {
	strengths, weaknesses, best, good, challenging, famous, keywords sql.NullString
}

func encodeTypeLists(pt *api.PersonalityType) (typeListColumns, error) {
	var cols typeListColumns
	var err error
	encode := func(dst *sql.NullString, list []string) {
		if err != nil {
			return
		}
		*dst, err = encodeStringList(list)
	}
	encode(&cols.strengths, pt.Strengths)
	encode(&cols.weaknesses, pt.Weaknesses)
	encode(&cols.best, pt.CompatibilityBest)
	encode(&cols.good, pt.CompatibilityGood)
	encode(&cols.challenging, pt.CompatibilityChallenging)
	encode(&cols.famous, pt.FamousPeople)
	encode(&cols.keywords, pt.Keywords)
	return cols, err
}

const typeColumns = `
	id, mbti_type, locale, title, subtitle, type_code,
	basic_personality, love_characteristics, suitable_partner, matching_advice,
	strengths, weaknesses, compatibility_best, compatibility_good,
	compatibility_challenging, famous_people, keywords,
	icon_url, cover_image_url, is_active, created_at, updated_at`

func (s *SQLiteStore) scanPersonalityType(row interface{ Scan(...any) error }) (*api.PersonalityType, error) {
	var pt api.PersonalityType
	var active int
	var subtitle, typeCode, iconURL, coverURL sql.NullString
	var lists typeListColumns
	err := row.Scan(
		&pt.ID, &pt.MBTIType, &pt.Locale, &pt.Title, &subtitle, &typeCode,
		&pt.BasicPersonality, &pt.LoveCharacteristics, &pt.SuitablePartner, &pt.MatchingAdvice,
		&lists.strengths, &lists.weaknesses, &lists.best, &lists.good,
		&lists.challenging, &lists.famous, &lists.keywords,
		&iconURL, &coverURL, &active, &pt.CreatedAt, &pt.UpdatedAt)
	if err != nil {
		return nil, err
	}
	pt.Subtitle = fromNullString(subtitle)
	pt.TypeCode = fromNullString(typeCode)
	pt.IconURL = fromNullString(iconURL)
	pt.CoverImageURL = fromNullString(coverURL)
	pt.Strengths = s.decodeStringList(lists.strengths)
	pt.Weaknesses = s.decodeStringList(lists.weaknesses)
	pt.CompatibilityBest = s.decodeStringList(lists.best)
	pt.CompatibilityGood = s.decodeStringList(lists.good)
	pt.CompatibilityChallenging = s.decodeStringList(lists.challenging)
	pt.FamousPeople = s.decodeStringList(lists.famous)
	pt.Keywords = s.decodeStringList(lists.keywords)
	pt.Active = active != 0
	return &pt, nil
}

func (s *SQLiteStore) GetPersonalityType(mbtiType, locale string) *api.PersonalityType {
	row := s.db.QueryRow(`
		SELECT `+typeColumns+`
		FROM personality_types
		WHERE mbti_type = ? COLLATE NOCASE AND locale = ? AND is_active = 1`,
		mbtiType, locale)
	pt, err := s.scanPersonalityType(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get personality type", err)
		}
		return nil
	}
	return pt
}

func (s *SQLiteStore) GetPersonalityTypeByCode(typeCode, locale string) *api.PersonalityType {
	row := s.db.QueryRow(`
		SELECT `+typeColumns+`
		FROM personality_types
		WHERE type_code = ? COLLATE NOCASE AND locale = ? AND is_active = 1`,
		typeCode, locale)
	pt, err := s.scanPersonalityType(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get personality type by code", err)
		}
		return nil
	}
	return pt
}

func (s *SQLiteStore) ListPersonalityTypes(locale string) []*api.PersonalityType {
	rows, err := s.db.Query(`
		SELECT `+typeColumns+`
		FROM personality_types
		WHERE locale = ? AND is_active = 1
		ORDER BY mbti_type`, locale)
	if err != nil {
		s.logErr("list personality types", err)
		return []*api.PersonalityType{}
	}
	defer rows.Close()

	out := []*api.PersonalityType{}
	for rows.Next() {
		pt, err := s.scanPersonalityType(rows)
		if err != nil {
			s.logErr("scan personality type", err)
			continue
		}
		out = append(out, pt)
	}
	s.logErr("list personality types rows", rows.Err())
	return out
}

func (s *SQLiteStore) AddResult(r *api.QuizResult) error {
	if r == nil {
		return errors.New("nil result")
	}
	scores, err := json.Marshal(r.Scores)
	if err != nil {
		return fmt.Errorf("encode scores: %w", err)
	}
	answers, err := json.Marshal(r.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	res, err := s.db.Exec(`
		INSERT INTO quiz_results (
			uuid, mbti_type, type_code, scores, answers, locale,
			share_count, view_count, created_at, ip_address, user_uuid
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.UUID, r.MBTIType, toNullString(r.TypeCode), string(scores), string(answers), r.Locale,
		r.ShareCount, r.ViewCount, r.CreatedAt, toNullString(r.IPAddress), toNullString(r.UserUUID))
	if err != nil {
		var serr sqlite3.Error
		if errors.As(err, &serr) && serr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return api.ErrDuplicateResult
		}
		return fmt.Errorf("insert result: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		r.ID = id
	}
	return nil
}

const resultColumns = `
	id, uuid, mbti_type, type_code, scores, answers, locale,
	share_count, view_count, created_at, ip_address, user_uuid`

func (s *SQLiteStore) scanResult(row interface{ Scan(...any) error }) (*api.QuizResult, error) {
	var r api.QuizResult
	var typeCode, ipAddress, userUUID sql.NullString
	var scores, answers string
	err := row.Scan(
		&r.ID, &r.UUID, &r.MBTIType, &typeCode, &scores, &answers, &r.Locale,
		&r.ShareCount, &r.ViewCount, &r.CreatedAt, &ipAddress, &userUUID)
	if err != nil {
		return nil, err
	}
	r.TypeCode = fromNullString(typeCode)
	r.IPAddress = fromNullString(ipAddress)
	r.UserUUID = fromNullString(userUUID)
	r.Scores = s.decodeScores(scores)
	r.Answers = s.decodeIntList(answers)
	return &r, nil
}

func (s *SQLiteStore) GetResult(uuid string) *api.QuizResult {
	row := s.db.QueryRow(`
		SELECT `+resultColumns+`
		FROM quiz_results
		WHERE uuid = ?`, uuid)
	r, err := s.scanResult(row)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logErr("get result", err)
		}
		return nil
	}
	return r
}

// incrementCounter bumps the named column atomically in the database
// rather than read-modify-write in Go, so concurrent shares and views
// never lose updates.
func (s *SQLiteStore) incrementCounter(column, uuid string) *api.QuizResult {
	res, err := s.db.Exec(
		`UPDATE quiz_results SET `+column+` = `+column+` + 1 WHERE uuid = ?`, uuid)
	if err != nil {
		s.logErr("increment "+column, err)
		return nil
	}
	n, err := res.RowsAffected()
	if err != nil || n == 0 {
		s.logErr("increment "+column+" rows", err)
		return nil
	}
	return s.GetResult(uuid)
}

func (s *SQLiteStore) IncrementShareCount(uuid string) *api.QuizResult {
	return s.incrementCounter("share_count", uuid)
}

func (s *SQLiteStore) IncrementViewCount(uuid string) *api.QuizResult {
	return s.incrementCounter("view_count", uuid)
}

func (s *SQLiteStore) CountResults() int {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM quiz_results`).Scan(&n); err != nil {
		s.logErr("count results", err)
		return 0
	}
	return n
}
