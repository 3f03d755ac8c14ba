package db

import (
	"errors"
	"testing"
	"time"

	"github.com/koilabs/koimbti/internal/api"
	"github.com/koilabs/koimbti/internal/pkg/logger"
	"github.com/koilabs/koimbti/internal/services"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(":memory:", logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	if err := RunMigrations(store.db, ""); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return store
}

func TestSQLiteQuestionRoundTrip(t *testing.T) {
	store := newTestStore(t)

	q := &api.Question{
		Number: 2, Axis: "EI", Locale: "ja", Text: "q2",
		OptionALabel: "a", OptionBLabel: "b", OptionAValue: "E", OptionBValue: "I",
		Weight: 2, Active: true,
	}
	store.AddQuestion(q)
	if q.ID == 0 {
		t.Fatal("insert did not assign an id")
	}
	store.AddQuestion(&api.Question{
		Number: 1, Axis: "SN", Locale: "ja", Text: "q1",
		OptionALabel: "a", OptionBLabel: "b", OptionAValue: "S", OptionBValue: "N",
		Weight: 1, Active: true,
	})
	store.AddQuestion(&api.Question{
		Number: 3, Axis: "TF", Locale: "ja", Text: "q3",
		OptionALabel: "a", OptionBLabel: "b", OptionAValue: "T", OptionBValue: "F",
		Weight: 1, Active: false,
	})

	got := store.ListQuestions("ja")
	if len(got) != 2 {
		t.Fatalf("got %d questions, want 2 active", len(got))
	}
	if got[0].Number != 1 || got[1].Number != 2 {
		t.Fatalf("not ordered by number: %d, %d", got[0].Number, got[1].Number)
	}
	if got[1].Weight != 2 || got[1].OptionBValue != "I" {
		t.Fatalf("fields lost: %+v", got[1])
	}
	if len(store.ListQuestions("en")) != 0 {
		t.Fatal("locale partition leaked")
	}

	q.Text = "q2 updated"
	q.Active = false
	if !store.UpdateQuestion(q) {
		t.Fatal("update reported miss")
	}
	if got := store.ListQuestions("ja"); len(got) != 1 {
		t.Fatalf("deactivated question still listed: %d", len(got))
	}
	if store.UpdateQuestion(&api.Question{ID: 12345, Axis: "EI", Locale: "ja"}) {
		t.Fatal("update reported hit for unknown id")
	}
}

func TestSQLiteTypeRoundTripPreservesListTriState(t *testing.T) {
	store := newTestStore(t)

	pt := &api.PersonalityType{
		MBTIType:            "ENFP",
		Locale:              "ja",
		Title:               "title",
		Subtitle:            "sub",
		TypeCode:            "LAPO",
		BasicPersonality:    "basic",
		LoveCharacteristics: "love",
		SuitablePartner:     "partner",
		MatchingAdvice:      "advice",
		Strengths:           []string{"warm", "curious"},
		Weaknesses:          []string{},
		Keywords:            []string{"passion"},
		Active:              true,
	}
	store.AddPersonalityType(pt)
	if pt.ID == 0 {
		t.Fatal("insert did not assign an id")
	}

	got := store.GetPersonalityType("enfp", "ja")
	if got == nil {
		t.Fatal("case-insensitive get missed")
	}
	if len(got.Strengths) != 2 || got.Strengths[0] != "warm" {
		t.Fatalf("strengths = %v", got.Strengths)
	}
	if got.Weaknesses == nil || len(got.Weaknesses) != 0 {
		t.Fatalf("authored-empty weaknesses = %v, want empty non-nil", got.Weaknesses)
	}
	if got.FamousPeople != nil {
		t.Fatalf("absent famous_people = %v, want nil", got.FamousPeople)
	}

	if byCode := store.GetPersonalityTypeByCode("lapo", "ja"); byCode == nil || byCode.MBTIType != "ENFP" {
		t.Fatalf("get by code: %+v", byCode)
	}
	if store.GetPersonalityType("ENFP", "en") != nil {
		t.Fatal("locale partition leaked")
	}

	pt.Title = "new title"
	if !store.UpdatePersonalityType(pt) {
		t.Fatal("update reported miss")
	}
	if got := store.GetPersonalityType("ENFP", "ja"); got.Title != "new title" {
		t.Fatalf("title = %q", got.Title)
	}

	list := store.ListPersonalityTypes("ja")
	if len(list) != 1 {
		t.Fatalf("list = %d types, want 1", len(list))
	}
}

func TestSQLiteResultInsertAndCounters(t *testing.T) {
	store := newTestStore(t)

	r := &api.QuizResult{
		UUID:      "u-1",
		MBTIType:  "INTJ",
		TypeCode:  "FARE",
		Scores:    services.Scores{EI: -3, SN: -1, TF: 5, JP: 7},
		Answers:   []int{0, 5, 2, 3},
		Locale:    "ja",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		IPAddress: "203.0.113.9",
		UserUUID:  "visitor-1",
	}
	if err := store.AddResult(r); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.AddResult(&api.QuizResult{UUID: "u-1", MBTIType: "INTJ"}); !errors.Is(err, api.ErrDuplicateResult) {
		t.Fatalf("duplicate uuid: got %v, want ErrDuplicateResult", err)
	}

	got := store.GetResult("u-1")
	if got == nil {
		t.Fatal("get missed")
	}
	if got.Scores != r.Scores {
		t.Fatalf("scores = %+v, want %+v", got.Scores, r.Scores)
	}
	if len(got.Answers) != 4 || got.Answers[1] != 5 {
		t.Fatalf("answers = %v", got.Answers)
	}
	if got.IPAddress != "203.0.113.9" || got.UserUUID != "visitor-1" {
		t.Fatalf("attribution lost: %+v", got)
	}

	if got := store.IncrementShareCount("u-1"); got == nil || got.ShareCount != 1 {
		t.Fatalf("share: %+v", got)
	}
	if got := store.IncrementShareCount("u-1"); got.ShareCount != 2 {
		t.Fatalf("second share: %+v", got)
	}
	if got := store.IncrementViewCount("u-1"); got == nil || got.ViewCount != 1 || got.ShareCount != 2 {
		t.Fatalf("view: %+v", got)
	}
	if store.IncrementShareCount("missing") != nil {
		t.Fatal("increment on unknown uuid returned a row")
	}
	if store.GetResult("missing") != nil {
		t.Fatal("get on unknown uuid returned a row")
	}
	if n := store.CountResults(); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	store := newTestStore(t)
	if err := RunMigrations(store.db, ""); err != nil {
		t.Fatalf("second run: %v", err)
	}
}
