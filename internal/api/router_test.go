package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/koilabs/koimbti/internal/pkg/logger"
	"github.com/koilabs/koimbti/internal/services"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	NewRouter(NewMemoryStore(), logger.NewNop()).Register(mux)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func seedStore(t *testing.T, mux *http.ServeMux) {
	t.Helper()
	if rec := doJSON(t, mux, http.MethodPost, "/api/seed", nil); rec.Code != http.StatusOK {
		t.Fatalf("seed: got %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestSeedLoadsStarterContent(t *testing.T) {
	mux := newTestMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/api/seed", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var out struct {
		Success   bool `json:"success"`
		Questions int  `json:"questions"`
		Types     int  `json:"types"`
	}
	decodeBody(t, rec, &out)
	if !out.Success || out.Questions != 20 || out.Types != 16 {
		t.Fatalf("got %+v, want success with 20 questions and 16 types", out)
	}

	if rec := doJSON(t, mux, http.MethodPost, "/api/seed", nil); rec.Code != http.StatusConflict {
		t.Fatalf("second seed: got %d, want 409", rec.Code)
	}
}

func TestQuizQuestionsFallsBackToDefaultLocale(t *testing.T) {
	mux := newTestMux(t)
	seedStore(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/api/quiz/questions?lang=en", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	var out struct {
		Locale    string               `json:"locale"`
		Questions []*services.Question `json:"questions"`
	}
	decodeBody(t, rec, &out)
	if out.Locale != "en" {
		t.Fatalf("locale = %q, want en", out.Locale)
	}
	if len(out.Questions) != 20 {
		t.Fatalf("got %d questions, want 20 (ja fallback)", len(out.Questions))
	}
	if out.Questions[0].Locale != "ja" {
		t.Fatalf("fallback locale = %q, want ja", out.Questions[0].Locale)
	}
	for i, q := range out.Questions {
		if q.Number != i+1 {
			t.Fatalf("question %d has number %d, want ordered by number", i, q.Number)
		}
	}
}

func TestSubmitResultShareStatsFlow(t *testing.T) {
	mux := newTestMux(t)

	submit := map[string]any{
		"mbtiType": "enfp",
		"scores":   map[string]int{"EI": 7, "SN": -3, "TF": -5, "JP": -1},
		"answers":  []int{0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5, 0, 1},
		"locale":   "ja",
	}
	rec := doJSON(t, mux, http.MethodPost, "/api/quiz/submit", submit)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: got %d, body %s", rec.Code, rec.Body.String())
	}
	var created struct {
		UUID string `json:"uuid"`
	}
	decodeBody(t, rec, &created)
	if created.UUID == "" {
		t.Fatal("submit returned empty uuid")
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/quiz/results/"+created.UUID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("result: got %d", rec.Code)
	}
	var res resultView
	decodeBody(t, rec, &res)
	if res.MBTIType != "ENFP" || res.TypeCode != "LAPO" {
		t.Fatalf("got type %s/%s, want ENFP/LAPO", res.MBTIType, res.TypeCode)
	}
	if res.Scores.EI != 7 || res.Scores.JP != -1 {
		t.Fatalf("scores not preserved: %+v", res.Scores)
	}
	if res.ShareCount != 0 || res.ViewCount != 0 {
		t.Fatalf("fresh result has counts %d/%d, want 0/0", res.ShareCount, res.ViewCount)
	}

	for want := 1; want <= 2; want++ {
		rec = doJSON(t, mux, http.MethodPost, "/api/quiz/share", map[string]string{"uuid": created.UUID})
		if rec.Code != http.StatusOK {
			t.Fatalf("share: got %d", rec.Code)
		}
		var shared struct {
			Success    bool `json:"success"`
			ShareCount int  `json:"share_count"`
		}
		decodeBody(t, rec, &shared)
		if !shared.Success || shared.ShareCount != want {
			t.Fatalf("share %d: got %+v", want, shared)
		}
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/quiz/stats", nil)
	var stats struct {
		Total int `json:"total"`
	}
	decodeBody(t, rec, &stats)
	if stats.Total != 1 {
		t.Fatalf("stats total = %d, want 1", stats.Total)
	}
}

func TestSubmitRejectsIncompletePayload(t *testing.T) {
	mux := newTestMux(t)

	bodies := []map[string]any{
		{"scores": map[string]int{"EI": 1}, "answers": []int{1}, "locale": "ja"},
		{"mbtiType": "ENFP", "answers": []int{1}, "locale": "ja"},
		{"mbtiType": "ENFP", "scores": map[string]int{"EI": 1}, "locale": "ja"},
		{"mbtiType": "ENFP", "scores": map[string]int{"EI": 1}, "answers": []int{1}},
		{"mbtiType": "XXXX", "scores": map[string]int{"EI": 1}, "answers": []int{1}, "locale": "ja"},
	}
	for i, body := range bodies {
		if rec := doJSON(t, mux, http.MethodPost, "/api/quiz/submit", body); rec.Code != http.StatusBadRequest {
			t.Fatalf("case %d: got %d, want 400", i, rec.Code)
		}
	}
}

func TestResultAndShareUnknownUUID(t *testing.T) {
	mux := newTestMux(t)

	if rec := doJSON(t, mux, http.MethodGet, "/api/quiz/results/nope", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("result: got %d, want 404", rec.Code)
	}
	if rec := doJSON(t, mux, http.MethodPost, "/api/quiz/share", map[string]string{"uuid": "nope"}); rec.Code != http.StatusNotFound {
		t.Fatalf("share: got %d, want 404", rec.Code)
	}
	if rec := doJSON(t, mux, http.MethodPost, "/api/quiz/share", map[string]string{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("share empty uuid: got %d, want 400", rec.Code)
	}
}

func TestTypesListHasNoFallback(t *testing.T) {
	mux := newTestMux(t)
	seedStore(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/api/types?lang=ja", nil)
	var out struct {
		Locale string                      `json:"locale"`
		Types  []*services.PersonalityType `json:"types"`
	}
	decodeBody(t, rec, &out)
	if len(out.Types) != 16 {
		t.Fatalf("ja list: got %d types, want 16", len(out.Types))
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/types?lang=en", nil)
	out.Types = nil
	decodeBody(t, rec, &out)
	if len(out.Types) != 0 {
		t.Fatalf("en list: got %d types, want 0 (no fallback on the index)", len(out.Types))
	}
}

func TestTypeDetailRedirectsMBTISlug(t *testing.T) {
	mux := newTestMux(t)
	seedStore(t, mux)

	req := httptest.NewRequest(http.MethodGet, "/api/types/enfp?uuid=abc&lang=en", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("got %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/types/LAPO?uuid=abc&lang=en" {
		t.Fatalf("Location = %q", loc)
	}

	if rec := doJSON(t, mux, http.MethodGet, "/api/types/ZZZZ", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("unknown slug: got %d, want 404", rec.Code)
	}
}

func TestTypeDetailEmbedsScoresAndCountsView(t *testing.T) {
	mux := newTestMux(t)
	seedStore(t, mux)

	submit := map[string]any{
		"mbtiType": "ENFP",
		"scores":   map[string]int{"EI": 3, "SN": -1, "TF": -3, "JP": -5},
		"answers":  []int{1, 2, 3},
		"locale":   "ja",
	}
	rec := doJSON(t, mux, http.MethodPost, "/api/quiz/submit", submit)
	var created struct {
		UUID string `json:"uuid"`
	}
	decodeBody(t, rec, &created)

	rec = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/api/types/LAPO?uuid=%s", created.UUID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("detail: got %d, body %s", rec.Code, rec.Body.String())
	}
	var detail struct {
		Type   *services.PersonalityType `json:"type"`
		Scores *services.Scores          `json:"scores"`
	}
	decodeBody(t, rec, &detail)
	if detail.Type == nil || detail.Type.MBTIType != "ENFP" {
		t.Fatalf("detail type = %+v, want ENFP", detail.Type)
	}
	if detail.Scores == nil || detail.Scores.EI != 3 || detail.Scores.JP != -5 {
		t.Fatalf("detail scores = %+v, want the submitted scores", detail.Scores)
	}

	// A result of a different type must not leak onto the page and must
	// not count a view there.
	rec = doJSON(t, mux, http.MethodGet, fmt.Sprintf("/api/types/FARE?uuid=%s", created.UUID), nil)
	detail.Scores = nil
	decodeBody(t, rec, &detail)
	if detail.Scores != nil {
		t.Fatalf("mismatched type page embedded scores %+v", detail.Scores)
	}

	rec = doJSON(t, mux, http.MethodGet, "/api/quiz/results/"+created.UUID, nil)
	var res resultView
	decodeBody(t, rec, &res)
	if res.ViewCount != 1 {
		t.Fatalf("view count = %d, want 1", res.ViewCount)
	}
}

func TestTypeDetailFallsBackPerType(t *testing.T) {
	mux := newTestMux(t)
	seedStore(t, mux)

	rec := doJSON(t, mux, http.MethodGet, "/api/types/LAPO?lang=en", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200 via ja fallback", rec.Code)
	}
	var detail struct {
		Type *services.PersonalityType `json:"type"`
	}
	decodeBody(t, rec, &detail)
	if detail.Type == nil || detail.Type.Locale != "ja" {
		t.Fatalf("got %+v, want the ja profile", detail.Type)
	}
}

func TestQuestionImportValidation(t *testing.T) {
	mux := newTestMux(t)

	valid := map[string]any{
		"question_number": 1,
		"category":        "ei",
		"locale":          "en",
		"question_text":   "Do you make the first move?",
		"option_a_label":  "I reach out first",
		"option_b_label":  "I wait to be approached",
		"option_a_value":  "e",
		"option_b_value":  "i",
	}
	rec := doJSON(t, mux, http.MethodPost, "/api/questions", valid)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: got %d, body %s", rec.Code, rec.Body.String())
	}
	var q services.Question
	decodeBody(t, rec, &q)
	if q.ID == 0 || q.Axis != "EI" || q.OptionAValue != "E" || q.Weight != 1 || !q.Active {
		t.Fatalf("imported question = %+v", q)
	}

	bad := map[string]any{}
	for k, v := range valid {
		bad[k] = v
	}
	bad["option_a_value"] = "T"
	if rec := doJSON(t, mux, http.MethodPost, "/api/questions", bad); rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong pole: got %d, want 400", rec.Code)
	}

	valid["id"] = 9999
	if rec := doJSON(t, mux, http.MethodPut, "/api/questions", valid); rec.Code != http.StatusNotFound {
		t.Fatalf("update unknown id: got %d, want 404", rec.Code)
	}
}

func TestTypeImportValidation(t *testing.T) {
	mux := newTestMux(t)

	valid := map[string]any{
		"mbti_type":            "enfp",
		"locale":               "en",
		"title":                "The Dreamy Campaigner",
		"basic_personality":    "Curious and warm.",
		"love_characteristics": "Falls fast and hard.",
		"suitable_partner":     "Someone who shares the dream.",
		"matching_advice":      "Keep tending the spark.",
	}
	rec := doJSON(t, mux, http.MethodPost, "/api/types", valid)
	if rec.Code != http.StatusOK {
		t.Fatalf("import: got %d, body %s", rec.Code, rec.Body.String())
	}
	var pt services.PersonalityType
	decodeBody(t, rec, &pt)
	if pt.ID == 0 || pt.MBTIType != "ENFP" || !pt.Active {
		t.Fatalf("imported type = %+v", pt)
	}

	bad := map[string]any{}
	for k, v := range valid {
		bad[k] = v
	}
	bad["mbti_type"] = "ABCD"
	if rec := doJSON(t, mux, http.MethodPost, "/api/types", bad); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad mbti: got %d, want 400", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/quiz/submit"},
		{http.MethodGet, "/api/quiz/share"},
		{http.MethodPost, "/api/quiz/questions"},
		{http.MethodPost, "/api/quiz/stats"},
		{http.MethodDelete, "/api/types"},
		{http.MethodGet, "/api/seed"},
	}
	for _, tc := range cases {
		if rec := doJSON(t, mux, tc.method, tc.path, nil); rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: got %d, want 405", tc.method, tc.path, rec.Code)
		}
	}
}
