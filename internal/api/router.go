package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/koilabs/koimbti/internal/pkg/logger"
	"github.com/koilabs/koimbti/internal/services"
	"github.com/koilabs/koimbti/internal/utils"
)

type Router struct {
	store   Store
	log     *logger.Logger
	content *services.ContentService
	quiz    *services.QuizService
}

func NewRouter(store Store, log *logger.Logger) *Router {
	return &Router{
		store:   store,
		log:     log,
		content: services.NewContentService(newContentStoreAdapter(store)),
		quiz:    services.NewQuizService(newResultStoreAdapter(store)),
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/seed", rt.handleSeed)                    // POST
	mux.HandleFunc("/api/questions", rt.handleQuestions)          // POST, PUT (import)
	mux.HandleFunc("/api/quiz/questions", rt.handleQuizQuestions) // GET
	mux.HandleFunc("/api/quiz/submit", rt.handleSubmit)           // POST
	mux.HandleFunc("/api/quiz/share", rt.handleShare)             // POST
	mux.HandleFunc("/api/quiz/results/", rt.handleResult)         // GET /api/quiz/results/{uuid}
	mux.HandleFunc("/api/quiz/stats", rt.handleStats)             // GET
	mux.HandleFunc("/api/types", rt.handleTypes)                  // GET, POST, PUT
	mux.HandleFunc("/api/types/", rt.handleTypeDetail)            // GET /api/types/{slug}
}

func (rt *Router) locale(r *http.Request) string {
	return utils.DetermineLocale(
		r.URL.Query().Get("lang"),
		r.Header.Get("Accept-Language"),
		services.SupportedLocales,
		services.DefaultLocale,
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (rt *Router) writeError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": se.Message})
			return
		case services.ErrorNotFound:
			writeJSON(w, http.StatusNotFound, map[string]string{"error": se.Message})
			return
		case services.ErrorConflict:
			writeJSON(w, http.StatusConflict, map[string]string{"error": se.Message})
			return
		}
	}
	rt.log.Error("internal error", "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

// GET /api/quiz/questions?lang=xx
func (rt *Router) handleQuizQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	locale := rt.locale(r)
	questions := rt.content.QuestionsWithFallback(locale)
	writeJSON(w, http.StatusOK, map[string]any{"locale": locale, "questions": questions})
}

// POST /api/quiz/submit
// { mbtiType, scores: {EI,SN,TF,JP}, answers: [0..5], locale, user_uuid? }
func (rt *Router) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		MBTIType string           `json:"mbtiType"`
		Scores   *services.Scores `json:"scores"`
		Answers  []int            `json:"answers"`
		Locale   string           `json:"locale"`
		UserUUID string           `json:"user_uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	out, err := rt.quiz.Submit(services.SubmitRequest{
		MBTIType:  req.MBTIType,
		Scores:    req.Scores,
		Answers:   req.Answers,
		Locale:    req.Locale,
		IPAddress: utils.ClientIP(r),
		UserUUID:  req.UserUUID,
	})
	if err != nil {
		rt.writeError(w, err)
		return
	}
	rt.log.Info("quiz result stored", "uuid", out.UUID, "locale", req.Locale)
	writeJSON(w, http.StatusOK, map[string]string{"uuid": out.UUID})
}

// POST /api/quiz/share with body { uuid }
func (rt *Router) handleShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		UUID string `json:"uuid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	count, err := rt.quiz.Share(req.UUID)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "share_count": count})
}

// resultView is the public projection of a stored result; attribution
// fields (ip, user) never leave the server.
type resultView struct {
	UUID       string          `json:"uuid"`
	MBTIType   string          `json:"mbti_type"`
	TypeCode   string          `json:"type_code,omitempty"`
	Scores     services.Scores `json:"scores"`
	Answers    []int           `json:"answers"`
	Locale     string          `json:"locale"`
	ShareCount int             `json:"share_count"`
	ViewCount  int             `json:"view_count"`
}

// GET /api/quiz/results/{uuid}
func (rt *Router) handleResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	uuid := strings.TrimPrefix(r.URL.Path, "/api/quiz/results/")
	if uuid == "" || strings.Contains(uuid, "/") {
		http.NotFound(w, r)
		return
	}
	res, err := rt.quiz.Result(uuid)
	if err != nil {
		rt.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resultView{
		UUID:       res.UUID,
		MBTIType:   res.MBTIType,
		TypeCode:   res.TypeCode,
		Scores:     res.Scores,
		Answers:    res.Answers,
		Locale:     res.Locale,
		ShareCount: res.ShareCount,
		ViewCount:  res.ViewCount,
	})
}

// GET /api/quiz/stats
func (rt *Router) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"total": rt.quiz.Total()})
}

// GET /api/types?lang=xx lists the locale's types. No fallback here: the
// index shows only what the locale actually has.
// POST/PUT /api/types is the editorial import path.
func (rt *Router) handleTypes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		locale := rt.locale(r)
		types := rt.content.TypesForLocale(locale)
		writeJSON(w, http.StatusOK, map[string]any{"locale": locale, "types": types})
	case http.MethodPost, http.MethodPut:
		rt.handleTypeImport(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (rt *Router) handleTypeImport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		services.PersonalityType
		IsActive *bool `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	pt := req.PersonalityType
	pt.MBTIType = strings.ToUpper(pt.MBTIType)
	pt.TypeCode = strings.ToUpper(pt.TypeCode)
	pt.Active = req.IsActive == nil || *req.IsActive
	if err := services.ValidatePersonalityType(&pt); err != nil {
		rt.writeError(w, err)
		return
	}
	rec := convertServiceType(&pt)
	if r.Method == http.MethodPut {
		if !rt.store.UpdatePersonalityType(rec) {
			rt.writeError(w, services.NewNotFoundError("personality type not found"))
			return
		}
	} else {
		rt.store.AddPersonalityType(rec)
	}
	writeJSON(w, http.StatusOK, convertAPIType(rec))
}

// GET /api/types/{slug}?uuid=...&lang=xx
// The slug is a type code; MBTI slugs redirect permanently to the code
// form. A uuid naming a result of the same type embeds the stored scores
// and counts the view.
func (rt *Router) handleTypeDetail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	slug := strings.TrimPrefix(r.URL.Path, "/api/types/")
	if slug == "" || strings.Contains(slug, "/") {
		http.NotFound(w, r)
		return
	}
	code, isMBTI, ok := services.ResolveSlug(slug)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown type"})
		return
	}
	if isMBTI {
		target := "/api/types/" + code
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusMovedPermanently)
		return
	}

	locale := rt.locale(r)
	pt := rt.content.TypeByCodeWithFallback(code, locale)
	if pt == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": utils.T(locale, "types.not_ready")})
		return
	}

	var scores *services.Scores
	if uuid := r.URL.Query().Get("uuid"); uuid != "" {
		if res, err := rt.quiz.Result(uuid); err == nil && res.MBTIType == pt.MBTIType {
			scores = &res.Scores
			if _, err := rt.quiz.View(uuid); err != nil {
				rt.log.Warn("view count not incremented", "uuid", uuid, "err", err)
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"type": pt, "scores": scores})
}

// POST/PUT /api/questions is the editorial import path for quiz items.
func (rt *Router) handleQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		services.Question
		IsActive *bool `json:"is_active"`
		Weight   *int  `json:"weight"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	q := req.Question
	q.Axis = strings.ToUpper(q.Axis)
	q.OptionAValue = strings.ToUpper(q.OptionAValue)
	q.OptionBValue = strings.ToUpper(q.OptionBValue)
	q.Active = req.IsActive == nil || *req.IsActive
	if req.Weight == nil {
		q.Weight = 1
	} else {
		q.Weight = *req.Weight
	}
	if err := services.ValidateQuestion(&q); err != nil {
		rt.writeError(w, err)
		return
	}
	rec := convertServiceQuestion(&q)
	if r.Method == http.MethodPut {
		if !rt.store.UpdateQuestion(rec) {
			rt.writeError(w, services.NewNotFoundError("question not found"))
			return
		}
	} else {
		rt.store.AddQuestion(rec)
	}
	writeJSON(w, http.StatusOK, convertAPIQuestion(rec))
}
