package utils

// Minimal server-side i18n for fixed keys.
// UI copy lives in the frontend; the server only needs a few messages.

var translations = map[string]map[string]string{
	"ja": {
		"health.ok":       "正常",
		"quiz.not_ready":  "この言語の診断はまだ準備中です",
		"types.not_ready": "この性格タイプの説明はまだ準備中です",
	},
	"en": {
		"health.ok":       "ok",
		"quiz.not_ready":  "The quiz is not ready in this language yet",
		"types.not_ready": "This personality type is not ready in this language yet",
	},
	"zh": {
		"health.ok":       "正常",
		"quiz.not_ready":  "该语言的测试尚未准备好",
		"types.not_ready": "该性格类型的说明尚未准备好",
	},
	"pt": {
		"health.ok":       "ok",
		"quiz.not_ready":  "O teste ainda não está disponível neste idioma",
		"types.not_ready": "Este tipo de personalidade ainda não está disponível neste idioma",
	},
	"ms": {
		"health.ok":       "ok",
		"quiz.not_ready":  "Ujian belum tersedia dalam bahasa ini",
		"types.not_ready": "Jenis personaliti ini belum tersedia dalam bahasa ini",
	},
}

// T returns the translated string for key in locale; falls back to Japanese,
// the content default, then to the key itself.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if m, ok := translations["ja"]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return key
}
