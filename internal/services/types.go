package services

import "time"

// Locales with authored content. Lookups missing in a requested locale fall
// back once to DefaultLocale and never cascade further.
var SupportedLocales = []string{"ja", "en", "zh", "pt", "ms"}

const DefaultLocale = "ja"

// Question is one slider item of the quiz. Answers run 0..5 where 0 means
// fully option A and 5 fully option B.
type Question struct {
	ID           int64  `json:"id,omitempty"`
	Number       int    `json:"question_number"`
	Axis         string `json:"category"`
	Locale       string `json:"locale"`
	Text         string `json:"question_text"`
	OptionALabel string `json:"option_a_label"`
	OptionBLabel string `json:"option_b_label"`
	OptionAValue string `json:"option_a_value"`
	OptionBValue string `json:"option_b_value"`
	Weight       int    `json:"weight"`
	Active       bool   `json:"is_active"`
}

// PersonalityType is the authored description of one MBTI type in one
// locale. The list fields distinguish absent (nil, section not rendered)
// from present-but-empty (rendered with zero entries).
type PersonalityType struct {
	ID                       int64    `json:"id,omitempty"`
	MBTIType                 string   `json:"mbti_type"`
	Locale                   string   `json:"locale"`
	Title                    string   `json:"title"`
	Subtitle                 string   `json:"subtitle,omitempty"`
	TypeCode                 string   `json:"type_code,omitempty"`
	BasicPersonality         string   `json:"basic_personality"`
	LoveCharacteristics      string   `json:"love_characteristics"`
	SuitablePartner          string   `json:"suitable_partner"`
	MatchingAdvice           string   `json:"matching_advice"`
	Strengths                []string `json:"strengths"`
	Weaknesses               []string `json:"weaknesses"`
	CompatibilityBest        []string `json:"compatibility_best"`
	CompatibilityGood        []string `json:"compatibility_good"`
	CompatibilityChallenging []string `json:"compatibility_challenging"`
	FamousPeople             []string `json:"famous_people"`
	Keywords                 []string `json:"keywords"`
	IconURL                  string   `json:"icon_url,omitempty"`
	CoverImageURL            string   `json:"cover_image_url,omitempty"`
	Active                   bool     `json:"is_active"`
}

// QuizResult is one completed attempt. Counters only ever grow; the row is
// otherwise immutable after creation.
type QuizResult struct {
	UUID       string    `json:"uuid"`
	MBTIType   string    `json:"mbti_type"`
	TypeCode   string    `json:"type_code,omitempty"`
	Scores     Scores    `json:"scores"`
	Answers    []int     `json:"answers"`
	Locale     string    `json:"locale"`
	ShareCount int       `json:"share_count"`
	ViewCount  int       `json:"view_count"`
	CreatedAt  time.Time `json:"created_at"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserUUID   string    `json:"user_uuid,omitempty"`
}
