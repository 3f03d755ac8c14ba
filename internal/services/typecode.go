package services

import "strings"

// The shareable short codes used in detail-page URLs, one per MBTI type.
var codeToMBTI = map[string]string{
	"LCRO": "ESTP",
	"LCRE": "ESTJ",
	"LCPO": "ESFP",
	"LCPE": "ESFJ",
	"LARO": "ENTP",
	"LARE": "ENTJ",
	"LAPO": "ENFP",
	"LAPE": "ENFJ",
	"FCRO": "ISTP",
	"FCRE": "ISTJ",
	"FCPO": "ISFP",
	"FCPE": "ISFJ",
	"FARO": "INTP",
	"FARE": "INTJ",
	"FAPO": "INFP",
	"FAPE": "INFJ",
}

var mbtiToCode = func() map[string]string {
	m := make(map[string]string, len(codeToMBTI))
	for code, mbti := range codeToMBTI {
		m[mbti] = code
	}
	return m
}()

// CodeToMBTI resolves a type code ("LARE") to its MBTI type ("ENTJ").
func CodeToMBTI(code string) (string, bool) {
	mbti, ok := codeToMBTI[strings.ToUpper(code)]
	return mbti, ok
}

// MBTIToCode resolves an MBTI type ("ENTJ") to its type code ("LARE").
func MBTIToCode(mbtiType string) (string, bool) {
	code, ok := mbtiToCode[strings.ToUpper(mbtiType)]
	return code, ok
}

// IsMBTIType reports whether s is one of the sixteen types.
func IsMBTIType(s string) bool {
	_, ok := mbtiToCode[strings.ToUpper(s)]
	return ok
}

// ResolveSlug maps a detail-page slug, either form, to a type code.
// The second return distinguishes an MBTI slug (legacy URLs redirect to the
// code form) from a code slug.
func ResolveSlug(slug string) (code string, isMBTI bool, ok bool) {
	up := strings.ToUpper(slug)
	if c, found := mbtiToCode[up]; found {
		return c, true, true
	}
	if _, found := codeToMBTI[up]; found {
		return up, false, true
	}
	return "", false, false
}
