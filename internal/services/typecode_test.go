package services

import "testing"

func TestTypeCodeMappingIsBijective(t *testing.T) {
	if len(codeToMBTI) != 16 {
		t.Fatalf("code table has %d entries, want 16", len(codeToMBTI))
	}
	seen := map[string]bool{}
	for code, mbti := range codeToMBTI {
		if seen[mbti] {
			t.Fatalf("mbti type %s mapped twice", mbti)
		}
		seen[mbti] = true
		back, ok := MBTIToCode(mbti)
		if !ok || back != code {
			t.Fatalf("MBTIToCode(%s)=(%q,%v), want (%s,true)", mbti, back, ok, code)
		}
	}
}

func TestCodeToMBTI(t *testing.T) {
	if mbti, ok := CodeToMBTI("lare"); !ok || mbti != "ENTJ" {
		t.Fatalf("CodeToMBTI(lare)=(%q,%v), want (ENTJ,true)", mbti, ok)
	}
	if _, ok := CodeToMBTI("XXXX"); ok {
		t.Fatalf("CodeToMBTI accepted unknown code")
	}
}

func TestIsMBTIType(t *testing.T) {
	if !IsMBTIType("enfp") {
		t.Fatalf("IsMBTIType(enfp)=false, want true")
	}
	if IsMBTIType("ABCD") {
		t.Fatalf("IsMBTIType(ABCD)=true, want false")
	}
}

func TestResolveSlug(t *testing.T) {
	cases := []struct {
		slug     string
		wantCode string
		wantMBTI bool
		wantOK   bool
	}{
		{"ENTJ", "LARE", true, true},
		{"entj", "LARE", true, true},
		{"LARE", "LARE", false, true},
		{"fapo", "FAPO", false, true},
		{"nope", "", false, false},
	}
	for _, c := range cases {
		code, isMBTI, ok := ResolveSlug(c.slug)
		if code != c.wantCode || isMBTI != c.wantMBTI || ok != c.wantOK {
			t.Fatalf("ResolveSlug(%q)=(%q,%v,%v), want (%q,%v,%v)", c.slug, code, isMBTI, ok, c.wantCode, c.wantMBTI, c.wantOK)
		}
	}
}
