package utils

import "testing"

func TestSafeEnv(t *testing.T) {
	t.Setenv("KOIMBTI_TEST_KEY", "value")
	if got := SafeEnv("KOIMBTI_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("SafeEnv set = %q, want value", got)
	}
	if got := SafeEnv("KOIMBTI_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("SafeEnv missing = %q, want fallback", got)
	}
}

func TestEnvInt(t *testing.T) {
	t.Setenv("KOIMBTI_TEST_INT", "42")
	if got := EnvInt("KOIMBTI_TEST_INT", 7); got != 42 {
		t.Fatalf("EnvInt set = %d, want 42", got)
	}
	t.Setenv("KOIMBTI_TEST_INT", "not-a-number")
	if got := EnvInt("KOIMBTI_TEST_INT", 7); got != 7 {
		t.Fatalf("EnvInt malformed = %d, want 7", got)
	}
	if got := EnvInt("KOIMBTI_TEST_INT_MISSING", 7); got != 7 {
		t.Fatalf("EnvInt missing = %d, want 7", got)
	}
}
