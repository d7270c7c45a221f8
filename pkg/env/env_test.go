package env

import "testing"

func TestFirstOfPrefersEarlierKeys(t *testing.T) {
	t.Setenv("CARTVIEW_TEST_A", "")
	t.Setenv("CARTVIEW_TEST_B", " 9090 ")
	t.Setenv("CARTVIEW_TEST_C", "7070")

	if got := FirstOf("8080", "CARTVIEW_TEST_A", "CARTVIEW_TEST_B", "CARTVIEW_TEST_C"); got != "9090" {
		t.Fatalf("expected 9090, got %q", got)
	}
	if got := Get("CARTVIEW_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %q", got)
	}
}
