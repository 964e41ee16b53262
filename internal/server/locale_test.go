package server

import "testing"

func TestNormalizeLangCode(t *testing.T) {
	cases := map[string]string{
		"":      "tw",
		"  ":    "tw",
		"tw":    "tw",
		" TW ":  "tw",
		"Tw":    "tw",
		"en":    "en",
		" EN\t": "en",
	}
	for input, want := range cases {
		if got := normalizeLangCode(input); got != want {
			t.Fatalf("normalizeLangCode(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLocaleContentComplete(t *testing.T) {
	content, ok := locales[localeTW]
	if !ok {
		t.Fatalf("tw locale missing")
	}
	if content.EmailSubject == "" || content.ReportTitle == "" || content.Footer == "" {
		t.Fatalf("locale content incomplete: %+v", content)
	}
	for _, key := range []string{
		"name", "chinese_name", "dob", "country", "gender", "age",
		"height", "weight", "condition", "details", "referrer", "angel",
	} {
		if content.ProfileLabels[key] == "" {
			t.Fatalf("missing profile label for %q", key)
		}
	}
}
