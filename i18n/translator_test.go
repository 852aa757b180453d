package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("no_such_field", nil); msg == "no_such_field" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("no_such_field", nil); msg == "no such field" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("zzz_not_a_code", nil); msg != "zzz_not_a_code" {
		t.Fatalf("expected code echo for unknown codes, got %q", msg)
	}
}

type upperTranslator struct{}

func (upperTranslator) Message(code string, _ map[string]string) string { return "!" + code }

func TestTranslator_Replaceable(t *testing.T) {
	SetTranslator(upperTranslator{})
	if msg := T("invalid_value", nil); msg != "!invalid_value" {
		t.Fatalf("expected custom translator output, got %q", msg)
	}
	SetTranslator(nil)
	if msg := T("invalid_value", nil); msg != "invalid value" {
		t.Fatalf("expected built-in translator restored, got %q", msg)
	}
}
