package datum_test

import (
	"errors"
	"strings"
	"testing"

	datum "github.com/reoring/datum"
)

func TestIssues_ErrorSummarizesFirstFew(t *testing.T) {
	iss := datum.Issues{
		{Path: "/a", Code: datum.CodeNoSuchField, Message: "m"},
		{Path: "/b", Code: datum.CodeInvalidValue, Message: "m"},
		{Path: "/c", Code: datum.CodeInvalidValue, Message: "m"},
		{Path: "/d", Code: datum.CodeInvalidValue, Message: "m"},
	}
	s := iss.Error()
	if !strings.Contains(s, "no_such_field at /a") {
		t.Fatalf("expected first issue in summary, got %q", s)
	}
	if !strings.Contains(s, "total 4") {
		t.Fatalf("expected overflow marker, got %q", s)
	}
	if strings.Contains(s, "/d") {
		t.Fatalf("expected truncation after three issues, got %q", s)
	}
}

func TestAsIssues_AndErrorsAs(t *testing.T) {
	err := datum.IssueAt(datum.ByName("price"), datum.CodeNoSuchField, "")
	iss, ok := datum.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected extraction, got %v %v", iss, ok)
	}
	if iss[0].Path != "/price" {
		t.Fatalf("expected key path, got %q", iss[0].Path)
	}
	// empty message falls back to the i18n catalogue
	if iss[0].Message == "" {
		t.Fatalf("expected a catalogue message")
	}

	var target datum.Issues
	if !errors.As(err, &target) {
		t.Fatalf("errors.As must extract Issues")
	}

	if _, ok := datum.AsIssues(errors.New("plain")); ok {
		t.Fatalf("plain errors must not extract as Issues")
	}
	if _, ok := datum.AsIssues(nil); ok {
		t.Fatalf("nil must not extract as Issues")
	}
}

func TestHasCode(t *testing.T) {
	err := datum.IssueAtPath("/x", datum.CodeReservedName, "")
	if !datum.HasCode(err, datum.CodeReservedName) {
		t.Fatalf("expected code match")
	}
	if datum.HasCode(err, datum.CodeNoSuchField) {
		t.Fatalf("unexpected code match")
	}
	if datum.HasCode(errors.New("plain"), datum.CodeNoSuchField) {
		t.Fatalf("plain errors carry no codes")
	}
}
