package util

import (
	"testing"
	"time"
)

func TestDateLayout(t *testing.T) {
	ref := time.Date(2024, 10, 10, 0, 0, 0, 0, time.UTC)
	if got := ref.Format(DateLayout); got != "2024-10-10" {
		t.Fatalf("unexpected layout rendering %s", got)
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-10-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	if FormatDate(got) != "2024-10-10" {
		t.Fatalf("unexpected date %v", got)
	}
}

func TestParseDateRejectsOtherForms(t *testing.T) {
	if _, ok := ParseDate(""); ok {
		t.Fatalf("expected empty string to fail")
	}
	if _, ok := ParseDate("10/10/2024"); ok {
		t.Fatalf("expected slash form to fail")
	}
}

func TestDateUnixRoundTrip(t *testing.T) {
	ts, ok := DateToUnix("2024-01-01")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got := UnixToDate(ts); got != "2024-01-01" {
		t.Fatalf("unexpected round trip %s", got)
	}
}

func TestLookbackRange(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	start, end := LookbackRange(now, 5)
	if end != "2025-06-01" {
		t.Fatalf("unexpected end %s", end)
	}
	if start >= end {
		t.Fatalf("start %s not before end %s", start, end)
	}
}
