package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{Debug, Info, Notice, Warning, Error} {
		got, err := ParseLevel(strings.ToUpper(l.String()))
		if err != nil || got != l {
			t.Errorf("ParseLevel(%q) = %v, %v", l.String(), got, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("Expected an error for an unknown level")
	}
	if s := Level(9).String(); s != "level(9)" {
		t.Errorf("Unexpected name for an invalid level: %s", s)
	}
}

func TestSinkAndLevel(t *testing.T) {
	defer SetSink(os.Stderr)
	defer SetLevel(GetLevel())

	var buf bytes.Buffer
	SetLevel(Warning)
	SetSink(&buf)
	if GetLevel() != Warning {
		t.Fatalf("SetSink must keep the level, got %v", GetLevel())
	}

	logger := New("test")
	logger.Infof("hidden %d", 1)
	logger.Warningf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info message logged at warning level: %q", out)
	}
	if !strings.Contains(out, "[test] [WARNING] shown 2") {
		t.Errorf("Expected a plain warning line, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("Expected no color codes for a non-terminal sink, got %q", out)
	}

	buf.Reset()
	SetLevel(Debug)
	logger.Debug("details")
	if !strings.Contains(buf.String(), "details") {
		t.Errorf("Expected debug output after SetLevel(Debug), got %q", buf.String())
	}
}
