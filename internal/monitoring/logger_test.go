package monitoring

import (
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	if !called {
		t.Error("Custom logger was not called")
	}

	// Setting nil must install a no-op, not panic.
	called = false
	SetLogger(nil)
	Logf("test message")
	if called {
		t.Error("No-op logger should not have triggered callback")
	}
}

func TestSetWarnLogger(t *testing.T) {
	original := Warnf
	defer func() { Warnf = original }()

	var got string
	SetWarnLogger(func(format string, v ...interface{}) {
		got = format
	})
	Warnf("field %s corrected", "Range")
	if got != "field %s corrected" {
		t.Errorf("Warn logger got format %q", got)
	}

	SetWarnLogger(nil)
	Warnf("must not panic")
}

func TestCapture(t *testing.T) {
	rec, restore := Capture()

	Logf("dump %d", 1)
	Warnf("bad %s", "value")
	restore()
	Logf("after restore") // must not reach the recorder

	if got := rec.Infos(); len(got) != 1 || got[0] != "dump 1" {
		t.Errorf("Infos = %v, want [dump 1]", got)
	}
	if got := rec.Warnings(); len(got) != 1 || got[0] != "bad value" {
		t.Errorf("Warnings = %v, want [bad value]", got)
	}
}

func TestLogf_Default(t *testing.T) {
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}
	if Warnf == nil {
		t.Error("Warnf should not be nil by default")
	}
}
