package env

import (
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("FORGEGATE_TEST_STR", "value")
	if got := GetEnvString("FORGEGATE_TEST_STR", "def"); got != "value" {
		t.Fatalf("GetEnvString set value = %q, want value", got)
	}

	t.Setenv("FORGEGATE_TEST_STR", "")
	if got := GetEnvString("FORGEGATE_TEST_STR", "def"); got != "def" {
		t.Fatalf("GetEnvString empty value = %q, want def", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("FORGEGATE_TEST_INT", "42")
	if got := GetEnvInt("FORGEGATE_TEST_INT", 7); got != 42 {
		t.Fatalf("GetEnvInt valid value = %d, want 42", got)
	}

	t.Setenv("FORGEGATE_TEST_INT", "not-int")
	if got := GetEnvInt("FORGEGATE_TEST_INT", 7); got != 7 {
		t.Fatalf("GetEnvInt invalid value = %d, want 7", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("FORGEGATE_TEST_BOOL", "true")
	if got := GetEnvBool("FORGEGATE_TEST_BOOL", false); got != true {
		t.Fatalf("GetEnvBool true = %v, want true", got)
	}

	t.Setenv("FORGEGATE_TEST_BOOL", "not-bool")
	if got := GetEnvBool("FORGEGATE_TEST_BOOL", true); got != true {
		t.Fatalf("GetEnvBool invalid = %v, want true", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("FORGEGATE_TEST_DUR", "90s")
	if got := GetEnvDuration("FORGEGATE_TEST_DUR", time.Minute); got != 90*time.Second {
		t.Fatalf("GetEnvDuration valid value = %v, want 90s", got)
	}

	t.Setenv("FORGEGATE_TEST_DUR", "not-duration")
	if got := GetEnvDuration("FORGEGATE_TEST_DUR", time.Minute); got != time.Minute {
		t.Fatalf("GetEnvDuration invalid = %v, want 1m", got)
	}
}
