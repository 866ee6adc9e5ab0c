package config

import (
	"testing"
)

func TestSubstituteEnvVars_Simple(t *testing.T) {
	t.Setenv("TEST_VAR_SIMPLE", "hello")

	content, missing := substituteEnvVars("value = ${TEST_VAR_SIMPLE}")
	if content != "value = hello" {
		t.Errorf("expected 'value = hello', got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars, got %v", missing)
	}
}

func TestSubstituteEnvVars_Missing(t *testing.T) {
	// t.Setenv cannot truly unset, so we use a name that is never set
	content, missing := substituteEnvVars("value = ${MEDIASCAN_TEST_NONEXISTENT_VAR_12345}")
	if content != "value = ${MEDIASCAN_TEST_NONEXISTENT_VAR_12345}" {
		t.Errorf("expected unchanged, got %q", content)
	}
	if len(missing) != 1 || missing[0] != "MEDIASCAN_TEST_NONEXISTENT_VAR_12345" {
		t.Errorf("expected [MEDIASCAN_TEST_NONEXISTENT_VAR_12345], got %v", missing)
	}
}

func TestSubstituteEnvVars_Default(t *testing.T) {
	t.Setenv("UNSET_VAR_DEFAULT", "")

	content, missing := substituteEnvVars("connect = ${UNSET_VAR_DEFAULT:-sqlite:///media.db}")
	if content != "connect = sqlite:///media.db" {
		t.Errorf("expected default value, got %q", content)
	}
	if len(missing) != 0 {
		t.Errorf("expected no missing vars with default, got %v", missing)
	}
}

func TestSubstituteEnvVars_DefaultOverriddenByEnv(t *testing.T) {
	t.Setenv("SET_VAR_OVERRIDE", "from_env")

	content, _ := substituteEnvVars("value = ${SET_VAR_OVERRIDE:-default}")
	if content != "value = from_env" {
		t.Errorf("expected 'value = from_env', got %q", content)
	}
}

func TestSubstituteEnvVars_MissingReportedOnce(t *testing.T) {
	_, missing := substituteEnvVars("${MEDIASCAN_TEST_TWICE_NONEXISTENT} ${MEDIASCAN_TEST_TWICE_NONEXISTENT}")
	if len(missing) != 1 {
		t.Errorf("expected one missing var, got %v", missing)
	}
}
