package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/epmodel/schedkit/core/schedule"
)

func TestParseWeights(t *testing.T) {
	w, err := parseWeights("0.25, 0.75", 2)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if w[0] != 0.25 || w[1] != 0.75 {
		t.Errorf("got %v", w)
	}
	if got, err := parseWeights("", 3); err != nil || got != nil {
		t.Errorf("empty weights mean equal weighting, got %v, %v", got, err)
	}
	if _, err := parseWeights("0.5", 2); err == nil {
		t.Error("a weight count mismatch must be rejected")
	}
	if _, err := parseWeights("0.5,zero", 2); err == nil {
		t.Error("a non-numeric weight must be rejected")
	}
}

func TestLoadRuleset(t *testing.T) {
	rs, err := schedule.NewConstantRuleset("Always On", 1)
	if err != nil {
		t.Fatalf("ruleset: %v", err)
	}
	data, err := json.Marshal(rs)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "always_on.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	back, err := loadRuleset(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if back.Name() != "Always On" {
		t.Errorf("name %q", back.Name())
	}

	if _, err := loadRuleset(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("a missing file must be reported")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := loadRuleset(bad); err == nil {
		t.Error("malformed JSON must be reported")
	}
}
