package policy

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default()
	if p.RequireGroupForNextKey {
		t.Error("default policy should not require a group for the next key")
	}
	if p.EncodingDomain == "" {
		t.Error("default policy should carry a non-empty encoding domain")
	}
}

func TestLoadOverridesOneField(t *testing.T) {
	yaml := "require_group_for_next_key: true\n"
	p, err := Load(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !p.RequireGroupForNextKey {
		t.Error("Load did not apply the override")
	}
	if p.EncodingDomain != Default().EncodingDomain {
		t.Error("Load did not preserve the default for an unspecified field")
	}
}

func TestLoadEmptyYieldsDefault(t *testing.T) {
	p, err := Load(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != Default() {
		t.Errorf("Load(empty) = %+v, want Default()", p)
	}
}
