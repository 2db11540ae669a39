package registry

import (
	"errors"
	"testing"

	"github.com/shaban/sonora/plugin"
)

func silenceBuilder() Builder {
	return BuilderFunc{
		Meta: Metadata{ID: "builtin_silence", DisplayName: "Silence"},
		BuildFn: func() (plugin.Instance, error) {
			return plugin.Func(func(_ []plugin.TimedMidi, l, r []float32) {}), nil
		},
	}
}

func TestRegister_RejectsInvalidID(t *testing.T) {
	f := New()
	b := BuilderFunc{Meta: Metadata{ID: "Bad-ID"}, BuildFn: func() (plugin.Instance, error) { return nil, nil }}
	err := f.Register(b)
	if err == nil {
		t.Fatal("expected error for invalid id")
	}
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != InvalidMetadata {
		t.Fatalf("expected InvalidMetadata, got %v", err)
	}
}

func TestRegister_RejectsDuplicate(t *testing.T) {
	f := New()
	if err := f.Register(silenceBuilder()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	err := f.Register(silenceBuilder())
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != PluginAlreadyRegistered {
		t.Fatalf("expected PluginAlreadyRegistered, got %v", err)
	}
}

func TestBuild_UnknownID(t *testing.T) {
	f := New()
	_, err := f.Build("nope")
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != PluginDoesNotExist {
		t.Fatalf("expected PluginDoesNotExist, got %v", err)
	}
}

func TestMetadata_EnumeratesRegistered(t *testing.T) {
	f := New()
	if err := f.Register(silenceBuilder()); err != nil {
		t.Fatalf("register: %v", err)
	}
	all := f.Metadata()
	if len(all) != 1 || all[0].ID != "builtin_silence" {
		t.Fatalf("unexpected metadata: %+v", all)
	}
}

func TestValidateID_Idempotent(t *testing.T) {
	ids := []string{"builtin_sine", "Bad", "", "ok_123"}
	for _, id := range ids {
		first := ValidateID(id)
		second := ValidateID(id)
		if (first == nil) != (second == nil) {
			t.Fatalf("validate(%q) not idempotent", id)
		}
	}
}
