package python

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/matzehuels/stackcensus/pkg/errors"
)

type fakeChecker struct {
	known map[string]bool
	err   error
	calls []string
}

func (f *fakeChecker) Exists(_ context.Context, name string) (bool, error) {
	f.calls = append(f.calls, name)
	if f.err != nil {
		return false, f.err
	}
	return f.known[name], nil
}

func TestRegistryValidator(t *testing.T) {
	checker := &fakeChecker{known: map[string]bool{"flask": true, "boto": true}}
	v := NewRegistryValidator(checker, quiet())

	got, err := v.Validate(context.Background(), []string{"boto", "flask", "unknown1", "-bad-"})
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"boto", "flask"}) {
		t.Errorf("Validate() = %v", got)
	}
	// malformed names never reach the index
	if !reflect.DeepEqual(checker.calls, []string{"boto", "flask", "unknown1"}) {
		t.Errorf("calls = %v", checker.calls)
	}
}

func TestRegistryValidator_Error(t *testing.T) {
	checker := &fakeChecker{err: errors.New(errors.ErrCodeNetwork, "timeout")}
	v := NewRegistryValidator(checker, quiet())

	if _, err := v.Validate(context.Background(), []string{"flask"}); !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("Validate() error = %v, want network error", err)
	}
}

func TestStaticValidator(t *testing.T) {
	v := NewStaticValidator("Flask", "zope.interface", "")
	if v.Len() != 2 {
		t.Errorf("Len() = %d, want 2", v.Len())
	}
	got, _ := v.Validate(context.Background(), []string{"flask", "zope-interface", "django"})
	if !reflect.DeepEqual(got, []string{"flask", "zope-interface"}) {
		t.Errorf("Validate() = %v", got)
	}
}

func TestLoadStaticValidator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known.txt")
	content := "# known packages\nflask\n\nboto  # legacy\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := LoadStaticValidator(path)
	if err != nil {
		t.Fatalf("LoadStaticValidator() error: %v", err)
	}
	if v.Len() != 2 {
		t.Errorf("Len() = %d, want 2", v.Len())
	}

	if _, err := LoadStaticValidator(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("LoadStaticValidator(missing) error = %v", err)
	}
}

func TestAllowAll(t *testing.T) {
	names := []string{"a", "b"}
	got, err := AllowAll.Validate(context.Background(), names)
	if err != nil || !reflect.DeepEqual(got, names) {
		t.Errorf("AllowAll.Validate() = %v, %v", got, err)
	}
}
