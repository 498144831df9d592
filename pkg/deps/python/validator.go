package python

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackcensus/pkg/errors"
	"github.com/matzehuels/stackcensus/pkg/integrations"
)

// Validator filters project names down to those known to exist.
type Validator interface {
	// Validate returns the subset of names that passed. An error means the
	// check itself could not be completed.
	Validate(ctx context.Context, names []string) ([]string, error)
}

// ValidatorFunc adapts a function to [Validator].
type ValidatorFunc func(ctx context.Context, names []string) ([]string, error)

// Validate calls f.
func (f ValidatorFunc) Validate(ctx context.Context, names []string) ([]string, error) {
	return f(ctx, names)
}

// AllowAll accepts every name.
var AllowAll Validator = ValidatorFunc(func(_ context.Context, names []string) ([]string, error) {
	return names, nil
})

// StaticValidator accepts names from a fixed set.
type StaticValidator struct {
	known map[string]bool
}

// NewStaticValidator returns a validator that accepts exactly names,
// compared after PEP 503 normalization.
func NewStaticValidator(names ...string) *StaticValidator {
	v := &StaticValidator{known: make(map[string]bool, len(names))}
	for _, n := range names {
		if n = integrations.NormalizePkgName(n); n != "" {
			v.known[n] = true
		}
	}
	return v
}

// LoadStaticValidator reads a known-packages file: one name per line,
// blank lines and # comments ignored.
func LoadStaticValidator(path string) (*StaticValidator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open known packages")
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read known packages")
	}
	return NewStaticValidator(names...), nil
}

// Len returns the number of known names.
func (v *StaticValidator) Len() int { return len(v.known) }

// Validate keeps the names present in the set.
func (v *StaticValidator) Validate(_ context.Context, names []string) ([]string, error) {
	var out []string
	for _, n := range names {
		if v.known[integrations.NormalizePkgName(n)] {
			out = append(out, n)
		}
	}
	return out, nil
}

// PackageChecker reports whether a project exists in a package index.
// pypi.Client satisfies it.
type PackageChecker interface {
	Exists(ctx context.Context, name string) (bool, error)
}

// RegistryValidator checks each name against a package index.
type RegistryValidator struct {
	checker PackageChecker
	logger  *log.Logger
}

// NewRegistryValidator returns a validator backed by checker.
func NewRegistryValidator(checker PackageChecker, logger *log.Logger) *RegistryValidator {
	if logger == nil {
		logger = log.Default()
	}
	return &RegistryValidator{checker: checker, logger: logger}
}

// Validate drops names that are malformed or unknown to the index. Lookup
// failures other than "not found" abort validation.
func (v *RegistryValidator) Validate(ctx context.Context, names []string) ([]string, error) {
	var out []string
	for _, n := range names {
		if err := errors.ValidatePythonPackageName(n); err != nil {
			v.logger.Debug("rejecting package", "name", n, "err", err)
			continue
		}
		ok, err := v.checker.Exists(ctx, n)
		if err != nil {
			return nil, err
		}
		if !ok {
			v.logger.Debug("unknown package", "name", n)
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
