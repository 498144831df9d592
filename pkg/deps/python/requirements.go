package python

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
	"slices"
	"strings"

	pep440 "github.com/aquasecurity/go-pep440-version"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackcensus/pkg/errors"
	"github.com/matzehuels/stackcensus/pkg/integrations"
)

var (
	nameRE    = regexp.MustCompile(`^([A-Za-z0-9](?:[A-Za-z0-9._-]*[A-Za-z0-9])?)\s*`)
	extrasRE  = regexp.MustCompile(`^\[([^\]]*)\]\s*`)
	commentRE = regexp.MustCompile(`(^|\s+)#.*$`)
	directRE  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*\s*(\[[^\]]*\])?\s*@`)
)

// Requirements parses requirements.txt content.
type Requirements struct {
	validator Validator
	logger    *log.Logger
}

// NewRequirements returns a parser that filters names through validator when
// asked to validate. A nil validator disables filtering.
func NewRequirements(validator Validator, logger *log.Logger) *Requirements {
	if logger == nil {
		logger = log.Default()
	}
	return &Requirements{validator: validator, logger: logger}
}

// Parse returns the sorted, distinct project names in content.
func (r *Requirements) Parse(ctx context.Context, content []byte, validate bool) []string {
	names, err := ParseRequirements(content)
	if err != nil {
		r.logger.Warn("skipping requirements.txt", "err", err)
		return nil
	}
	if !validate || r.validator == nil || len(names) == 0 {
		return names
	}

	valid, err := r.validator.Validate(ctx, names)
	if err != nil {
		r.logger.Warn("skipping requirements.txt", "err", errors.Wrap(errors.ErrCodeParseFailure, err, "validate packages"))
		return nil
	}
	return sortedSet(valid)
}

// ParseRequirements returns the normalized project names declared in
// content, sorted and deduplicated. Lines that name no project (options,
// editable installs, URLs and paths) are skipped.
func ParseRequirements(content []byte) ([]string, error) {
	lines, err := logicalLines(content)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "read requirements")
	}

	var names []string
	for i, line := range lines {
		line = strings.TrimSpace(commentRE.ReplaceAllString(line, ""))
		if line == "" || skipLine(line) {
			continue
		}
		req, err := ParseRequirement(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "requirement %d", i+1)
		}
		names = append(names, req.Name)
	}
	return sortedSet(names), nil
}

// Requirement is one parsed PEP 508 line.
type Requirement struct {
	Name      string   // PEP 503 normalized
	Extras    []string // as written
	Specifier string   // empty when unconstrained
	URL       string   // set for "name @ url" references
	Marker    string   // environment marker, unevaluated
}

// ParseRequirement parses a single requirement specifier.
func ParseRequirement(line string) (Requirement, error) {
	var req Requirement

	body, marker, _ := strings.Cut(line, ";")
	req.Marker = strings.TrimSpace(marker)

	m := nameRE.FindStringSubmatch(body)
	if m == nil {
		return req, errors.New(errors.ErrCodeParseFailure, "no project name in %q", line)
	}
	req.Name = integrations.NormalizePkgName(m[1])
	if err := errors.ValidatePythonPackageName(req.Name); err != nil {
		return req, err
	}
	rest := body[len(m[0]):]

	if e := extrasRE.FindStringSubmatch(rest); e != nil {
		for _, extra := range strings.Split(e[1], ",") {
			if extra = strings.TrimSpace(extra); extra != "" {
				req.Extras = append(req.Extras, extra)
			}
		}
		rest = rest[len(e[0]):]
	}

	rest = stripOptions(rest)
	if url, ok := strings.CutPrefix(rest, "@"); ok {
		req.URL = strings.TrimSpace(url)
		if req.URL == "" {
			return req, errors.New(errors.ErrCodeParseFailure, "empty url for %s", req.Name)
		}
		return req, nil
	}

	spec := strings.Join(strings.Fields(strings.Trim(rest, "()")), "")
	if spec == "" {
		return req, nil
	}
	if _, err := pep440.NewSpecifiers(spec); err != nil {
		return req, errors.Wrap(errors.ErrCodeParseFailure, err, "invalid specifier %q for %s", spec, req.Name)
	}
	req.Specifier = spec
	return req, nil
}

// stripOptions drops per-requirement options such as --hash.
func stripOptions(rest string) string {
	fields := strings.Fields(rest)
	for i, f := range fields {
		if strings.HasPrefix(f, "-") {
			fields = fields[:i]
			break
		}
	}
	return strings.Join(fields, " ")
}

// logicalLines joins backslash continuations.
func logicalLines(content []byte) ([]string, error) {
	var lines []string
	var cur strings.Builder

	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasSuffix(line, `\`) {
			cur.WriteString(strings.TrimSuffix(line, `\`))
			continue
		}
		cur.WriteString(line)
		lines = append(lines, cur.String())
		cur.Reset()
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	return lines, scanner.Err()
}

func skipLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "-"):
		// -r, -c, -e, --index-url and friends
		return true
	case directRE.MatchString(line):
		// name @ url keeps its name
		return false
	case strings.Contains(line, "://"), strings.HasPrefix(line, "git+"):
		return true
	case strings.HasPrefix(line, "."), strings.HasPrefix(line, "/"), strings.HasPrefix(line, "~"):
		return true
	}
	lower := strings.ToLower(strings.Fields(line)[0])
	for _, ext := range []string{".whl", ".tar.gz", ".zip", ".tar.bz2"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func sortedSet(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := slices.Clone(names)
	slices.Sort(out)
	return slices.Compact(out)
}
