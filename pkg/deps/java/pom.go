package java

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/net/html/charset"

	"github.com/matzehuels/stackcensus/pkg/errors"
)

// DefaultScope is assumed for dependencies without a <scope> element.
const DefaultScope = "compile"

var allowedScopes = map[string]bool{
	"compile":  true,
	"run":      true,
	"provided": true,
}

// POMParser parses pom.xml content.
type POMParser struct {
	logger *log.Logger
}

// NewPOMParser returns a parser that reports malformed manifests on logger.
// A nil logger uses the charmbracelet default.
func NewPOMParser(logger *log.Logger) *POMParser {
	if logger == nil {
		logger = log.Default()
	}
	return &POMParser{logger: logger}
}

// Parse returns the allowed dependencies of the manifest in document order.
// validate is ignored; Maven coordinates are not checked against a registry.
func (p *POMParser) Parse(_ context.Context, content []byte, _ bool) []string {
	ids, err := ExtractDependencies(content)
	if err != nil {
		p.logger.Warn("skipping pom.xml", "err", err)
		return nil
	}
	return ids
}

// ExtractDependencies decodes content as a POM and returns its allowed
// coordinates. It fails with [errors.ErrCodeParseFailure] when content is
// empty or not well-formed XML.
func ExtractDependencies(content []byte) ([]string, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, errors.New(errors.ErrCodeParseFailure, "empty pom.xml")
	}

	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.CharsetReader = charset.NewReaderLabel

	var pom pomProject
	if err := dec.Decode(&pom); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailure, err, "decode pom.xml")
	}
	if pom.XMLName.Local != "project" {
		return nil, errors.New(errors.ErrCodeParseFailure, "root element is <%s>, not <project>", pom.XMLName.Local)
	}
	if err := expectEOF(dec); err != nil {
		return nil, err
	}

	var ids []string
	for _, dep := range pom.Dependencies {
		if !dep.allowed() {
			continue
		}
		ids = append(ids, dep.coordinate())
	}
	return ids, nil
}

type pomProject struct {
	XMLName      xml.Name
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
}

func (d pomDependency) scope() string {
	if s := strings.TrimSpace(d.Scope); s != "" {
		return s
	}
	return DefaultScope
}

func (d pomDependency) allowed() bool {
	if !allowedScopes[d.scope()] {
		return false
	}
	return strings.TrimSpace(d.GroupID) != "" && strings.TrimSpace(d.ArtifactID) != ""
}

func (d pomDependency) coordinate() string {
	return strings.TrimSpace(d.GroupID) + ":" + strings.TrimSpace(d.ArtifactID)
}

// expectEOF consumes the rest of the document. Only whitespace, comments and
// processing instructions may follow the root element.
func expectEOF(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeParseFailure, err, "decode pom.xml")
		}
		switch t := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return errors.New(errors.ErrCodeParseFailure, "text after root element")
			}
		default:
			return errors.New(errors.ErrCodeParseFailure, "content after root element")
		}
	}
}
