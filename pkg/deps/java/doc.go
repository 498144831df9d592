// Package java extracts Maven coordinates from pom.xml manifests.
//
// # Overview
//
// [POMParser] implements [deps.Parser] for the maven ecosystem. It reads the
// direct <dependencies> of a project and emits "groupId:artifactId" for each
// dependency whose scope is compile, run or provided. A dependency without a
// scope counts as compile.
//
//	p := java.NewPOMParser(logger)
//	ids := p.Parse(ctx, content, true)
//
// Identifiers come back in document order. They are not sorted or
// deduplicated; key formation in [aggregate] relies on that order.
//
// Documents that declare a non-UTF-8 encoding are decoded through
// golang.org/x/net/html/charset. Content that is not a POM yields no
// identifiers and a warning on the parser's logger.
//
// [deps.Parser]: github.com/matzehuels/stackcensus/pkg/deps.Parser
// [aggregate]: github.com/matzehuels/stackcensus/pkg/aggregate
package java
