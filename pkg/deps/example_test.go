package deps_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/matzehuels/stackcensus/pkg/deps"
)

func ExampleClassify() {
	for _, path := range []string{
		"services/api/pom.xml",
		"web/package.json",
		"requirements.txt",
		"tests/data/invalid.file",
	} {
		e, ok := deps.Classify(path)
		fmt.Println(path, "->", e, ok)
	}
	// Output:
	// services/api/pom.xml -> maven true
	// web/package.json -> npm true
	// requirements.txt -> pypi true
	// tests/data/invalid.file ->  false
}

func ExampleParserFunc() {
	lines := deps.ParserFunc(func(_ context.Context, content []byte, _ bool) []string {
		return strings.Fields(string(content))
	})

	parsers := deps.Parsers{deps.PyPI: lines}
	fmt.Println(parsers[deps.PyPI].Parse(context.Background(), []byte("flask requests"), true))
	// Output:
	// [flask requests]
}
