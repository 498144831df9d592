package query

import (
	"fmt"
	"strings"
)

// Corpus tables in the BigQuery public datasets.
const (
	ContentsTable  = "bigquery-public-data.github_repos.contents"
	FilesTable     = "bigquery-public-data.github_repos.files"
	LanguagesTable = "bigquery-public-data.github_repos.languages"
)

// ManifestSQL builds the corpus query for the given manifest suffixes, in
// maven, npm, pypi order. Maven manifests are limited to repositories that
// report Java, requirements files to repositories that report Python.
// package.json is taken from every repository.
func ManifestSQL(maven, npm, pypi string) string {
	var b strings.Builder
	b.WriteString("SELECT con.content AS content, L.path AS path\n")
	fmt.Fprintf(&b, "FROM `%s` AS con\n", ContentsTable)
	b.WriteString("INNER JOIN (\n")
	b.WriteString("  SELECT files.id AS id, files.path AS path\n")
	fmt.Fprintf(&b, "  FROM `%s` AS langs\n", LanguagesTable)
	fmt.Fprintf(&b, "  INNER JOIN `%s` AS files\n", FilesTable)
	b.WriteString("  ON files.repo_name = langs.repo_name\n")
	b.WriteString("  WHERE (\n")
	fmt.Fprintf(&b, "    (REGEXP_CONTAINS(TO_JSON_STRING(language), r'(?i)java') AND files.path LIKE '%%%s')\n", maven)
	fmt.Fprintf(&b, "    OR (REGEXP_CONTAINS(TO_JSON_STRING(language), r'(?i)python') AND files.path LIKE '%%%s')\n", pypi)
	fmt.Fprintf(&b, "    OR (files.path LIKE '%%%s')\n", npm)
	b.WriteString("  )\n")
	b.WriteString(") AS L\n")
	b.WriteString("ON con.id = L.id")
	return b.String()
}
