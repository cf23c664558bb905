package links

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/samber/lo"

	"url2clash/internal/parser"
)

// A link starts with a scheme the parser knows and runs until whitespace or a quote.
var regexLink = regexp.MustCompile(`(?i)\b(` + strings.Join(parser.Schemes(), "|") + `)://[^\s"'<>]+`)

// Extract finds share links in free-form text, one or more per line.
// Exact duplicates are dropped; first-seen order is kept.
func Extract(text string) []string {
	var links []string
	text = strings.ReplaceAll(text, "\r\n", "\n")
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		matches := regexLink.FindAllString(line, -1)
		for _, match := range matches {
			clean := strings.TrimRight(match, ".,;)\"")
			if clean != "" {
				links = append(links, clean)
			}
		}
	}
	return lo.Uniq(links)
}
