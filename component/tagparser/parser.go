package tagparser

import (
	"strings"
)

// Parser converts between the external tag representation and an
// ordered tag list. Join is the inverse of Parse; the round-trip
// contract is owned by the parser, not its callers.
type Parser interface {
	Parse(raw string) []string
	Join(tags []string) string
}

// make sure GenericParser implements Parser
var _ Parser = (*GenericParser)(nil)

// GenericParser splits on a fixed delimiter. Tokens are trimmed,
// blanks dropped and duplicates removed keeping first-seen order.
type GenericParser struct {
	delimiter string
}

func NewGenericParser(delimiter string) *GenericParser {
	if delimiter == "" {
		delimiter = ","
	}
	return &GenericParser{delimiter: delimiter}
}

func (p *GenericParser) Parse(raw string) []string {
	tags := make([]string, 0)
	seen := make(map[string]struct{})
	for _, token := range strings.Split(raw, p.delimiter) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		tags = append(tags, token)
	}
	return tags
}

func (p *GenericParser) Join(tags []string) string {
	return strings.Join(tags, p.delimiter+" ")
}

var defaultParser Parser = NewGenericParser(",")

// Default returns the process-wide parser used when no parser is
// injected. Set it once at startup; it is not meant for concurrent
// reconfiguration.
func Default() Parser {
	return defaultParser
}

func SetDefault(p Parser) {
	if p == nil {
		return
	}
	defaultParser = p
}
