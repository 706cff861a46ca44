package tagsearch

import (
	"github.com/spf13/cast"

	"github.com/ruby-gems/metka/component/tagparser"
)

// TagList is the parsed, ordered representation of a tag column value.
type TagList []string

// String renders the list through the process-wide default parser.
func (l TagList) String() string {
	return tagparser.Default().Join(l)
}

// ParseList parses an external representation with the scope's parser.
func (s *Scope) ParseList(raw string) TagList {
	tags := s.parserOrDefault().Parse(raw)
	if tags == nil {
		tags = []string{}
	}
	return TagList(tags)
}

// Format renders stored tags back to the external representation.
func (s *Scope) Format(tags []string) string {
	return s.parserOrDefault().Join(tags)
}

// Assign parses value and stores the result in dst. A value that parses
// to nothing stores an empty array, never nil. Conversion and parser
// errors propagate unchanged.
func (s *Scope) Assign(dst *[]string, value any) error {
	raw, err := cast.ToStringE(value)
	if err != nil {
		return err
	}
	*dst = s.ParseList(raw)
	return nil
}
