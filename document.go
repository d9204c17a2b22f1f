package md2card

import (
	"regexp"
	"strings"

	"github.com/alnah/go-md2card/internal/yamlutil"
)

// frontMatterPattern matches a leading metadata block fenced by "---" lines.
var frontMatterPattern = regexp.MustCompile(`(?s)\A---\s*\n(.*?)\n---\s*\n`)

// ParseDocument splits raw text into front-matter metadata and body.
//
// The metadata block is optional. Malformed YAML degrades to empty
// metadata rather than failing: the run then produces unstyled body cards
// with no cover. The body is everything after the closing fence (or the
// whole input when no fence is found), trimmed of surrounding whitespace.
func ParseDocument(raw string) Document {
	metadata := map[string]any{}
	body := raw

	if m := frontMatterPattern.FindStringSubmatchIndex(raw); m != nil {
		block := raw[m[2]:m[3]]
		var decoded map[string]any
		if err := yamlutil.Unmarshal([]byte(block), &decoded); err == nil && decoded != nil {
			metadata = decoded
		}
		body = raw[m[1]:]
	}

	return Document{
		Metadata: metadata,
		Body:     strings.TrimSpace(body),
	}
}
