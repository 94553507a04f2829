package refparse

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/matsen/refcheck/internal/paper"
)

// Numbered line at the start of a text block: "1. ", "2) ", "[3] ".
var blockStartRe = regexp.MustCompile(`^\s*\[?\d+[\].)]\s+`)

// LoadFile loads references from a JSON or plain-text file.
//
// JSON input may be a top-level array of reference objects or an object with
// a "references" array; structured references are returned as-is. Anything
// else is treated as free text: one reference per blank-line-delimited block,
// with a numbered line additionally starting a new block.
func LoadFile(path string) ([]paper.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading references file: %w", err)
	}
	return Parse(strings.TrimSpace(string(data)))
}

// Parse loads references from file content that has already been read.
func Parse(content string) ([]paper.Reference, error) {
	if refs, ok := parseJSON(content); ok {
		return refs, nil
	}
	return parseTextBlocks(content), nil
}

// parseJSON attempts to interpret content as structured JSON references.
func parseJSON(content string) ([]paper.Reference, bool) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "[") && !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}

	var list []paper.Reference
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		return list, true
	}

	var wrapper struct {
		References []paper.Reference `json:"references"`
	}
	if err := json.Unmarshal([]byte(trimmed), &wrapper); err == nil && wrapper.References != nil {
		return wrapper.References, true
	}

	return nil, false
}

// parseTextBlocks splits free text into reference blocks and parses each.
// Blocks are separated by blank lines; a line starting with a numbering
// marker also closes any open block.
func parseTextBlocks(content string) []paper.Reference {
	var refs []paper.Reference
	var current []string

	flush := func() {
		if len(current) > 0 {
			refs = append(refs, ParseText(strings.Join(current, " ")))
			current = nil
		}
	}

	for _, line := range strings.Split(content, "\n") {
		stripped := strings.TrimSpace(line)
		switch {
		case stripped == "":
			flush()
		case blockStartRe.MatchString(stripped) && len(current) > 0:
			flush()
			current = []string{stripped}
		default:
			current = append(current, stripped)
		}
	}
	flush()

	return refs
}
