// internal/service/judgment/repair.go

package judgment

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject pulls the first complete JSON object or array out of
// free-form model output. The provider is expected to answer with a single
// JSON payload but frequently wraps it in prose or ```json fences; this
// strips both. Truncated or unbalanced payloads return ErrMalformed.
func ExtractJSONObject(content string) (string, error) {
	s := strings.TrimSpace(content)
	if s == "" {
		return "", fmt.Errorf("%w: empty response", ErrMalformed)
	}

	if fenced, ok := stripFences(s); ok {
		s = fenced
	}

	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", fmt.Errorf("%w: no JSON payload found", ErrMalformed)
	}

	payload, ok := scanBalanced(s[start:])
	if !ok {
		return "", fmt.Errorf("%w: unbalanced JSON payload", ErrMalformed)
	}
	if !json.Valid([]byte(payload)) {
		return "", fmt.Errorf("%w: invalid JSON payload", ErrMalformed)
	}
	return payload, nil
}

// decodeModelJSON extracts and unmarshals the payload into out.
func decodeModelJSON(content string, out any) error {
	payload, err := ExtractJSONObject(content)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

// stripFences unwraps a ```json ... ``` (or plain ```) code fence.
func stripFences(s string) (string, bool) {
	open := strings.Index(s, "```")
	if open < 0 {
		return "", false
	}
	rest := s[open+3:]
	rest = strings.TrimPrefix(rest, "json")
	end := strings.Index(rest, "```")
	if end < 0 {
		// Fence never closed; keep whatever follows the opener so a
		// truncated payload still fails on balance, not on fences.
		return strings.TrimSpace(rest), true
	}
	return strings.TrimSpace(rest[:end]), true
}

// scanBalanced returns the prefix of s forming one balanced JSON value,
// tracking strings and escapes so braces inside values do not miscount.
func scanBalanced(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
			if depth < 0 {
				return "", false
			}
		}
	}
	return "", false
}
