// Package envfile parses and writes .env files.
//
// Parsing is permissive: blank lines and #-comments are skipped, the first
// unescaped "=" splits key from value, and surrounding single or double
// quotes are stripped with the usual backslash escapes. Writing can update
// an existing file in place, preserving its comments, blank lines and
// ordering while rewriting only the keys it knows about.
package envfile

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// ParseFile reads and parses a .env file.
func ParseFile(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(content)), nil
}

// Parse parses .env content into key/value pairs. Malformed lines are
// skipped rather than reported.
func Parse(content string) map[string]string {
	vars := make(map[string]string)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		eq := findUnescapedEquals(line)
		if eq < 0 {
			continue
		}

		key := strings.TrimSpace(line[:eq])
		if key == "" {
			continue
		}
		value := unquote(strings.TrimSpace(line[eq+1:]))
		vars[key] = value
	}

	return vars
}

// WriteFile writes vars to path. When preserveOriginal is true and the file
// exists, comments, blank lines, ordering and unknown keys are kept; matching
// keys are rewritten in place and new keys appended. Otherwise the file is
// created from scratch with sorted keys.
func WriteFile(path string, vars map[string]string, preserveOriginal bool) error {
	var content string
	if preserveOriginal {
		if original, err := os.ReadFile(path); err == nil {
			content = updateContent(string(original), vars)
		} else {
			content = createContent(vars)
		}
	} else {
		content = createContent(vars)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Render renders vars as the sorted KEY=value content WriteFile would
// create from scratch.
func Render(vars map[string]string) string {
	return createContent(vars)
}

// findUnescapedEquals returns the index of the first "=" not preceded by a
// backslash, or -1. Byte scanning is safe here: both bytes are ASCII and
// cannot occur inside a multi-byte UTF-8 sequence.
func findUnescapedEquals(s string) int {
	escaped := false
	for i := 0; i < len(s); i++ {
		if escaped {
			escaped = false
			continue
		}
		switch s[i] {
		case '\\':
			escaped = true
		case '=':
			return i
		}
	}
	return -1
}

// unquote strips matching surrounding quotes and unescapes the inner value.
func unquote(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return unescape(value[1 : len(value)-1])
		}
	}
	return value
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			b.WriteByte('\\')
			break
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\', '"', '\'':
			b.WriteByte(s[i])
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

var quoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
	`"`, `\"`,
)

// quote wraps a value in double quotes when it contains whitespace or quote
// characters, escaping so that Parse recovers the value byte-for-byte.
func quote(value string) string {
	if strings.ContainsAny(value, " \n\t\r\"'") {
		return `"` + quoteEscaper.Replace(value) + `"`
	}
	return value
}

// updateContent rewrites known keys in original, keeping everything else
// byte-for-byte, and appends keys the original does not have.
func updateContent(original string, vars map[string]string) string {
	var result []string
	processed := make(map[string]bool)

	for _, line := range strings.Split(original, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		eq := findUnescapedEquals(trimmed)
		if eq < 0 {
			result = append(result, line)
			continue
		}

		key := strings.TrimSpace(trimmed[:eq])
		if newValue, ok := vars[key]; ok {
			result = append(result, key+"="+quote(newValue))
			processed[key] = true
		} else {
			result = append(result, line)
		}
	}

	var added []string
	for key := range vars {
		if !processed[key] {
			added = append(added, key)
		}
	}
	sort.Strings(added)
	for _, key := range added {
		result = append(result, key+"="+quote(vars[key]))
	}

	return strings.Join(result, "\n")
}

// createContent renders vars as sorted KEY=value lines.
func createContent(vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+"="+quote(vars[key]))
	}
	return strings.Join(lines, "\n") + "\n"
}
