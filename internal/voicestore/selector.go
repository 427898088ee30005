package voicestore

import (
	"fmt"
	"strconv"
	"strings"
)

// Selector is a structured predicate over the voice catalog. It replaces
// the raw SQL predicate of earlier tooling: every field compiles to a bound
// parameter, so no caller-supplied string ever reaches the SQL layer.
//
// Zero-valued fields do not constrain the selection; an empty Selector
// matches the whole catalog.
type Selector struct {
	Gender      Gender
	Language    string
	MinQuality  *int
	MaxQuality  *int
	NamePattern string // shell-style pattern, * matches any run of characters
	Synthetic   *bool
}

// ParseSelector parses the compact text form used on the command line:
// comma-separated clauses such as
//
//	gender=M,lang=en-us,quality>=70,name=af_*,synthetic=false
//
// Supported keys: gender, lang/language, quality (=, >=, <=), name,
// synthetic. An empty string yields a match-all selector.
func ParseSelector(text string) (Selector, error) {
	var sel Selector

	text = strings.TrimSpace(text)
	if text == "" {
		return sel, nil
	}

	for _, clause := range strings.Split(text, ",") {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}

		op := "="
		idx := strings.Index(clause, ">=")
		if idx < 0 {
			idx = strings.Index(clause, "<=")
		}
		if idx >= 0 {
			op = clause[idx : idx+2]
		} else {
			idx = strings.IndexByte(clause, '=')
			if idx < 0 {
				return Selector{}, fmt.Errorf("invalid selector clause %q", clause)
			}
		}

		key := strings.ToLower(strings.TrimSpace(clause[:idx]))
		value := strings.TrimSpace(clause[idx+len(op):])
		if value == "" {
			return Selector{}, fmt.Errorf("selector clause %q has no value", clause)
		}

		switch key {
		case "gender":
			if op != "=" {
				return Selector{}, fmt.Errorf("gender only supports =: %q", clause)
			}
			g, err := ParseGender(value)
			if err != nil {
				return Selector{}, err
			}
			sel.Gender = g
		case "lang", "language":
			if op != "=" {
				return Selector{}, fmt.Errorf("language only supports =: %q", clause)
			}
			sel.Language = value
		case "quality":
			q, err := strconv.Atoi(value)
			if err != nil {
				return Selector{}, fmt.Errorf("invalid quality %q", value)
			}
			switch op {
			case ">=":
				sel.MinQuality = &q
			case "<=":
				sel.MaxQuality = &q
			default:
				sel.MinQuality = &q
				qq := q
				sel.MaxQuality = &qq
			}
		case "name":
			if op != "=" {
				return Selector{}, fmt.Errorf("name only supports =: %q", clause)
			}
			sel.NamePattern = value
		case "synthetic":
			if op != "=" {
				return Selector{}, fmt.Errorf("synthetic only supports =: %q", clause)
			}
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Selector{}, fmt.Errorf("invalid synthetic flag %q", value)
			}
			sel.Synthetic = &b
		default:
			return Selector{}, fmt.Errorf("unknown selector key %q", key)
		}
	}

	return sel, nil
}

// String renders the selector back into its compact text form, for error
// messages and logs
func (s Selector) String() string {
	var parts []string
	if s.Gender != "" {
		parts = append(parts, "gender="+string(s.Gender))
	}
	if s.Language != "" {
		parts = append(parts, "lang="+s.Language)
	}
	if s.MinQuality != nil && s.MaxQuality != nil && *s.MinQuality == *s.MaxQuality {
		parts = append(parts, fmt.Sprintf("quality=%d", *s.MinQuality))
	} else {
		if s.MinQuality != nil {
			parts = append(parts, fmt.Sprintf("quality>=%d", *s.MinQuality))
		}
		if s.MaxQuality != nil {
			parts = append(parts, fmt.Sprintf("quality<=%d", *s.MaxQuality))
		}
	}
	if s.NamePattern != "" {
		parts = append(parts, "name="+s.NamePattern)
	}
	if s.Synthetic != nil {
		parts = append(parts, fmt.Sprintf("synthetic=%t", *s.Synthetic))
	}
	if len(parts) == 0 {
		return "(alle)"
	}
	return strings.Join(parts, ",")
}

// Matches evaluates the selector against a single record. The SQLite store
// compiles the same semantics to SQL; this form serves the memory store.
func (s Selector) Matches(rec *VoiceRecord) bool {
	if s.Gender != "" && rec.Gender != s.Gender {
		return false
	}
	if s.Language != "" && rec.Language != s.Language {
		return false
	}
	if s.MinQuality != nil && rec.Quality < *s.MinQuality {
		return false
	}
	if s.MaxQuality != nil && rec.Quality > *s.MaxQuality {
		return false
	}
	if s.Synthetic != nil && rec.IsSynthetic != *s.Synthetic {
		return false
	}
	if s.NamePattern != "" && !patternMatch(s.NamePattern, rec.Name) {
		return false
	}
	return true
}

// whereClause compiles the selector to a parameterized SQL fragment. The
// returned clause is empty when the selector matches everything.
func (s Selector) whereClause() (string, []interface{}) {
	var conds []string
	var args []interface{}

	if s.Gender != "" {
		conds = append(conds, "gender = ?")
		args = append(args, string(s.Gender))
	}
	if s.Language != "" {
		conds = append(conds, "language = ?")
		args = append(args, s.Language)
	}
	if s.MinQuality != nil {
		conds = append(conds, "quality >= ?")
		args = append(args, *s.MinQuality)
	}
	if s.MaxQuality != nil {
		conds = append(conds, "quality <= ?")
		args = append(args, *s.MaxQuality)
	}
	if s.Synthetic != nil {
		conds = append(conds, "is_synthetic = ?")
		args = append(args, *s.Synthetic)
	}
	if s.NamePattern != "" {
		conds = append(conds, "name LIKE ? ESCAPE '\\'")
		args = append(args, patternToLike(s.NamePattern))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// patternToLike converts a *-wildcard pattern to a SQL LIKE pattern,
// escaping LIKE metacharacters in the literal parts
func patternToLike(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteByte('%')
		case '%', '_', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// patternMatch evaluates a *-wildcard pattern against a name
func patternMatch(pattern, name string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == name
	}

	if !strings.HasPrefix(name, parts[0]) {
		return false
	}
	name = name[len(parts[0]):]

	for i := 1; i < len(parts)-1; i++ {
		idx := strings.Index(name, parts[i])
		if idx < 0 {
			return false
		}
		name = name[idx+len(parts[i]):]
	}

	return strings.HasSuffix(name, parts[len(parts)-1])
}
