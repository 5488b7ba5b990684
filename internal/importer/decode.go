package importer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

const (
	reasonEmptyInput = "input is empty"
	reasonNotArray   = "expected a JSON array of questions"
	reasonNoRecords  = "no questions found / array expected"
)

// Candidate is one array element after decoding and before validation.
// Absent optional strings stay nil.
type Candidate struct {
	Index        int
	QuestionText *string
	QuestionCode *string
	Answers      []string
	CorrectMask  int
	Type         *string
	SolutionText *string
	SolutionCode *string
	Category     *string
}

// parseArray accepts relaxed JSON (comments, trailing commas, unquoted keys
// and values) and returns the root array elements. The reason is non-empty when the input must be
// rejected as a whole.
func parseArray(raw string) ([]gjson.Result, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, reasonEmptyInput
	}

	std, err := hujson.Standardize(quoteBareWords([]byte(trimmed)))
	if err != nil {
		return nil, "JSON parse error: " + err.Error()
	}
	if !gjson.ValidBytes(std) {
		return nil, "JSON parse error: invalid JSON"
	}

	root := gjson.ParseBytes(std)
	if !root.IsArray() {
		return nil, reasonNotArray
	}
	return root.Array(), ""
}

// decodeElements decodes every element independently. Elements that cannot
// be decoded produce an Error carrying a compacted copy of the raw element.
func decodeElements(elements []gjson.Result) ([]Candidate, []Error) {
	var (
		candidates []Candidate
		errs       []Error
	)
	for i, el := range elements {
		c, err := decodeCandidate(el)
		if err != nil {
			raw := strings.TrimSpace(string(pretty.Ugly([]byte(el.Raw))))
			errs = append(errs, newError(i, "entry cannot be decoded: "+err.Error(), raw))
			continue
		}
		c.Index = i
		candidates = append(candidates, c)
	}
	return candidates, errs
}

func decodeCandidate(el gjson.Result) (Candidate, error) {
	var c Candidate
	if !el.IsObject() {
		return c, fmt.Errorf("expected object, got %s", kindOf(el))
	}

	var err error
	strFields := []struct {
		key string
		dst **string
	}{
		{"question_text", &c.QuestionText},
		{"question_code", &c.QuestionCode},
		{"type", &c.Type},
		{"solution_text", &c.SolutionText},
		{"solution_code", &c.SolutionCode},
		{"category", &c.Category},
	}
	for _, f := range strFields {
		if *f.dst, err = optionalString(el.Get(f.key)); err != nil {
			return c, fmt.Errorf("field %q: %w", f.key, err)
		}
	}

	if c.Answers, err = answerList(el.Get("answers")); err != nil {
		return c, fmt.Errorf("field \"answers\": %w", err)
	}
	if c.CorrectMask, err = mask(el.Get("correct_mask")); err != nil {
		return c, fmt.Errorf("field \"correct_mask\": %w", err)
	}
	return c, nil
}

// optionalString coerces scalars to their literal text.
func optionalString(v gjson.Result) (*string, error) {
	switch v.Type {
	case gjson.Null:
		return nil, nil
	case gjson.String:
		s := v.Str
		return &s, nil
	case gjson.Number, gjson.True, gjson.False:
		s := v.Raw
		return &s, nil
	default:
		return nil, fmt.Errorf("expected string, got %s", kindOf(v))
	}
}

func answerList(v gjson.Result) ([]string, error) {
	if v.Type == gjson.Null {
		return nil, nil
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("expected array, got %s", kindOf(v))
	}

	items := v.Array()
	answers := make([]string, 0, len(items))
	for i, item := range items {
		s, err := optionalString(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if s == nil {
			return nil, fmt.Errorf("element %d: null answer", i)
		}
		answers = append(answers, *s)
	}
	return answers, nil
}

var errNotInteger = errors.New("expected integer")

func mask(v gjson.Result) (int, error) {
	switch v.Type {
	case gjson.Null:
		return 0, nil
	case gjson.Number:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w, got %s", errNotInteger, v.Raw)
		}
		return int(n), nil
	case gjson.String:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w, got %q", errNotInteger, v.Str)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w, got %s", errNotInteger, kindOf(v))
	}
}

func kindOf(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "array"
	case v.IsBool():
		return "boolean"
	case v.Type == gjson.Number:
		return "number"
	case v.Type == gjson.String:
		return "string"
	default:
		return "null"
	}
}
