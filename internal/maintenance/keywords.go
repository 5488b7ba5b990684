package maintenance

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywordsYAML []byte

// KeywordRule assigns Category to questions containing any of Keywords.
type KeywordRule struct {
	Category string   `yaml:"category" validate:"required"`
	Keywords []string `yaml:"keywords" validate:"min=1,dive,required"`
}

// KeywordTable is ordered; the first matching rule wins.
type KeywordTable []KeywordRule

type keywordFile struct {
	Categories []KeywordRule `yaml:"categories" validate:"min=1,dive"`
}

var validate = validator.New()

// DefaultKeywords returns the built-in table.
func DefaultKeywords() KeywordTable {
	t, err := ParseKeywords(defaultKeywordsYAML)
	if err != nil {
		panic(fmt.Sprintf("built-in keyword table: %v", err))
	}
	return t
}

// LoadKeywords reads a table from a YAML file. An empty path yields the
// built-in table.
func LoadKeywords(path string) (KeywordTable, error) {
	if path == "" {
		return DefaultKeywords(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword table: %w", err)
	}
	return ParseKeywords(data)
}

// ParseKeywords decodes a YAML keyword table. Keywords are lowercased.
func ParseKeywords(data []byte) (KeywordTable, error) {
	var f keywordFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse keyword table: %w", err)
	}
	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("invalid keyword table: %w", err)
	}

	table := make(KeywordTable, 0, len(f.Categories))
	for _, rule := range f.Categories {
		kws := make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			kws = append(kws, strings.ToLower(kw))
		}
		table = append(table, KeywordRule{
			Category: strings.TrimSpace(rule.Category),
			Keywords: kws,
		})
	}
	return table, nil
}

// Match returns the category of the first rule with a keyword contained in
// the lowercased text, or "" when none matches.
func (t KeywordTable) Match(text string) string {
	for _, rule := range t {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Category
			}
		}
	}
	return ""
}
