package maintenance_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/domain/category"
	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/maintenance"
	"github.com/eignung/flashcards/internal/store"
)

func TestDefaultKeywords_Order(t *testing.T) {
	table := maintenance.DefaultKeywords()

	require.GreaterOrEqual(t, len(table), 2)
	assert.Equal(t, "Netzwerktechnik", table[0].Category)
	assert.Equal(t, "MS Windows", table[1].Category)
	assert.Contains(t, table[0].Keywords, "ip adresse")
	assert.Contains(t, table[1].Keywords, "domäne")
}

func TestKeywordTable_FirstMatchWins(t *testing.T) {
	table := maintenance.DefaultKeywords()

	// "windows firewall" hits the network rule first through "firewall"
	assert.Equal(t, "Netzwerktechnik", table.CategoryFor(&question.Question{Text: "Wie konfiguriert man die Windows Firewall?"}))
	assert.Equal(t, "MS Windows", table.CategoryFor(&question.Question{Text: "Wofür nutzt man ein Cmdlet in PowerShell?"}))
	assert.Equal(t, "MS Windows", table.CategoryFor(&question.Question{Text: "Frage", SolutionCode: "Get-Service | REGISTRY"}))
	assert.Equal(t, category.Fallback, table.CategoryFor(&question.Question{Text: "Wer hat Faust geschrieben?"}))
}

func TestParseKeywords(t *testing.T) {
	table, err := maintenance.ParseKeywords([]byte(`
categories:
  - category: " Kochen "
    keywords: [Pfanne, topf]
`))
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "Kochen", table[0].Category)
	assert.Equal(t, []string{"pfanne", "topf"}, table[0].Keywords)

	_, err = maintenance.ParseKeywords([]byte("categories: []"))
	assert.Error(t, err)

	_, err = maintenance.ParseKeywords([]byte("categories:\n  - category: X\n    keywords: []\n"))
	assert.Error(t, err)

	_, err = maintenance.ParseKeywords([]byte("categories: [oops"))
	assert.Error(t, err)
}

func TestLoadKeywords(t *testing.T) {
	table, err := maintenance.LoadKeywords("")
	require.NoError(t, err)
	assert.Equal(t, maintenance.DefaultKeywords(), table)

	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - category: Musik\n    keywords: [gitarre]\n"), 0o600))

	table, err = maintenance.LoadKeywords(path)
	require.NoError(t, err)
	assert.Equal(t, "Musik", table.Match("e-gitarre"))

	_, err = maintenance.LoadKeywords(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAutoCategorize(t *testing.T) {
	ctx := context.Background()
	mem := seed(t,
		textQ("Was ist ein VLAN?"),
		textQ("Wozu dient die Registry?"),
		textQ("Wer malte die Mona Lisa?"),
		textQ("Welche Farbe hat der Himmel?"),
	)
	existing, err := store.EnsureCategoryID(ctx, mem, "netzwerktechnik")
	require.NoError(t, err)

	categorized := textQ("Schon einsortiert: TCP")
	other := int64(999)
	categorized.CategoryID = &other
	require.NoError(t, mem.InsertQuestions(ctx, []*question.Question{categorized}))

	n, err := maintenance.New(mem, maintenance.DefaultKeywords(), zap.NewNop()).AutoCategorize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	cats, err := mem.ListCategories(ctx)
	require.NoError(t, err)
	names := make(map[int64]string)
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	assert.Len(t, cats, 3)

	qs, err := mem.ListQuestions(ctx)
	require.NoError(t, err)
	byText := make(map[string]*question.Question)
	for _, q := range qs {
		byText[q.Text] = q
	}

	assert.Equal(t, *existing, *byText["Was ist ein VLAN?"].CategoryID)
	assert.Equal(t, "MS Windows", names[*byText["Wozu dient die Registry?"].CategoryID])
	assert.Equal(t, category.Fallback, names[*byText["Wer malte die Mona Lisa?"].CategoryID])
	assert.Equal(t, *byText["Wer malte die Mona Lisa?"].CategoryID, *byText["Welche Farbe hat der Himmel?"].CategoryID)
	assert.Equal(t, other, *byText["Schon einsortiert: TCP"].CategoryID)

	n, err = maintenance.New(mem, maintenance.DefaultKeywords(), zap.NewNop()).AutoCategorize(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
