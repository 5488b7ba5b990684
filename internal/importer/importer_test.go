package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eignung/flashcards/internal/domain/question"
	"github.com/eignung/flashcards/internal/importer"
	"github.com/eignung/flashcards/internal/store/storetest"
)

func run(t *testing.T, mem *storetest.Memory, input string, mode importer.ConflictMode) *importer.Report {
	t.Helper()
	report, err := importer.New(mem, zap.NewNop()).Import(context.Background(), input, mode)
	require.NoError(t, err)
	require.NotNil(t, report)
	return report
}

func questions(t *testing.T, mem *storetest.Memory) []*question.Question {
	t.Helper()
	qs, err := mem.ListQuestions(context.Background())
	require.NoError(t, err)
	return qs
}

func reasons(r *importer.Report) []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Reason)
	}
	return out
}

const validChoice = `{
	"question_text": "Welche Schicht routet?",
	"answers": ["Bitübertragung", "Sicherung", "Vermittlung", "Transport"],
	"correct_mask": 4,
	"type": "choice",
	"solution_text": "Schicht 3"
}`

func TestImport_EmptyArray(t *testing.T) {
	report := run(t, storetest.NewMemory(), "[]", importer.ConflictSkip)

	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, importer.BatchIndex, report.Errors[0].Index)
	assert.True(t, report.Fatal())
}

func TestImport_FatalInputs(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason string
	}{
		{"blank", "  \n\t ", "input is empty"},
		{"broken", `[{"question_text": `, "JSON parse error"},
		{"object root", `{"question_text": "Q"}`, "expected a JSON array of questions"},
		{"nothing decodable", `[1, "two", null]`, "no questions found / array expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := storetest.NewMemory()
			report := run(t, mem, tt.input, importer.ConflictSkip)

			require.Len(t, report.Errors, 1)
			assert.Equal(t, -1, report.Errors[0].Index)
			assert.True(t, strings.HasPrefix(report.Errors[0].Reason, tt.reason), report.Errors[0].Reason)
			assert.Zero(t, report.Imported)
			assert.Zero(t, report.Skipped)
			assert.Empty(t, questions(t, mem))
		})
	}
}

func TestImport_SingleTextQuestion(t *testing.T) {
	mem := storetest.NewMemory()
	report := run(t, mem, `[{"question_text":"Q","type":"text","solution_text":"S"}]`, importer.ConflictSkip)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 0, report.Skipped)
	assert.Empty(t, report.Errors)

	qs := questions(t, mem)
	require.Len(t, qs, 1)
	assert.Nil(t, qs[0].CategoryID)
	assert.Equal(t, question.TypeText, qs[0].Type)
	assert.Equal(t, "S", qs[0].SolutionText)
}

func TestImport_RelaxedSyntax(t *testing.T) {
	input := `[
		// generated set
		{"question_text": "Q", "type": "TEXT", "solution_text": "S", "unknown": true,},
	]`

	report := run(t, storetest.NewMemory(), input, importer.ConflictSkip)

	assert.Equal(t, 1, report.Imported)
	assert.Empty(t, report.Errors)
}

func TestImport_UnquotedLiterals(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[
		{"question_text": "Q1", "type": text, "solution_text": "S"},
		{question_text: "Q2", type: code, solution_code: "x := 1", correct_mask: 0},
		{question_text: "Q3", type: text, solution_text: Linux, category: Linux /* bare */},
	]`

	report := run(t, mem, input, importer.ConflictSkip)

	assert.Equal(t, 3, report.Imported)
	assert.Empty(t, report.Errors)

	qs := questions(t, mem)
	require.Len(t, qs, 3)
	types := map[string]question.Type{}
	for _, q := range qs {
		types[q.Text] = q.Type
	}
	assert.Equal(t, question.TypeText, types["Q1"])
	assert.Equal(t, question.TypeCode, types["Q2"])
	assert.Equal(t, question.TypeText, types["Q3"])
}

func TestImport_PaddedTypeIsNotTrimmed(t *testing.T) {
	report := run(t, storetest.NewMemory(), `[{"question_text": "Q", "type": " TEXT ", "solution_text": "S"}]`, importer.ConflictSkip)

	got := reasons(report)
	require.NotEmpty(t, got)
	assert.Equal(t, `type must be 'choice', 'text' or 'code' (got " TEXT ")`, got[0])
	assert.Contains(t, got, "MC question needs exactly 4 answer options")
	assert.Zero(t, report.Imported)
}

func TestImport_DuplicateInsideBatch_Skip(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[
		{"question_text":"Same","type":"text","solution_text":"first"},
		{"question_text":"  Same  ","type":"text","solution_text":"second"}
	]`

	report := run(t, mem, input, importer.ConflictSkip)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, 1, report.Errors[0].Index)
	assert.Equal(t, "duplicate skipped", report.Errors[0].Reason)

	qs := questions(t, mem)
	require.Len(t, qs, 1)
	assert.Equal(t, "first", qs[0].SolutionText)
}

func TestImport_DuplicateInsideBatch_Update(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[
		{"question_text":"Same","type":"text","solution_text":"first"},
		{"question_text":"Same","type":"text","solution_text":"second"}
	]`

	report := run(t, mem, input, importer.ConflictUpdate)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 1, report.Updated)
	assert.Empty(t, report.Errors)

	qs := questions(t, mem)
	require.Len(t, qs, 1)
	assert.Equal(t, "second", qs[0].SolutionText)
}

func TestImport_MaskClampedToFourBits(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[{
		"question_text": "Clamp",
		"answers": ["a", "b", "c", "d"],
		"correct_mask": 31,
		"type": "choice",
		"solution_text": "all"
	}]`

	report := run(t, mem, input, importer.ConflictSkip)
	require.Equal(t, 1, report.Imported)

	qs := questions(t, mem)
	require.Len(t, qs, 1)
	assert.Equal(t, 0b1111, qs[0].CorrectMask)
}

func TestImport_ExistingQuestion_Skip(t *testing.T) {
	mem := storetest.NewMemory()
	ctx := context.Background()
	existing := &question.Question{Text: "Welche Schicht routet?", Type: question.TypeText, SolutionText: "old", TimesCorrect: 2}
	require.NoError(t, mem.InsertQuestions(ctx, []*question.Question{existing}))

	report := run(t, mem, "["+validChoice+"]", importer.ConflictSkip)

	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, []string{"duplicate skipped"}, reasons(report))

	qs := questions(t, mem)
	require.Len(t, qs, 1)
	assert.Equal(t, "old", qs[0].SolutionText)
	assert.Equal(t, 2, qs[0].TimesCorrect)
}

func TestImport_ExistingQuestion_Update(t *testing.T) {
	mem := storetest.NewMemory()
	ctx := context.Background()
	existing := &question.Question{Text: "Welche Schicht routet?", Type: question.TypeText, SolutionText: "old", TimesCorrect: 2, TimesWrong: 5}
	require.NoError(t, mem.InsertQuestions(ctx, []*question.Question{existing}))

	report := run(t, mem, "["+validChoice+"]", importer.ConflictUpdate)

	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 0, report.Skipped)

	got, err := mem.GetQuestion(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, question.TypeChoice, got.Type)
	assert.Equal(t, "Schicht 3", got.SolutionText)
	assert.Equal(t, 4, got.CorrectMask)
	assert.Zero(t, got.TimesCorrect)
	assert.Zero(t, got.TimesWrong)
}

func TestImport_CategoriesMatchedCaseInsensitive(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[
		{"question_text":"A","type":"text","solution_text":"s","category":"Netzwerk"},
		{"question_text":"B","type":"text","solution_text":"s","category":"  NETZWERK "},
		{"question_text":"C","type":"text","solution_text":"s","category":"   "}
	]`

	report := run(t, mem, input, importer.ConflictSkip)
	require.Equal(t, 3, report.Imported)

	cats, err := mem.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Netzwerk", cats[0].Name)

	for _, q := range questions(t, mem) {
		if q.Text == "C" {
			assert.Nil(t, q.CategoryID)
			continue
		}
		require.NotNil(t, q.CategoryID)
		assert.Equal(t, cats[0].ID, *q.CategoryID)
	}
}

func TestImport_DecodeErrorsKeepGoing(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[
		42,
		{"question_text": {"nested": true}, "type": "text"},
		{"question_text": "ok", "type": "text", "solution_text": "s"},
		{"question_text": "bad mask", "type": "text", "solution_text": "s", "correct_mask": "many"}
	]`

	report := run(t, mem, input, importer.ConflictSkip)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 3, report.Skipped)
	require.Len(t, report.Errors, 3)
	for i, idx := range []int{0, 1, 3} {
		assert.Equal(t, idx, report.Errors[i].Index)
		assert.True(t, strings.HasPrefix(report.Errors[i].Reason, "entry cannot be decoded: "), report.Errors[i].Reason)
	}
	assert.Equal(t, "42", report.Errors[0].QuestionText)
	assert.Equal(t, `{"question_text":{"nested":true},"type":"text"}`, report.Errors[1].QuestionText)
}

func TestImport_LenientCoercion(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[{
		"question_text": 1984,
		"answers": ["a", 2, true, "d"],
		"correct_mask": "2",
		"type": "choice",
		"solution_text": "b"
	}]`

	report := run(t, mem, input, importer.ConflictSkip)
	require.Equal(t, 1, report.Imported, reasons(report))

	q := questions(t, mem)[0]
	assert.Equal(t, "1984", q.Text)
	assert.Equal(t, [4]string{"a", "2", "true", "d"}, q.Answers)
	assert.Equal(t, 2, q.CorrectMask)
}

func TestImport_ValidationErrorsAccumulate(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[
		{"question_text": "   ", "type": "text", "solution_text": "s"},
		{"question_text": "no code", "type": "code"},
		{"question_text": "empty mc", "type": "choice", "answers": ["", " ", "", ""], "solution_text": "s"},
		{"question_text": "three", "type": "choice", "answers": ["a", "b", "c"], "correct_mask": 1, "solution_text": "s"}
	]`

	report := run(t, mem, input, importer.ConflictSkip)

	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, []string{
		"question missing/empty",
		"solution (code) must not be empty",
		"MC question needs exactly 4 answer options",
		"MC question has only empty answers",
		"MC question has 0 correct answers",
		"MC question needs exactly 4 answer options",
	}, reasons(report))
	assert.Equal(t, len(report.Errors), report.Skipped)

	indices := make([]int, 0, len(report.Errors))
	for _, e := range report.Errors {
		indices = append(indices, e.Index)
	}
	assert.Equal(t, []int{0, 1, 2, 2, 2, 3}, indices)
	assert.Empty(t, questions(t, mem))
}

func TestImport_UnknownTypeRejectedAndCheckedAsChoice(t *testing.T) {
	report := run(t, storetest.NewMemory(), `[{"question_text": "Bad type", "type": "image"}]`, importer.ConflictSkip)

	got := reasons(report)
	require.Len(t, got, 5)
	assert.True(t, strings.HasPrefix(got[0], "type must be 'choice', 'text' or 'code'"), got[0])
	assert.Equal(t, []string{
		"solution must not be empty",
		"MC question needs exactly 4 answer options",
		"MC question has only empty answers",
		"MC question has 0 correct answers",
	}, got[1:])
}

func TestImport_MissingTypeRejected(t *testing.T) {
	report := run(t, storetest.NewMemory(), `[{"question_text": "Q", "solution_text": "s"}]`, importer.ConflictSkip)

	assert.Zero(t, report.Imported)
	require.NotEmpty(t, report.Errors)
	assert.True(t, strings.HasPrefix(report.Errors[0].Reason, "type must be"))
}

func TestImport_NormalizesFields(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[{
		"question_text": "  Which outputs 1?  ",
		"question_code": "` + "```python\\r\\nprint(1)\\r\\n```" + `",
		"answers": ["print(1)\r\n", "echo 1", " x ", "y"],
		"correct_mask": 1,
		"type": "choice",
		"solution_text": "  Use print.  ",
		"solution_code": "no fence\r\nhere"
	}]`

	report := run(t, mem, input, importer.ConflictSkip)
	require.Equal(t, 1, report.Imported, reasons(report))

	q := questions(t, mem)[0]
	assert.Equal(t, "Which outputs 1?", q.Text)
	assert.Equal(t, "print(1)", q.Code)
	assert.Equal(t, [4]string{"print(1)\n", "echo 1", " x ", "y"}, q.Answers)
	assert.Equal(t, "Use print.", q.SolutionText)
	assert.Equal(t, "no fence\nhere", q.SolutionCode)
}

func TestImport_TextQuestionAnswersPaddedAndTruncated(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[
		{"question_text":"short","type":"text","solution_text":"S","answers":["only"]},
		{"question_text":"long","type":"text","solution_text":"S","answers":["1","2","3","4","5"]}
	]`
	report := run(t, mem, input, importer.ConflictSkip)
	require.Equal(t, 2, report.Imported)

	qs := questions(t, mem)
	assert.Equal(t, [4]string{"1", "2", "3", "4"}, qs[0].Answers)
	assert.Equal(t, [4]string{"only", "", "", ""}, qs[1].Answers)
}

func TestImport_ErrorOrderDecodeValidationDuplicate(t *testing.T) {
	mem := storetest.NewMemory()
	input := `[
		{"question_text":"dup","type":"text","solution_text":"s"},
		{"question_text":"dup","type":"text","solution_text":"s"},
		{"question_text":"","type":"text","solution_text":"s"},
		[]
	]`

	report := run(t, mem, input, importer.ConflictSkip)

	require.Len(t, report.Errors, 3)
	assert.Equal(t, 3, report.Errors[0].Index)
	assert.Equal(t, 2, report.Errors[1].Index)
	assert.Equal(t, 1, report.Errors[2].Index)
	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 3, report.Skipped)
}

func TestImport_SnapshotTruncated(t *testing.T) {
	long := strings.Repeat("ä", 300)
	report := run(t, storetest.NewMemory(), `[{"question_text":"`+long+`","type":"code"}]`, importer.ConflictSkip)

	require.NotEmpty(t, report.Errors)
	assert.Equal(t, importer.SnapshotLimit, len([]rune(report.Errors[0].QuestionText)))
}

func TestImport_StoreFailureRollsBack(t *testing.T) {
	mem := storetest.NewMemory()
	boom := errors.New("disk full")
	mem.FailOn("InsertQuestions", boom)

	input := `[{"question_text":"Q","type":"text","solution_text":"S","category":"Neu"}]`
	report, err := importer.New(mem, zap.NewNop()).Import(context.Background(), input, importer.ConflictSkip)

	assert.ErrorIs(t, err, boom)
	assert.Nil(t, report)

	cats, err := mem.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cats)
}

func TestParseConflictMode(t *testing.T) {
	m, err := importer.ParseConflictMode("")
	require.NoError(t, err)
	assert.Equal(t, importer.ConflictSkip, m)

	m, err = importer.ParseConflictMode(" UPDATE ")
	require.NoError(t, err)
	assert.Equal(t, importer.ConflictUpdate, m)

	_, err = importer.ParseConflictMode("merge")
	assert.Error(t, err)
}
