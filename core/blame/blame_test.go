package blame

import (
	"context"
	"errors"
	"testing"

	"github.com/huangsam/reviewers/internal/contract"
	"github.com/huangsam/reviewers/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseBlameLine(t *testing.T) {
	testCases := []struct {
		name       string
		line       string
		wantAuthor string
		wantLine   schema.AttributedLine
	}{
		{
			name:       "bare attribution",
			line:       "Jane Doe 2023-5-1 42) some code",
			wantAuthor: "Jane Doe",
			wantLine:   schema.AttributedLine{LineNumber: 42, CodeText: "some code"},
		},
		{
			name:       "default git blame format",
			line:       "^1a2b3c4 (Jane Doe 2023-05-01 12:00:00 +0000  7) func main() {",
			wantAuthor: "Jane Doe",
			wantLine:   schema.AttributedLine{LineNumber: 7, CodeText: "func main() {"},
		},
		{
			name:       "filename column",
			line:       "1a2b3c4d old/main.go (John Q Public 2021-11-30 08:15:42 -0500 120) \treturn nil",
			wantAuthor: "John Q Public",
			wantLine:   schema.AttributedLine{LineNumber: 120, CodeText: "\treturn nil"},
		},
		{
			name:       "only one leading space trimmed",
			line:       "abc1234 (alice 2020-01-02 10:00:00 +0000 3)    indented",
			wantAuthor: "alice",
			wantLine:   schema.AttributedLine{LineNumber: 3, CodeText: "   indented"},
		},
		{
			name:       "code containing parens",
			line:       "abc1234 (bob 2020-01-02 10:00:00 +0000 9) fmt.Println(x)",
			wantAuthor: "bob",
			wantLine:   schema.AttributedLine{LineNumber: 9, CodeText: "fmt.Println(x)"},
		},
		{
			name:       "empty code",
			line:       "abc1234 (bob 2020-01-02 10:00:00 +0000 10) ",
			wantAuthor: "bob",
			wantLine:   schema.AttributedLine{LineNumber: 10, CodeText: ""},
		},
		{
			name:       "uncommitted lines",
			line:       "00000000 (Not Committed Yet 2024-02-03 09:00:00 +0100 4) x := 1",
			wantAuthor: "Not Committed Yet",
			wantLine:   schema.AttributedLine{LineNumber: 4, CodeText: "x := 1"},
		},
		{
			name:       "no date token keeps every author token",
			line:       "abc1234 (Jane Doe 42) code",
			wantAuthor: "Jane Doe",
			wantLine:   schema.AttributedLine{LineNumber: 42, CodeText: "code"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			author, line, ok := ParseBlameLine(tc.line)
			require.True(t, ok)
			assert.Equal(t, tc.wantAuthor, author)
			assert.Equal(t, tc.wantLine, line)
		})
	}
}

func TestParseBlameLine_Skippable(t *testing.T) {
	for _, line := range []string{
		"",
		"1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b",
		"author Jane Doe 2023-05-01 42",
		"abc1234 (Jane Doe 2023-05-01 12:00:00 +0000 x) code",
		")",
		"() code",
	} {
		_, _, ok := ParseBlameLine(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestParseBlameOutput(t *testing.T) {
	lines := []string{
		"^1a2b3c4 (alice 2023-05-01 12:00:00 +0000 1) package main",
		"continuation without delimiters",
		"5d6e7f8a (bob 2023-06-01 12:00:00 +0000 2) ",
		"^1a2b3c4 (alice 2023-05-01 12:00:00 +0000 3) import \"fmt\"",
	}

	got := ParseBlameOutput(lines)
	assert.Equal(t, []Attribution{
		{Author: "alice", Line: schema.AttributedLine{LineNumber: 1, CodeText: "package main"}},
		{Author: "bob", Line: schema.AttributedLine{LineNumber: 2, CodeText: ""}},
		{Author: "alice", Line: schema.AttributedLine{LineNumber: 3, CodeText: "import \"fmt\""}},
	}, got)
}

func TestCorrelateBlame(t *testing.T) {
	ctx := context.Background()
	client := &contract.MockGitClient{}
	client.On("Blame", ctx, "/repo", "develop", "main.go", 1, 2).Return([]string{
		"aaaaaaa (alice 2023-05-01 12:00:00 +0000 1) package main",
		"bbbbbbb (bob 2023-05-02 12:00:00 +0000 2) ",
	}, nil)
	client.On("Blame", ctx, "/repo", "develop", "main.go", 10, 1).Return([]string{
		"aaaaaaa (alice 2023-05-01 12:00:00 +0000 10) }",
	}, nil)

	record := schema.NewChangeRecord("main.go", schema.ModifiedChange)
	record.Chunks = []schema.LineRange{{StartLine: 1, LineCount: 2}, {StartLine: 10, LineCount: 1}}

	require.NoError(t, CorrelateBlame(ctx, client, "/repo", record, "develop"))

	assert.Equal(t, map[string][]schema.AttributedLine{
		"alice": {{LineNumber: 1, CodeText: "package main"}, {LineNumber: 10, CodeText: "}"}},
		"bob":   {{LineNumber: 2, CodeText: ""}},
	}, record.Attributions)
	assert.Equal(t, 3, record.LineCount())
	client.AssertExpectations(t)
}

func TestCorrelateBlame_NoChunks(t *testing.T) {
	client := &contract.MockGitClient{}
	record := schema.NewChangeRecord("new.go", schema.AddedChange)

	require.NoError(t, CorrelateBlame(context.Background(), client, "/repo", record, "develop"))
	assert.Empty(t, record.Attributions)
	client.AssertNotCalled(t, "Blame", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCorrelateBlame_Failure(t *testing.T) {
	ctx := context.Background()
	client := &contract.MockGitClient{}
	runErr := &contract.RunError{RepoPath: "/repo", Args: []string{"blame"}, Stderr: "file has only 3 lines"}
	client.On("Blame", ctx, "/repo", "develop", "main.go", 5, 2).Return(nil, runErr)

	record := schema.NewChangeRecord("main.go", schema.ModifiedChange)
	record.Chunks = []schema.LineRange{{StartLine: 5, LineCount: 2}}

	err := CorrelateBlame(ctx, client, "/repo", record, "develop")
	var target *contract.RunError
	assert.True(t, errors.As(err, &target))
	assert.Contains(t, err.Error(), "lines 5-6: ")
}
