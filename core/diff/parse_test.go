package diff

import (
	"errors"
	"testing"

	"github.com/huangsam/reviewers/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	zeroHash = "0000000000000000000000000000000000000000"
	blobHash = "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"
)

func TestParseChangeLine(t *testing.T) {
	testCases := []struct {
		name       string
		line       string
		wantType   schema.ChangeType
		wantPath   string
		wantTarget string
		wantScore  int
	}{
		{"added", ":000000 100644 " + zeroHash + " " + blobHash + " A\tnew.go", schema.AddedChange, "new.go", "", 0},
		{"deleted", ":100644 000000 " + blobHash + " " + zeroHash + " D\told.go", schema.DeletedChange, "old.go", "", 0},
		{"modified", ":100644 100644 " + blobHash + " " + zeroHash + " M\tcore/core.go", schema.ModifiedChange, "core/core.go", "", 0},
		{"renamed", ":100644 100644 " + blobHash + " " + blobHash + " R087\told.go\tnew.go", schema.RenamedChange, "old.go", "new.go", 87},
		{"copied", ":100644 100644 " + blobHash + " " + blobHash + " C100\ta.go\tb.go", schema.CopiedChange, "a.go", "b.go", 100},
		{"type change is other", ":100644 120000 " + blobHash + " " + blobHash + " T\tlink", schema.OtherChange, "link", "", 0},
		{"unmerged is other", ":000000 000000 " + zeroHash + " " + zeroHash + " U\tconflict.go", schema.OtherChange, "conflict.go", "", 0},
		{"second path ignored when not a rename", ":100644 100644 " + blobHash + " " + blobHash + " M\ta.go\tb.go", schema.ModifiedChange, "a.go", "", 0},
		{"missing colon", "100644 100644 " + blobHash + " " + blobHash + " M\ta.go", schema.ModifiedChange, "a.go", "", 0},
		{"trailing carriage return", ":100644 100644 " + blobHash + " " + blobHash + " M\ta.go\r", schema.ModifiedChange, "a.go", "", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := ParseChangeLine(tc.line)
			require.NoError(t, err)
			assert.Equal(t, tc.wantType, record.ChangeType)
			assert.Equal(t, tc.wantPath, record.FilePath)
			assert.Equal(t, tc.wantTarget, record.RenameTargetPath)
			assert.Equal(t, tc.wantScore, record.Score)
			assert.Empty(t, record.Chunks)
			assert.Empty(t, record.Attributions)
		})
	}
}

func TestParseChangeLine_Metadata(t *testing.T) {
	record, err := ParseChangeLine(":100644 100755 " + blobHash + " " + zeroHash + " M\tscript.sh")
	require.NoError(t, err)
	assert.Equal(t, "100644", record.FromMode)
	assert.Equal(t, "100755", record.ToMode)
	assert.Equal(t, blobHash, record.FromHash)
	assert.Equal(t, zeroHash, record.ToHash)
}

func TestParseChangeLine_Blank(t *testing.T) {
	for _, line := range []string{"", "   ", ":", "\tpath-without-metadata"} {
		record, err := ParseChangeLine(line)
		require.NoError(t, err, "line %q", line)
		assert.Equal(t, schema.NoneChange, record.ChangeType)
		assert.Empty(t, record.FilePath)
		assert.False(t, record.IsAttributable())
	}
}

func TestParseChangeLine_Malformed(t *testing.T) {
	testCases := []struct {
		name   string
		line   string
		reason string
	}{
		{"too few fields", ":100644 100644 M\ta.go", "expected 5 metadata fields, got 3"},
		{"too many fields", ":100644 100644 " + blobHash + " " + blobHash + " M extra\ta.go", "expected 5 metadata fields, got 6"},
		{"missing path", ":100644 100644 " + blobHash + " " + blobHash + " M", "missing path"},
		{"empty path", ":100644 100644 " + blobHash + " " + blobHash + " M\t", "missing path"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			record, err := ParseChangeLine(tc.line)
			assert.Nil(t, record)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, tc.reason, parseErr.Reason)
			assert.Equal(t, tc.line, parseErr.Line)
			assert.ErrorIs(t, err, ErrMalformedMetadata)
		})
	}
}

func TestChangeTypeDependsOnFirstStatusCharacter(t *testing.T) {
	valid := map[schema.ChangeType]bool{
		schema.AddedChange: true, schema.DeletedChange: true, schema.ModifiedChange: true,
		schema.RenamedChange: true, schema.CopiedChange: true, schema.OtherChange: true,
	}
	for _, status := range []string{"A", "A100", "D", "M", "M042", "R", "R050", "C075", "T", "X", "U", "?"} {
		record, err := ParseChangeLine(":100644 100644 " + blobHash + " " + blobHash + " " + status + "\tf.go\tg.go")
		require.NoError(t, err)
		assert.True(t, valid[record.ChangeType], "status %q", status)
		assert.Equal(t, schema.ChangeTypeFromStatus(status[:1]), record.ChangeType)
	}
}

func TestParseChangeLines(t *testing.T) {
	lines := []string{
		":100644 100644 " + blobHash + " " + zeroHash + " M\ta.go",
		"",
		":000000 100644 " + zeroHash + " " + blobHash + " A\tb.go",
		":100644 100644 " + blobHash + " " + blobHash + " R100\tc.go\td.go",
	}

	records, err := ParseChangeLines(lines)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "a.go", records[0].FilePath)
	assert.Equal(t, "b.go", records[1].FilePath)
	assert.Equal(t, "d.go", records[2].RenameTargetPath)
}

func TestParseChangeLines_StopsOnMalformed(t *testing.T) {
	lines := []string{
		":100644 100644 " + blobHash + " " + zeroHash + " M\ta.go",
		":bogus\tb.go",
	}

	records, err := ParseChangeLines(lines)
	assert.Nil(t, records)
	assert.ErrorIs(t, err, ErrMalformedMetadata)
	assert.Contains(t, err.Error(), ":bogus")
}
