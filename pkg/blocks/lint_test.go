package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		severity Severity
		message  string
	}{
		{"incomplete", "<p>a</p><!-- wp:para", SeverityError, "document ends inside a block delimiter"},
		{"bad json", `<!-- wp:image {"id": } /-->`, SeverityWarning, "invalid attributes for core/image"},
		{"orphan closer", "<!-- /wp:quote -->", SeverityWarning, "closer for core/quote has no matching opener"},
		{"mismatched closer", "<!-- wp:group --><!-- /wp:columns -->", SeverityWarning, "closer for core/columns closes core/group"},
		{"unclosed", "<!-- wp:group --><p>x</p>", SeverityWarning, "core/group is never closed"},
		{"void closing flag", "<!-- /wp:spacer /-->", SeverityInfo, "void delimiter for core/spacer also carries the closing flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Diagnose(tt.input)
			require.Len(t, diags, 1)
			assert.Equal(t, tt.severity, diags[0].Severity)
			assert.Contains(t, diags[0].Message, tt.message)
		})
	}
}

func TestDiagnose_Clean(t *testing.T) {
	diags := Diagnose("<!-- wp:group --><!-- wp:image {\"id\":1} /--><p>x</p><!-- /wp:group -->")
	assert.Empty(t, diags)
}

func TestDiagnose_SortedBySpan(t *testing.T) {
	input := "<!-- wp:group --><p>x</p><!-- wp:bad {\"a\": } /--><!-- wp:"
	diags := Diagnose(input)
	require.Len(t, diags, 3)

	assert.Equal(t, 0, diags[0].Span.Start)
	assert.Contains(t, diags[0].Message, "never closed")
	assert.Equal(t, SeverityWarning, diags[1].Severity)
	assert.Equal(t, SeverityError, diags[2].Severity)
	assert.Equal(t, len(input), diags[2].Span.End())
}

func TestPosition(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		offset    int
		line, col int
	}{
		{"start", "abc", 0, 0, 0},
		{"second line", "ab\ncd", 4, 1, 1},
		{"after newline", "ab\n", 3, 1, 0},
		{"two byte rune", "éx", 3, 0, 2},
		{"astral rune", "😀x", 5, 0, 3},
		{"past end", "ab", 10, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, col := Position(tt.text, tt.offset)
			assert.Equal(t, tt.line, line)
			assert.Equal(t, tt.col, col)
		})
	}
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "info", SeverityInfo.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}
