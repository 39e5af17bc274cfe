package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFixed(t *testing.T) {
	tests := []struct {
		value    float64
		digits   int
		expected string
	}{
		{80, 2, "80.00"},
		{0, 2, "0.00"},
		{12.25, 1, "12.3"},
		{66.75, 1, "66.8"},
		{0.125, 2, "0.13"},
		{1.005, 2, "1.00"},
		{83.333333, 2, "83.33"},
		{99.999, 2, "100.00"},
		{0.05, 1, "0.1"},
		{1234.567, 0, "1235"},
		{-1.25, 1, "-1.3"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, toFixed(tt.value, tt.digits))
		})
	}
}

func TestDisplayPath(t *testing.T) {
	tests := []struct {
		name          string
		filePath      string
		workspaceRoot string
		expected      string
	}{
		{
			name:     "basename without workspace root",
			filePath: "/home/runner/work/site/src/lib/utils.ts",
			expected: "utils.ts",
		},
		{
			name:          "relative to workspace root",
			filePath:      "/home/runner/work/site/src/lib/utils.ts",
			workspaceRoot: "/home/runner/work/site",
			expected:      "src/lib/utils.ts",
		},
		{
			name:          "backslashes normalized",
			filePath:      `C:\work\site\src\lib\utils.ts`,
			workspaceRoot: `C:\work\site`,
			expected:      "src/lib/utils.ts",
		},
		{
			name:     "windows basename",
			filePath: `C:\work\site\src\lib\utils.ts`,
			expected: "utils.ts",
		},
		{
			name:          "long path truncated to last 37 characters",
			filePath:      "/ws/src/components/invoices/dialogs/shared/InvoiceEditDialog.tsx",
			workspaceRoot: "/ws",
			expected:      ".../dialogs/shared/InvoiceEditDialog.tsx",
		},
		{
			name:          "exactly 40 characters kept",
			filePath:      "/ws/" + "abcdefghij/abcdefghij/abcdefghij/abcd.ts",
			workspaceRoot: "/ws",
			expected:      "abcdefghij/abcdefghij/abcdefghij/abcd.ts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := displayPath(tt.filePath, tt.workspaceRoot)
			assert.Equal(t, tt.expected, got)
			assert.LessOrEqual(t, len([]rune(got)), 40)
		})
	}
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Error: boom", firstLine("Error: boom\n    at foo.ts:1"))
	assert.Equal(t, "single", firstLine("single"))
	assert.Equal(t, "crlf", firstLine("crlf\r\nnext"))
}

func TestInlineCode(t *testing.T) {
	assert.Equal(t, "`a.ts`", inlineCode("a.ts"))
	assert.Equal(t, "`` expect(`x`) ``", inlineCode("expect(`x`)"))
}
