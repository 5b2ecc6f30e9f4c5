package diag

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/tsreassemble/internal/ast"
)

func TestCollectorReportsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	c := NewCollector(logger)

	c.Unsupported(&ast.RawType{Text: "`a${b}`"}, "copy")
	c.Report(CodeUnmatched, ast.KindMethodDeclaration, "no counterpart for %q", "helper")

	diags := c.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, CodeUnsupportedKind, diags[0].Code)
	assert.Equal(t, ast.KindRawType, diags[0].Kind)
	assert.Equal(t, "RawType", diags[0].KindStr)
	assert.Contains(t, diags[0].Message, "unsupported node kind")
	assert.Equal(t, `no counterpart for "helper"`, diags[1].Message)

	// Unmatched is logged at Debug, below the default Info threshold.
	assert.Contains(t, buf.String(), "code=unsupported-kind")
	assert.NotContains(t, buf.String(), "helper")
}

func TestCollectorNilLogger(t *testing.T) {
	c := NewCollector(nil)
	c.Unsupported(nil, "copy")
	diags := c.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, ast.KindUnknown, diags[0].Kind)
}

func TestDiagnosticsReturnsCopy(t *testing.T) {
	c := NewCollector(nil)
	c.Report(CodeExtraParameter, ast.KindParameter, "extra")
	d := c.Diagnostics()
	d[0].Message = "changed"
	assert.Equal(t, "extra", c.Diagnostics()[0].Message)
}

func TestInvariantf(t *testing.T) {
	err := Invariantf("pair %s/%s", "A", "B")
	assert.True(t, errors.Is(err, ErrInvariant))
	assert.Equal(t, "invariant violation: pair A/B", err.Error())
}
