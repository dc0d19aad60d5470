package semgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlang-tools/semgraph/internal/graph"
	"github.com/vlang-tools/semgraph/internal/report"
)

const helperSrc = `package app

type Widget struct {
	Count int
}

func Helper() string {
	return "hi"
}

func (w *Widget) Grow() int {
	return w.Count
}
`

func TestWorkspace_OpenFile_RegistersTopLevelDeclarations(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace()

	_, err := ws.OpenFile("app/main.go", 1, []byte(helperSrc))
	require.NoError(t, err)

	syms := ws.FileSymbols("app/main.go")
	names := make(map[string]Symbol)
	for _, s := range syms {
		names[s.Name] = s
	}

	widget, ok := names["Widget"]
	require.True(t, ok)
	assert.Equal(t, KindStruct, widget.Kind)

	helper, ok := names["Helper"]
	require.True(t, ok)
	assert.Equal(t, KindFunction, helper.Kind)
	retType := ws.Store().Symbols.GetInfo(helper.ReturnSym)
	assert.Equal(t, "string", retType.Name)

	grow, ok := names["Grow"]
	require.True(t, ok)
	assert.Equal(t, widget.ID, grow.Parent)
}

func TestWorkspace_OpenFile_MethodIsChildOfReceiverStruct(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace()

	_, err := ws.OpenFile("app/main.go", 1, []byte(helperSrc))
	require.NoError(t, err)

	syms := ws.FileSymbols("app/main.go")
	var widgetID int64 = VoidSymID
	for _, s := range syms {
		if s.Name == "Widget" {
			widgetID = s.ID
		}
	}
	require.NotEqual(t, VoidSymID, widgetID)

	widget := ws.Store().Symbols.GetInfo(widgetID)
	found := false
	for _, childID := range widget.Children {
		child := ws.Store().Symbols.GetInfo(childID)
		if child.Name == "Grow" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWorkspace_CloseFile_DropsCachedSourceButKeepsSymbols(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace()
	_, err := ws.OpenFile("app/main.go", 1, []byte(helperSrc))
	require.NoError(t, err)

	ws.CloseFile("app/main.go")

	assert.NotEmpty(t, ws.FileSymbols("app/main.go"), "symbols should survive CloseFile (dead, not reclaimed)")
	assert.True(t, ws.InferType("app/main.go", nil).IsVoid(), "source is gone, so node-based inference on this file should be void")
}

func TestWorkspace_DeleteDirectory_RemovesModuleSymbols(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace()
	_, err := ws.OpenFile("app/main.go", 1, []byte(helperSrc))
	require.NoError(t, err)

	ws.DeleteDirectory("app")

	sym := ws.Store().Symbols.GetInfoByName("app", "Widget")
	assert.True(t, sym.IsVoid())
}

func TestWorkspace_NewWorkspaceWithSink_CollectsDiagnosticsOnStaleReregistration(t *testing.T) {
	t.Parallel()
	sink := report.NewCollectingSink()
	ws := NewWorkspaceWithSink(sink)

	_, err := ws.OpenFile("app/main.go", 2, []byte(helperSrc))
	require.NoError(t, err)

	// Re-opening the same path at a lower file_version than what's already
	// registered is a stale re-registration (§4.2 "not_symbol_update"),
	// which is reported to the sink rather than silently overwriting.
	_, err = ws.OpenFile("app/main.go", 1, []byte(helperSrc))
	require.NoError(t, err)

	assert.NotEmpty(t, sink.Reports)
}

func TestWorkspace_UpdateFile_ReReadsSameFileAtHigherVersion(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace()
	_, err := ws.OpenFile("app/main.go", 1, []byte(helperSrc))
	require.NoError(t, err)

	updated := `package app

func Helper() string {
	return "bye"
}
`
	_, err = ws.UpdateFile("app/main.go", 2, []byte(updated))
	require.NoError(t, err)

	sym := ws.Store().Symbols.GetInfoByName("app", "Helper")
	assert.False(t, sym.IsVoid())
	assert.Equal(t, int64(2), sym.FileVersion)
}

func TestWorkspace_Store_ExposesUnderlyingGraphStore(t *testing.T) {
	t.Parallel()
	ws := NewWorkspace()

	assert.IsType(t, &graph.Store{}, ws.Store())
}
