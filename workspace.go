package semgraph

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/vlang-tools/semgraph/internal/ast"
	"github.com/vlang-tools/semgraph/internal/graph"
	"github.com/vlang-tools/semgraph/internal/report"
)

// Workspace is the root handle a host drives through the Open/Edit/Close
// lifecycle (doc.go's Pipeline). Grounded on engine.go's Engine in the
// teacher repo: IndexFiles/IndexDirectory there walk a filesystem and
// commit extraction results per file through a Risor script; Workspace
// walks one file's tree-sitter AST and commits symbols/scopes directly
// through internal/infer, with no script layer in between.
type Workspace struct {
	store   *graph.Store
	sources map[string]ast.Source
}

// NewWorkspace returns a Workspace with the builtin types already
// registered (component H), reporting diagnostics through a plain
// log.Printf sink.
func NewWorkspace() *Workspace {
	return NewWorkspaceWithSink(report.NewLogSink(nil))
}

// NewWorkspaceWithSink is NewWorkspace with an explicit report.Sink, for
// callers (the CLI's dump command, tests) that want to collect diagnostics
// in memory instead of logging them.
func NewWorkspaceWithSink(sink report.Sink) *Workspace {
	store := graph.NewStore(sink)
	store.BootstrapBuiltins()
	return &Workspace{
		store:   store,
		sources: make(map[string]ast.Source),
	}
}

// Store returns the underlying graph.Store for query/mutation calls not
// exposed directly on Workspace.
func (w *Workspace) Store() *graph.Store { return w.store }

// OpenFile parses src with the tree-sitter Go grammar (internal/ast's real
// parser adapter), opens the file's root scope, and registers every
// top-level declaration it finds. Re-opening an already-open path at a
// higher fileVersion re-walks it; the update policy in internal/graph
// decides which registrations take effect (§4.2).
func (w *Workspace) OpenFile(filePath string, fileVersion int64, src []byte) (*graph.RequestContext, error) {
	fileID := w.store.InsertFilePath(filePath)
	source := ast.Source(src)
	w.sources[filePath] = source

	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	root := ast.WrapSitterNode(tree.RootNode())

	rc := w.store.With(fileID, fileVersion)
	rc.GetScope(filePath, root, true)
	walkTopLevel(rc, filePath, root, source)
	return rc, nil
}

// UpdateFile is OpenFile under another name, matching the teacher's
// engine.go naming split between first-index and re-index even though the
// underlying call is identical here: both paths go through the same
// update-vs-insert policy in register_symbol.
func (w *Workspace) UpdateFile(filePath string, fileVersion int64, src []byte) (*graph.RequestContext, error) {
	return w.OpenFile(filePath, fileVersion, src)
}

// CloseFile evicts filePath's scope tree and drops its cached source. The
// file's symbols remain in the arena (dead, not reclaimed, §3) until a
// directory delete removes their module index entries.
func (w *Workspace) CloseFile(filePath string) {
	if fileID, ok := w.store.FileID(filePath); ok {
		w.store.Scopes.EvictFile(fileID)
	}
	delete(w.sources, filePath)
}

// DeleteDirectory runs Store.Delete for dir, then evicts every open file
// under dir from the scope manager — the combination the editor-event
// handler is responsible for per §4.7's closing note.
func (w *Workspace) DeleteDirectory(dir string, excluded ...string) {
	w.store.Delete(dir, excluded...)
	for filePath := range w.sources {
		if pathDir(filePath) == dir {
			if fileID, ok := w.store.FileID(filePath); ok {
				w.store.Scopes.EvictFile(fileID)
			}
			delete(w.sources, filePath)
		}
	}
}

