package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"unicode/utf16"
	"unicode/utf8"

	"aize/internal/ast"
	"aize/internal/config"
	"aize/internal/errors"
	"aize/internal/parser"
	"aize/internal/semantic"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Semantic token legend advertised in the initialize response.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"parameter",
	"property",
	"number",
}

// SemanticTokenModifiers is indexed by bit position in a token's modifier mask.
var SemanticTokenModifiers = []string{
	"declaration",
	"defaultLibrary",
}

// AizeHandler implements the LSP server handlers for the Aize language. Open
// documents shadow the files on disk when a program is analyzed.
type AizeHandler struct {
	mu      sync.RWMutex
	content map[string]string
	files   map[string]*ast.File

	// published remembers which files last received diagnostics for each
	// analyzed document so stale ones can be cleared.
	published map[string][]string

	log commonlog.Logger
}

func NewAizeHandler() *AizeHandler {
	return &AizeHandler{
		content:   make(map[string]string),
		files:     make(map[string]*ast.File),
		published: make(map[string][]string),
		log:       commonlog.GetLogger("aize.lsp"),
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *AizeHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *AizeHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	h.log.Info("initialized")
	return nil
}

func (h *AizeHandler) Shutdown(ctx *glsp.Context) error {
	h.log.Info("shutdown")
	return nil
}

func (h *AizeHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *AizeHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.log.Infof("opened %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	h.content[path] = params.TextDocument.Text
	h.mu.Unlock()

	h.publish(ctx, path)
	return nil
}

// TextDocumentDidChange applies the edits and re-analyzes the document
func (h *AizeHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	h.log.Infof("changed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	text := h.content[path]
	for _, change := range params.ContentChanges {
		switch c := change.(type) {
		case protocol.TextDocumentContentChangeEventWhole:
			text = c.Text
		case protocol.TextDocumentContentChangeEvent:
			if c.Range == nil {
				text = c.Text
				continue
			}
			start, end := offset(text, c.Range.Start), offset(text, c.Range.End)
			text = text[:start] + c.Text + text[end:]
		}
	}
	h.content[path] = text
	h.mu.Unlock()

	h.publish(ctx, path)
	return nil
}

// TextDocumentDidClose drops the document and clears its diagnostics
func (h *AizeHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	h.log.Infof("closed %s", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return err
	}

	h.mu.Lock()
	delete(h.content, path)
	delete(h.files, path)
	stale := h.published[path]
	delete(h.published, path)
	h.mu.Unlock()

	for _, file := range stale {
		sendDiagnosticNotification(ctx, pathToURI(file), []protocol.Diagnostic{})
	}
	return nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *AizeHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	h.mu.RLock()
	file, ok := h.files[path]
	h.mu.RUnlock()

	if !ok {
		source, err := h.source(path)
		if err != nil {
			return nil, err
		}
		file, err = parser.ParseSource(path, source)
		if err != nil {
			// a document that does not parse has no tokens
			return &protocol.SemanticTokens{Data: []uint32{}}, nil
		}
	}

	return &protocol.SemanticTokens{Data: encodeTokens(collectSemanticTokens(file))}, nil
}

func (h *AizeHandler) source(path string) (string, error) {
	h.mu.RLock()
	text, ok := h.content[path]
	h.mu.RUnlock()
	if ok {
		return text, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(data), nil
}

// entry picks the file a document is analyzed from and the project settings
// it is analyzed with: the entry named by the project file next to it when
// that file exists, and the document itself otherwise. A project file that
// cannot be loaded is reported and the defaults are used.
func (h *AizeHandler) entry(path string) (string, *config.Config, error) {
	cfg, err := config.Find(filepath.Dir(path))
	if err != nil {
		h.log.Errorf("ignoring project file: %s", err.Error())
		return path, config.Default(), err
	}
	entry, err := filepath.Abs(cfg.EntryPath())
	if err != nil {
		return path, cfg, nil
	}
	if _, err := h.source(entry); err != nil {
		return path, cfg, nil
	}
	return entry, cfg, nil
}

// Diagnose analyzes the program the document belongs to and returns the
// diagnostics of every file involved, keyed by path. The document itself is
// always present in the result.
func (h *AizeHandler) Diagnose(path string) map[string][]protocol.Diagnostic {
	result := map[string][]protocol.Diagnostic{path: {}}

	loader := parser.NewLoader()
	h.mu.RLock()
	for p, text := range h.content {
		loader.Overlay[p] = text
	}
	h.mu.RUnlock()

	entry, cfg, err := h.entry(path)
	if err != nil {
		pos := ast.Position{Filename: path, Line: 1, Column: 1}
		file, diag := ConvertError(errors.NewError(errors.ErrorConfig, err.Error(), pos).Build(), path)
		result[file] = append(result[file], diag)
	}

	program, err := loader.Load(entry)
	if err != nil {
		file, diag := ConvertError(err, entry)
		result[file] = append(result[file], diag)
		return result
	}

	h.mu.Lock()
	for _, file := range program.Files {
		if _, open := h.content[file.Path]; open {
			h.files[file.Path] = file
		}
	}
	h.mu.Unlock()

	analyzer := semantic.NewAnalyzer(semantic.WithStrictTyping(cfg.Strict))
	if _, err := analyzer.Analyze(program); err != nil {
		file, diag := ConvertError(err, entry)
		result[file] = append(result[file], diag)
	}
	return result
}

func (h *AizeHandler) publish(ctx *glsp.Context, path string) {
	diagnostics := h.Diagnose(path)

	files := make([]string, 0, len(diagnostics))
	for file := range diagnostics {
		files = append(files, file)
	}
	sort.Strings(files)

	h.mu.Lock()
	for _, stale := range h.published[path] {
		if _, ok := diagnostics[stale]; !ok {
			diagnostics[stale] = []protocol.Diagnostic{}
			files = append(files, stale)
		}
	}
	h.published[path] = files
	h.mu.Unlock()

	for _, file := range files {
		sendDiagnosticNotification(ctx, pathToURI(file), diagnostics[file])
	}
}

// offset converts an LSP position into a byte offset of text. Character
// counts UTF-16 code units and is clamped to the end of its line.
func offset(text string, pos protocol.Position) int {
	line, i := uint32(0), 0
	for line < pos.Line {
		next := strings.IndexByte(text[i:], '\n')
		if next < 0 {
			return len(text)
		}
		i += next + 1
		line++
	}

	units := uint32(0)
	for i < len(text) && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == '\n' {
			break
		}
		units += uint32(utf16.RuneLen(r))
		i += size
	}
	return i
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) -> C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func pathToURI(path string) protocol.DocumentUri {
	slashed := filepath.ToSlash(path)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed
	}
	return "file://" + slashed
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
