package lsp

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"

	lsp "github.com/sourcegraph/go-lsp"
	"github.com/sourcegraph/jsonrpc2"
	"src.slt.sh/pkg/diag"
	"src.slt.sh/pkg/eval"
	"src.slt.sh/pkg/parse"
)

var (
	errMethodNotFound = &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}
	errInvalidParams = &jsonrpc2.Error{
		Code: jsonrpc2.CodeInvalidParams, Message: "invalid params"}
)

// State of an open document.
type document struct {
	content string
	// Last successfully parsed syntax tree, kept when the content stops
	// parsing.
	root parse.Node
	// Error of the last parse, nil if it succeeded.
	err error
}

type server struct {
	evaler *eval.Evaler
	docs   map[lsp.DocumentURI]*document

	mu       sync.Mutex
	shutdown bool
	exited   bool
}

func newServer() *server {
	return &server{evaler: eval.NewEvaler(), docs: make(map[lsp.DocumentURI]*document)}
}

func handler(s *server) jsonrpc2.Handler {
	return routingHandler(map[string]method{
		"initialize":              s.initialize,
		"textDocument/didOpen":    s.didOpen,
		"textDocument/didChange":  s.didChange,
		"textDocument/didClose":   s.didClose,
		"textDocument/hover":      s.hover,
		"textDocument/completion": s.completion,
		"shutdown":                s.shutdownRequest,
		"exit":                    s.exit,

		"initialized": noop,
		// Called by clients even when server doesn't advertise support:
		// https://microsoft.github.io/language-server-protocol/specification#workspace_didChangeWatchedFiles
		"workspace/didChangeWatchedFiles": noop,
	})
}

type method func(context.Context, jsonrpc2.JSONRPC2, json.RawMessage) (any, error)

func noop(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return nil, nil
}

func routingHandler(methods map[string]method) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		logger.Println("got", req.Method)
		fn, ok := methods[req.Method]
		if !ok {
			return nil, errMethodNotFound
		}
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		return fn(ctx, conn, params)
	})
}

// Whether the client asked the server to exit without shutting it down
// first.
func (s *server) exitedEarly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exited && !s.shutdown
}

// Handler implementations. These are all called synchronously.

func (s *server) initialize(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{
				Options: &lsp.TextDocumentSyncOptions{
					OpenClose: true,
					Change:    lsp.TDSKFull,
				},
			},
			HoverProvider:      true,
			CompletionProvider: &lsp.CompletionOptions{},
		},
	}, nil
}

func (s *server) shutdownRequest(_ context.Context, _ jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	return nil, nil
}

func (s *server) exit(_ context.Context, conn jsonrpc2.JSONRPC2, _ json.RawMessage) (any, error) {
	s.mu.Lock()
	s.exited = true
	s.mu.Unlock()
	return nil, conn.Close()
}

func (s *server) didOpen(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidOpenTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	return nil, s.update(ctx, conn, params.TextDocument.URI, params.TextDocument.Text)
}

func (s *server) didChange(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidChangeTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil || len(params.ContentChanges) == 0 {
		return nil, errInvalidParams
	}
	// ContentChanges includes full text since the server is only advertised to
	// support that; see the initialize method.
	return nil, s.update(ctx, conn, params.TextDocument.URI, params.ContentChanges[0].Text)
}

func (s *server) didClose(ctx context.Context, conn jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.DidCloseTextDocumentParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	delete(s.docs, params.TextDocument.URI)
	// Clear the diagnostics of the closed document.
	return nil, publishDiagnostics(ctx, conn, params.TextDocument.URI, []lsp.Diagnostic{})
}

func (s *server) update(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, content string) error {
	doc := s.docs[uri]
	if doc == nil {
		doc = &document{}
		s.docs[uri] = doc
	}
	doc.content = content
	root, err := parseDocument(uri, content)
	doc.err = err
	if err == nil {
		doc.root = root
	}
	return publishDiagnostics(ctx, conn, uri, diagnostics(content, err))
}

// Sent from the handler goroutine, so diagnostics reach the client in the
// order of the changes.
func publishDiagnostics(ctx context.Context, conn jsonrpc2.JSONRPC2, uri lsp.DocumentURI, diags []lsp.Diagnostic) error {
	return conn.Notify(ctx, "textDocument/publishDiagnostics",
		lsp.PublishDiagnosticsParams{URI: uri, Diagnostics: diags})
}

// Parses the content as a script, and then as an expression. If both fail,
// the error of the script parse is returned.
func parseDocument(uri lsp.DocumentURI, content string) (parse.Node, error) {
	src := parse.Source{Name: string(uri), Code: content}
	chunk, scriptErr := parse.ParseScript(src)
	if scriptErr == nil {
		return chunk, nil
	}
	if expr, err := parse.ParseExpression(src); err == nil {
		return expr, nil
	}
	return nil, scriptErr
}

func diagnostics(content string, err error) []lsp.Diagnostic {
	if err == nil {
		return []lsp.Diagnostic{}
	}
	entries := parse.UnpackErrors(err)
	diags := make([]lsp.Diagnostic, len(entries))
	for i, err := range entries {
		diags[i] = lsp.Diagnostic{
			Range:    lspRangeFromRange(content, err),
			Severity: lsp.Error,
			Source:   "parse",
			Message:  err.Message,
		}
	}
	return diags
}

func (s *server) hover(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.TextDocumentPositionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	doc := s.docs[params.TextDocument.URI]
	if doc == nil || doc.err != nil || doc.root == nil {
		return lsp.Hover{}, nil
	}
	n := nodeAt(doc.root, lspPositionToIdx(doc.content, params.Position))
	if n == nil {
		return lsp.Hover{}, nil
	}
	r := lspRangeFromRange(doc.content, n)
	return lsp.Hover{
		Contents: []lsp.MarkedString{{Language: "text", Value: parse.Render(n)}},
		Range:    &r,
	}, nil
}

// Returns the innermost node whose range contains idx, or nil if there is
// none.
func nodeAt(n parse.Node, idx int) parse.Node {
	if r := n.Range(); idx < r.From || idx >= r.To {
		return nil
	}
	for _, ch := range parse.Children(n) {
		if inner := nodeAt(ch, idx); inner != nil {
			return inner
		}
	}
	return n
}

func (s *server) completion(_ context.Context, _ jsonrpc2.JSONRPC2, rawParams json.RawMessage) (any, error) {
	var params lsp.CompletionParams
	if json.Unmarshal(rawParams, &params) != nil {
		return nil, errInvalidParams
	}
	doc := s.docs[params.TextDocument.URI]
	if doc == nil {
		return []lsp.CompletionItem{}, nil
	}
	dot := lspPositionToIdx(doc.content, params.Position)
	begin := parse.IdentStart(doc.content, dot)
	prefix := doc.content[begin:dot]
	replace := lspRangeFromRange(doc.content, diag.Ranging{From: begin, To: dot})

	items := []lsp.CompletionItem{}
	seen := make(map[string]bool)
	add := func(names []string, kind lsp.CompletionItemKind, detail string) {
		for _, name := range names {
			if seen[name] || !strings.HasPrefix(name, prefix) {
				continue
			}
			seen[name] = true
			items = append(items, lsp.CompletionItem{
				Label:    name,
				Kind:     kind,
				Detail:   detail,
				TextEdit: &lsp.TextEdit{Range: replace, NewText: name},
			})
		}
	}
	keywords := parse.Keywords()
	sort.Strings(keywords)
	add(keywords, lsp.CIKKeyword, "keyword")
	add(s.evaler.BuiltinNames(), lsp.CIKFunction, "builtin")
	add(assignedNames(doc.root), lsp.CIKVariable, "variable")
	return items, nil
}

// Returns the names assigned anywhere in the tree, sorted.
func assignedNames(root parse.Node) []string {
	if root == nil {
		return nil
	}
	set := make(map[string]bool)
	var walk func(n parse.Node)
	walk = func(n parse.Node) {
		if assign, ok := n.(*parse.Assign); ok {
			set[assign.Name] = true
		}
		for _, ch := range parse.Children(n) {
			walk(ch)
		}
	}
	walk(root)
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lspRangeFromRange(s string, r diag.Ranger) lsp.Range {
	rg := r.Range()
	return lsp.Range{
		Start: lspPositionFromIdx(s, rg.From),
		End:   lspPositionFromIdx(s, rg.To),
	}
}

func lspPositionToIdx(s string, pos lsp.Position) int {
	var idx int
	walkString(s, func(i int, p lsp.Position) bool {
		idx = i
		return p.Line < pos.Line || (p.Line == pos.Line && p.Character < pos.Character)
	})
	return idx
}

func lspPositionFromIdx(s string, idx int) lsp.Position {
	var pos lsp.Position
	walkString(s, func(i int, p lsp.Position) bool {
		pos = p
		return i < idx
	})
	return pos
}

// Generates (index, lspPosition) pairs in s, stopping if f returns false.
func walkString(s string, f func(i int, p lsp.Position) bool) {
	var p lsp.Position
	lastCR := false

	for i, r := range s {
		if !f(i, p) {
			return
		}
		switch {
		case r == '\r':
			p.Line++
			p.Character = 0
		case r == '\n':
			if !lastCR {
				p.Line++
				p.Character = 0
			}
		case r <= 0xFFFF:
			// Encoded in UTF-16 with one unit
			p.Character++
		default:
			// Encoded in UTF-16 with two units
			p.Character += 2
		}
		lastCR = r == '\r'
	}
	f(len(s), p)
}
