// Package lsp serves block document diagnostics and outlines over the
// Language Server Protocol.
package lsp

import (
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/open-cli-collective/blocks-cli/pkg/blocks"
)

const lsName = "blk"

var log = commonlog.GetLogger("blk.lsp")

// Server is a stdio language server for block documents. It keeps the full
// text of every open document.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	docs map[protocol.DocumentUri]string
}

// NewServer creates a language server reporting version.
func NewServer(version string) *Server {
	s := &Server{
		version: version,
		docs:    make(map[protocol.DocumentUri]string),
	}

	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDidSave:        s.textDocumentDidSave,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

// RunStdio serves requests on stdin and stdout until the client exits.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdown(_ *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	// Only full sync is advertised, so the last change holds the whole text.
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.update(ctx, params.TextDocument.URI, whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()

	publish(ctx, params.TextDocument.URI, []protocol.Diagnostic{})
	return nil
}

func (s *Server) textDocumentDocumentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	text, ok := s.document(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}
	return Symbols(text), nil
}

func (s *Server) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	s.mu.Lock()
	s.docs[uri] = text
	s.mu.Unlock()

	diags := Diagnostics(text)
	log.Debugf("%s: %d diagnostics", uri, len(diags))
	publish(ctx, uri, diags)
}

func (s *Server) document(uri protocol.DocumentUri) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.docs[uri]
	return text, ok
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diags []protocol.Diagnostic) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

// Diagnostics converts the structural problems of text to LSP diagnostics.
func Diagnostics(text string) []protocol.Diagnostic {
	source := lsName
	out := []protocol.Diagnostic{}
	for _, d := range blocks.Diagnose(text) {
		severity := toProtocolSeverity(d.Severity)
		out = append(out, protocol.Diagnostic{
			Range:    spanRange(text, d.Span),
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

// Symbols returns the block tree of text as nested document symbols. Text
// that cannot be fully scanned yields the blocks read before the problem.
func Symbols(text string) []protocol.DocumentSymbol {
	doc, _ := blocks.Parse(text)
	if doc == nil {
		return nil
	}
	return symbolsFor(text, doc.Blocks)
}

func symbolsFor(text string, nodes []*blocks.BlockNode) []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, n := range nodes {
		if n.IsFreeform() {
			continue
		}
		r := spanRange(text, n.Span)
		sym := protocol.DocumentSymbol{
			Name:           n.Name.String(),
			Kind:           protocol.SymbolKindObject,
			Range:          r,
			SelectionRange: r,
			Children:       symbolsFor(text, n.InnerBlocks),
		}
		if len(n.Attrs) > 0 {
			detail := n.Attrs.String()
			sym.Detail = &detail
		}
		out = append(out, sym)
	}
	return out
}

func spanRange(text string, span blocks.Span) protocol.Range {
	return protocol.Range{
		Start: position(text, span.Start),
		End:   position(text, span.End()),
	}
}

func position(text string, offset int) protocol.Position {
	line, col := blocks.Position(text, offset)
	return protocol.Position{
		Line:      protocol.UInteger(line),
		Character: protocol.UInteger(col),
	}
}

func toProtocolSeverity(s blocks.Severity) protocol.DiagnosticSeverity {
	switch s {
	case blocks.SeverityError:
		return protocol.DiagnosticSeverityError
	case blocks.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
