package hasher

import (
	"context"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// sourceParser wraps the two tree-sitter grammars needed to cover the
// supported extension set, selecting one by file extension the way
// this codebase's TypeScript parser does. *sitter.Parser is not
// goroutine-safe — ParseCtx mutates parser-internal state — so each
// grammar is backed by a sync.Pool rather than a single shared instance,
// the same pattern this codebase's filesystem Scanner uses for its own
// tree-sitter parser pool (internal/world/fs.go's parserPool). The
// Trace Logger post-hook runs ComputeFingerprint concurrently across
// sessions (spec §5), so a shared, unpooled parser would be a data race.
type sourceParser struct {
	tsPool sync.Pool
	jsPool sync.Pool
}

func newSourceParser() *sourceParser {
	return &sourceParser{
		tsPool: sync.Pool{New: func() any {
			p := sitter.NewParser()
			p.SetLanguage(typescript.GetLanguage())
			return p
		}},
		jsPool: sync.Pool{New: func() any {
			p := sitter.NewParser()
			p.SetLanguage(javascript.GetLanguage())
			return p
		}},
	}
}

// poolFor picks the grammar pool for a given (lowercased) extension. .tsx
// is parsed with the TypeScript grammar too — the tree-sitter
// TypeScript grammar does not natively expose JSX, but TSX-specific
// constructs degrade gracefully to raw hashing via parse failure,
// which is acceptable: spec §4.C only requires *attempting* the parse.
func (p *sourceParser) poolFor(ext string) *sync.Pool {
	switch ext {
	case ".ts", ".tsx", ".mts", ".cts":
		return &p.tsPool
	default:
		return &p.jsPool
	}
}

// parse parses content for the given extension, returning the root
// node of the resulting tree, or an error if parsing is not possible.
// It borrows a grammar-specific parser from the pool for the duration
// of the call and returns it afterward, so concurrent calls never share
// a live *sitter.Parser.
func (p *sourceParser) parse(ctx context.Context, ext string, content []byte) (*sitter.Node, error) {
	pool := p.poolFor(ext)
	parser := pool.Get().(*sitter.Parser)
	defer pool.Put(parser)

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	root := tree.RootNode()
	if root == nil || root.HasError() {
		return nil, errParseFailed
	}
	return root, nil
}

var errParseFailed = strErr("hasher: parse failed")

type strErr string

func (e strErr) Error() string { return string(e) }

// hasExport reports whether n's parent is an export_statement wrapper,
// i.e. whether n is directly exported.
func hasExport(n *sitter.Node) bool {
	parent := n.Parent()
	return parent != nil && parent.Type() == "export_statement"
}

func trimmedContent(n *sitter.Node, source []byte) string {
	return strings.TrimSpace(n.Content(source))
}
