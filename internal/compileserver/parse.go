package compileserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/codetalcott/hyperfixi/internal/hscript"
	"github.com/codetalcott/hyperfixi/internal/interchange"
	"github.com/codetalcott/hyperfixi/internal/lex"
)

// parseJSON decodes req's JSON body into v, which must be a pointer.
// Grounded on server/endpoints.go's parseJSON.
func parseJSON(req *http.Request, v interface{}) error {
	contentType := req.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "application/json") {
		return fmt.Errorf("request content-type is not application/json")
	}

	data, err := io.ReadAll(req.Body)
	if err != nil {
		return fmt.Errorf("could not read request body: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("malformed JSON in request: %w", err)
	}
	return nil
}

// parseSource runs the lex -> hscript -> interchange pipeline over source,
// returning the normalized AST that internal/analysis operates over. This
// is the same pipeline cmd/hfc drives for compilation; compileserver's
// /analyze endpoint stops one stage earlier since diagnostics/hover/
// completions operate on the interchange tree directly.
func parseSource(source string) ([]interchange.Node, error) {
	toks := lex.Tokenize(source)
	coreStmts, err := hscript.Parse(toks)
	if err != nil {
		return nil, err
	}

	nodes := make([]interchange.Node, 0, len(coreStmts))
	for _, stmt := range coreStmts {
		nodes = append(nodes, interchange.FromCore(stmt))
	}
	return nodes, nil
}
