package compileserver

import "github.com/codetalcott/hyperfixi/internal/bundle"

// BundleRequest is the POST /bundles request body: a bundle config in the
// same shape internal/bundle.Config decodes from TOML, just carried as
// JSON over the wire instead.
type BundleRequest struct {
	Config bundle.Config `json:"config"`
}

// BundleResponse is the POST /bundles and GET /bundles/{id} response body.
type BundleResponse struct {
	ID         string   `json:"id"`
	ConfigHash string   `json:"configHash"`
	Code       string   `json:"code"`
	Commands   []string `json:"commands"`
	Blocks     []string `json:"blocks"`
	Positional bool     `json:"positional"`
	Warnings   []string `json:"warnings"`
	Cached     bool     `json:"cached"`
}

// AnalyzeRequest is the POST /analyze request body.
type AnalyzeRequest struct {
	Source string       `json:"source"`
	Cursor *CursorOption `json:"cursor,omitempty"`
	Options AnalyzeOptions `json:"options,omitempty"`
}

// CursorOption is the optional hover/completion query position.
type CursorOption struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// AnalyzeOptions lets a caller tune complexity thresholds, mirroring
// internal/analysis.DiagnosticsOptions.
type AnalyzeOptions struct {
	CyclomaticThreshold int `json:"cyclomaticThreshold,omitempty"`
	CognitiveThreshold  int `json:"cognitiveThreshold,omitempty"`
	WrapWidth           int `json:"wrapWidth,omitempty"`
}

// AnalyzeResponse is the POST /analyze response body.
type AnalyzeResponse struct {
	Diagnostics []DiagnosticModel  `json:"diagnostics"`
	Symbols     []SymbolModel      `json:"symbols"`
	Hover       *HoverModel        `json:"hover,omitempty"`
	Completions []CompletionModel  `json:"completions,omitempty"`
}

type DiagnosticModel struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type SymbolModel struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

type HoverModel struct {
	Text string `json:"text"`
}

type CompletionModel struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
}
