package compileserver

import (
	"net/http"
	"time"

	"github.com/codetalcott/hyperfixi/internal/analysis"
	"github.com/codetalcott/hyperfixi/internal/bundle"
	"github.com/codetalcott/hyperfixi/internal/bundlestore"
	"github.com/codetalcott/hyperfixi/internal/hscript"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server is the compile service: bundle assembly with a caching store,
// plus pure source analysis. Grounded on server/server.go's TunaQuestServer
// (a router plus a dao.Store) and server/endpoints.go's API (a router plus
// a service-layer backend), collapsed into one type since compileserver has
// no separate service layer to delegate to.
type Server struct {
	Store       bundlestore.Store
	JWTSecret   []byte
	Router      chi.Router
}

// New builds a Server with routes registered, bearer-auth-gated per
// SPEC_FULL.md's "JWT bearer middleware" requirement.
func New(store bundlestore.Store, jwtSecret []byte) *Server {
	s := &Server{Store: store, JWTSecret: jwtSecret}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(RequireBearerAuth(jwtSecret))

	r.Post("/bundles", Endpoint(s.epCreateBundle))
	r.Get("/bundles/{id}", Endpoint(s.epGetBundle))
	r.Post("/analyze", Endpoint(s.epAnalyze))

	s.Router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.Router.ServeHTTP(w, req)
}

// POST /bundles: assemble (or retrieve a cached copy of) a runtime bundle
// for the posted config.
func (s *Server) epCreateBundle(req *http.Request) EndpointResult {
	var body BundleRequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBadRequest(err.Error())
	}

	hash, err := bundlestore.ConfigHash(body.Config)
	if err != nil {
		return jsonInternalServerError("hash config: %s", err.Error())
	}

	if cached, err := s.Store.GetByConfigHash(req.Context(), hash); err == nil {
		return jsonOK(toBundleResponse(cached, true), "config '%s' served from cache", body.Config.Name)
	}

	result, err := bundle.Assemble(body.Config)
	if err != nil {
		return jsonBadRequest(err.Error())
	}

	art, err := s.Store.Put(req.Context(), body.Config, *result)
	if err != nil {
		return jsonInternalServerError("store artifact: %s", err.Error())
	}

	return jsonCreated(toBundleResponse(art, false), "config '%s' assembled as job %s", body.Config.Name, art.ID)
}

// GET /bundles/{id}: fetch a previously assembled artifact.
func (s *Server) epGetBundle(req *http.Request) EndpointResult {
	idStr := chi.URLParam(req, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return jsonBadRequest("id: not a valid job ID")
	}

	art, err := s.Store.GetByID(req.Context(), id)
	if err != nil {
		return jsonNotFound("job %s: %s", idStr, err.Error())
	}

	return jsonOK(toBundleResponse(art, true), "job %s retrieved", idStr)
}

// POST /analyze: run diagnostics/symbols/hover/completions over posted
// source. A syntax error still returns HTTP-200 with a single diagnostic
// describing it, since a parse failure is itself useful analysis output
// for an editor to show, not a service fault.
func (s *Server) epAnalyze(req *http.Request) EndpointResult {
	var body AnalyzeRequest
	if err := parseJSON(req, &body); err != nil {
		return jsonBadRequest(err.Error())
	}

	nodes, err := parseSource(body.Source)
	if err != nil {
		resp := AnalyzeResponse{
			Diagnostics: []DiagnosticModel{{Severity: string(analysis.SeverityError), Message: syntaxErrorMessage(err)}},
		}
		return jsonOK(resp, "analyzed with syntax error: %s", err.Error())
	}

	opts := analysis.DiagnosticsOptions{
		CyclomaticThreshold: body.Options.CyclomaticThreshold,
		CognitiveThreshold:  body.Options.CognitiveThreshold,
		WrapWidth:           body.Options.WrapWidth,
	}

	resp := AnalyzeResponse{
		Diagnostics: toDiagnosticModels(analysis.Diagnostics(nodes, opts)),
		Symbols:     toSymbolModels(analysis.Symbols(nodes)),
	}

	if body.Cursor != nil {
		pos := analysis.Position{Line: body.Cursor.Line, Column: body.Cursor.Column}
		if h := analysis.HoverAt(nodes, pos); h != nil {
			resp.Hover = &HoverModel{Text: h.Text}
		}
		resp.Completions = toCompletionModels(analysis.Completions(nodes, pos))
	}

	return jsonOK(resp, "analyzed %d bytes of source", len(body.Source))
}

func syntaxErrorMessage(err error) string {
	if se, ok := err.(*hscript.SyntaxError); ok {
		return se.Error()
	}
	return err.Error()
}

func toBundleResponse(art bundlestore.Artifact, cached bool) BundleResponse {
	return BundleResponse{
		ID:         art.ID.String(),
		ConfigHash: art.ConfigHash,
		Code:       art.Result.Code,
		Commands:   art.Result.Commands,
		Blocks:     art.Result.Blocks,
		Positional: art.Result.Positional,
		Warnings:   art.Result.Warnings,
		Cached:     cached,
	}
}

func toDiagnosticModels(ds []analysis.Diagnostic) []DiagnosticModel {
	out := make([]DiagnosticModel, len(ds))
	for i, d := range ds {
		out[i] = DiagnosticModel{Severity: string(d.Severity), Message: d.Message}
	}
	return out
}

func toSymbolModels(ss []analysis.Symbol) []SymbolModel {
	out := make([]SymbolModel, len(ss))
	for i, sy := range ss {
		out[i] = SymbolModel{Kind: string(sy.Kind), Name: sy.Name}
	}
	return out
}

func toCompletionModels(cs []analysis.Completion) []CompletionModel {
	out := make([]CompletionModel, len(cs))
	for i, c := range cs {
		out[i] = CompletionModel{Kind: string(c.Kind), Label: c.Label}
	}
	return out
}

// DefaultUnauthDelay mirrors server/endpoints.go's Endpoint unauth-timeout
// convention; compileserver does not currently add a delay on 401s since
// it is a service-to-service API rather than a user login surface, but the
// constant documents the deliberate deviation.
const DefaultUnauthDelay = time.Second
