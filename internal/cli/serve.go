package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/document"
	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/store"
	"github.com/matzehuels/arbor/pkg/tree"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve documents over an HTTP API",
		Long: `Serve exposes stored documents over HTTP.

Routes:
  GET    /documents                        list document IDs
  POST   /documents                        create a document from an expression
  GET    /documents/{id}                   document state and source
  DELETE /documents/{id}                   delete a document
  GET    /documents/{id}/render.{format}   render (svg, png, pdf, json, dot, nodelink)
  POST   /documents/{id}/toggle            expand or collapse a tree
  POST   /documents/{id}/actions/{action}  run an action (toggle, wrap, totree)
  POST   /documents/{id}/move              move the selection
  PUT    /orientation                      switch the orientation of every document`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("listen") {
				listen = c.Config.Listen
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := NewServer(runner, st, c.Config.pipelineOptions(), loggerFromContext(ctx))
			return srv.ListenAndServe(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", defaultListen, "address to listen on")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// =============================================================================
// Server
// =============================================================================

// Server serves documents from a store. Opened documents stay in a shared
// workspace so that selection and orientation survive between requests.
type Server struct {
	runner    *pipeline.Runner
	store     store.Store
	workspace *document.Workspace
	loader    document.Loader
	opts      pipeline.Options
	logger    *log.Logger
}

// NewServer creates a server. opts supplies the render defaults and the
// initial orientation.
func NewServer(runner *pipeline.Runner, st store.Store, opts pipeline.Options, logger *log.Logger) *Server {
	opts.SetDefaults()
	opts.Logger = logger
	return &Server{
		runner:    runner,
		store:     st,
		workspace: document.NewWorkspace(opts.TreeOrientation()),
		loader:    document.Loader{Strict: opts.Strict, Logger: logger},
		opts:      opts,
		logger:    logger,
	}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hooksMiddleware)

	r.Route("/documents", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Get("/render.{format}", s.handleRender)
			r.Post("/toggle", s.handleToggle)
			r.Post("/actions/{action}", s.handleAction)
			r.Post("/move", s.handleMove)
		})
	})
	r.Put("/orientation", s.handleOrientation)
	return r
}

// ListenAndServe serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	hs := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	printSuccess("Listening on %s", StyleLink.Render("http://"+addr))
	printKeyValue("orientation", s.workspace.Orientation().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	}
}

// hooksMiddleware reports requests to the HTTP observability hooks.
func hooksMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		observability.HTTP().OnResponse(r.Context(), r.Method, route, ww.Status(), time.Since(start))
	})
}

// =============================================================================
// Request & Response Types
// =============================================================================

type createRequest struct {
	Name   string     `json:"name"`
	Source *expr.Node `json:"source"`
}

type selectRequest struct {
	Path string `json:"path,omitempty"`
}

type moveRequest struct {
	Direction string `json:"direction"`
}

type orientationRequest struct {
	Orientation string `json:"orientation"`
}

type documentResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Orientation string     `json:"orientation"`
	Selection   string     `json:"selection"`
	Selected    string     `json:"selected"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Nodes       int        `json:"nodes"`
	Source      *expr.Node `json:"source,omitempty"`
}

func describe(d *document.Document, withSource bool) (documentResponse, error) {
	w, h := d.Size()
	resp := documentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Orientation: d.Orientation().String(),
		Selection:   d.Selection().String(),
		Width:       w,
		Height:      h,
		Nodes:       pipeline.CountNodes(d.Root()),
	}
	if sel := d.Selected(); sel != nil {
		resp.Selected = render.Kind(sel)
	}
	if withSource {
		src, err := document.Dump(d.Root())
		if err != nil {
			return resp, err
		}
		resp.Source = src
	}
	return resp, nil
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"documents": ids})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Source == nil {
		s.writeError(w, r, arborerrors.New(arborerrors.ErrCodeInvalidInput, "source is required"))
		return
	}
	if req.Name == "" {
		req.Name = "untitled"
	}
	doc, err := s.runner.Load(r.Context(), req.Name, req.Source, s.opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.workspace.Add(doc)

	var resp documentResponse
	_, err = s.workspace.With(doc.ID, func(d *document.Document) (err error) {
		if err = s.persist(r.Context(), d); err != nil {
			return err
		}
		resp, err = describe(d, false)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	var resp documentResponse
	err := s.withDocument(r.Context(), chi.URLParam(r, "id"), func(d *document.Document) (err error) {
		resp, err = describe(d, true)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.workspace.Remove(id)
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	var data []byte
	var hit bool
	err := s.withDocument(r.Context(), chi.URLParam(r, "id"), func(d *document.Document) error {
		opts := s.opts
		opts.Formats = []string{format}
		opts.Orientation = d.Orientation().String()
		opts.Detailed = r.URL.Query().Get("detailed") == "true"
		artifacts, cached, err := s.runner.RenderWithCacheInfo(r.Context(), d, opts)
		if err != nil {
			return err
		}
		data, hit = artifacts[format], cached
		return nil
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentType(format))
	if hit {
		w.Header().Set("X-Arbor-Cache", "hit")
	} else {
		w.Header().Set("X-Arbor-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, "toggle")
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	s.runAction(w, r, chi.URLParam(r, "action"))
}

// runAction selects the optional path of the request body, applies the
// action and stores the result.
func (s *Server) runAction(w http.ResponseWriter, r *http.Request, action string) {
	var req selectRequest
	if err := decodeOptionalBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp documentResponse
	err := s.withDocument(r.Context(), chi.URLParam(r, "id"), func(d *document.Document) error {
		if req.Path != "" {
			p, err := tree.ParsePath(req.Path)
			if err != nil {
				return err
			}
			if err := d.Select(p); err != nil {
				return err
			}
		}
		if err := document.Apply(d, action); err != nil {
			return err
		}
		if err := s.persist(r.Context(), d); err != nil {
			return err
		}
		var err error
		resp, err = describe(d, false)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	dir, err := tree.ParseDirection(req.Direction)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var resp documentResponse
	moved := false
	err = s.withDocument(r.Context(), chi.URLParam(r, "id"), func(d *document.Document) error {
		if moved = d.Move(dir); moved {
			if err := s.persist(r.Context(), d); err != nil {
				return err
			}
		}
		var err error
		resp, err = describe(d, false)
		return err
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !moved {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":    "no node in that direction",
			"document": resp,
		})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOrientation(w http.ResponseWriter, r *http.Request) {
	var req orientationRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := tree.ParseOrientation(req.Orientation)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.workspace.SetOrientation(o)
	for _, id := range s.workspace.IDs() {
		_, err := s.workspace.With(id, func(d *document.Document) error {
			return s.persist(r.Context(), d)
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"orientation": o.String()})
}

// =============================================================================
// Document Access
// =============================================================================

// withDocument runs fn on the open document with the given ID, opening it
// from the store first if needed.
func (s *Server) withDocument(ctx context.Context, id string, fn func(d *document.Document) error) error {
	ok, err := s.workspace.With(id, fn)
	if ok || err != nil {
		return err
	}

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	doc, err := rec.Document(s.loader)
	if err != nil {
		return err
	}
	// A concurrent request may have opened it meanwhile; keep that copy.
	if _, added := s.workspace.AddIfAbsent(doc); !added {
		s.logger.Debug("document already open", "id", id)
	}

	ok, err = s.workspace.With(id, fn)
	if !ok {
		return store.ErrNotFound
	}
	return err
}

// persist stores d. Callers hold the workspace lock.
func (s *Server) persist(ctx context.Context, d *document.Document) error {
	rec, err := store.FromDocument(d)
	if err != nil {
		return err
	}
	if old, err := s.store.Get(ctx, d.ID); err == nil {
		rec.CreatedAt = old.CreatedAt
	}
	return s.store.Put(ctx, rec)
}

// =============================================================================
// Encoding
// =============================================================================

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return arborerrors.Wrap(arborerrors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// decodeOptionalBody is decodeBody for requests whose body may be empty.
func decodeOptionalBody(r *http.Request, v any) error {
	if r.ContentLength == 0 {
		return nil
	}
	return decodeBody(r, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": arborerrors.UserMessage(err),
		"code":  string(arborerrors.GetCode(err)),
	})
}

func statusFor(err error) int {
	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}
	switch arborerrors.GetCode(err) {
	case arborerrors.ErrCodeNotFound, arborerrors.ErrCodeDocumentNotFound, arborerrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case arborerrors.ErrCodeInvalidInput, arborerrors.ErrCodeInvalidFormat, arborerrors.ErrCodeInvalidDocument,
		arborerrors.ErrCodeInvalidOrientation, arborerrors.ErrCodeInvalidOutput, arborerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case arborerrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
