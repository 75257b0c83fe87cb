package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
	"github.com/matzehuels/stitchkit/pkg/pattern"
	"github.com/matzehuels/stitchkit/pkg/pipeline"
	"github.com/matzehuels/stitchkit/pkg/verify"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDST:  "application/octet-stream",
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type verifyResponse struct {
	RunID       string              `json:"run_id"`
	OK          bool                `json:"ok"`
	Codec       string              `json:"codec"`
	Iterations  int                 `json:"iterations"`
	Completed   int                 `json:"completed"`
	Stitches    int                 `json:"stitches"`
	Divergences []verify.Divergence `json:"divergences"`
	Error       string              `json:"error,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.opts.Version})
}

// load decodes the request body in the format named by the "from" query
// parameter (default dst).
func (s *Server) load(r *http.Request) (*pattern.Pattern, error) {
	from := r.URL.Query().Get("from")
	if from == "" {
		from = pipeline.FormatDST
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, stitcherrors.Wrap(stitcherrors.ErrCodeIO, err, "read request body")
	}
	if len(data) == 0 {
		return nil, stitcherrors.New(stitcherrors.ErrCodeInvalidInput, "empty request body")
	}
	return s.runner.Load(r.Context(), from, data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	f := r.URL.Query().Get("format")
	if f == "" {
		f = pipeline.FormatSVG
	}
	p, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.opts.Defaults
	opts.Formats = []string{f}
	if r.URL.Query().Has("metadata") {
		opts.Metadata = r.URL.Query().Get("metadata") != "false"
	}
	artifacts, err := s.runner.Render(r.Context(), p, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[f])
	_, _ = w.Write(artifacts[f])
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	opts := s.opts.Defaults
	q := r.URL.Query()
	if c := q.Get("codec"); c != "" {
		opts.Codec = c
	}
	if v := q.Get("iterations"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, r, stitcherrors.Wrap(stitcherrors.ErrCodeInvalidInput, err, "iterations"))
			return
		}
		opts.Iterations = &n
	}
	if err := opts.ValidateForVerify(); err != nil {
		s.writeError(w, r, err)
		return
	}

	// The body is encoded in the codec under test unless "from" says otherwise.
	if !q.Has("from") {
		q.Set("from", opts.Codec)
		r.URL.RawQuery = q.Encode()
	}
	p, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	runID := uuid.NewString()
	logger := s.logger.With("run_id", runID)
	resp := verifyResponse{
		RunID:      runID,
		Codec:      opts.Codec,
		Iterations: *opts.Iterations,
		Stitches:   p.StitchCount(),
	}
	reporter := verify.LogReporter{Logger: logger}
	res, err := s.runner.Verify(r.Context(), p, opts, reporter)
	if res != nil && res.Report != nil {
		resp.Completed = res.Report.Iterations
		resp.Divergences = res.Report.Divergences
	}
	if resp.Divergences == nil {
		resp.Divergences = []verify.Divergence{}
	}
	if err != nil {
		if !stitcherrors.Has(err, stitcherrors.ErrCodeFidelity) {
			s.writeError(w, r, err)
			return
		}
		resp.Error = err.Error()
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	resp.OK = true
	logger.Info("verified", "codec", opts.Codec, "iterations", resp.Completed)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")
	if to == "" {
		s.writeError(w, r, stitcherrors.New(stitcherrors.ErrCodeInvalidInput, "missing \"to\" parameter"))
		return
	}
	p, err := s.load(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	data, err := s.runner.Convert(r.Context(), p, to, s.opts.Defaults)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ct, ok := contentTypes[to]
	if !ok {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	_, _ = w.Write(data)
}
