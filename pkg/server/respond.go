package server

import (
	"encoding/json"
	"errors"
	"net/http"

	stitcherrors "github.com/matzehuels/stitchkit/pkg/errors"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch stitcherrors.GetCode(err) {
	case stitcherrors.ErrCodeInvalidInput, stitcherrors.ErrCodeInvalidFormat, stitcherrors.ErrCodeDecode:
		return http.StatusBadRequest
	case stitcherrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case stitcherrors.ErrCodeEncode, stitcherrors.ErrCodeFidelity:
		return http.StatusUnprocessableEntity
	case stitcherrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := stitcherrors.GetCode(err)
	if status == http.StatusRequestEntityTooLarge {
		code = stitcherrors.ErrCodeInvalidInput
	}
	if status >= 500 {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: string(code)})
}
