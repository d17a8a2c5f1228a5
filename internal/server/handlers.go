package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/NikitaCOEUR/mcfcomplete/internal/derrors"
	"github.com/NikitaCOEUR/mcfcomplete/internal/embedded"
	"github.com/NikitaCOEUR/mcfcomplete/internal/engine"
	"github.com/NikitaCOEUR/mcfcomplete/internal/timing"
	"github.com/NikitaCOEUR/mcfcomplete/pkg/version"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Success: false, Error: msg})
}

// apiHandler answers a request with its data and the number of candidates
// it produced, or -1 when it produces none.
type apiHandler func(r *http.Request, timer *timing.Timer) (any, int, error)

// instrument turns an apiHandler into a http.HandlerFunc that writes the
// envelope, records metrics and logs the request.
func (s *Server) instrument(endpoint string, h apiHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timer := timing.NewTimer()
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		data, n, err := h(r, timer)
		status := http.StatusOK
		if err != nil {
			status = statusFor(err)
			writeError(w, status, err.Error())
		} else {
			writeOK(w, data)
		}

		took := timer.Elapsed()
		s.metrics.requests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
		s.metrics.duration.WithLabelValues(endpoint).Observe(took.Seconds())
		if n >= 0 {
			s.metrics.candidates.WithLabelValues(endpoint).Observe(float64(n))
		}

		entry := s.log.Debug()
		if err != nil {
			entry = s.log.Warn().Err(err)
		}
		entry.Str("endpoint", endpoint).
			Int("status", status).
			Int("candidates", n).
			Dur("took", took).
			Str("stages", timer.Summary()).
			Msg("request served")
	}
}

func statusFor(err error) int {
	var validationErr *derrors.ValidationError
	var grammarErr *derrors.GrammarError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &grammarErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func decode(r *http.Request, timer *timing.Timer, v any) error {
	return timer.Stage("decode", func() error {
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return derrors.NewValidationError("body", "invalid request body", err)
		}
		return nil
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeOK(w, map[string]string{"status": "ok"})
}

func (s *Server) statusHandler(w http.ResponseWriter, _ *http.Request) {
	regs := s.engine.Registries()
	resp := StatusResponse{
		Uptime:       time.Since(s.startTime).Truncate(time.Second).String(),
		Version:      version.Version,
		GrammarNodes: s.engine.Tree().Size(),
		Registries:   make(map[string]int),
	}
	for _, name := range regs.Names() {
		resp.Registries[name] = regs.Len(name)
	}
	writeOK(w, resp)
}

func (s *Server) completeHandler(r *http.Request, timer *timing.Timer) (any, int, error) {
	var req LineRequest
	if err := decode(r, timer, &req); err != nil {
		return nil, -1, err
	}

	var candidates []engine.Candidate
	err := timer.Stage("complete", func() (err error) {
		candidates, err = s.engine.Complete(req.Line)
		return err
	})
	if err != nil {
		return nil, -1, err
	}
	return CompleteResponse{Candidates: nonNil(candidates)}, len(candidates), nil
}

func (s *Server) documentHandler(r *http.Request, timer *timing.Timer) (any, int, error) {
	var req DocumentRequest
	if err := decode(r, timer, &req); err != nil {
		return nil, -1, err
	}

	var candidates []engine.Candidate
	err := timer.Stage("complete", func() (err error) {
		candidates, err = s.completer.CompleteDocument(embedded.NewDocument(req.Text), req.Position)
		return err
	})
	if err != nil {
		return nil, -1, err
	}
	return CompleteResponse{Candidates: nonNil(candidates)}, len(candidates), nil
}

func (s *Server) embeddedHandler(r *http.Request, timer *timing.Timer) (any, int, error) {
	var req EmbeddedRequest
	if err := decode(r, timer, &req); err != nil {
		return nil, -1, err
	}
	if req.Offset < 0 || req.Offset > len(req.Text) {
		return nil, -1, derrors.NewValidationError("offset", "offset is outside the text", nil)
	}

	var candidates []engine.Candidate
	err := timer.Stage("complete", func() (err error) {
		candidates, err = s.completer.CompleteAt(req.Text, req.Offset)
		return err
	})
	if err != nil {
		return nil, -1, err
	}
	return CompleteResponse{Candidates: nonNil(candidates)}, len(candidates), nil
}

func (s *Server) parseHandler(r *http.Request, timer *timing.Timer) (any, int, error) {
	var req LineRequest
	if err := decode(r, timer, &req); err != nil {
		return nil, -1, err
	}

	var result *engine.ParseResult
	err := timer.Stage("parse", func() (err error) {
		result, err = s.engine.Parse(req.Line)
		return err
	})
	if err != nil {
		return nil, -1, err
	}
	return NewParseResponse(result), -1, nil
}

// NewParseResponse converts a parse result for the wire
func NewParseResponse(result *engine.ParseResult) ParseResponse {
	return ParseResponse{
		Tip:        nonNilStrings(result.Tip.Path()),
		TipKind:    result.Tip.Kind().String(),
		Remainder:  result.Remainder,
		Consumed:   result.Consumed,
		Properties: result.Properties,
	}
}

func nonNil(candidates []engine.Candidate) []engine.Candidate {
	if candidates == nil {
		return []engine.Candidate{}
	}
	return candidates
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
