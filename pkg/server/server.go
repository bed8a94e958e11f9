package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bastiangx/wordsift/internal/logger"
	"github.com/bastiangx/wordsift/internal/utils"
	"github.com/bastiangx/wordsift/pkg/config"
	"github.com/bastiangx/wordsift/pkg/dictionary"
	"github.com/bastiangx/wordsift/pkg/finder"
	"github.com/bastiangx/wordsift/pkg/grammar"
	"github.com/bastiangx/wordsift/pkg/search"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for sentence searches
type Server struct {
	dict         *dictionary.Dictionary
	filter       grammar.Filter
	config       *config.Config
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	log          *log.Logger
	requestCount int
}

// NewServer creates a server reading requests from r and writing responses to w.
func NewServer(dict *dictionary.Dictionary, filter grammar.Filter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	bw := bufio.NewWriter(w)
	return &Server{
		dict:    dict,
		filter:  filter,
		config:  cfg,
		decoder: msgpack.NewDecoder(bufio.NewReader(r)),
		writer:  bw,
		encoder: msgpack.NewEncoder(bw),
		log: logger.NewWithConfig(os.Stderr, "server", log.GetLevel(), false,
			log.GetLevel() <= log.DebugLevel, log.TextFormatter),
	}
}

// Start sends the ready notice and serves requests until the input ends or
// ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.log.Debug("Starting Server.")
	if err := s.send(StatusMessage{Status: "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var raw msgpack.RawMessage
		if err := s.decoder.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			s.log.Errorf("Reading request: %v", err)
			return err
		}
		s.requestCount++
		s.handleRequest(ctx, raw)
	}
}

// handleRequest decodes one raw request and answers it.
func (s *Server) handleRequest(ctx context.Context, raw msgpack.RawMessage) {
	var req SearchRequest
	if err := msgpack.Unmarshal(raw, &req); err != nil {
		s.log.Errorf("Unmarshaling request: %v", err)
		s.sendError("", "invalid msgpack request", 400)
		return
	}

	input := utils.NormalizeInput(req.Input)
	if input == "" {
		s.log.Debug("Input is empty in request", "id", req.ID)
		s.sendError(req.ID, "missing 'i' parameter", 400)
		return
	}

	cutoff := req.Cutoff
	if cutoff == 0 {
		cutoff = s.config.Dict.Cutoff
	}
	if err := dictionary.ValidateCutoff(cutoff, s.config.Dict.MinCutoff, s.config.Dict.MaxCutoff); err != nil {
		s.sendError(req.ID, err.Error(), 400)
		return
	}

	// a fresh Finder per request, so repeated inputs get full answers
	f := finder.New(s.dict.WithCutoff(cutoff), s.filter, s.config.SearchOptions())
	f.SetTimeout(s.config.SearchTimeout())
	report, err := f.Find(ctx, input)
	if err != nil && (report == nil || !report.Partial) {
		code := 500
		if errors.Is(err, search.ErrInputTooLong) {
			code = 400
		}
		s.log.Errorf("Request %s failed: %v", req.ID, err)
		s.sendError(req.ID, err.Error(), code)
		return
	}

	resp := SearchResponse{
		ID:         req.ID,
		Results:    make([]SentenceResult, len(report.Results)),
		Count:      len(report.Results),
		Candidates: report.Candidates,
		TimeTaken:  report.Elapsed().Microseconds(),
		Partial:    report.Partial,
	}
	for i, r := range report.Results {
		resp.Results[i] = SentenceResult{Sentence: r.Text, Score: r.Score}
	}
	s.log.Debug("Request done", "id", req.ID, "results", resp.Count, "candidates", resp.Candidates, "us", resp.TimeTaken)
	if err := s.send(resp); err != nil {
		s.log.Errorf("Sending response: %v", err)
	}
}

// send encodes v and flushes it to the client.
func (s *Server) send(v any) error {
	if err := s.encoder.Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return s.writer.Flush()
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) {
	if err := s.send(SearchError{ID: id, Error: message, Code: code}); err != nil {
		s.log.Errorf("Sending error response: %v", err)
	}
}
