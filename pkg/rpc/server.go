package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/google/uuid"
)

// Handler serves one pattern. The returned value is encoded as the reply
// data.
type Handler func(ctx context.Context, req *Request) (any, error)

// Server dispatches requests to registered handlers.
type Server struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewServer creates an empty server.
func NewServer(logger *slog.Logger) *Server {
	return &Server{
		handlers: make(map[string]Handler),
		logger:   logger.With("component", "rpc-server"),
	}
}

func key(service string, pattern Pattern) string {
	return service + "." + string(pattern)
}

// Register binds a handler to service and pattern, replacing any previous
// one.
func (s *Server) Register(service string, pattern Pattern, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[key(service, pattern)] = h
}

// Handles reports whether service has at least one handler.
func (s *Server) Handles(service string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefix := service + "."
	for k := range s.handlers {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// Handle runs the handler for req and always returns a reply.
func (s *Server) Handle(ctx context.Context, req *Request) *Reply {
	s.mu.RLock()
	h, ok := s.handlers[key(req.Service, req.Pattern)]
	s.mu.RUnlock()
	log := s.logger.With("service", req.Service, "pattern", req.Pattern)
	if !ok {
		log.Warn("no handler registered")
		return &Reply{Error: &Error{
			Code:    CodeNotFound,
			Message: fmt.Sprintf("unknown pattern %s.%s", req.Service, req.Pattern),
		}}
	}

	data, err := s.invoke(ctx, h, req)
	if err != nil {
		if !domain.IsKnown(err) {
			log.Error("handler failed", "error", err)
		}
		return &Reply{Error: FromError(err)}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		log.Error("failed to encode reply", "error", err)
		return &Reply{Error: FromError(err)}
	}
	return &Reply{Data: raw}
}

func (s *Server) invoke(ctx context.Context, h Handler, req *Request) (data any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in handler: %v", r)
		}
	}()
	return h(ctx, req)
}

// Bind decodes the payload of req into T. Unknown fields are rejected.
func Bind[T any](req *Request) (T, error) {
	var v T
	if len(req.Payload) == 0 {
		return v, nil
	}
	dec := json.NewDecoder(bytes.NewReader(req.Payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, fmt.Errorf("%w: %s", domain.ErrBadRequest, err.Error())
	}
	return v, nil
}

// ParseID reads the resource id of req.
func ParseID(req *Request) (uuid.UUID, error) {
	return parseUUID(req.ID)
}

// ParseSubID reads the nested resource id of req, such as a participant.
func ParseSubID(req *Request) (uuid.UUID, error) {
	return parseUUID(req.SubID)
}

func parseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id %q", domain.ErrBadRequest, s)
	}
	return id, nil
}

// RequireUser rejects anonymous requests.
func RequireUser(req *Request) (uuid.UUID, error) {
	if req.UserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: missing caller", domain.ErrUnauthorized)
	}
	return req.UserID, nil
}

// ResourceHandler serves a pattern addressed to one resource of the caller.
type ResourceHandler func(ctx context.Context, req *Request, userID, id uuid.UUID) (any, error)

// Resource adapts h into a Handler that first resolves the caller and the
// resource id of the request.
func Resource(h ResourceHandler) Handler {
	return func(ctx context.Context, req *Request) (any, error) {
		userID, err := RequireUser(req)
		if err != nil {
			return nil, err
		}
		id, err := ParseID(req)
		if err != nil {
			return nil, err
		}
		return h(ctx, req, userID, id)
	}
}
