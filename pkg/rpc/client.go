package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amirasaad/finance/pkg/domain"
	"github.com/google/uuid"
)

// Transport delivers a request to the service that owns it and waits for
// the reply.
type Transport interface {
	Send(ctx context.Context, req *Request) (*Reply, error)
}

// Client sends requests over a transport.
type Client struct {
	transport Transport
}

// NewClient creates a client.
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

// CallOption adjusts a request before it is sent.
type CallOption func(*Request)

// WithID sets the resource id of the request.
func WithID(id string) CallOption {
	return func(r *Request) { r.ID = id }
}

// WithSubID sets the nested resource id of the request.
func WithSubID(id string) CallOption {
	return func(r *Request) { r.SubID = id }
}

// Call sends payload to service/pattern on behalf of userID and decodes the
// reply into T. A service error is returned as *Error, which matches the
// domain sentinels with errors.Is.
func Call[T any](
	ctx context.Context,
	c *Client,
	service string,
	pattern Pattern,
	userID uuid.UUID,
	payload any,
	opts ...CallOption,
) (T, error) {
	var out T
	req := &Request{Service: service, Pattern: pattern, UserID: userID}
	for _, opt := range opts {
		opt(req)
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return out, fmt.Errorf("encode %s.%s payload: %w", service, pattern, err)
		}
		req.Payload = raw
	}

	reply, err := c.transport.Send(ctx, req)
	if err != nil {
		return out, fmt.Errorf("%w: %s.%s: %s", domain.ErrInternal, service, pattern, err.Error())
	}
	if reply.Error != nil {
		return out, reply.Error
	}
	if len(reply.Data) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(reply.Data, &out); err != nil {
		return out, fmt.Errorf("%w: decode %s.%s reply: %s", domain.ErrInternal, service, pattern, err.Error())
	}
	return out, nil
}
