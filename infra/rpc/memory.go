// Package rpc provides transports for the internal request/reply protocol.
package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amirasaad/finance/pkg/rpc"
)

// Memory delivers requests to an in-process server. Requests and replies
// still go through JSON so handlers see exactly what a remote transport
// would give them.
type Memory struct {
	server *rpc.Server
}

// NewMemory creates a transport over srv.
func NewMemory(srv *rpc.Server) *Memory {
	return &Memory{server: srv}
}

// Send implements rpc.Transport.
func (m *Memory) Send(ctx context.Context, req *rpc.Request) (*rpc.Reply, error) {
	var wireReq rpc.Request
	if err := roundTrip(req, &wireReq); err != nil {
		return nil, fmt.Errorf("memory transport: %w", err)
	}
	reply := m.server.Handle(ctx, &wireReq)
	var wireReply rpc.Reply
	if err := roundTrip(reply, &wireReply); err != nil {
		return nil, fmt.Errorf("memory transport: %w", err)
	}
	return &wireReply, nil
}

func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

var _ rpc.Transport = (*Memory)(nil)
