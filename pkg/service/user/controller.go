package user

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/google/uuid"
)

// RegisterHandlers exposes the service on the users queue. FIND_ONE without
// an id returns the caller.
func RegisterHandlers(srv *rpc.Server, svc *Service) {
	srv.Register(rpc.ServiceUsers, rpc.FindOne, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		if req.ID == "" {
			return svc.FindOne(ctx, userID, userID)
		}
		id, err := rpc.ParseID(req)
		if err != nil {
			return nil, err
		}
		return svc.FindOne(ctx, userID, id)
	})
	srv.Register(rpc.ServiceUsers, rpc.UpdateUser, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		in, err := rpc.Bind[dto.UserUpdate](req)
		if err != nil {
			return nil, err
		}
		return svc.UpdateUser(ctx, userID, id, in)
	}))
	srv.Register(rpc.ServiceUsers, rpc.UpdatePassword, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		in, err := rpc.Bind[dto.UpdatePasswordRequest](req)
		if err != nil {
			return nil, err
		}
		return nil, svc.UpdatePassword(ctx, userID, id, in)
	}))
	srv.Register(rpc.ServiceUsers, rpc.Delete, rpc.Resource(func(ctx context.Context, _ *rpc.Request, userID, id uuid.UUID) (any, error) {
		return nil, svc.Delete(ctx, userID, id)
	}))
}
