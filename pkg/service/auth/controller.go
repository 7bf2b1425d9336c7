package auth

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/rpc"
)

// RegisterHandlers exposes the service on the authentication queue. Only
// SIGN_OUT needs a caller.
func RegisterHandlers(srv *rpc.Server, svc *Service) {
	srv.Register(rpc.ServiceAuthentication, rpc.SignUp, func(ctx context.Context, req *rpc.Request) (any, error) {
		in, err := rpc.Bind[dto.SignUpRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.SignUp(ctx, in)
	})
	srv.Register(rpc.ServiceAuthentication, rpc.SignIn, func(ctx context.Context, req *rpc.Request) (any, error) {
		in, err := rpc.Bind[dto.SignInRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.SignIn(ctx, in)
	})
	srv.Register(rpc.ServiceAuthentication, rpc.RefreshToken, func(ctx context.Context, req *rpc.Request) (any, error) {
		in, err := rpc.Bind[dto.RefreshRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.Refresh(ctx, in)
	})
	srv.Register(rpc.ServiceAuthentication, rpc.SignOut, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		return nil, svc.SignOut(ctx, userID)
	})
}
