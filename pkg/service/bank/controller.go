package bank

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/rpc"
)

// RegisterHandlers exposes the service on the banks queue.
func RegisterHandlers(srv *rpc.Server, svc *Service) {
	srv.Register(rpc.ServiceBanks, rpc.GetBank, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		return svc.GetBank(ctx, userID)
	})
	srv.Register(rpc.ServiceBanks, rpc.AddBalance, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		in, err := rpc.Bind[dto.BalanceChange](req)
		if err != nil {
			return nil, err
		}
		return svc.AddBalance(ctx, userID, in)
	})
	srv.Register(rpc.ServiceBanks, rpc.SubtractBalance, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		in, err := rpc.Bind[dto.BalanceChange](req)
		if err != nil {
			return nil, err
		}
		return svc.SubtractBalance(ctx, userID, in)
	})
	srv.Register(rpc.ServiceBanks, rpc.UpdateCurrency, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		in, err := rpc.Bind[dto.CurrencyChange](req)
		if err != nil {
			return nil, err
		}
		return svc.UpdateCurrency(ctx, userID, in)
	})
}
