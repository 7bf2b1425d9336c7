package income

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/google/uuid"
)

// RegisterHandlers exposes the service on the incomes queue.
func RegisterHandlers(srv *rpc.Server, svc *Service) {
	srv.Register(rpc.ServiceIncomes, rpc.Create, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		in, err := rpc.Bind[dto.CreateIncomeRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.Create(ctx, userID, in)
	})
	srv.Register(rpc.ServiceIncomes, rpc.FindAll, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		q, err := rpc.Bind[dto.IncomeQuery](req)
		if err != nil {
			return nil, err
		}
		return svc.FindAll(ctx, userID, q)
	})
	srv.Register(rpc.ServiceIncomes, rpc.FindDue, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		return svc.FindDue(ctx, userID)
	})
	srv.Register(rpc.ServiceIncomes, rpc.FindOne, rpc.Resource(func(ctx context.Context, _ *rpc.Request, userID, id uuid.UUID) (any, error) {
		return svc.FindOne(ctx, userID, id)
	}))
	srv.Register(rpc.ServiceIncomes, rpc.Update, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		in, err := rpc.Bind[dto.UpdateIncomeRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.Update(ctx, userID, id, in)
	}))
	srv.Register(rpc.ServiceIncomes, rpc.Delete, rpc.Resource(func(ctx context.Context, _ *rpc.Request, userID, id uuid.UUID) (any, error) {
		return svc.Delete(ctx, userID, id)
	}))
	srv.Register(rpc.ServiceIncomes, rpc.HardDelete, rpc.Resource(func(ctx context.Context, _ *rpc.Request, userID, id uuid.UUID) (any, error) {
		return nil, svc.HardDelete(ctx, userID, id)
	}))
	srv.Register(rpc.ServiceIncomes, rpc.CreditNow, rpc.Resource(func(ctx context.Context, _ *rpc.Request, userID, id uuid.UUID) (any, error) {
		return svc.CreditNow(ctx, userID, id)
	}))
}
