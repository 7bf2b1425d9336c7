package expense

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/google/uuid"
)

// RegisterHandlers exposes the service on the expenses queue.
func RegisterHandlers(srv *rpc.Server, svc *Service) {
	srv.Register(rpc.ServiceExpenses, rpc.Create, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		in, err := rpc.Bind[dto.CreateExpenseRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.Create(ctx, userID, in)
	})
	srv.Register(rpc.ServiceExpenses, rpc.FindAll, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		q, err := rpc.Bind[dto.ExpenseQuery](req)
		if err != nil {
			return nil, err
		}
		return svc.FindAll(ctx, userID, q)
	})
	srv.Register(rpc.ServiceExpenses, rpc.FindOne, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		return svc.FindOne(ctx, userID, id)
	}))
	srv.Register(rpc.ServiceExpenses, rpc.Update, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		in, err := rpc.Bind[dto.UpdateExpenseRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.Update(ctx, userID, id, in)
	}))
	srv.Register(rpc.ServiceExpenses, rpc.Delete, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		return svc.Delete(ctx, userID, id)
	}))
	srv.Register(rpc.ServiceExpenses, rpc.HardDelete, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		return nil, svc.HardDelete(ctx, userID, id)
	}))
	srv.Register(rpc.ServiceExpenses, rpc.GetStatistics, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		return svc.GetStatistics(ctx, userID)
	})
}
