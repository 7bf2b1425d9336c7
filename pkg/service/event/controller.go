package event

import (
	"context"

	"github.com/amirasaad/finance/pkg/dto"
	"github.com/amirasaad/finance/pkg/rpc"
	"github.com/google/uuid"
)

func RegisterHandlers(srv *rpc.Server, svc *Service) {
	srv.Register(rpc.ServiceEvents, rpc.Create, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		in, err := rpc.Bind[dto.CreateEventRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.Create(ctx, userID, in)
	})
	srv.Register(rpc.ServiceEvents, rpc.FindAll, func(ctx context.Context, req *rpc.Request) (any, error) {
		userID, err := rpc.RequireUser(req)
		if err != nil {
			return nil, err
		}
		return svc.FindAll(ctx, userID)
	})
	srv.Register(rpc.ServiceEvents, rpc.FindOne, rpc.Resource(func(ctx context.Context, _ *rpc.Request, userID, id uuid.UUID) (any, error) {
		return svc.FindOne(ctx, userID, id)
	}))
	srv.Register(rpc.ServiceEvents, rpc.Update, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		in, err := rpc.Bind[dto.UpdateEventRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.Update(ctx, userID, id, in)
	}))
	srv.Register(rpc.ServiceEvents, rpc.Delete, rpc.Resource(func(ctx context.Context, _ *rpc.Request, userID, id uuid.UUID) (any, error) {
		return svc.Delete(ctx, userID, id)
	}))
	srv.Register(rpc.ServiceEvents, rpc.AddParticipant, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		in, err := rpc.Bind[dto.AddEventParticipantRequest](req)
		if err != nil {
			return nil, err
		}
		return svc.AddParticipant(ctx, userID, id, in)
	}))
	srv.Register(rpc.ServiceEvents, rpc.RemoveParticipant, rpc.Resource(func(ctx context.Context, req *rpc.Request, userID, id uuid.UUID) (any, error) {
		participantID, err := rpc.ParseSubID(req)
		if err != nil {
			return nil, err
		}
		return svc.RemoveParticipant(ctx, userID, id, participantID)
	}))
}
