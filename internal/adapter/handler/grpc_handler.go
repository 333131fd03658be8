package handler

import (
	"context"

	"github.com/rl1809/harbor/internal/adapter/handler/rpc"
	"github.com/rl1809/harbor/internal/core/domain"
	"github.com/rl1809/harbor/internal/core/service"
)

type GRPCHandler struct {
	vesselService *service.VesselService
}

var _ rpc.VesselServiceServer = (*GRPCHandler)(nil)

func NewGRPCHandler(vesselService *service.VesselService) *GRPCHandler {
	return &GRPCHandler{vesselService: vesselService}
}

func (h *GRPCHandler) Commission(ctx context.Context, req *rpc.CommissionRequest) (*rpc.VesselReply, error) {
	v, err := h.vesselService.Commission(ctx, req.Name, req.Crew, req.MaxSpeed)
	if err != nil {
		return nil, grpcError(err)
	}
	return toVesselReply(v), nil
}

func (h *GRPCHandler) GetVessel(ctx context.Context, req *rpc.GetVesselRequest) (*rpc.VesselReply, error) {
	v, err := h.vesselService.Get(ctx, req.VesselId)
	if err != nil {
		return nil, grpcError(err)
	}
	return toVesselReply(v), nil
}

func (h *GRPCHandler) Command(ctx context.Context, req *rpc.CommandRequest) (*rpc.CommandReply, error) {
	report, err := h.vesselService.Command(ctx, req.RequestId, req.VesselId, domain.SpeedOrder(req.Order))
	if err != nil {
		return nil, grpcError(err)
	}
	return &rpc.CommandReply{Report: report}, nil
}

func (h *GRPCHandler) RollCall(ctx context.Context, req *rpc.RollCallRequest) (*rpc.RollCallReply, error) {
	lines, err := h.vesselService.RollCall(ctx, req.VesselId)
	if err != nil {
		return nil, grpcError(err)
	}
	return &rpc.RollCallReply{Lines: lines}, nil
}

func (h *GRPCHandler) DismissCrew(ctx context.Context, req *rpc.DismissCrewRequest) (*rpc.DismissCrewReply, error) {
	name, err := h.vesselService.DismissCrew(ctx, req.VesselId, int(req.Position))
	if err != nil {
		return nil, grpcError(err)
	}
	return &rpc.DismissCrewReply{Dismissed: name}, nil
}

func toVesselReply(v *domain.Vessel) *rpc.VesselReply {
	return &rpc.VesselReply{
		Id:           v.ID,
		Name:         v.Name(),
		Crew:         v.Crew(),
		MaxSpeed:     v.MaxSpeed(),
		CurrentSpeed: v.CurrentSpeed(),
		Version:      int32(v.Version),
	}
}
