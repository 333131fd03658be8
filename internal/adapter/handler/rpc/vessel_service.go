package rpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "harbor.v1.VesselService"

type VesselServiceServer interface {
	Commission(context.Context, *CommissionRequest) (*VesselReply, error)
	GetVessel(context.Context, *GetVesselRequest) (*VesselReply, error)
	Command(context.Context, *CommandRequest) (*CommandReply, error)
	RollCall(context.Context, *RollCallRequest) (*RollCallReply, error)
	DismissCrew(context.Context, *DismissCrewRequest) (*DismissCrewReply, error)
}

func RegisterVesselServiceServer(s grpc.ServiceRegistrar, srv VesselServiceServer) {
	s.RegisterService(&vesselServiceDesc, srv)
}

var vesselServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VesselServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Commission", VesselServiceServer.Commission),
		unary("GetVessel", VesselServiceServer.GetVessel),
		unary("Command", VesselServiceServer.Command),
		unary("RollCall", VesselServiceServer.RollCall),
		unary("DismissCrew", VesselServiceServer.DismissCrew),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "harbor/v1/vessel.proto",
}

func unary[Req, Resp any](name string, call func(VesselServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(VesselServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + ServiceName + "/" + name,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(VesselServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// VesselServiceClient calls a remote vessel service over the json codec.
type VesselServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewVesselServiceClient(cc grpc.ClientConnInterface) *VesselServiceClient {
	return &VesselServiceClient{cc: cc}
}

func (c *VesselServiceClient) Commission(ctx context.Context, in *CommissionRequest, opts ...grpc.CallOption) (*VesselReply, error) {
	out := new(VesselReply)
	if err := c.invoke(ctx, "Commission", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VesselServiceClient) GetVessel(ctx context.Context, in *GetVesselRequest, opts ...grpc.CallOption) (*VesselReply, error) {
	out := new(VesselReply)
	if err := c.invoke(ctx, "GetVessel", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VesselServiceClient) Command(ctx context.Context, in *CommandRequest, opts ...grpc.CallOption) (*CommandReply, error) {
	out := new(CommandReply)
	if err := c.invoke(ctx, "Command", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VesselServiceClient) RollCall(ctx context.Context, in *RollCallRequest, opts ...grpc.CallOption) (*RollCallReply, error) {
	out := new(RollCallReply)
	if err := c.invoke(ctx, "RollCall", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VesselServiceClient) DismissCrew(ctx context.Context, in *DismissCrewRequest, opts ...grpc.CallOption) (*DismissCrewReply, error) {
	out := new(DismissCrewReply)
	if err := c.invoke(ctx, "DismissCrew", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VesselServiceClient) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...)
}
