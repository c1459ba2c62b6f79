package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the price service
const ServiceName = "pricewise.v1.PriceService"

// PriceServiceServer is the server API for the price service.
// Every method takes and returns a google.protobuf.Struct.
type PriceServiceServer interface {
	Compare(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CheaperElsewhere(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListOptions(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetPriceRange(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RankShops(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlanTrip(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetListTotal(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetOverview(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddShop(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RecordPrice(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetProductAvailability(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteShop(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeletePriceRecord(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(PriceServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(PriceServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(PriceServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// PriceServiceDesc describes the price service for grpc.Server registration
var PriceServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PriceServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Compare", PriceServiceServer.Compare),
		unary("CheaperElsewhere", PriceServiceServer.CheaperElsewhere),
		unary("ListOptions", PriceServiceServer.ListOptions),
		unary("GetPriceRange", PriceServiceServer.GetPriceRange),
		unary("RankShops", PriceServiceServer.RankShops),
		unary("PlanTrip", PriceServiceServer.PlanTrip),
		unary("GetListTotal", PriceServiceServer.GetListTotal),
		unary("GetOverview", PriceServiceServer.GetOverview),
		unary("AddProduct", PriceServiceServer.AddProduct),
		unary("AddShop", PriceServiceServer.AddShop),
		unary("RecordPrice", PriceServiceServer.RecordPrice),
		unary("SetProductAvailability", PriceServiceServer.SetProductAvailability),
		unary("DeleteProduct", PriceServiceServer.DeleteProduct),
		unary("DeleteShop", PriceServiceServer.DeleteShop),
		unary("DeletePriceRecord", PriceServiceServer.DeletePriceRecord),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "",
}

// RegisterPriceServiceServer registers srv on the gRPC server
func RegisterPriceServiceServer(s grpc.ServiceRegistrar, srv PriceServiceServer) {
	s.RegisterService(&PriceServiceDesc, srv)
}

// PriceServiceClient calls the price service over a client connection
type PriceServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewPriceServiceClient creates a client for the price service
func NewPriceServiceClient(cc grpc.ClientConnInterface) *PriceServiceClient {
	return &PriceServiceClient{cc: cc}
}

// Call invokes method (e.g. "Compare") with req
func (c *PriceServiceClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
