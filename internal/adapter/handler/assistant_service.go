package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// AssistantServiceName is the fully qualified gRPC service name. Requests and
// responses are google.protobuf.Struct messages.
const AssistantServiceName = "shoplist.v1.ShoppingAssistant"

type AssistantServer interface {
	CreateList(context.Context, *structpb.Struct) (*structpb.Struct, error)
	AddItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RemoveItem(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListLists(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListAlerts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateAlert(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(AssistantServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func methodDesc(name string, call unaryMethod) grpc.MethodDesc {
	fullMethod := "/" + AssistantServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AssistantServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				return call(srv.(AssistantServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var assistantServiceDesc = grpc.ServiceDesc{
	ServiceName: AssistantServiceName,
	HandlerType: (*AssistantServer)(nil),
	Methods: []grpc.MethodDesc{
		methodDesc("CreateList", AssistantServer.CreateList),
		methodDesc("AddItem", AssistantServer.AddItem),
		methodDesc("RemoveItem", AssistantServer.RemoveItem),
		methodDesc("ListLists", AssistantServer.ListLists),
		methodDesc("ListAlerts", AssistantServer.ListAlerts),
		methodDesc("UpdateAlert", AssistantServer.UpdateAlert),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterAssistantServer(s grpc.ServiceRegistrar, srv AssistantServer) {
	s.RegisterService(&assistantServiceDesc, srv)
}

// AssistantClient invokes ShoppingAssistant methods by name.
type AssistantClient struct {
	cc grpc.ClientConnInterface
}

func NewAssistantClient(cc grpc.ClientConnInterface) *AssistantClient {
	return &AssistantClient{cc: cc}
}

func (c *AssistantClient) Call(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+AssistantServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
