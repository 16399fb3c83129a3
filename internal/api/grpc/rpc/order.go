package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const OrderServiceName = "shop.v1.Order"

const (
	Order_BuyNow_FullMethodName         = "/shop.v1.Order/BuyNow"
	Order_PlaceCartOrder_FullMethodName = "/shop.v1.Order/PlaceCartOrder"
	Order_ListOrders_FullMethodName     = "/shop.v1.Order/ListOrders"
	Order_GetOrder_FullMethodName       = "/shop.v1.Order/GetOrder"
)

// OrderServer is the server API for the Order service.
// Order places and reads the caller's orders.
type OrderServer interface {
	BuyNow(context.Context, *BuyNowRequest) (*Order, error)
	PlaceCartOrder(context.Context, *PlaceCartOrderRequest) (*CheckoutResponse, error)
	ListOrders(context.Context, *Empty) (*ListOrdersResponse, error)
	GetOrder(context.Context, *GetOrderRequest) (*Order, error)
}

// UnimplementedOrderServer can be embedded to have forward compatible implementations.
type UnimplementedOrderServer struct{}

func (UnimplementedOrderServer) BuyNow(context.Context, *BuyNowRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method BuyNow not implemented")
}

func (UnimplementedOrderServer) PlaceCartOrder(context.Context, *PlaceCartOrderRequest) (*CheckoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PlaceCartOrder not implemented")
}

func (UnimplementedOrderServer) ListOrders(context.Context, *Empty) (*ListOrdersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListOrders not implemented")
}

func (UnimplementedOrderServer) GetOrder(context.Context, *GetOrderRequest) (*Order, error) {
	return nil, status.Error(codes.Unimplemented, "method GetOrder not implemented")
}

var Order_ServiceDesc = grpc.ServiceDesc{
	ServiceName: OrderServiceName,
	HandlerType: (*OrderServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "BuyNow", Handler: unary(Order_BuyNow_FullMethodName, OrderServer.BuyNow)},
		{MethodName: "PlaceCartOrder", Handler: unary(Order_PlaceCartOrder_FullMethodName, OrderServer.PlaceCartOrder)},
		{MethodName: "ListOrders", Handler: unary(Order_ListOrders_FullMethodName, OrderServer.ListOrders)},
		{MethodName: "GetOrder", Handler: unary(Order_GetOrder_FullMethodName, OrderServer.GetOrder)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shop/v1/order.json",
}

func RegisterOrderServer(s grpc.ServiceRegistrar, srv OrderServer) {
	s.RegisterService(&Order_ServiceDesc, srv)
}

// OrderClient is the client API for the Order service.
type OrderClient interface {
	BuyNow(ctx context.Context, in *BuyNowRequest, opts ...grpc.CallOption) (*Order, error)
	PlaceCartOrder(ctx context.Context, in *PlaceCartOrderRequest, opts ...grpc.CallOption) (*CheckoutResponse, error)
	ListOrders(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error)
	GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error)
}

type orderClient struct {
	cc grpc.ClientConnInterface
}

func NewOrderClient(cc grpc.ClientConnInterface) OrderClient {
	return &orderClient{cc: cc}
}

func (c *orderClient) BuyNow(ctx context.Context, in *BuyNowRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, Order_BuyNow_FullMethodName, in, opts)
}

func (c *orderClient) PlaceCartOrder(ctx context.Context, in *PlaceCartOrderRequest, opts ...grpc.CallOption) (*CheckoutResponse, error) {
	return invoke[CheckoutResponse](ctx, c.cc, Order_PlaceCartOrder_FullMethodName, in, opts)
}

func (c *orderClient) ListOrders(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*ListOrdersResponse, error) {
	return invoke[ListOrdersResponse](ctx, c.cc, Order_ListOrders_FullMethodName, in, opts)
}

func (c *orderClient) GetOrder(ctx context.Context, in *GetOrderRequest, opts ...grpc.CallOption) (*Order, error) {
	return invoke[Order](ctx, c.cc, Order_GetOrder_FullMethodName, in, opts)
}
