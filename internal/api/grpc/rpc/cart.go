package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CartServiceName = "shop.v1.Cart"

const (
	Cart_AddItem_FullMethodName    = "/shop.v1.Cart/AddItem"
	Cart_RemoveItem_FullMethodName = "/shop.v1.Cart/RemoveItem"
	Cart_ListItems_FullMethodName  = "/shop.v1.Cart/ListItems"
)

// CartServer is the server API for the Cart service.
// Cart manages the caller's cart.
type CartServer interface {
	AddItem(context.Context, *AddItemRequest) (*CartResponse, error)
	RemoveItem(context.Context, *RemoveItemRequest) (*CartItem, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
}

// UnimplementedCartServer can be embedded to have forward compatible implementations.
type UnimplementedCartServer struct{}

func (UnimplementedCartServer) AddItem(context.Context, *AddItemRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddItem not implemented")
}

func (UnimplementedCartServer) RemoveItem(context.Context, *RemoveItemRequest) (*CartItem, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveItem not implemented")
}

func (UnimplementedCartServer) ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListItems not implemented")
}

var Cart_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CartServiceName,
	HandlerType: (*CartServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "AddItem", Handler: unary(Cart_AddItem_FullMethodName, CartServer.AddItem)},
		{MethodName: "RemoveItem", Handler: unary(Cart_RemoveItem_FullMethodName, CartServer.RemoveItem)},
		{MethodName: "ListItems", Handler: unary(Cart_ListItems_FullMethodName, CartServer.ListItems)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shop/v1/cart.json",
}

func RegisterCartServer(s grpc.ServiceRegistrar, srv CartServer) {
	s.RegisterService(&Cart_ServiceDesc, srv)
}

// CartClient is the client API for the Cart service.
type CartClient interface {
	AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*CartResponse, error)
	RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*CartItem, error)
	ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error)
}

type cartClient struct {
	cc grpc.ClientConnInterface
}

func NewCartClient(cc grpc.ClientConnInterface) CartClient {
	return &cartClient{cc: cc}
}

func (c *cartClient) AddItem(ctx context.Context, in *AddItemRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return invoke[CartResponse](ctx, c.cc, Cart_AddItem_FullMethodName, in, opts)
}

func (c *cartClient) RemoveItem(ctx context.Context, in *RemoveItemRequest, opts ...grpc.CallOption) (*CartItem, error) {
	return invoke[CartItem](ctx, c.cc, Cart_RemoveItem_FullMethodName, in, opts)
}

func (c *cartClient) ListItems(ctx context.Context, in *ListItemsRequest, opts ...grpc.CallOption) (*ListItemsResponse, error) {
	return invoke[ListItemsResponse](ctx, c.cc, Cart_ListItems_FullMethodName, in, opts)
}
