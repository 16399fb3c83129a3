package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const CatalogServiceName = "shop.v1.Catalog"

const (
	Catalog_ListProducts_FullMethodName  = "/shop.v1.Catalog/ListProducts"
	Catalog_GetProduct_FullMethodName    = "/shop.v1.Catalog/GetProduct"
	Catalog_CreateProduct_FullMethodName = "/shop.v1.Catalog/CreateProduct"
)

// CatalogServer is the server API for the Catalog service.
// Catalog lists and manages products.
type CatalogServer interface {
	ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error)
	GetProduct(context.Context, *GetProductRequest) (*Product, error)
	CreateProduct(context.Context, *CreateProductRequest) (*Product, error)
}

// UnimplementedCatalogServer can be embedded to have forward compatible implementations.
type UnimplementedCatalogServer struct{}

func (UnimplementedCatalogServer) ListProducts(context.Context, *ListProductsRequest) (*ListProductsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}

func (UnimplementedCatalogServer) GetProduct(context.Context, *GetProductRequest) (*Product, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProduct not implemented")
}

func (UnimplementedCatalogServer) CreateProduct(context.Context, *CreateProductRequest) (*Product, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProduct not implemented")
}

var Catalog_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListProducts", Handler: unary(Catalog_ListProducts_FullMethodName, CatalogServer.ListProducts)},
		{MethodName: "GetProduct", Handler: unary(Catalog_GetProduct_FullMethodName, CatalogServer.GetProduct)},
		{MethodName: "CreateProduct", Handler: unary(Catalog_CreateProduct_FullMethodName, CatalogServer.CreateProduct)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shop/v1/catalog.json",
}

func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&Catalog_ServiceDesc, srv)
}

// CatalogClient is the client API for the Catalog service.
type CatalogClient interface {
	ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error)
	GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*Product, error)
	CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*Product, error)
}

type catalogClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogClient(cc grpc.ClientConnInterface) CatalogClient {
	return &catalogClient{cc: cc}
}

func (c *catalogClient) ListProducts(ctx context.Context, in *ListProductsRequest, opts ...grpc.CallOption) (*ListProductsResponse, error) {
	return invoke[ListProductsResponse](ctx, c.cc, Catalog_ListProducts_FullMethodName, in, opts)
}

func (c *catalogClient) GetProduct(ctx context.Context, in *GetProductRequest, opts ...grpc.CallOption) (*Product, error) {
	return invoke[Product](ctx, c.cc, Catalog_GetProduct_FullMethodName, in, opts)
}

func (c *catalogClient) CreateProduct(ctx context.Context, in *CreateProductRequest, opts ...grpc.CallOption) (*Product, error) {
	return invoke[Product](ctx, c.cc, Catalog_CreateProduct_FullMethodName, in, opts)
}
