package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/shopkeeper-server/internal/api/grpc/handler"
	"github.com/dtroode/shopkeeper-server/internal/api/grpc/middleware"
	"github.com/dtroode/shopkeeper-server/internal/api/grpc/rpc"
	"github.com/dtroode/shopkeeper-server/internal/logger"
	"github.com/dtroode/shopkeeper-server/internal/metrics"
	"github.com/dtroode/shopkeeper-server/internal/model"
)

// publicMethods are reachable without a bearer token.
var publicMethods = map[string]struct{}{
	rpc.Auth_RequestSignupOTP_FullMethodName:       {},
	rpc.Auth_Signup_FullMethodName:                 {},
	rpc.Auth_Login_FullMethodName:                  {},
	rpc.Auth_RequestPasswordReset_FullMethodName:   {},
	rpc.Auth_VerifyPasswordResetOTP_FullMethodName: {},
	rpc.Auth_UpdatePassword_FullMethodName:         {},
	rpc.Auth_RefreshToken_FullMethodName:           {},
	rpc.Auth_RevokeToken_FullMethodName:            {},
	rpc.Catalog_ListProducts_FullMethodName:        {},
	rpc.Catalog_GetProduct_FullMethodName:          {},
}

// adminMethods require the admin key instead of a bearer token.
var adminMethods = map[string]struct{}{
	rpc.Catalog_CreateProduct_FullMethodName: {},
}

// Services bundles the business services exposed over gRPC.
type Services struct {
	Auth     handler.AuthService
	Tokens   handler.TokenService
	Verifier middleware.TokenVerifier
	Catalog  handler.CatalogService
	Cart     handler.CartService
	Order    handler.OrderService
}

// Router registers shop services and their interceptor chain on a gRPC server.
type Router struct {
	services       Services
	adminKey       string
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new gRPC Router instance.
func New(services Services, adminKey string, contextManager model.ContextManager, logger *logger.Logger) *Router {
	return &Router{
		services:       services,
		adminKey:       adminKey,
		contextManager: contextManager,
		logger:         logger,
	}
}

func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	_, public := publicMethods[c.FullMethod()]
	_, admin := adminMethods[c.FullMethod()]
	return !public && !admin
}

func requiresAdmin(_ context.Context, c interceptors.CallMeta) bool {
	_, admin := adminMethods[c.FullMethod()]
	return admin
}

// Register builds the gRPC server with recovery, logging, metrics, admin key
// and bearer token interceptors, in that order, and registers all services.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.services.Verifier, r.contextManager, r.logger)
	adminKey := middleware.NewAdminKey(r.adminKey, r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recovery.WithRecoveryHandlerContext(r.recover)),
			logging.HandleGRPC,
			metrics.UnaryServerInterceptor(),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(adminKey.AuthFunc),
				selector.MatchFunc(requiresAdmin),
			),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	s := grpc.NewServer(opts...)
	rpc.RegisterAuthServer(s, handler.NewAuth(r.services.Auth, r.services.Tokens, r.contextManager, r.logger))
	rpc.RegisterCatalogServer(s, handler.NewCatalog(r.services.Catalog, r.logger))
	rpc.RegisterCartServer(s, handler.NewCart(r.services.Cart, r.contextManager, r.logger))
	rpc.RegisterOrderServer(s, handler.NewOrder(r.services.Order, r.contextManager, r.logger))

	return s
}

func (r *Router) recover(ctx context.Context, p any) error {
	r.logger.ErrorContext(ctx, "gRPC handler panicked", "panic", p)
	return status.Error(codes.Internal, "internal server error")
}
