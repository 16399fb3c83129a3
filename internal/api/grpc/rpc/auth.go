package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const AuthServiceName = "shop.v1.Auth"

const (
	Auth_RequestSignupOTP_FullMethodName       = "/shop.v1.Auth/RequestSignupOTP"
	Auth_Signup_FullMethodName                 = "/shop.v1.Auth/Signup"
	Auth_Login_FullMethodName                  = "/shop.v1.Auth/Login"
	Auth_Logout_FullMethodName                 = "/shop.v1.Auth/Logout"
	Auth_RequestPasswordReset_FullMethodName   = "/shop.v1.Auth/RequestPasswordReset"
	Auth_VerifyPasswordResetOTP_FullMethodName = "/shop.v1.Auth/VerifyPasswordResetOTP"
	Auth_UpdatePassword_FullMethodName         = "/shop.v1.Auth/UpdatePassword"
	Auth_RefreshToken_FullMethodName           = "/shop.v1.Auth/RefreshToken"
	Auth_RevokeToken_FullMethodName            = "/shop.v1.Auth/RevokeToken"
)

// AuthServer is the server API for the Auth service.
// Auth groups signup, login, password reset and token operations.
type AuthServer interface {
	RequestSignupOTP(context.Context, *RequestSignupOTPRequest) (*Empty, error)
	Signup(context.Context, *SignupRequest) (*SessionResponse, error)
	Login(context.Context, *LoginRequest) (*SessionResponse, error)
	Logout(context.Context, *Empty) (*Empty, error)
	RequestPasswordReset(context.Context, *RequestPasswordResetRequest) (*Empty, error)
	VerifyPasswordResetOTP(context.Context, *VerifyPasswordResetOTPRequest) (*Empty, error)
	UpdatePassword(context.Context, *UpdatePasswordRequest) (*Empty, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	RevokeToken(context.Context, *RevokeTokenRequest) (*Empty, error)
}

// UnimplementedAuthServer can be embedded to have forward compatible implementations.
type UnimplementedAuthServer struct{}

func (UnimplementedAuthServer) RequestSignupOTP(context.Context, *RequestSignupOTPRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestSignupOTP not implemented")
}

func (UnimplementedAuthServer) Signup(context.Context, *SignupRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Signup not implemented")
}

func (UnimplementedAuthServer) Login(context.Context, *LoginRequest) (*SessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}

func (UnimplementedAuthServer) Logout(context.Context, *Empty) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}

func (UnimplementedAuthServer) RequestPasswordReset(context.Context, *RequestPasswordResetRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RequestPasswordReset not implemented")
}

func (UnimplementedAuthServer) VerifyPasswordResetOTP(context.Context, *VerifyPasswordResetOTPRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method VerifyPasswordResetOTP not implemented")
}

func (UnimplementedAuthServer) UpdatePassword(context.Context, *UpdatePasswordRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdatePassword not implemented")
}

func (UnimplementedAuthServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}

func (UnimplementedAuthServer) RevokeToken(context.Context, *RevokeTokenRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method RevokeToken not implemented")
}

var Auth_ServiceDesc = grpc.ServiceDesc{
	ServiceName: AuthServiceName,
	HandlerType: (*AuthServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RequestSignupOTP", Handler: unary(Auth_RequestSignupOTP_FullMethodName, AuthServer.RequestSignupOTP)},
		{MethodName: "Signup", Handler: unary(Auth_Signup_FullMethodName, AuthServer.Signup)},
		{MethodName: "Login", Handler: unary(Auth_Login_FullMethodName, AuthServer.Login)},
		{MethodName: "Logout", Handler: unary(Auth_Logout_FullMethodName, AuthServer.Logout)},
		{MethodName: "RequestPasswordReset", Handler: unary(Auth_RequestPasswordReset_FullMethodName, AuthServer.RequestPasswordReset)},
		{MethodName: "VerifyPasswordResetOTP", Handler: unary(Auth_VerifyPasswordResetOTP_FullMethodName, AuthServer.VerifyPasswordResetOTP)},
		{MethodName: "UpdatePassword", Handler: unary(Auth_UpdatePassword_FullMethodName, AuthServer.UpdatePassword)},
		{MethodName: "RefreshToken", Handler: unary(Auth_RefreshToken_FullMethodName, AuthServer.RefreshToken)},
		{MethodName: "RevokeToken", Handler: unary(Auth_RevokeToken_FullMethodName, AuthServer.RevokeToken)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "shop/v1/auth.json",
}

func RegisterAuthServer(s grpc.ServiceRegistrar, srv AuthServer) {
	s.RegisterService(&Auth_ServiceDesc, srv)
}

// AuthClient is the client API for the Auth service.
type AuthClient interface {
	RequestSignupOTP(ctx context.Context, in *RequestSignupOTPRequest, opts ...grpc.CallOption) (*Empty, error)
	Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error)
	Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error)
	RequestPasswordReset(ctx context.Context, in *RequestPasswordResetRequest, opts ...grpc.CallOption) (*Empty, error)
	VerifyPasswordResetOTP(ctx context.Context, in *VerifyPasswordResetOTPRequest, opts ...grpc.CallOption) (*Empty, error)
	UpdatePassword(ctx context.Context, in *UpdatePasswordRequest, opts ...grpc.CallOption) (*Empty, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	RevokeToken(ctx context.Context, in *RevokeTokenRequest, opts ...grpc.CallOption) (*Empty, error)
}

type authClient struct {
	cc grpc.ClientConnInterface
}

func NewAuthClient(cc grpc.ClientConnInterface) AuthClient {
	return &authClient{cc: cc}
}

func (c *authClient) RequestSignupOTP(ctx context.Context, in *RequestSignupOTPRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_RequestSignupOTP_FullMethodName, in, opts)
}

func (c *authClient) Signup(ctx context.Context, in *SignupRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, Auth_Signup_FullMethodName, in, opts)
}

func (c *authClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*SessionResponse, error) {
	return invoke[SessionResponse](ctx, c.cc, Auth_Login_FullMethodName, in, opts)
}

func (c *authClient) Logout(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_Logout_FullMethodName, in, opts)
}

func (c *authClient) RequestPasswordReset(ctx context.Context, in *RequestPasswordResetRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_RequestPasswordReset_FullMethodName, in, opts)
}

func (c *authClient) VerifyPasswordResetOTP(ctx context.Context, in *VerifyPasswordResetOTPRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_VerifyPasswordResetOTP_FullMethodName, in, opts)
}

func (c *authClient) UpdatePassword(ctx context.Context, in *UpdatePasswordRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_UpdatePassword_FullMethodName, in, opts)
}

func (c *authClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, Auth_RefreshToken_FullMethodName, in, opts)
}

func (c *authClient) RevokeToken(ctx context.Context, in *RevokeTokenRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c.cc, Auth_RevokeToken_FullMethodName, in, opts)
}
