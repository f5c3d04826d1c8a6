package grpc

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/common"
	pb "github.com/dmitrijs2005/nutrisync/internal/proto"
	"github.com/dmitrijs2005/nutrisync/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const (
	userIDKey   ctxKey = "userID"
	adminCtxKey ctxKey = "admin"
)

// publicMethods need no session.
var publicMethods = map[string]bool{
	pb.SyncService_RegisterUser_FullMethodName: true,
	pb.SyncService_GetSalt_FullMethodName:      true,
	pb.SyncService_Login_FullMethodName:        true,
	pb.SyncService_RefreshToken_FullMethodName: true,
	pb.SyncService_Ping_FullMethodName:         true,
}

func headerValue(ctx context.Context, name string) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(name); len(values) > 0 {
		return values[0]
	}
	return ""
}

func userIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func isAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminCtxKey).(bool)
	return ok
}

func (s *GRPCServer) validAdminKey(ctx context.Context) bool {
	if len(s.adminKey) == 0 {
		return false
	}
	given := headerValue(ctx, common.AdminKeyHeaderName)
	return subtle.ConstantTimeCompare([]byte(given), s.adminKey) == 1
}

// accessTokenInterceptor attaches the caller's user id to the context of
// every data method. An every-user DeleteScope is accepted with the admin
// key instead of a token. Expired tokens are reported with the
// common.ErrTokenExpired message, which is what clients refresh on.
func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	if del, ok := req.(*pb.DeleteScopeRequest); ok && del.GetAllUsers() {
		if !s.validAdminKey(ctx) {
			return nil, status.Error(codes.Unauthenticated, "admin key required")
		}
		return handler(context.WithValue(ctx, adminCtxKey, true), req)
	}

	accessToken := headerValue(ctx, common.AccessTokenHeaderName)
	if len(accessToken) == 0 {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, status.Error(codes.Unauthenticated, common.ErrTokenExpired.Error())
		}
		return nil, status.Error(codes.Unauthenticated, common.ErrInvalidToken.Error())
	}

	return handler(context.WithValue(ctx, userIDKey, userID), req)
}

// loggingInterceptor records every call with its outcome.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	code := status.Code(err)

	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
	if code == codes.Internal || code == codes.Unknown {
		s.logger.Error(ctx, "rpc failed", append(args, "error", err)...)
	} else {
		s.logger.Debug(ctx, "rpc", args...)
	}
	return resp, err
}
