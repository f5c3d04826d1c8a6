package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/nutrisync/internal/common"
	pb "github.com/dmitrijs2005/nutrisync/internal/proto"
	"github.com/dmitrijs2005/nutrisync/internal/server/models"
	"github.com/dmitrijs2005/nutrisync/internal/server/repositories/records"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors onto grpc codes. Unexpected errors are
// logged and reported without detail.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, common.ErrorValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		return status.Error(codes.AlreadyExists, "user already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrRefreshTokenExpired), errors.Is(err, common.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return status.Error(codes.Internal, "internal error")
}

func toWire(r *models.Record) *pb.Record {
	w := &pb.Record{
		Type:        r.Type,
		SyncId:      r.SyncID,
		UpdatedAtMs: r.UpdatedAtMs,
		Payload:     r.Payload,
		ChangeSeq:   r.ChangeSeq,
	}
	if r.DeletedAtMs != nil {
		w.DeletedAtMs = *r.DeletedAtMs
	}
	return w
}

// fromWire reads a pushed record. A zero deleted_at_ms is a live record and
// change_seq is ignored; the database assigns it.
func fromWire(userID, deviceID string, w *pb.Record) *models.Record {
	r := &models.Record{
		UserID:      userID,
		Type:        w.GetType(),
		SyncID:      w.GetSyncId(),
		UpdatedAtMs: w.GetUpdatedAtMs(),
		Payload:     w.GetPayload(),
		DeviceID:    deviceID,
	}
	if d := w.GetDeletedAtMs(); d != 0 {
		r.DeletedAtMs = &d
	}
	return r
}

func (s *GRPCServer) RegisterUser(ctx context.Context, req *pb.RegisterUserRequest) (*pb.RegisterUserResponse, error) {

	user, err := s.users.Register(ctx, req.GetUsername(), req.GetSalt(), req.GetVerifier())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &pb.RegisterUserResponse{UserId: user.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *pb.GetSaltRequest) (*pb.GetSaltResponse, error) {

	salt, err := s.users.GetSalt(ctx, req.GetUsername())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {

	userID, tokens, err := s.users.Login(ctx, req.GetUsername(), req.GetVerifierCandidate())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.LoginResponse{UserId: userID, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.GetRefreshToken())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *pb.PingRequest) (*pb.PingResponse, error) {

	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) Push(ctx context.Context, req *pb.PushRequest) (*pb.PushResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	if req.GetRecord() == nil {
		return nil, status.Error(codes.InvalidArgument, "missing record")
	}

	res, err := s.records.Push(ctx, fromWire(userID, req.GetDeviceId(), req.GetRecord()))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.PushResponse{Applied: res.Applied}
	if res.Current != nil {
		resp.Current = toWire(res.Current)
	}
	return resp, nil
}

func (s *GRPCServer) Pull(ctx context.Context, req *pb.PullRequest) (*pb.PullResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	page, err := s.records.Pull(ctx, userID, req.GetType(), req.GetAfterSeq(), int(req.GetLimit()))
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	resp := &pb.PullResponse{
		Records: make([]*pb.Record, 0, len(page.Records)),
		NextSeq: page.NextSeq,
		More:    page.More,
	}
	for _, r := range page.Records {
		resp.Records = append(resp.Records, toWire(r))
	}
	return resp, nil
}

// DeleteScope removes the caller's matching rows, or every user's when the
// interceptor accepted the admin key.
func (s *GRPCServer) DeleteScope(ctx context.Context, req *pb.DeleteScopeRequest) (*pb.DeleteScopeResponse, error) {
	f := records.Filter{
		Type:            req.GetType(),
		SyncIDs:         req.GetSyncIds(),
		UpdatedBeforeMs: req.GetUpdatedBeforeMs(),
		TombstonesOnly:  req.GetTombstonesOnly(),
	}

	switch userID, ok := userIDFromContext(ctx); {
	case req.GetAllUsers() && isAdmin(ctx):
	case !req.GetAllUsers() && ok:
		f.UserID = userID
	default:
		return nil, status.Error(codes.Unauthenticated, "unauthorized")
	}

	n, err := s.records.DeleteScope(ctx, f)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	s.logger.Info(ctx, "delete scope", "all_users", req.GetAllUsers(), "type", req.GetType(), "deleted", n)
	return &pb.DeleteScopeResponse{Deleted: n}, nil
}
