package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutrisync/internal/client/models"
	"github.com/dmitrijs2005/nutrisync/internal/common"
	pb "github.com/dmitrijs2005/nutrisync/internal/proto"
	"github.com/dmitrijs2005/nutrisync/internal/timex"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const saltTimeout = 12 * time.Second

type GRPCClient struct {
	endpointURL string
	adminKey    string
	deviceID    string
	conn        *grpc.ClientConn
	client      pb.SyncServiceClient

	mu           sync.RWMutex
	userID       string
	accessToken  string
	refreshToken string
}

type Option func(*GRPCClient)

// WithAdminKey attaches the backend admin key to every call.
func WithAdminKey(key string) Option {
	return func(c *GRPCClient) { c.adminKey = key }
}

// WithDeviceID tags pushed records with the id of this install.
func WithDeviceID(id string) Option {
	return func(c *GRPCClient) { c.deviceID = id }
}

func withHeader(ctx context.Context, key, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(key)
	md.Set(key, value)

	return metadata.NewOutgoingContext(ctx, md)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	return withHeader(ctx, common.AccessTokenHeaderName, token)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.tokens()
	if s.adminKey != "" {
		ctx = withHeader(ctx, common.AdminKeyHeaderName, s.adminKey)
	}
	ctx = withAccessToken(ctx, access)

	err := invoker(ctx, method, req, reply, cc, opts...)

	if err != nil {

		st, ok := status.FromError(err)
		if !ok {
			return err
		}

		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != common.ErrTokenExpired.Error() {
			return err
		}

		if refresh == "" {
			return err
		}

		resp, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: refresh})
		if err != nil {
			return err
		}

		s.setTokens(resp.GetAccessToken(), resp.GetRefreshToken())

		ctx = withAccessToken(ctx, resp.GetAccessToken())
		return invoker(ctx, method, req, reply, cc, opts...)

	}

	return err
}

// NewSyncClient dials endpointURL lazily; no traffic is sent until the
// first call.
func NewSyncClient(endpointURL string, opts ...Option) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	for _, o := range opts {
		o(c)
	}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(common.MaxMessageBytes),
			grpc.MaxCallSendMsgSize(common.MaxMessageBytes),
		),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewSyncServiceClient(conn)
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, userName string, salt []byte, key []byte) error {

	req := &pb.RegisterUserRequest{Username: userName, Salt: salt, Verifier: key}

	_, err := s.client.RegisterUser(ctx, req)

	if err != nil {
		return s.mapError(err)
	}

	return nil

}

func (s *GRPCClient) GetSalt(ctx context.Context, userName string) ([]byte, error) {

	ctx, cancel := context.WithTimeout(ctx, saltTimeout)
	defer cancel()

	resp, err := s.client.GetSalt(ctx, &pb.GetSaltRequest{Username: userName})

	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.GetSalt(), nil
}

func (s *GRPCClient) Login(ctx context.Context, userName string, key []byte) error {

	req := &pb.LoginRequest{Username: userName, VerifierCandidate: key}

	resp, err := s.client.Login(ctx, req)

	if err != nil {
		return s.mapError(err)
	}

	s.mu.Lock()
	s.userID = resp.GetUserId()
	s.accessToken = resp.GetAccessToken()
	s.refreshToken = resp.GetRefreshToken()
	s.mu.Unlock()

	return nil

}

// Logout forgets the session. Subsequent sync calls fail closed.
func (s *GRPCClient) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID, s.accessToken, s.refreshToken = "", "", ""
}

func (s *GRPCClient) Identity() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.accessToken == "" {
		return ""
	}
	return s.userID
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) requireSession() error {
	if s.Identity() == "" {
		return ErrUnauthorized
	}
	return nil
}

func (s *GRPCClient) Push(ctx context.Context, rec *models.Record) (*PushAck, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	resp, err := s.client.Push(ctx, &pb.PushRequest{DeviceId: s.deviceID, Record: ToWire(rec)})
	if err != nil {
		return nil, s.mapError(err)
	}

	ack := &PushAck{Applied: resp.GetApplied()}
	if resp.GetCurrent() != nil {
		ack.Current = FromWire(resp.GetCurrent())
	}
	if !ack.Applied && ack.Current == nil {
		return nil, fmt.Errorf("push %s %s: %w: no current version", rec.Type, rec.SyncID, ErrRejected)
	}
	return ack, nil
}

func (s *GRPCClient) Pull(ctx context.Context, t models.EntityType, afterSeq int64, limit int) (*PullPage, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	resp, err := s.client.Pull(ctx, &pb.PullRequest{Type: string(t), AfterSeq: afterSeq, Limit: int32(limit)})
	if err != nil {
		return nil, s.mapError(err)
	}

	page := &PullPage{
		Records: make([]*models.Record, 0, len(resp.GetRecords())),
		NextSeq: resp.GetNextSeq(),
		More:    resp.GetMore(),
	}
	for _, r := range resp.GetRecords() {
		if r == nil {
			continue
		}
		page.Records = append(page.Records, FromWire(r))
	}
	return page, nil
}

func (s *GRPCClient) DeleteScope(ctx context.Context, f DeleteFilter) (int64, error) {
	if !(f.AllUsers && s.adminKey != "") {
		if err := s.requireSession(); err != nil {
			return 0, err
		}
	}

	req := &pb.DeleteScopeRequest{
		Type:           string(f.Type),
		SyncIds:        f.SyncIDs,
		TombstonesOnly: f.TombstonesOnly,
		AllUsers:       f.AllUsers,
	}
	if !f.UpdatedBefore.IsZero() {
		req.UpdatedBeforeMs = timex.ToMillis(f.UpdatedBefore)
	}

	resp, err := s.client.DeleteScope(ctx, req)
	if err != nil {
		return 0, s.mapError(err)
	}
	return resp.GetDeleted(), nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.InvalidArgument, codes.FailedPrecondition, codes.ResourceExhausted:
		return fmt.Errorf("%w: %s", ErrRejected, st.Message())
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
