package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/Additional-Code/storefront/pkg/errorbank"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func dialHealth(t *testing.T) (healthpb.HealthClient, func(error)) {
	t.Helper()

	hs := NewHealth()
	server := NewServer(zaptest.NewLogger(t), hs)
	lis := bufconn.Listen(1 << 20)
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	probe := func(pingErr error) {
		_ = Probe(context.Background(), hs, fakePinger{err: pingErr})
	}
	return healthpb.NewHealthClient(conn), probe
}

func TestHealthFollowsStoreProbe(t *testing.T) {
	client, probe := dialHealth(t)
	ctx := context.Background()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	probe(nil)
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	probe(errors.New("disk gone"))
	resp, err = client.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestHealthUnknownServiceIsNotFound(t *testing.T) {
	client, _ := dialHealth(t)

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "billing"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestToStatusMapsErrorbankKinds(t *testing.T) {
	err := toStatus(errorbank.NotFound("Order not found"))
	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "Order not found", status.Convert(err).Message())

	plain := errors.New("plain")
	assert.Equal(t, plain, toStatus(plain))
}
