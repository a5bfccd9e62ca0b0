package rpcauth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	macaroon "gopkg.in/macaroon.v2"
)

func mustBake(t *testing.T) *macaroon.Macaroon {
	t.Helper()
	mac, err := Bake([]byte("0123456789abcdef0123456789abcdef"), []byte("id-1"), "participant-0")
	require.NoError(t, err)
	return mac
}

func TestEncodeHexRoundTripsThroughLoadHex(t *testing.T) {
	mac := mustBake(t)
	enc, err := EncodeHex(mac)
	require.NoError(t, err)
	require.NotEmpty(t, enc)

	dir := t.TempDir()
	path := filepath.Join(dir, "mac.hex")
	require.NoError(t, os.WriteFile(path, []byte(enc+"\n"), 0600))

	loaded, err := LoadHex(path)
	require.NoError(t, err)

	loadedEnc, err := EncodeHex(loaded)
	require.NoError(t, err)
	require.Equal(t, enc, loadedEnc)
}

func TestPerRPCCredentialsAttachesMacaroonMetadata(t *testing.T) {
	mac := mustBake(t)
	creds, err := NewPerRPCCredentials(mac)
	require.NoError(t, err)
	require.False(t, creds.RequireTransportSecurity())

	md, err := creds.GetRequestMetadata(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, md[metadataKey])

	wantHex, err := EncodeHex(mac)
	require.NoError(t, err)
	require.Equal(t, wantHex, md[metadataKey])
}

func noopHandler(ctx context.Context, req interface{}) (interface{}, error) {
	return "ok", nil
}

func TestUnaryServerInterceptorAcceptsMatchingMacaroon(t *testing.T) {
	mac := mustBake(t)
	interceptor := UnaryServerInterceptor(mac)

	enc, err := EncodeHex(mac)
	require.NoError(t, err)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("macaroon", enc))

	resp, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{}, noopHandler)
	require.NoError(t, err)
	require.Equal(t, "ok", resp)
}

func TestUnaryServerInterceptorRejectsMismatchedMacaroon(t *testing.T) {
	mac := mustBake(t)
	other, err := Bake([]byte("fedcba9876543210fedcba9876543210"), []byte("id-2"), "participant-1")
	require.NoError(t, err)
	interceptor := UnaryServerInterceptor(mac)

	otherEnc, err := EncodeHex(other)
	require.NoError(t, err)
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("macaroon", otherEnc))

	_, err = interceptor(ctx, nil, &grpc.UnaryServerInfo{}, noopHandler)
	require.Error(t, err)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestUnaryServerInterceptorRejectsMissingMetadata(t *testing.T) {
	mac := mustBake(t)
	interceptor := UnaryServerInterceptor(mac)

	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{}, noopHandler)
	require.Error(t, err)
	require.Equal(t, codes.Unauthenticated, status.Code(err))
}
