package mpc

import (
	"context"

	"google.golang.org/grpc"
)

// ParticipantClient is the client API for the Participant service.
type ParticipantClient interface {
	NewWallet(ctx context.Context, in *CreateWalletMessage, opts ...grpc.CallOption) (*KeyShareInfo, error)
	DeleteWallet(ctx context.Context, in *DeleteWalletMessage, opts ...grpc.CallOption) (*Empty, error)
	SignTx(ctx context.Context, in *SignMessage, opts ...grpc.CallOption) (*SignatureMessage, error)
}

type participantClient struct {
	cc grpc.ClientConnInterface
}

// NewParticipantClient constructs a ParticipantClient bound to cc. Callers
// should dial with grpc.WithDefaultCallOptions(grpc.ForceCodec(Codec{}))
// so requests and responses serialize with the codec in codec.go.
func NewParticipantClient(cc grpc.ClientConnInterface) ParticipantClient {
	return &participantClient{cc}
}

func (c *participantClient) NewWallet(ctx context.Context, in *CreateWalletMessage, opts ...grpc.CallOption) (*KeyShareInfo, error) {
	out := new(KeyShareInfo)
	if err := c.cc.Invoke(ctx, Participant_NewWallet_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *participantClient) DeleteWallet(ctx context.Context, in *DeleteWalletMessage, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, Participant_DeleteWallet_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *participantClient) SignTx(ctx context.Context, in *SignMessage, opts ...grpc.CallOption) (*SignatureMessage, error) {
	out := new(SignatureMessage)
	if err := c.cc.Invoke(ctx, Participant_SignTx_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

const (
	Participant_NewWallet_FullMethodName    = "/mpc.Participant/NewWallet"
	Participant_DeleteWallet_FullMethodName = "/mpc.Participant/DeleteWallet"
	Participant_SignTx_FullMethodName       = "/mpc.Participant/SignTx"
)

// ParticipantServer is the server API for the Participant service.
type ParticipantServer interface {
	NewWallet(context.Context, *CreateWalletMessage) (*KeyShareInfo, error)
	DeleteWallet(context.Context, *DeleteWalletMessage) (*Empty, error)
	SignTx(context.Context, *SignMessage) (*SignatureMessage, error)
}

// UnimplementedParticipantServer can be embedded to have forward compatible
// implementations.
type UnimplementedParticipantServer struct{}

func (UnimplementedParticipantServer) NewWallet(context.Context, *CreateWalletMessage) (*KeyShareInfo, error) {
	return nil, errUnimplemented("NewWallet")
}

func (UnimplementedParticipantServer) DeleteWallet(context.Context, *DeleteWalletMessage) (*Empty, error) {
	return nil, errUnimplemented("DeleteWallet")
}

func (UnimplementedParticipantServer) SignTx(context.Context, *SignMessage) (*SignatureMessage, error) {
	return nil, errUnimplemented("SignTx")
}

func errUnimplemented(method string) error {
	return &unimplementedError{method}
}

type unimplementedError struct{ method string }

func (e *unimplementedError) Error() string {
	return "mpc.Participant: method " + e.method + " not implemented"
}

func RegisterParticipantServer(s grpc.ServiceRegistrar, srv ParticipantServer) {
	s.RegisterService(&Participant_ServiceDesc, srv)
}

func _Participant_NewWallet_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateWalletMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParticipantServer).NewWallet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Participant_NewWallet_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParticipantServer).NewWallet(ctx, req.(*CreateWalletMessage))
	}
	return interceptor(ctx, in, info, handler)
}

func _Participant_DeleteWallet_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteWalletMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParticipantServer).DeleteWallet(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Participant_DeleteWallet_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParticipantServer).DeleteWallet(ctx, req.(*DeleteWalletMessage))
	}
	return interceptor(ctx, in, info, handler)
}

func _Participant_SignTx_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SignMessage)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ParticipantServer).SignTx(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Participant_SignTx_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ParticipantServer).SignTx(ctx, req.(*SignMessage))
	}
	return interceptor(ctx, in, info, handler)
}

// Participant_ServiceDesc is the grpc.ServiceDesc for the Participant
// service. It is hand-written here in place of protoc-gen-go-grpc output
// (see the package doc in mpc.go) but has the same shape that tool emits.
var Participant_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "mpc.Participant",
	HandlerType: (*ParticipantServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "NewWallet",
			Handler:    _Participant_NewWallet_Handler,
		},
		{
			MethodName: "DeleteWallet",
			Handler:    _Participant_DeleteWallet_Handler,
		},
		{
			MethodName: "SignTx",
			Handler:    _Participant_SignTx_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mpc.proto",
}
