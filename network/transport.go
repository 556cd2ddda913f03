package network

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// rawCodecName is registered once at package init so every Node.Send call
// can request it via grpc.CallContentSubtype, bypassing protobuf codegen:
// the SDK already serializes request/response payloads itself via the
// wire package, so the RPC layer only needs to move opaque bytes.
const rawCodecName = "hedera-raw"

func init() {
	encoding.RegisterCodec(rawCodec{})
}

type rawCodec struct{}

func (rawCodec) Name() string { return rawCodecName }

func (rawCodec) Marshal(v any) ([]byte, error) {
	switch p := v.(type) {
	case []byte:
		return p, nil
	case *[]byte:
		return *p, nil
	default:
		return nil, fmt.Errorf("network: rawCodec cannot marshal %T", v)
	}
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	p, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("network: rawCodec cannot unmarshal into %T", v)
	}
	*p = append((*p)[:0], data...)
	return nil
}

// Send invokes method against the node's connection with a raw,
// pre-serialized request payload and returns the raw response payload.
// Node.Send is the sole network suspension point the execution engine's
// attempt loop blocks on.
func (n *Node) Send(ctx context.Context, method string, payload []byte) ([]byte, error) {
	conn, err := n.getConn(ctx)
	if err != nil {
		return nil, fmt.Errorf("network: dialing %s: %w", n.Endpoint, err)
	}
	var reply []byte
	if err := conn.Invoke(ctx, method, payload, &reply, grpc.CallContentSubtype(rawCodecName)); err != nil {
		return nil, err
	}
	return reply, nil
}
