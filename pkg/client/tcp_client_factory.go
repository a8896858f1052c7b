package client

import "github.com/vaishvijs13/kv-rs/internal/delivery/tcp"

// TCPClientFactory builds NetClients backed by the line-oriented TCP client.
type TCPClientFactory struct {
}

func (tcf *TCPClientFactory) Make(address string, opts ...tcp.ClientOption) (NetClient, error) {
	return tcp.NewClient(address, opts...)
}
