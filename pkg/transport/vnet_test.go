package transport

import (
	"testing"

	"github.com/pion/logging"
	"github.com/pion/transport/v3/vnet"
)

const virtualHostIP = "192.168.1.10"

// newVirtualLAN returns a vnet host attached to a running router and a channel
// receiving every chunk the router sees, including broadcasts it cannot route.
func newVirtualLAN(t *testing.T) (*vnet.Net, <-chan vnet.Chunk) {
	t.Helper()

	router, err := vnet.NewRouter(&vnet.RouterConfig{
		CIDR:          "192.168.1.0/24",
		LoggerFactory: logging.NewDefaultLoggerFactory(),
	})
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	host, err := vnet.NewNet(&vnet.NetConfig{StaticIPs: []string{virtualHostIP}})
	if err != nil {
		t.Fatalf("NewNet() error = %v", err)
	}
	if err := router.AddNet(host); err != nil {
		t.Fatalf("AddNet() error = %v", err)
	}

	chunks := make(chan vnet.Chunk, 16)
	router.AddChunkFilter(func(c vnet.Chunk) bool {
		select {
		case chunks <- c:
		default:
		}
		return true
	})

	if err := router.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		if err := router.Stop(); err != nil {
			t.Errorf("router Stop() error = %v", err)
		}
	})

	return host, chunks
}
