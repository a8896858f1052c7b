package tcp

import (
	"bufio"
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/vaishvijs13/kv-rs/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoHandler(q string) string {
	return "hello-" + q
}

func TestNewServer(t *testing.T) {
	t.Parallel()
	logger.MockLogger()

	server := NewServer(echoHandler, WithServerMaxConnectionsNumber(5), WithServerBufferSize(512), WithServerIdleTimeout(10*time.Second))

	assert.NotNil(t, server)
	assert.Equal(t, uint(512), server.bufferSize)
	assert.Equal(t, 10*time.Second, server.idleTimeout)
	assert.Equal(t, uint(5), server.maxConnections)
	assert.NotNil(t, server.semaphore)
}

func TestServer_StartWithInvalidAddress(t *testing.T) {
	t.Parallel()
	logger.MockLogger()

	server := NewServer(echoHandler)

	err := server.Start(context.Background(), "")
	assert.Error(t, err)
	assert.Equal(t, "empty address", err.Error())
}

func TestServer_LineProtocol(t *testing.T) {
	t.Parallel()
	logger.MockLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := NewServer(echoHandler, WithServerIdleTimeout(time.Minute))

	serverAddress := "localhost:22223"
	go func() {
		_ = server.Start(ctx, serverAddress)
	}()

	time.Sleep(100 * time.Millisecond)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()

		conn, err := net.Dial("tcp", serverAddress)
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Write([]byte("client-1\n"))
		require.NoError(t, err)

		line, err := bufio.NewReader(conn).ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "hello-client-1\n", line)
	}()

	go func() {
		defer wg.Done()

		conn, err := net.Dial("tcp", serverAddress)
		require.NoError(t, err)
		defer conn.Close()

		_, err = conn.Write([]byte("client-2\n"))
		require.NoError(t, err)

		line, err := bufio.NewReader(conn).ReadString('\n')
		require.NoError(t, err)
		assert.Equal(t, "hello-client-2\n", line)
	}()

	wg.Wait()
}

func TestServer_QuitClosesConnectionWithByeQuirk(t *testing.T) {
	t.Parallel()
	logger.MockLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := NewServer(func(string) string { return "BYE" })

	serverAddress := "localhost:22224"
	go func() {
		_ = server.Start(ctx, serverAddress)
	}()

	time.Sleep(100 * time.Millisecond)

	conn, err := net.Dial("tcp", serverAddress)
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Write([]byte("QUIT\n"))
	require.NoError(t, err)

	line, err := bufio.NewReader(conn).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "Bye!!!\n", line)
}
