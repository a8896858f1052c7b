package client

import (
	"context"
	"errors"
	"testing"

	mocks "github.com/vaishvijs13/kv-rs/internal/mocks/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, netClient *mocks.NetClient) *Client {
	t.Helper()

	factory := mocks.NewNetClientFactory(t)
	factory.EXPECT().Make("localhost:6379").Return(netClient, nil)

	c, err := New(context.Background(), &Config{Address: "localhost:6379"}, factory)
	require.NoError(t, err)
	return c
}

func TestNew_EmptyAddress(t *testing.T) {
	_, err := New(context.Background(), &Config{}, mocks.NewNetClientFactory(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty address")
}

func TestNew_FactoryError(t *testing.T) {
	factory := mocks.NewNetClientFactory(t)
	factory.EXPECT().Make("localhost:6379").Return(nil, errors.New("dial failed"))

	_, err := New(context.Background(), &Config{Address: "localhost:6379"}, factory)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "initial connection failed")
}

func TestClient_Ping(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "PING").Return("PONG", nil)

	c := newTestClient(t, netClient)
	resp, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PONG", resp)
}

func TestClient_SetGet(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "SET foo bar").Return("OK", nil)
	netClient.EXPECT().Send(context.Background(), "GET foo").Return("bar", nil)

	c := newTestClient(t, netClient)

	err := c.Set(context.Background(), "foo", "bar")
	require.NoError(t, err)

	val, err := c.Get(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, "bar", val)
}

func TestClient_SetWithTTL(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "SET foo bar EX 30").Return("OK", nil)

	c := newTestClient(t, netClient)
	err := c.Set(context.Background(), "foo", "bar", WithTTL(30_000_000_000))
	require.NoError(t, err)
}

func TestClient_Get_Missing(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "GET foo").Return("(nil)", nil)

	c := newTestClient(t, netClient)
	_, err := c.Get(context.Background(), "foo")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestClient_Get_ServerError(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "GET foo").Return("ERR internal error", nil)

	c := newTestClient(t, netClient)
	_, err := c.Get(context.Background(), "foo")
	require.Error(t, err)
}

func TestClient_Del(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "DEL foo").Return("1", nil)

	c := newTestClient(t, netClient)
	n, err := c.Del(context.Background(), "foo")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestClient_Incr(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "INCR counter").Return("5", nil)

	c := newTestClient(t, netClient)
	n, err := c.Incr(context.Background(), "counter")
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)
}

func TestClient_Keys(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "KEYS user:").Return("user:1 user:2", nil)

	c := newTestClient(t, netClient)
	keys, err := c.Keys(context.Background(), "user:")
	require.NoError(t, err)
	assert.Equal(t, []string{"user:1", "user:2"}, keys)
}

func TestClient_Keys_Empty(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "KEYS user:").Return("(empty)", nil)

	c := newTestClient(t, netClient)
	keys, err := c.Keys(context.Background(), "user:")
	require.NoError(t, err)
	assert.Nil(t, keys)
}

func TestClient_ListAndSetOps(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Send(context.Background(), "LPUSH q a b").Return("2", nil)
	netClient.EXPECT().Send(context.Background(), "LPOP q").Return("b", nil)
	netClient.EXPECT().Send(context.Background(), "LLEN q").Return("1", nil)
	netClient.EXPECT().Send(context.Background(), "SADD s a").Return("1", nil)
	netClient.EXPECT().Send(context.Background(), "SREM s a").Return("1", nil)
	netClient.EXPECT().Send(context.Background(), "SCARD s").Return("0", nil)

	c := newTestClient(t, netClient)

	n, err := c.LPush(context.Background(), "q", "a", "b")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	v, err := c.LPop(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	l, err := c.LLen(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, int64(1), l)

	added, err := c.SAdd(context.Background(), "s", "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), added)

	removed, err := c.SRem(context.Background(), "s", "a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	card, err := c.SCard(context.Background(), "s")
	require.NoError(t, err)
	assert.Equal(t, int64(0), card)
}

func TestClient_MaxReconnects(t *testing.T) {
	first := mocks.NewNetClient(t)
	first.EXPECT().Send(context.Background(), "PING").
		Return("", errors.New("broken pipe")).Once()
	first.EXPECT().Close().Return(nil)

	second := mocks.NewNetClient(t)

	factory := mocks.NewNetClientFactory(t)
	factory.EXPECT().Make("localhost:6379").Return(first, nil).Once()
	factory.EXPECT().Make("localhost:6379").Return(second, nil).Once()

	c, err := New(context.Background(), &Config{
		Address:              "localhost:6379",
		MaxReconnectAttempts: 1,
	}, factory)
	require.NoError(t, err)

	_, err = c.Ping(context.Background())
	require.ErrorIs(t, err, ErrMaxReconnects)
}

func TestClient_Close(t *testing.T) {
	netClient := mocks.NewNetClient(t)
	netClient.EXPECT().Close().Return(nil)

	c := newTestClient(t, netClient)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
}
