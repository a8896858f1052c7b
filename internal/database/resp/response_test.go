package resp_test

import (
	"testing"

	"github.com/vaishvijs13/kv-rs/internal/database/resp"
	"github.com/stretchr/testify/assert"
)

func TestResponse_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		r    resp.Response
		want string
	}{
		{"simple string", resp.SimpleString("PONG"), "PONG"},
		{"integer", resp.Integer(42), "42"},
		{"integer negative", resp.Integer(-7), "-7"},
		{"bulk string present", resp.BulkString("hello"), "hello"},
		{"bulk string absent", resp.NilBulkString(), "(nil)"},
		{"nil", resp.Nil(), "(nil)"},
		{"array empty", resp.Array(nil), "(empty)"},
		{
			"array of elements",
			resp.Array([]resp.Response{resp.BulkString("a"), resp.Integer(1)}),
			"a 1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.r.Render())
		})
	}
}

func TestErrorKind_Render(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		e    resp.ErrorKind
		want string
	}{
		{"invalid command with name", resp.InvalidCommand{Command: "FOO"}, "ERR unknown command 'FOO'"},
		{"invalid command legacy", resp.InvalidCommand{}, "ERR unknown command"},
		{
			"wrong arguments",
			resp.WrongArguments{Command: "GET", Expected: "2", Got: 1},
			"ERR wrong number of arguments for 'GET' command. Expected 2, got 1",
		},
		{"invalid type plain", resp.InvalidType{Message: "invalid EX ttl"}, "ERR invalid EX ttl"},
		{
			"invalid type wrongtype",
			resp.InvalidType{Message: "WRONGTYPE Operation against a key holding the wrong kind of value"},
			"ERR WRONGTYPE Operation against a key holding the wrong kind of value",
		},
		{"not integer", resp.NotInteger{Value: "abc"}, "ERR value 'abc' is not an integer or out of range"},
		{"key not found", resp.KeyNotFound{Key: "k"}, "ERR key 'k' not found"},
		{"internal", resp.Internal{Message: "disk full"}, "ERR internal error: disk full"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resp.Err(tc.e).Render())
		})
	}
}
