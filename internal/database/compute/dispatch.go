package compute

import (
	"errors"

	"github.com/vaishvijs13/kv-rs/internal/database/engine"
	"github.com/vaishvijs13/kv-rs/internal/database/resp"
	"github.com/vaishvijs13/kv-rs/internal/database/value"
)

// Dispatch is the pure function of (engine, request line) -> response
// described by the command dispatcher: it never mutates state itself,
// routing every side effect through eng.
func Dispatch(eng *engine.Engine, line string) resp.Response {
	cmd, errKind := Parse(line)
	if errKind != nil {
		return resp.Err(errKind)
	}

	switch cmd.Type {
	case CommandPING:
		return resp.SimpleString("PONG")
	case CommandQUIT:
		return resp.SimpleString("BYE")
	case CommandSET:
		eng.Set(cmd.Args[0], cmd.Args[1], cmd.HasTTL, cmd.TTLSeconds)
		return resp.SimpleString("OK")
	case CommandGET:
		s, ok, err := eng.Get(cmd.Args[0])
		if err != nil {
			return errToResponse(err)
		}
		if !ok {
			return resp.Nil()
		}
		return resp.BulkString(s)
	case CommandDEL:
		return resp.Integer(eng.Del(cmd.Args[0]))
	case CommandEXISTS:
		return resp.Integer(eng.Exists(cmd.Args[0]))
	case CommandTTL:
		return resp.Integer(eng.TTL(cmd.Args[0]))
	case CommandKEYS:
		keys := eng.Keys(cmd.Args[0])
		items := make([]resp.Response, len(keys))
		for i, k := range keys {
			items[i] = resp.BulkString(k)
		}
		return resp.Array(items)
	case CommandINCR:
		n, err := eng.Incr(cmd.Args[0])
		if err != nil {
			return errToResponse(err)
		}
		return resp.Integer(n)
	case CommandLPUSH:
		n, err := eng.LPush(cmd.Args[0], cmd.Args[1:])
		if err != nil {
			return errToResponse(err)
		}
		return resp.Integer(n)
	case CommandLPOP:
		s, ok, err := eng.LPop(cmd.Args[0])
		if err != nil {
			return errToResponse(err)
		}
		if !ok {
			return resp.Nil()
		}
		return resp.BulkString(s)
	case CommandLLEN:
		n, err := eng.LLen(cmd.Args[0])
		if err != nil {
			return errToResponse(err)
		}
		return resp.Integer(n)
	case CommandSADD:
		n, err := eng.SAdd(cmd.Args[0], cmd.Args[1:])
		if err != nil {
			return errToResponse(err)
		}
		return resp.Integer(n)
	case CommandSREM:
		n, err := eng.SRem(cmd.Args[0], cmd.Args[1:])
		if err != nil {
			return errToResponse(err)
		}
		return resp.Integer(n)
	case CommandSCARD:
		n, err := eng.SCard(cmd.Args[0])
		if err != nil {
			return errToResponse(err)
		}
		return resp.Integer(n)
	default:
		return resp.Err(resp.InvalidCommand{Command: string(cmd.Type)})
	}
}

// errToResponse translates an engine-level error into its client-visible
// rendering.
func errToResponse(err error) resp.Response {
	var nie *engine.NotIntegerError
	if errors.As(err, &nie) {
		return resp.Err(resp.NotInteger{Value: nie.Value})
	}
	if errors.Is(err, value.ErrWrongType) {
		return resp.Err(resp.InvalidType{Message: err.Error()})
	}
	return resp.Err(resp.Internal{Message: err.Error()})
}
