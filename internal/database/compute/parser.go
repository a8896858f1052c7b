package compute

import (
	"strings"

	"github.com/vaishvijs13/kv-rs/internal/database/resp"
)

// Parse tokenizes and validates a request line, returning either a routed
// Command or the ErrorKind to render. It never mutates engine state.
func Parse(line string) (*Command, resp.ErrorKind) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return nil, resp.InvalidCommand{Command: "empty command"}
	}

	tokens := strings.Fields(trimmed)
	cmdTok := strings.ToUpper(tokens[0])
	cmdType := CommandType(cmdTok)

	if _, ok := expectedArity(cmdTok); !ok {
		return nil, resp.InvalidCommand{Command: cmdTok}
	}

	if cmdType == CommandSET {
		return parseSet(tokens)
	}

	expected, _ := expectedArity(cmdTok)
	got := len(tokens) - 1

	if isExactArity(cmdType) {
		if len(tokens) != minArity(cmdType) {
			return nil, resp.WrongArguments{Command: cmdTok, Expected: expected, Got: got}
		}
	} else {
		if len(tokens) < minArity(cmdType) {
			return nil, resp.WrongArguments{Command: cmdTok, Expected: expected, Got: got}
		}
	}

	return &Command{Type: cmdType, Args: tokens[1:]}, nil
}

// parseSet handles SET's variable trailing "EX ttl" suffix.
func parseSet(tokens []string) (*Command, resp.ErrorKind) {
	if len(tokens) < 3 {
		return nil, resp.WrongArguments{Command: string(CommandSET), Expected: "3", Got: len(tokens) - 1}
	}

	key := tokens[1]
	valueTokens := tokens[2:]

	var hasTTL bool
	var ttlSecs int64
	if len(tokens) >= 5 && strings.EqualFold(tokens[len(tokens)-2], "EX") {
		ttl, ok := parseTTL(tokens[len(tokens)-1])
		if !ok {
			return nil, resp.InvalidType{Message: "invalid EX ttl"}
		}
		hasTTL = true
		ttlSecs = ttl
		valueTokens = tokens[2 : len(tokens)-2]
	}

	value := strings.Join(valueTokens, " ")
	if value == "" {
		return nil, resp.InvalidType{Message: "empty value"}
	}

	return &Command{
		Type:       CommandSET,
		Args:       []string{key, value},
		HasTTL:     hasTTL,
		TTLSeconds: ttlSecs,
	}, nil
}
