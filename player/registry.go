package player

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"tictactoe/searcher"
)

// Factory builds a move source from the parameters of a player spec.
type Factory func(name string, params map[string]string) (MoveSource, error)

var factories = map[string]Factory{}

// Register makes a player kind available to New. Custom agents use it to
// plug into the CLI and tournament configs under their own keyword.
func Register(kind string, factory Factory) {
	factories[kind] = factory
}

func init() {
	Register("human", func(name string, params map[string]string) (MoveSource, error) {
		return NewHuman(name, os.Stdin, os.Stdout), nil
	})
	Register("random", func(name string, params map[string]string) (MoveSource, error) {
		seed, err := intParam(params, "seed", 0)
		if err != nil {
			return nil, err
		}
		if seed == 0 {
			seed = int(time.Now().UnixNano())
		}
		return NewRandom(name, uint64(seed)), nil
	})
	Register("minimax", func(name string, params map[string]string) (MoveSource, error) {
		depth, err := intParam(params, "depth", 0)
		if err != nil {
			return nil, err
		}
		diagonals, err := boolParam(params, "diagonals", true)
		if err != nil {
			return nil, err
		}
		metrics, err := boolParam(params, "metrics", false)
		if err != nil {
			return nil, err
		}
		options := []searcher.Option{searcher.WithDiagonals(diagonals)}
		if depth > 0 {
			options = append(options, searcher.WithDepth(depth))
		}
		if metrics {
			options = append(options, searcher.WithMetrics())
		}
		return NewMinimax(name, options...), nil
	})
	Register("exec", func(name string, params map[string]string) (MoveSource, error) {
		command := strings.Fields(params["cmd"])
		if len(command) == 0 {
			return nil, fmt.Errorf("player: exec needs cmd=<path to agent>")
		}
		return NewExternal(name, command[0], command[1:]...)
	})
}

// New builds a move source from a spec string of the form
// "kind:key=value,key=value". The kind alone is enough when every parameter
// has a default: "human", "random:seed=7", "minimax:depth=4,diagonals=false",
// "exec:cmd=./my-agent". An empty name picks the kind's default name.
func New(spec, name string) (MoveSource, error) {
	kind, rest := spec, ""
	if i := strings.Index(spec, ":"); i >= 0 {
		kind, rest = spec[:i], spec[i+1:]
	}
	factory, ok := factories[kind]
	if !ok {
		return nil, fmt.Errorf("player: unknown kind %q, registered kinds: %s", kind, strings.Join(Kinds(), ", "))
	}
	return factory(name, splitParams(rest))
}

// Kinds lists the registered player kinds in sorted order.
func Kinds() []string {
	kinds := maps.Keys(factories)
	slices.Sort(kinds)
	return kinds
}

func splitParams(s string) map[string]string {
	params := map[string]string{}
	if s == "" {
		return params
	}
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 {
			params[kv[0]] = kv[1]
		} else {
			params[kv[0]] = "" // bare key
		}
	}
	return params
}

func intParam(params map[string]string, key string, fallback int) (int, error) {
	value, ok := params[key]
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("player: %s=%q is not a number: %w", key, value, err)
	}
	return n, nil
}

func boolParam(params map[string]string, key string, fallback bool) (bool, error) {
	value, ok := params[key]
	if !ok {
		return fallback, nil
	}
	if value == "" {
		return true, nil // bare key switches the flag on
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("player: %s=%q is not a boolean: %w", key, value, err)
	}
	return b, nil
}
