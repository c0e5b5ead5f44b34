package xrpc

import (
	"context"
	"time"

	"github.com/dmitrijs2005/skykit/internal/logging"
	"github.com/google/uuid"
)

// Interceptor runs around a Method call. It must call invoke to forward
// the call and should return its error unchanged.
type Interceptor func(ctx context.Context, nsid string, input, output any, invoke Method) error

// Intercept returns a copy of g in which every method is wrapped by
// interceptors, outermost first. Reserved nodes and handles are copied as
// they are. g itself is not modified.
func (g *Group) Intercept(interceptors ...Interceptor) *Group {
	return g.intercept("", chain(interceptors))
}

func (g *Group) intercept(prefix string, ic Interceptor) *Group {
	out := NewGroup()
	for name, n := range g.children {
		if IsReserved(name) {
			out.children[name] = n
			continue
		}
		path := joinPath(prefix, name)
		switch v := n.(type) {
		case *Group:
			out.children[name] = v.intercept(path, ic)
		case Method:
			out.children[name] = wrap(path, v, ic)
		default:
			out.children[name] = n
		}
	}
	return out
}

func wrap(nsid string, m Method, ic Interceptor) Method {
	return func(ctx context.Context, input, output any) error {
		return ic(ctx, nsid, input, output, m)
	}
}

func chain(interceptors []Interceptor) Interceptor {
	switch len(interceptors) {
	case 0:
		return func(ctx context.Context, _ string, input, output any, invoke Method) error {
			return invoke(ctx, input, output)
		}
	case 1:
		return interceptors[0]
	}
	return func(ctx context.Context, nsid string, input, output any, invoke Method) error {
		return interceptors[0](ctx, nsid, input, output, chainedMethod(interceptors, 1, nsid, invoke))
	}
}

func chainedMethod(interceptors []Interceptor, i int, nsid string, final Method) Method {
	if i == len(interceptors) {
		return final
	}
	return func(ctx context.Context, input, output any) error {
		return interceptors[i](ctx, nsid, input, output, chainedMethod(interceptors, i+1, nsid, final))
	}
}

// Acquirer hands out rate limit tokens. *ratelimit.Limiter satisfies it.
type Acquirer interface {
	Acquire(ctx context.Context, n int) error
}

// Throttle takes one token from limiter before every call.
func Throttle(limiter Acquirer) Interceptor {
	return func(ctx context.Context, _ string, input, output any, invoke Method) error {
		if err := limiter.Acquire(ctx, 1); err != nil {
			return err
		}
		return invoke(ctx, input, output)
	}
}

// Logging logs each call at debug level with a per-call request id.
func Logging(log logging.Logger) Interceptor {
	return func(ctx context.Context, nsid string, input, output any, invoke Method) error {
		l := log.With("request_id", uuid.NewString(), "nsid", nsid)

		start := time.Now()
		err := invoke(ctx, input, output)
		if err != nil {
			l.Debug(ctx, "xrpc call failed", "duration", time.Since(start), "error", err)
		} else {
			l.Debug(ctx, "xrpc call", "duration", time.Since(start))
		}
		return err
	}
}
