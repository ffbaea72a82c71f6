package stack_test

import (
	"context"
	"sync"

	"github.com/godbus/dbus/v5"
)

type reply struct {
	body []interface{}
	err  error
	// block holds the reply until the call context ends
	block bool
}

type invocation struct {
	path   dbus.ObjectPath
	method string
	args   []interface{}
}

// fakeConn answers calls from a table keyed by path and method
type fakeConn struct {
	mux     sync.Mutex
	replies map[string]reply
	calls   []invocation
}

func newFakeConn() *fakeConn {
	return &fakeConn{replies: map[string]reply{}}
}

func (c *fakeConn) on(path dbus.ObjectPath, method string, r reply) {
	c.replies[string(path)+" "+method] = r
}

func (c *fakeConn) called(method string) []invocation {
	c.mux.Lock()
	defer c.mux.Unlock()

	out := []invocation{}

	for _, inv := range c.calls {
		if inv.method == method {
			out = append(out, inv)
		}
	}

	return out
}

func (c *fakeConn) Go(
	ctx context.Context,
	path dbus.ObjectPath,
	method string,
	args ...interface{},
) *dbus.Call {
	c.mux.Lock()
	c.calls = append(c.calls, invocation{path: path, method: method, args: args})
	r, ok := c.replies[string(path)+" "+method]
	c.mux.Unlock()

	call := &dbus.Call{
		Path:   path,
		Method: method,
		Args:   args,
		Done:   make(chan *dbus.Call, 1),
	}

	if !ok {
		r = reply{err: dbus.Error{Name: "org.freedesktop.DBus.Error.UnknownMethod"}}
	}

	if r.block {
		go func() {
			<-ctx.Done()
			call.Err = ctx.Err()
			call.Done <- call
		}()

		return call
	}

	call.Body = r.body
	call.Err = r.err
	call.Done <- call

	return call
}
