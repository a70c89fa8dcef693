package app

import (
	"regexp"

	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different paths and
// then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]weft.Handler
}

var _ weft.Registry = Router{}
var _ weft.Handler = Router{}

// NewRouter initializes a router with no routes
func NewRouter() Router {
	return Router{
		routes: make(map[string]weft.Handler),
	}
}

// Handle sets the handler for a given message path. It panics if
// there is already a handler registered for that path, or if the path
// is invalid, as this is a misconfiguration that should be caught on
// start up.
func (r Router) Handle(path string, h weft.Handler) {
	if !isPath(path) {
		panic("invalid path: " + path)
	}
	if _, ok := r.routes[path]; ok {
		panic("re-registering route: " + path)
	}
	r.routes[path] = h
}

// handler returns the registered Handler for this path. If no path is
// found, returns a noSuchPath Handler, so you can always call this
// function and ignore the second argument of Handle.
func (r Router) handler(path string) weft.Handler {
	h, ok := r.routes[path]
	if !ok {
		return noSuchPathHandler{path}
	}
	return h
}

// Check dispatches to the proper handler based on the message path
func (r Router) Check(ctx weft.Context, store weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	path := weft.GetPath(tx)
	return r.handler(path).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on the message path
func (r Router) Deliver(ctx weft.Context, store weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	path := weft.GetPath(tx)
	return r.handler(path).Deliver(ctx, store, tx)
}

// noSuchPathHandler always returns ErrNotFound, we use it when there is
// no handler registered for a requested path
type noSuchPathHandler struct {
	path string
}

var _ weft.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(ctx weft.Context, store weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(ctx weft.Context, store weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
