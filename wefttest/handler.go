package wefttest

import "github.com/hashlock-one/weft"

// Handler implements a mock of weft.Handler that counts the calls and
// returns configured results.
type Handler struct {
	checkCall   int
	CheckResult *weft.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult *weft.DeliverResult
	DeliverErr    error
}

var _ weft.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.CheckResult, error) {
	h.checkCall++
	return h.CheckResult, h.CheckErr
}

func (h *Handler) Deliver(ctx weft.Context, db weft.KVStore, tx weft.Tx) (*weft.DeliverResult, error) {
	h.deliverCall++
	return h.DeliverResult, h.DeliverErr
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
