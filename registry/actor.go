package registry

import (
	"context"
	"errors"
)

// ErrActorStopped is returned by requests made after the owner loop exited.
var ErrActorStopped = errors.New("registry: actor stopped")

type opKind int

const (
	opRegister opKind = iota
	opKilled
	opForget
	opSnapshot
	opContains
)

type request struct {
	op    opKind
	id    ID
	reply chan response
}

type response struct {
	ok   bool
	snap Snapshot
}

// Actor serializes access to a Registry through a single owning goroutine.
// Requests block until the owner answers or ctx ends.
type Actor struct {
	reg  *Registry
	reqs chan request
	done chan struct{}
}

func NewActor(reg *Registry) *Actor {
	if reg == nil {
		reg = New()
	}
	return &Actor{
		reg:  reg,
		reqs: make(chan request, 64),
		done: make(chan struct{}),
	}
}

// Run owns the registry until ctx is cancelled.
func (a *Actor) Run(ctx context.Context) error {
	defer close(a.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-a.reqs:
			req.reply <- a.handle(req)
		}
	}
}

func (a *Actor) handle(req request) response {
	switch req.op {
	case opRegister:
		return response{ok: a.reg.Register(req.id)}
	case opKilled:
		return response{ok: a.reg.Killed(req.id)}
	case opForget:
		return response{ok: a.reg.Forget(req.id)}
	case opContains:
		return response{ok: a.reg.Contains(req.id)}
	case opSnapshot:
		return response{ok: true, snap: a.reg.Snapshot()}
	}
	return response{}
}

func (a *Actor) call(ctx context.Context, op opKind, id ID) (response, error) {
	req := request{op: op, id: id, reply: make(chan response, 1)}
	select {
	case a.reqs <- req:
	case <-a.done:
		return response{}, ErrActorStopped
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
	select {
	case resp := <-req.reply:
		return resp, nil
	case <-a.done:
		return response{}, ErrActorStopped
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

func (a *Actor) Register(ctx context.Context, id ID) (bool, error) {
	resp, err := a.call(ctx, opRegister, id)
	return resp.ok, err
}

func (a *Actor) Killed(ctx context.Context, id ID) (bool, error) {
	resp, err := a.call(ctx, opKilled, id)
	return resp.ok, err
}

func (a *Actor) Forget(ctx context.Context, id ID) (bool, error) {
	resp, err := a.call(ctx, opForget, id)
	return resp.ok, err
}

func (a *Actor) Contains(ctx context.Context, id ID) (bool, error) {
	resp, err := a.call(ctx, opContains, id)
	return resp.ok, err
}

func (a *Actor) Snapshot(ctx context.Context) (Snapshot, error) {
	resp, err := a.call(ctx, opSnapshot, 0)
	return resp.snap, err
}
