package common

import (
	"context"
	"fmt"
	"reflect"
)

// Request is a command or query dispatched through the mediator. Requests
// are always pointers to their command/query structs, so the concrete
// type alone identifies the handler.
type Request interface{}

// Response is whatever a handler returns for its request.
type Response interface{}

// RequestHandler handles exactly one request type.
type RequestHandler interface {
	Handle(ctx context.Context, request Request) (Response, error)
}

// Mediator routes requests to the single handler registered for their
// concrete type. All registration happens at wiring time; afterwards Send
// is safe for concurrent use.
type Mediator interface {
	Send(ctx context.Context, request Request) (Response, error)
	Register(requestType reflect.Type, handler RequestHandler) error
}

type mediator struct {
	handlers map[reflect.Type]RequestHandler
}

// NewMediator creates a mediator with an empty dispatch table.
func NewMediator() Mediator {
	return &mediator{handlers: make(map[reflect.Type]RequestHandler)}
}

// Register binds a handler to a request type. Registering the same type
// twice is a wiring bug and is rejected.
func (m *mediator) Register(requestType reflect.Type, handler RequestHandler) error {
	if requestType == nil {
		return fmt.Errorf("mediator: request type cannot be nil")
	}
	if handler == nil {
		return fmt.Errorf("mediator: nil handler for %s", requestType)
	}
	if _, taken := m.handlers[requestType]; taken {
		return fmt.Errorf("mediator: duplicate handler for %s", requestType)
	}
	m.handlers[requestType] = handler
	return nil
}

// Send dispatches the request to the handler registered for its type.
func (m *mediator) Send(ctx context.Context, request Request) (Response, error) {
	if request == nil {
		return nil, fmt.Errorf("mediator: cannot dispatch a nil request")
	}
	requestType := reflect.TypeOf(request)
	handler, ok := m.handlers[requestType]
	if !ok {
		return nil, fmt.Errorf("mediator: no handler for %s", requestType)
	}
	return handler.Handle(ctx, request)
}

// RegisterHandler binds handler to the request type T, sparing wiring
// code the reflect.TypeOf noise at every call site.
func RegisterHandler[T Request](m Mediator, handler RequestHandler) error {
	var zero T
	return m.Register(reflect.TypeOf(zero), handler)
}
