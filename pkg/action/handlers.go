package action

import "fmt"

// Handler applies the action described by d against whatever game state
// it closes over. Registered per Kind by the game package so this
// package never needs to know about pkg/game's concrete types.
type Handler func(d Descriptor) error

// Dispatcher maps action kinds to handlers, mirroring the teacher's
// dispatch-by-ability-kind switch generalized to a full action space.
type Dispatcher struct {
	handlers map[Kind]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[Kind]Handler)}
}

// Register binds a handler for kind, replacing any previous registration.
func (d *Dispatcher) Register(kind Kind, h Handler) {
	d.handlers[kind] = h
}

// Dispatch decodes index and, if it's marked legal by mask, calls the
// registered handler for its kind.
func (d *Dispatcher) Dispatch(index int, mask Mask) error {
	if !mask.IsLegal(index) {
		return fmt.Errorf("%w: index %d", ErrIllegalAction, index)
	}
	desc, err := Decode(index)
	if err != nil {
		return err
	}
	handler, ok := d.handlers[desc.Kind]
	if !ok {
		return fmt.Errorf("action: no handler registered for kind %v", desc.Kind)
	}
	return handler(desc)
}
