package weft

import (
	"reflect"

	"github.com/hashlock-one/weft/errors"
)

// Msg is a request for the state machine to take an action (make a
// state transition). It is just the request and must be validated by
// the Handler. All authentication information is in the wrapping Tx.
type Msg interface {
	Persistent

	// Path returns the routing path of the message. It is used by the
	// Registry to locate the proper Handler. Msgs should be created
	// alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_/]+
	Path() string

	// Validate performs a stateless check of the message content. It
	// must not access any persisted state.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
//
// Marshal may validate the data before serializing it and unless you
// previously validated the struct, errors should be expected.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshaller, as Unmarshal almost always
// requires a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represents the data sent from the user to the state machine. It
// includes the actual message, along with whatever information the
// surrounding environment needs to authenticate the sender.
//
// Each application defines its own concrete tx type, which embeds all
// the middlewares that it wishes to support.
type Tx interface {
	Persistent

	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message from the transaction, validates it and
// loads it into the destination. The destination must be a non-nil
// pointer to the same message type the transaction carries.
func LoadMsg(tx Tx, destination Msg) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrapf(errors.ErrInvalidType, "destination must be a non-nil pointer, got %T", destination)
	}
	src := reflect.ValueOf(msg)
	if src.Type() != dst.Type() {
		return errors.Wrapf(errors.ErrInvalidType, "want %T message, got %T", destination, msg)
	}
	dst.Elem().Set(src.Elem())
	return nil
}
