// Package operations holds the reversible byte transformations a catalog
// source may be wrapped in before it reaches the JSON decoder.
package operations

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	// No operation - raw data
	OP_NONE = 0x00

	OP_GZIP  = 0x10
	OP_BZIP2 = 0x13
)

// Operation represents a single transformation operation
type Operation interface {
	ID() uint8

	Name() string

	// Magic returns the leading bytes that identify data produced by Apply.
	Magic() []byte

	Apply(input []byte) ([]byte, error)

	ApplyStream(input io.Reader, output io.Writer) error

	// Reverse undoes Apply (e.g. decompress).
	Reverse(input []byte) ([]byte, error)

	ReverseStream(input io.Reader, output io.Writer) error
}

// BaseOperation provides common functionality for operations
type BaseOperation struct {
	OpID    uint8
	OpName  string
	OpMagic []byte
}

func (o *BaseOperation) ID() uint8 {
	return o.OpID
}

func (o *BaseOperation) Name() string {
	return o.OpName
}

func (o *BaseOperation) Magic() []byte {
	return o.OpMagic
}

var (
	registryMu sync.RWMutex
	registry   = make(map[uint8]Operation)
)

// Register registers an operation implementation
func Register(op Operation) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[op.ID()] = op
}

// ByName retrieves an operation by case-insensitive name. "raw" and "" map
// to nil with no error.
func ByName(name string) (Operation, error) {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" || name == "RAW" || name == "NONE" {
		return nil, nil
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, op := range registry {
		if op.Name() == name {
			return op, nil
		}
	}
	return nil, fmt.Errorf("unknown operation: %s", name)
}

// Detect returns the registered operation whose magic prefixes data, or nil
// when data looks raw.
func Detect(data []byte) Operation {
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, op := range registry {
		magic := op.Magic()
		if len(magic) > 0 && bytes.HasPrefix(data, magic) {
			return op
		}
	}
	return nil
}

// Unwrap reverses whatever operation Detect finds on data. Raw data is
// returned unchanged with a nil operation.
func Unwrap(data []byte) ([]byte, Operation, error) {
	op := Detect(data)
	if op == nil {
		return data, nil, nil
	}
	out, err := op.Reverse(data)
	if err != nil {
		return nil, op, fmt.Errorf("reversing %s: %w", strings.ToLower(op.Name()), err)
	}
	return out, op, nil
}

// IDOf returns op's ID, or OP_NONE for a nil operation.
func IDOf(op Operation) uint8 {
	if op == nil {
		return OP_NONE
	}
	return op.ID()
}

// GetName returns the name of an operation by ID
func GetName(id uint8) string {
	switch id {
	case OP_NONE:
		return "NONE"
	case OP_GZIP:
		return "GZIP"
	case OP_BZIP2:
		return "BZIP2"
	default:
		return fmt.Sprintf("UNKNOWN_%02x", id)
	}
}
