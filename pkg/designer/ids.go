package designer

import (
	"fmt"

	"github.com/google/uuid"
)

// IDGenerator mints element ids. Ids must not repeat within a layout.
type IDGenerator interface {
	NewID() string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string {
	return f()
}

// UUIDGenerator returns random v4 UUIDs.
func UUIDGenerator() IDGenerator {
	return IDGeneratorFunc(func() string {
		return uuid.NewString()
	})
}

// SequenceGenerator returns prefix-1, prefix-2, ... Useful for fixtures and
// tests.
func SequenceGenerator(prefix string) IDGenerator {
	n := 0
	return IDGeneratorFunc(func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	})
}
