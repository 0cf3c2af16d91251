// Package digest provides the registry of hash algorithms and output
// encodings used by digest comparisons.
package digest

import (
	"fmt"
	"hash"
	"sort"
	"sync"
)

// Factory creates a fresh hash.Hash for one stream
type Factory func() hash.Hash

var (
	registry = make(map[string]Factory)
	mu       sync.RWMutex
)

// Register registers a hash factory under the given algorithm name.
//
// Names are case-sensitive. Registering the same name twice is an error.
func Register(algorithm string, factory Factory) error {
	mu.Lock()
	defer mu.Unlock()

	if algorithm == "" {
		return fmt.Errorf("algorithm name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}
	if _, exists := registry[algorithm]; exists {
		return fmt.Errorf("digest algorithm %q already registered", algorithm)
	}

	registry[algorithm] = factory
	return nil
}

// MustRegister registers a hash factory or panics on error.
func MustRegister(algorithm string, factory Factory) {
	if err := Register(algorithm, factory); err != nil {
		panic(fmt.Sprintf("failed to register digest algorithm %q: %v", algorithm, err))
	}
}

// New creates a new hash for the given algorithm.
func New(algorithm string) (hash.Hash, error) {
	mu.RLock()
	factory, exists := registry[algorithm]
	mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported digest algorithm: %s (supported: %v)",
			algorithm, SupportedAlgorithms())
	}
	return factory(), nil
}

// SupportedAlgorithms returns a sorted list of registered algorithm names.
func SupportedAlgorithms() []string {
	mu.RLock()
	defer mu.RUnlock()

	algorithms := make([]string, 0, len(registry))
	for name := range registry {
		algorithms = append(algorithms, name)
	}
	sort.Strings(algorithms)
	return algorithms
}

// IsSupported checks if an algorithm is registered.
func IsSupported(algorithm string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, exists := registry[algorithm]
	return exists
}

// Unregister removes an algorithm from the registry. Used by tests.
func Unregister(algorithm string) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[algorithm]; !exists {
		return fmt.Errorf("digest algorithm %q not registered", algorithm)
	}
	delete(registry, algorithm)
	return nil
}
