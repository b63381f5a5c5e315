package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/JonMunkholm/universidad/internal/apiclient"
)

// Stats summarizes an entity collection for the dashboard.
type Stats struct {
	Total  int
	Active int
}

// EntityInfo describes a managed entity to the app shell.
type EntityInfo struct {
	Key         string // "facultades"
	Label       string // "Facultades"
	Path        string // "/facultades"
	Description string
	Order       int

	// Stats counts the entity's records through the API.
	Stats func(ctx context.Context, c *apiclient.Client) (Stats, error)
}

var (
	registry   = make(map[string]EntityInfo)
	registryMu sync.RWMutex
)

// Register adds an entity to the registry.
// Panics if an entity with the same key is already registered.
func Register(info EntityInfo) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[info.Key]; exists {
		panic(fmt.Sprintf("entity already registered: %s", info.Key))
	}

	registry[info.Key] = info
}

// All returns all registered entities, sorted by Order then Key.
func All() []EntityInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]EntityInfo, 0, len(registry))
	for _, info := range registry {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Order != result[j].Order {
			return result[i].Order < result[j].Order
		}
		return result[i].Key < result[j].Key
	})

	return result
}

// Count returns the number of registered entities.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// Clear removes all registered entities.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]EntityInfo)
}
