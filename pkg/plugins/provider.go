package plugins

import (
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/dkg-node/dkg-plugins/app/core"
)

var (
	mu       sync.RWMutex
	provider = make(map[string]core.SetupFunc)
)

// RegisterProvider makes a plugin available under key. Plugin packages call it
// from init.
func RegisterProvider(key string, setup core.SetupFunc) {
	mu.Lock()
	defer mu.Unlock()
	if _, exist := provider[key]; exist {
		panic("plugin provider already registered: " + key)
	}
	provider[key] = setup
}

// Setup installs the named plugins in order. An unknown name panics.
func Setup(install func(p core.Plugin), names ...string) {
	mu.RLock()
	defer mu.RUnlock()

	for _, name := range names {
		p := provider[name]
		if p == nil {
			panic(fmt.Sprintf("plugin not found: %s, available: %v", name, available()))
		}
		install(p())
	}
}

func available() []string {
	keys := lo.Keys(provider)
	sort.Strings(keys)
	return keys
}
