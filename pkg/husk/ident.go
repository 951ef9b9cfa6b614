package husk

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Ident is the key under which a name is bound. It is the xxhash of the
// name's spelling, so two distinct spellings that hash alike are the same
// binding. There is no collision detection, on purpose.
type Ident uint64

var (
	spellingsMu sync.RWMutex
	spellings   = map[Ident]string{}
)

// Intern hashes a spelling to its Ident. The spelling is remembered in a
// process-wide table so diagnostics can print names instead of hashes;
// lookup never consults it.
func Intern(name string) Ident {
	id := Ident(xxhash.Sum64String(name))
	spellingsMu.Lock()
	spellings[id] = name
	spellingsMu.Unlock()
	return id
}

// String returns the spelling this Ident was interned from, or the raw
// hash if the name never passed through Intern.
func (id Ident) String() string {
	spellingsMu.RLock()
	name, ok := spellings[id]
	spellingsMu.RUnlock()
	if ok {
		return name
	}
	return fmt.Sprintf("#%016x", uint64(id))
}
