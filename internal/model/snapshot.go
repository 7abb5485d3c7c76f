package model

// Collection names a persisted record collection.
type Collection string

const (
	CollectionSymbols    Collection = "symbols"
	CollectionOperations Collection = "operations"
	CollectionAssets     Collection = "assets"
)

// Collections lists every collection in restore order.
var Collections = []Collection{CollectionSymbols, CollectionOperations, CollectionAssets}

// ParseCollection returns the collection named by s.
func ParseCollection(s string) (Collection, bool) {
	for _, c := range Collections {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Snapshot is a consistent, caller-owned copy of every collection. Reports
// are computed from a Snapshot and never from shared state.
type Snapshot struct {
	Operations []Operation `json:"operations"`
	Symbols    []Symbol    `json:"symbols"`
	Assets     []Asset     `json:"assets"`
}

// IsEmpty reports whether the snapshot holds no records at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.Operations) == 0 && len(s.Symbols) == 0 && len(s.Assets) == 0
}
