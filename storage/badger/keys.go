package badger

import (
	"fmt"

	"github.com/poiesic/prodmatch/core"
)

// Key prefixes for different data types
const (
	embeddingRecordPrefix = "embrec"
)

// makeEmbeddingRecordKey generates a key for an embedding record by entry ID.
func makeEmbeddingRecordKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", embeddingRecordPrefix, id))
}
