package common

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	idNode     *snowflake.Node
	idNodeOnce sync.Once
	idRand     = rand.New(rand.NewSource(time.Now().UnixNano()))
	idRandMu   sync.Mutex
)

func node() *snowflake.Node {
	idNodeOnce.Do(func() {
		n, err := snowflake.NewNode(1)
		if err != nil {
			// node id 1 is always in range; NewNode only fails on bad ids
			panic(err)
		}
		idNode = n
	})
	return idNode
}

// NewEntryID returns a compact unique identifier: a time-ordered snowflake
// component plus a short random suffix, both base36.
func NewEntryID() string {
	idRandMu.Lock()
	suffix := strconv.FormatUint(uint64(idRand.Uint32()), 36)
	idRandMu.Unlock()
	return node().Generate().Base36() + "-" + suffix
}
