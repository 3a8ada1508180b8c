// Package idgen is the unique-ID source for account, token and product
// rows. IDs are snowflakes so they stay sortable BIGINTs in the store.
package idgen

import (
	"os"
	"strconv"
	"sync"

	"github.com/bwmarrin/snowflake"
)

var (
	once sync.Once
	node *snowflake.Node
)

// NewID returns the next snowflake ID using the node from SNOWFLAKE_NODE
// (defaults to node 1 when unset or malformed).
func NewID() int64 {
	once.Do(func() {
		nodeID := int64(1)
		if v := os.Getenv("SNOWFLAKE_NODE"); v != "" {
			if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
				nodeID = parsed
			}
		}
		n, err := snowflake.NewNode(nodeID)
		if err != nil {
			// node id out of range; node 1 always succeeds
			n, _ = snowflake.NewNode(1)
		}
		node = n
	})
	return node.Generate().Int64()
}
