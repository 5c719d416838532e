package cube

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Stats describes one computation.
type Stats struct {
	Dimensions int
	Tuples     int
	BaseNodes  int

	TreesMaterialized int
	NodesCreated      int
	NodesMerged       int
	CellsEmitted      int
	PrunedBySupport   int

	ArenaBytes int
	Duration   time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("%s cells from %s tuples x %d dims (base %s nodes, %s child trees, %s nodes created, %s merged, %s pruned, arenas %s) in %v",
		humanize.Comma(int64(s.CellsEmitted)),
		humanize.Comma(int64(s.Tuples)),
		s.Dimensions,
		humanize.Comma(int64(s.BaseNodes)),
		humanize.Comma(int64(s.TreesMaterialized)),
		humanize.Comma(int64(s.NodesCreated)),
		humanize.Comma(int64(s.NodesMerged)),
		humanize.Comma(int64(s.PrunedBySupport)),
		humanize.Bytes(uint64(s.ArenaBytes)),
		s.Duration,
	)
}
