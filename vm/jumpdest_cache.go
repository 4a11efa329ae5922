package vm

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/evmkit/coreevm/types"
)

// jumpdestAnalysis is a bitset, one bit per code byte, marking valid
// JUMPDEST positions that are not inside a PUSH immediate.
type jumpdestAnalysis []byte

func analyzeJumpdests(code []byte) jumpdestAnalysis {
	analysis := make(jumpdestAnalysis, (len(code)+7)/8+1)
	for pc := 0; pc < len(code); {
		op := OpCode(code[pc])
		if op == JUMPDEST {
			analysis[pc/8] |= 1 << uint(pc%8)
			pc++
			continue
		}
		if n := op.PushSize(); n > 0 {
			pc += n + 1
			continue
		}
		pc++
	}
	return analysis
}

func (a jumpdestAnalysis) isValid(pc uint64) bool {
	idx := pc / 8
	if idx >= uint64(len(a)) {
		return false
	}
	return a[idx]&(1<<uint(pc%8)) != 0
}

// defaultJumpdestCacheSize bounds the number of distinct code hashes whose
// analysis is retained; contracts are re-analyzed on eviction, which only
// costs a linear scan of their own bytecode.
const defaultJumpdestCacheSize = 1024

// JumpdestCache memoizes JUMPDEST analysis per code hash so that repeated
// calls into the same deployed contract (the overwhelmingly common case)
// pay the preprocessing cost once rather than once per call frame.
type JumpdestCache struct {
	cache *lru.Cache[types.Hash, jumpdestAnalysis]
}

// NewJumpdestCache returns a cache holding up to defaultJumpdestCacheSize
// entries.
func NewJumpdestCache() *JumpdestCache {
	c, err := lru.New[types.Hash, jumpdestAnalysis](defaultJumpdestCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which never
		// happens with the constant above.
		panic(err)
	}
	return &JumpdestCache{cache: c}
}

// analysis returns the JUMPDEST analysis for code, computing and caching it
// under codeHash on a miss.
func (jc *JumpdestCache) analysis(codeHash types.Hash, code []byte) jumpdestAnalysis {
	if a, ok := jc.cache.Get(codeHash); ok {
		return a
	}
	a := analyzeJumpdests(code)
	jc.cache.Add(codeHash, a)
	return a
}
