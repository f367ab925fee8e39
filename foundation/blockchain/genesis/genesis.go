// Package genesis maintains the chain's genesis configuration: the
// difficulty, pool/block size limits, and mining constants every node in
// the network must agree on.
package genesis

import (
	"encoding/json"
	"os"

	"github.com/nodecore/powchain/foundation/blockchain/block"
	"github.com/nodecore/powchain/foundation/blockchain/hash"
)

// Default constants, named the way spec configuration is: DIFFICULTY and
// EASIEST_DIF are bit-widths used to construct target hash values for
// production and tests; POOL_SIZE_LIMIT/BLOCK_SIZE_LIMIT bound the mempool;
// MINING_STEP bounds the nonce probe budget of a single mining burst.
const (
	DefaultDifficultyBits = 20
	EasiestDifficultyBits = 0
	DefaultPoolSizeLimit  = 5_000
	DefaultBlockSizeLimit = 50
	DefaultMiningStep     = 100_000
)

// Genesis is the chain-wide configuration every node loads at startup.
type Genesis struct {
	ChainID         uint16 `json:"chain_id"`
	DifficultyBits  int    `json:"difficulty_bits"`
	PoolSizeLimit   int    `json:"pool_size_limit"`
	BlockSizeLimit  int    `json:"block_size_limit"`
	MiningStep      int    `json:"mining_step"`
	MiningLambdaMus uint64 `json:"mining_lambda_micros"`
}

// Default returns the genesis configuration used when no file is supplied.
func Default() Genesis {
	return Genesis{
		ChainID:        1,
		DifficultyBits: DefaultDifficultyBits,
		PoolSizeLimit:  DefaultPoolSizeLimit,
		BlockSizeLimit: DefaultBlockSizeLimit,
		MiningStep:     DefaultMiningStep,
	}
}

// Load reads a JSON genesis file from path. Fields absent from the file
// keep their Default() values.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	g := Default()
	if err := json.Unmarshal(content, &g); err != nil {
		return Genesis{}, err
	}

	return g, nil
}

// Difficulty returns the 32-byte proof-of-work target for this genesis's
// difficulty bit-width.
func (g Genesis) Difficulty() hash.Hash {
	return block.DifficultyFromBits(g.DifficultyBits)
}
