// Package transaction implements the signed transaction type this core
// consumes. The miner and mempool only ever need hash() and sign_check();
// everything else here exists to make that contract concrete and testable.
package transaction

import (
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/nodecore/powchain/foundation/blockchain/hash"
	"github.com/nodecore/powchain/foundation/blockchain/signature"
)

// Transaction is the contract the mempool and miner require: a deterministic
// content hash and a signature-validity predicate. Two transactions with
// equal Hash are treated as equal for mempool and block-content purposes.
type Transaction interface {
	Hash() hash.Hash
	SignCheck() bool
}

// body is the unsigned payload that gets signed and hashed. It is kept
// separate from SignedTransaction so the exact bytes fed to Sign/Hash are
// unambiguous and stable, the same discipline the header hashing uses.
type body struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value uint64 `json:"value"`
	Nonce uint64 `json:"nonce"`
	Data  []byte `json:"data,omitempty"`
}

// SignedTransaction is the concrete Transaction implementation used by this
// node: an ECDSA-signed value transfer, grounded on the teacher's
// database.SignedTx / signature package but stripped of account-balance and
// gas bookkeeping, which belongs to a state/accounts layer this spec does
// not include.
type SignedTransaction struct {
	body
	V *big.Int `json:"v"`
	R *big.Int `json:"r"`
	S *big.Int `json:"s"`
}

// New builds and signs a transaction with privateKey. from must be the
// hex-encoded address derived from privateKey's public key.
func New(from, to string, value, nonce uint64, data []byte, privateKey *ecdsa.PrivateKey) (SignedTransaction, error) {
	b := body{From: from, To: to, Value: value, Nonce: nonce, Data: data}

	v, r, s, err := signature.Sign(b, privateKey)
	if err != nil {
		return SignedTransaction{}, fmt.Errorf("sign transaction: %w", err)
	}

	return SignedTransaction{body: b, V: v, R: r, S: s}, nil
}

// AddressFromKey derives the hex-encoded address for a private key, the
// value callers should pass as New's from argument.
func AddressFromKey(privateKey *ecdsa.PrivateKey) string {
	return crypto.PubkeyToAddress(privateKey.PublicKey).Hex()
}

// Hash returns the deterministic content hash of the transaction, a pure
// function of its canonical bytes (the signed body plus signature).
func (t SignedTransaction) Hash() hash.Hash {
	data, err := json.Marshal(t)
	if err != nil {
		return hash.Zero
	}
	return hash.Sum256(data)
}

// SignCheck verifies the embedded signature recovers to the claimed From
// address, mirroring signature.FromAddress/SignedTx.Validate in the
// teacher.
func (t SignedTransaction) SignCheck() bool {
	if t.V == nil || t.R == nil || t.S == nil {
		return false
	}
	if t.body.From == t.body.To {
		return false
	}

	if err := signature.VerifySignature(t.V, t.R, t.S); err != nil {
		return false
	}

	addr, err := signature.FromAddress(t.body, t.V, t.R, t.S)
	if err != nil {
		return false
	}

	return addr == t.body.From
}

// SignatureString returns the [R|S|V] hex-encoded signature, the form
// logged and displayed by the CLI.
func (t SignedTransaction) SignatureString() string {
	return signature.SignatureString(t.V, t.R, t.S)
}

// From returns the sender address.
func (t SignedTransaction) From() string { return t.body.From }

// To returns the recipient address.
func (t SignedTransaction) To() string { return t.body.To }

// Value returns the amount transferred.
func (t SignedTransaction) Value() uint64 { return t.body.Value }

// Nonce returns the sender-assigned nonce.
func (t SignedTransaction) Nonce() uint64 { return t.body.Nonce }

// String implements fmt.Stringer for logging.
func (t SignedTransaction) String() string {
	return fmt.Sprintf("%s->%s:%d#%d", t.body.From, t.body.To, t.body.Value, t.body.Nonce)
}
