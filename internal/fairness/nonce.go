package fairness

import (
	"errors"
	"sync"
)

// NonceRegistry tracks reveal nonces seen during one match. It only grows;
// entries live as long as the match does.
type NonceRegistry struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewNonceRegistry() *NonceRegistry {
	return &NonceRegistry{seen: make(map[string]struct{})}
}

// BuildRevealNonce returns the canonical anti-replay key for a reveal.
func BuildRevealNonce(roundID, agentID, salt string) string {
	return roundID + "::" + agentID + "::" + salt
}

// VerifyAndRegister registers the nonce on first use and returns true.
// A repeated nonce is a replay and returns false.
func (r *NonceRegistry) VerifyAndRegister(nonce string) (bool, error) {
	if nonce == "" {
		return false, errors.New("nonce is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[nonce]; ok {
		return false, nil
	}
	r.seen[nonce] = struct{}{}
	return true, nil
}
