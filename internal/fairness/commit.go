package fairness

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"agent_arena/internal/domain"
)

// Commit hashes are SHA-256 over "MOVE:SALT:ROUNDID:AGENTID" (uppercase
// move, colon separated), hex encoded. The same canonical form is used by
// the reveal verification, so a round-trip always matches.

var (
	ErrSaltRequired    = errors.New("salt is required")
	ErrRoundIDRequired = errors.New("round id is required")
	ErrAgentIDRequired = errors.New("agent id is required")
	ErrInvalidMove     = errors.New("invalid move")
)

const saltBytes = 16

// GenerateCommit builds the deterministic commit hash for a sealed move.
func GenerateCommit(move domain.Move, salt, roundID, agentID string) (string, error) {
	if !move.Valid() {
		return "", ErrInvalidMove
	}
	if salt == "" {
		return "", ErrSaltRequired
	}
	if roundID == "" {
		return "", ErrRoundIDRequired
	}
	if agentID == "" {
		return "", ErrAgentIDRequired
	}

	payload := strings.ToUpper(string(move)) + ":" + salt + ":" + roundID + ":" + agentID
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:]), nil
}

// VerifyCommit recomputes the hash for the disclosed payload and compares.
// A mismatch is an expected adversarial outcome, reported as false.
func VerifyCommit(commitHash string, move domain.Move, salt, roundID, agentID string) (bool, error) {
	if commitHash == "" {
		return false, errors.New("commit hash is required")
	}

	expected, err := GenerateCommit(move, salt, roundID, agentID)
	if err != nil {
		return false, err
	}
	return commitHash == expected, nil
}

// GenerateSalt returns a cryptographically random hex salt, 32 chars.
func GenerateSalt() (string, error) {
	buf := make([]byte, saltBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// RoundID is the canonical round identifier bound into commit hashes and
// reveal nonces.
func RoundID(matchID string, roundNo int) string {
	return matchID + ":" + strconv.Itoa(roundNo)
}
