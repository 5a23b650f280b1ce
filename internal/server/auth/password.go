package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// MaxPasswordBytes is the bcrypt input limit. Longer passwords are rejected
// before hashing.
const MaxPasswordBytes = 72

const (
	argon2Prefix  = "$argon2id$"
	argon2SaltLen = 16
	argon2KeyLen  = 32
)

var ErrUnknownAlgorithm = errors.New("unknown password hash algorithm")

// PasswordHasher turns plaintext passwords into self-describing hashes and
// checks candidates against them. Verify returns (false, nil) on mismatch;
// a non-nil error means the stored hash could not be evaluated and the
// caller must deny.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// Hasher hashes with the configured algorithm and verifies any hash it
// recognises by prefix, so bcrypt and argon2id hashes can coexist in storage.
type Hasher struct {
	algorithm string
	cost      int

	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8

	rand io.Reader
}

type HasherOption func(*Hasher)

// WithBcryptCost overrides bcrypt.DefaultCost. Out of range values are ignored.
func WithBcryptCost(cost int) HasherOption {
	return func(h *Hasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// WithArgon2Params sets iterations, memory in KiB and parallelism.
func WithArgon2Params(time, memoryKiB uint32, threads uint8) HasherOption {
	return func(h *Hasher) {
		h.argonTime = time
		h.argonMemory = memoryKiB
		h.argonThreads = threads
	}
}

// WithRandom replaces crypto/rand as the salt source.
func WithRandom(r io.Reader) HasherOption {
	return func(h *Hasher) { h.rand = r }
}

// NewHasher returns a Hasher for algorithm ("bcrypt" or "argon2id").
func NewHasher(algorithm string, opts ...HasherOption) (*Hasher, error) {
	switch algorithm {
	case AlgorithmBcrypt, AlgorithmArgon2id:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}

	h := &Hasher{
		algorithm:    algorithm,
		cost:         bcrypt.DefaultCost,
		argonTime:    1,
		argonMemory:  64 * 1024,
		argonThreads: 4,
		rand:         rand.Reader,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *Hasher) Algorithm() string {
	return h.algorithm
}

func (h *Hasher) Hash(password string) (string, error) {
	if h.algorithm == AlgorithmArgon2id {
		return h.hashArgon2id(password)
	}

	// bcrypt reads its salt from crypto/rand directly
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrHashingFailure, err)
	}
	return string(hash), nil
}

func (h *Hasher) Verify(password, encoded string) (bool, error) {
	switch {
	case isBcrypt(encoded):
		err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
		if err == nil {
			return true, nil
		}
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", common.ErrVerificationFailure, err)

	case strings.HasPrefix(encoded, argon2Prefix):
		return verifyArgon2id(password, encoded)

	default:
		return false, fmt.Errorf("%w: unrecognised hash format", common.ErrVerificationFailure)
	}
}

func isBcrypt(encoded string) bool {
	for _, p := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(encoded, p) {
			return true
		}
	}
	return false
}

// hashArgon2id encodes in PHC form: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
func (h *Hasher) hashArgon2id(password string) (string, error) {
	salt := make([]byte, argon2SaltLen)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("%w: salt: %v", common.ErrHashingFailure, err)
	}

	key := argon2.IDKey([]byte(password), salt, h.argonTime, h.argonMemory, h.argonThreads, argon2KeyLen)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.argonMemory, h.argonTime, h.argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func verifyArgon2id(password, encoded string) (bool, error) {
	malformed := func(reason string) (bool, error) {
		return false, fmt.Errorf("%w: argon2id: %s", common.ErrVerificationFailure, reason)
	}

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return malformed("wrong number of fields")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return malformed("unsupported version")
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return malformed("bad parameters")
	}
	if time == 0 || threads == 0 || threads > 255 {
		return malformed("bad parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return malformed("bad salt")
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 || len(expected) > 1024 {
		return malformed("bad key")
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}
