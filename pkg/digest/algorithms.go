package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is used when no algorithm is configured
const DefaultAlgorithm = "sha512"

func init() {
	MustRegister("md5", md5.New)
	MustRegister("sha1", sha1.New)
	MustRegister("sha224", sha256.New224)
	MustRegister("sha256", sha256.New)
	MustRegister("sha384", sha512.New384)
	MustRegister("sha512", sha512.New)
	MustRegister("sha512-256", sha512.New512_256)
	MustRegister("sha3-256", sha3.New256)
	MustRegister("sha3-512", sha3.New512)
	MustRegister("blake2b-256", mustBlake2b(blake2b.New256))
	MustRegister("blake2b-512", mustBlake2b(blake2b.New512))
	MustRegister("blake3", func() hash.Hash { return blake3.New() })
}

// mustBlake2b adapts the keyed blake2b constructors; with a nil key they
// cannot fail.
func mustBlake2b(newFn func(key []byte) (hash.Hash, error)) Factory {
	return func() hash.Hash {
		h, err := newFn(nil)
		if err != nil {
			panic(err)
		}
		return h
	}
}
