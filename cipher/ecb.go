package cipher

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// parallelThreshold is the block count below which ECB processing
// stays on the calling goroutine; fan-out overhead dominates for
// short messages.
const parallelThreshold = 32

// Encrypt PKCS7-pads the plaintext and encrypts it in ECB mode. Every
// block is independent, so long messages are partitioned across
// workers.
func (e *Engine) Encrypt(plaintext []byte) []byte {
	padded := Pad(plaintext)
	out := make([]byte, len(padded))
	e.forEachBlock(len(padded)/BlockSize, func(i int) {
		var b Block
		copy(b[:], padded[i*BlockSize:])
		b = e.EncryptBlock(b)
		copy(out[i*BlockSize:], b[:])
	})
	logrus.WithFields(logrus.Fields{
		"function": "Encrypt",
		"package":  "cipher",
		"blocks":   len(padded) / BlockSize,
	}).Debug("Encrypted message in ECB mode")
	return out
}

// Decrypt decrypts an ECB ciphertext and strips PKCS7 padding. The
// ciphertext length must be a multiple of the block size; padding
// violations, including empty input, come back as *PaddingError.
func (e *Engine) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%BlockSize != 0 {
		return nil, fmt.Errorf("ciphertext length %d is not a multiple of %d", len(ciphertext), BlockSize)
	}
	out := make([]byte, len(ciphertext))
	e.forEachBlock(len(ciphertext)/BlockSize, func(i int) {
		var b Block
		copy(b[:], ciphertext[i*BlockSize:])
		b = e.DecryptBlock(b)
		copy(out[i*BlockSize:], b[:])
	})
	plaintext, err := Unpad(out)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Decrypt",
			"package":  "cipher",
			"error":    err.Error(),
		}).Warn("Padding validation failed after block decryption")
		return nil, err
	}
	return plaintext, nil
}

// forEachBlock runs f for every block index, fanning out across
// NumCPU workers when the message is long enough to pay for it. The
// engine is immutable, so block work shares no mutable state.
func (e *Engine) forEachBlock(n int, f func(i int)) {
	if n < parallelThreshold {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}
