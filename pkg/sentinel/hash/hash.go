// Package hash computes content digests for the snapshot builder.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// EmptyFileDigest is the canonical SHA-256 digest of zero-length input.
const EmptyFileDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

const chunkSize = 64 * 1024

// File returns the lowercase hex SHA-256 digest of path's contents. It
// returns the empty string on any I/O failure; callers must treat the
// empty string as an error sentinel, never a legitimate digest.
func File(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	if info.Size() == 0 {
		return EmptyFileDigest
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	return sum(f)
}

// FileExpectingSize is like File, but reads at most size bytes and
// fails (returning the empty string) if the stream is shorter or longer
// than size. Used when the caller has already stat'd the file and wants
// to detect concurrent truncation or growth mid-read.
func FileExpectingSize(path string, size uint64) string {
	if size == 0 {
		return EmptyFileDigest
	}

	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, chunkSize)
	var total uint64

	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			total += uint64(n)
			if total > size {
				return ""
			}
			h.Write(buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return ""
		}
	}

	if total != size {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}

func sum(r io.Reader) string {
	h := sha256.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return ""
	}
	return hex.EncodeToString(h.Sum(nil))
}
