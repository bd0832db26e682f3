package object

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// envelopeHeader is the framing prepended to every stored object:
// "type length\x00". Object identity covers this header plus the content,
// so the same bytes stored under two types hash apart.
func envelopeHeader(objType ObjectType, contentLen int) []byte {
	buf := make([]byte, 0, len(objType)+12)
	buf = append(buf, objType...)
	buf = append(buf, ' ')
	buf = strconv.AppendInt(buf, int64(contentLen), 10)
	buf = append(buf, 0)
	return buf
}

// HashObject returns an object's identity: the SHA-256 of its envelope
// header followed by its content.
func HashObject(objType ObjectType, data []byte) Hash {
	h := sha256.New()
	h.Write(envelopeHeader(objType, len(data)))
	h.Write(data)
	return Hash(hex.EncodeToString(h.Sum(nil)))
}

// HashBytes digests raw bytes with no envelope framing, for callers that
// need content identity rather than object identity.
func HashBytes(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}
