package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sync/atomic"
)

// payloadInspectLimit caps how many bytes are hashed for a redacted payload.
const payloadInspectLimit = 64 * 1024

var includePayloads atomic.Bool

func setIncludePayloads(v bool) {
	includePayloads.Store(v)
}

func IncludePayloads() bool {
	return includePayloads.Load()
}

// PayloadAttr returns a safe payload attribute for logging.
// By default it redacts payload bytes and includes only length + hash.
func PayloadAttr(key string, payload []byte) slog.Attr {
	if key == "" {
		key = "payload"
	}
	if len(payload) == 0 {
		return slog.String(key, `""`)
	}
	if !IncludePayloads() {
		return slog.String(key, redactedPayloadString(payload))
	}
	const preview = 256
	if len(payload) <= preview {
		return slog.String(key, fmt.Sprintf("%q", payload))
	}
	head := payload[:preview]
	return slog.String(key, fmt.Sprintf("%q...(+%d bytes)", head, len(payload)-preview))
}

// CommandAttr sanitizes a shell command line before handing it to PayloadAttr.
func CommandAttr(key, command string) slog.Attr {
	return PayloadAttr(key, []byte(SanitizeCommand(command)))
}

func redactedPayloadString(payload []byte) string {
	data := payload
	prefixLen := len(payload)
	if len(data) > payloadInspectLimit {
		data = data[:payloadInspectLimit]
		prefixLen = payloadInspectLimit
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return fmt.Sprintf("redacted(len=%d sha256_prefix=%s prefix_len=%d)", len(payload), hash, prefixLen)
}
