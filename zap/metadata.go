// File: zap/metadata.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package zap

import (
	"encoding/binary"
	"sort"
)

// encodeMetadata renders properties in ZMTP metadata form: one byte of
// name length, the name, four big-endian bytes of value length, the value.
// Keys are emitted sorted so output is deterministic; names longer than
// 255 bytes are skipped as unrepresentable.
func encodeMetadata(md map[string]string) []byte {
	if len(md) == 0 {
		return []byte{}
	}

	names := make([]string, 0, len(md))
	for name := range md {
		if len(name) == 0 || len(name) > 255 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var out []byte
	for _, name := range names {
		value := md[name]
		out = append(out, byte(len(name)))
		out = append(out, name...)
		out = binary.BigEndian.AppendUint32(out, uint32(len(value)))
		out = append(out, value...)
	}
	return out
}
