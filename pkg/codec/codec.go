// Package codec serializes actions for caching and cross-process
// transfer. The encoded form is a small envelope (magic, schema
// version, variant tag, payload length) followed by a per-variant
// payload. Process-specific collaborators such as the exec root are
// never embedded in the bytes; they are injected at decode time.
package codec

import (
	"bytes"
	"encoding/binary"

	"github.com/masonbuild/mason/pkg/action"
	"github.com/masonbuild/mason/pkg/errors"
)

// SchemaVersion is the current envelope schema. Decoding rejects any
// other version.
const SchemaVersion byte = 1

var magic = []byte("MSNC")

// headerLen is magic + version + tag + 4-byte payload length.
const headerLen = 4 + 1 + 1 + 4

// Deps carries the process-specific collaborators a decoded action
// needs rebound, since they are not part of the action's logical
// identity. ExecRoot supplies the execution root derived roots anchor
// under.
type Deps struct {
	ExecRoot func() string
}

// Variant describes one registered action kind.
type Variant struct {
	Tag      byte
	Mnemonic string
	Encode   func(a action.Action) ([]byte, error)
	Decode   func(payload []byte, deps Deps) (action.Action, error)
}

var (
	byTag      = map[byte]Variant{}
	byMnemonic = map[string]Variant{}
)

// Register adds a variant to the codec. Tags and mnemonics must be
// unique; registration happens at package init time.
func Register(v Variant) {
	if _, dup := byTag[v.Tag]; dup {
		panic("codec: duplicate variant tag")
	}
	if _, dup := byMnemonic[v.Mnemonic]; dup {
		panic("codec: duplicate variant mnemonic")
	}
	byTag[v.Tag] = v
	byMnemonic[v.Mnemonic] = v
}

// Encode serializes an action into a self-describing byte stream.
func Encode(a action.Action) ([]byte, error) {
	v, ok := byMnemonic[a.Mnemonic()]
	if !ok {
		return nil, errors.Newf(errors.ErrSerializationEncode,
			"no codec variant registered for %q", a.Mnemonic())
	}
	payload, err := v.Encode(a)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, headerLen+len(payload)))
	buf.Write(magic)
	buf.WriteByte(SchemaVersion)
	buf.WriteByte(v.Tag)
	var lenBytes [4]byte
	binary.BigEndian.PutUint32(lenBytes[:], uint32(len(payload)))
	buf.Write(lenBytes[:])
	buf.Write(payload)
	return buf.Bytes(), nil
}

// Decode reconstructs an action from bytes produced by Encode. The
// result is observably equivalent to the original: same primary input
// and output identity, owner, and progress message. Malformed input
// never yields a partially valid action.
func Decode(data []byte, deps Deps) (action.Action, error) {
	if deps.ExecRoot == nil {
		return nil, errors.New(errors.ErrSerializationDecode,
			"missing injected dependency: exec root supplier")
	}
	if len(data) < headerLen {
		return nil, errors.New(errors.ErrSerializationDecode, "truncated header")
	}
	if !bytes.Equal(data[:4], magic) {
		return nil, errors.New(errors.ErrSerializationDecode, "bad magic")
	}
	if data[4] != SchemaVersion {
		return nil, errors.Newf(errors.ErrSerializationDecode,
			"unsupported schema version %d", data[4])
	}
	v, ok := byTag[data[5]]
	if !ok {
		return nil, errors.Newf(errors.ErrSerializationDecode,
			"unrecognized variant tag %d", data[5])
	}
	payloadLen := binary.BigEndian.Uint32(data[6:10])
	payload := data[headerLen:]
	if uint32(len(payload)) != payloadLen {
		return nil, errors.Newf(errors.ErrSerializationDecode,
			"payload length mismatch: header says %d, have %d", payloadLen, len(payload))
	}
	return v.Decode(payload, deps)
}
