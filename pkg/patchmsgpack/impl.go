// Package patchmsgpack encodes JSON Patch documents as msgpack, for
// transports that carry patches in binary form. Each operation is a
// compact [op, path, from, value] tuple.
package patchmsgpack

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v4"

	"github.com/docshift/jsonpatch"
)

// MsgpackPatch is an alias for jsonpatch.Patch which implements
// CustomEncoder/CustomDecoder. You should only use this if you need to
// embed a patch inside a larger msgpack structure. Otherwise it's
// preferred to use the Marshal and Unmarshal functions.
type MsgpackPatch jsonpatch.Patch

var _ msgpack.CustomEncoder = (*MsgpackPatch)(nil)
var _ msgpack.CustomDecoder = (*MsgpackPatch)(nil)

// Marshal encodes a patch using Msgpack.
func Marshal(patch jsonpatch.Patch) ([]byte, error) {
	mppatch := MsgpackPatch(patch)
	return msgpack.Marshal(&mppatch)
}

// Unmarshal decodes a patch using Msgpack.
func Unmarshal(data []byte) (jsonpatch.Patch, error) {
	var mppatch MsgpackPatch
	err := msgpack.Unmarshal(data, &mppatch)
	if err != nil {
		return nil, err
	}
	return jsonpatch.Patch(mppatch), nil
}

const opTupleLen = 4

func (patch *MsgpackPatch) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(len(*patch)); err != nil {
		return err
	}
	for _, op := range *patch {
		if err := enc.EncodeArrayLen(opTupleLen); err != nil {
			return err
		}
		if err := enc.EncodeString(string(op.Op)); err != nil {
			return err
		}
		if err := enc.EncodeString(op.Path); err != nil {
			return err
		}
		if err := enc.EncodeString(op.From); err != nil {
			return err
		}
		if err := enc.Encode(op.Value); err != nil {
			return err
		}
	}
	return nil
}

func (patch *MsgpackPatch) DecodeMsgpack(dec *msgpack.Decoder) error {
	count, err := dec.DecodeArrayLen()
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		tupleLen, err := dec.DecodeArrayLen()
		if err != nil {
			return err
		}
		if tupleLen != opTupleLen {
			return fmt.Errorf("operation %d: expected %d-element tuple, got %d", i, opTupleLen, tupleLen)
		}
		opKind, err := dec.DecodeString()
		if err != nil {
			return err
		}
		path, err := dec.DecodeString()
		if err != nil {
			return err
		}
		from, err := dec.DecodeString()
		if err != nil {
			return err
		}
		value, err := dec.DecodeInterface()
		if err != nil {
			return err
		}
		*patch = append(*patch, jsonpatch.Operation{
			Op:    jsonpatch.Op(opKind),
			Path:  path,
			From:  from,
			Value: value,
		})
	}
	return nil
}
