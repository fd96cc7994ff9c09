package core

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Structural tags written ahead of each node's payload. These are purely
// internal framing bytes, distinct from the public NodeKind values, so that
// hash.go stays free to change its own encoding without touching the public
// enum.
const (
	tagConstant byte = iota
	tagVariable
	tagParameter
	tagUnary
	tagBinary
	tagTernary
	tagNary
)

func writeHandle(buf *bytes.Buffer, h ExpressionHandle) {
	buf.WriteByte(byte(h.Kind))
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], h.Index)
	buf.Write(idx[:])
}

// MainStructureHash hashes node kinds, operators, and child handles (child
// handles compared as bitwise (kind, id)) across every node the graph has
// accumulated so far, in per-kind array order.
//
// Variable and Parameter nodes contribute only their position in the
// processing order, never their EntityId: two graphs built with the same
// shape but distinct concrete variables (e.g. one Sin(x_7) and one
// Sin(x_41)) must hash equal, since EntityId binding is exactly what
// instance-specific data (package nlgroup's GraphInstance.Variables) supplies
// later. This is what lets the group engine fold many structurally
// identical instances into one AD program.
//
// The hash is the equivalence relation used by the group engine (package
// nlgroup), which groups by the hash value alone, so two instances whose
// hashes collide land in one group. Nothing here detects collisions:
// this function's only job is to be an avalanching 64-bit mix over a
// deterministic byte encoding of the graph's shape.
func (g *ExpressionGraph) MainStructureHash() uint64 {
	buf := new(bytes.Buffer)
	g.writeMainStructure(buf)
	return xxhash.Sum64(buf.Bytes())
}

func (g *ExpressionGraph) writeMainStructure(buf *bytes.Buffer) {
	for _, c := range g.constants {
		buf.WriteByte(tagConstant)
		var bits [8]byte
		binary.LittleEndian.PutUint64(bits[:], math.Float64bits(c.Value))
		buf.Write(bits[:])
	}
	for range g.variables {
		buf.WriteByte(tagVariable)
	}
	for range g.parameters {
		buf.WriteByte(tagParameter)
	}
	for _, u := range g.unaries {
		buf.WriteByte(tagUnary)
		buf.WriteByte(byte(u.Op))
		writeHandle(buf, u.Operand)
	}
	for _, b := range g.binaries {
		buf.WriteByte(tagBinary)
		buf.WriteByte(byte(b.Op))
		writeHandle(buf, b.Left)
		writeHandle(buf, b.Right)
	}
	for _, t := range g.ternaries {
		buf.WriteByte(tagTernary)
		buf.WriteByte(byte(t.Op))
		writeHandle(buf, t.Cond)
		writeHandle(buf, t.Then)
		writeHandle(buf, t.Else)
	}
	for _, n := range g.naries {
		buf.WriteByte(tagNary)
		buf.WriteByte(byte(n.Op))
		var length [4]byte
		binary.LittleEndian.PutUint32(length[:], uint32(len(n.Operands)))
		buf.Write(length[:])
		for _, op := range n.Operands {
			writeHandle(buf, op)
		}
	}
}

// ConstraintStructureHash extends seed (typically g.MainStructureHash())
// with the graph's constraint output list, in order.
func (g *ExpressionGraph) ConstraintStructureHash(seed uint64) uint64 {
	return extendWithOutputs(seed, g.ConstraintOutputs)
}

// ObjectiveStructureHash extends seed (typically g.MainStructureHash())
// with the graph's objective output list, in order.
func (g *ExpressionGraph) ObjectiveStructureHash(seed uint64) uint64 {
	return extendWithOutputs(seed, g.ObjectiveOutputs)
}

func extendWithOutputs(seed uint64, outputs []ExpressionHandle) uint64 {
	buf := new(bytes.Buffer)
	var seedBytes [8]byte
	binary.LittleEndian.PutUint64(seedBytes[:], seed)
	buf.Write(seedBytes[:])
	for _, h := range outputs {
		writeHandle(buf, h)
	}
	return xxhash.Sum64(buf.Bytes())
}
