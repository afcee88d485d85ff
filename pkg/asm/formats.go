package asm

import (
	"strings"

	"vmasm/pkg/isa"
)

// Format describes how one mnemonic is encoded: an optional opcode word
// followed by the output of each operand encoder in order.
type Format struct {
	Mnemonic  string
	Opcode    isa.Opcode
	HasOpcode bool
	Operands  []OperandKind
}

func op(mnemonic string, opcode isa.Opcode, operands ...OperandKind) Format {
	return Format{Mnemonic: mnemonic, Opcode: opcode, HasOpcode: true, Operands: operands}
}

var formats = map[string]Format{
	"movi":  op("movi", isa.OpMOVI, Immediate, Register),
	"mov":   op("mov", isa.OpMOV, Register, Register),
	"add":   op("add", isa.OpADD, Register, Register),
	"sub":   op("sub", isa.OpSUB, Register, Register),
	"mul":   op("mul", isa.OpMUL, Register, Register),
	"idiv":  op("idiv", isa.OpIDIV, Register, Register),
	"jmp":   op("jmp", isa.OpJMP, Register),
	"jnz":   op("jnz", isa.OpJNZ, Register, Register),
	"out":   op("out", isa.OpOUT, Register),
	"halt":  op("halt", isa.OpHALT),
	"ld":    op("ld", isa.OpLD, Register, Register),
	"st":    op("st", isa.OpST, Register, Register),
	"jal":   op("jal", isa.OpJAL, Register),
	"ret":   op("ret", isa.OpRET),
	"push":  op("push", isa.OpPUSH, Register),
	"pop":   op("pop", isa.OpPOP, Register),
	"ldlo":  op("ldlo", isa.OpLDLO, Immediate, Register),
	"stlo":  op("stlo", isa.OpSTLO, Immediate, Register),
	".data": {Mnemonic: ".data", Operands: []OperandKind{RawData}},
}

// LookupFormat finds the format for a mnemonic, ignoring case.
func LookupFormat(mnemonic string) (Format, bool) {
	f, ok := formats[strings.ToLower(mnemonic)]
	return f, ok
}
