// Package isa describes the instruction set of the 32-register word machine:
// opcode numbers, the register file size and the fixed register aliases.
package isa

import "strings"

type Opcode int

const (
	OpMOVI Opcode = 1
	OpMOV  Opcode = 2
	OpADD  Opcode = 3
	OpSUB  Opcode = 4
	OpMUL  Opcode = 5
	OpIDIV Opcode = 6
	OpJMP  Opcode = 7
	OpJNZ  Opcode = 8
	OpOUT  Opcode = 9
	OpHALT Opcode = 10
	OpLD   Opcode = 11
	OpST   Opcode = 12
	OpJAL  Opcode = 13
	OpRET  Opcode = 14
	OpPUSH Opcode = 15
	OpPOP  Opcode = 16
	OpLDLO Opcode = 17
	OpSTLO Opcode = 18
)

const NumRegisters = 32

const (
	RegIP = 0
	RegRP = 29
	RegFP = 30
	RegSP = 31
)

// RegisterAliases maps the lower-case alias names onto their rN spelling.
var RegisterAliases = map[string]string{
	"ip": "r0",
	"rp": "r29",
	"fp": "r30",
	"sp": "r31",
}

// ResolveAlias returns the rN spelling for an alias, or name unchanged.
func ResolveAlias(name string) string {
	if reg, ok := RegisterAliases[strings.ToLower(name)]; ok {
		return reg
	}
	return name
}
