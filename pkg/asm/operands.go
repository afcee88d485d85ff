package asm

import (
	"errors"
	"fmt"
	"strconv"
	"unicode"

	"vmasm/pkg/isa"
)

// OperandKind selects the encoder used for one operand position.
type OperandKind int

const (
	Immediate OperandKind = iota
	Register
	RawData
)

func (k OperandKind) String() string {
	switch k {
	case Immediate:
		return "imm"
	case Register:
		return "reg"
	case RawData:
		return "rawdata"
	default:
		return fmt.Sprintf("OperandKind(%d)", int(k))
	}
}

// OperandError is returned when an operand's text does not fit its kind.
type OperandError struct {
	Kind    OperandKind
	Operand string
	Msg     string
}

func (e *OperandError) Error() string {
	return e.Msg
}

func operandErrorf(kind OperandKind, operand, format string, args ...any) *OperandError {
	return &OperandError{Kind: kind, Operand: operand, Msg: fmt.Sprintf(format, args...)}
}

// encode turns one operand into the words to append. ofs is the offset the
// first returned word will occupy.
func (k OperandKind) encode(operand string, ofs int, line int, relocs *relocationTable) ([]Word, error) {
	switch k {
	case Immediate:
		return encodeImmediate(operand, ofs, line, relocs)
	case Register:
		reg, err := parseRegister(operand)
		if err != nil {
			return nil, err
		}
		return []Word{Word(reg)}, nil
	case RawData:
		return encodeData(operand)
	default:
		return nil, fmt.Errorf("unsupported operand kind %v", k)
	}
}

func encodeImmediate(operand string, ofs int, line int, relocs *relocationTable) ([]Word, error) {
	value, err := strconv.ParseInt(operand, 10, 64)
	if err == nil {
		return []Word{Word(value)}, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return nil, operandErrorf(Immediate, operand, "immediate out of range '%s'", operand)
	}

	if !isIdentifier(operand) {
		return nil, operandErrorf(Immediate, operand, "expected literal or label, found '%s'", operand)
	}
	relocs.add(operand, ofs, line)
	return []Word{0}, nil
}

// maxDataWords bounds a single .data block.
const maxDataWords = 1 << 24

func encodeData(operand string) ([]Word, error) {
	count, err := strconv.ParseInt(operand, 10, 64)
	if err != nil || count < 0 {
		return nil, operandErrorf(RawData, operand, "expected nonnegative integer, found '%s'", operand)
	}
	if count > maxDataWords {
		return nil, operandErrorf(RawData, operand, "data block too large (%s words, limit %d)", operand, maxDataWords)
	}
	return make([]Word, count), nil
}

// parseRegister accepts rN (0 <= N < 32) and the ip/rp/fp/sp aliases.
func parseRegister(token string) (int, error) {
	token = isa.ResolveAlias(token)

	if len(token) < 2 || (token[0] != 'r' && token[0] != 'R') || !isDigits(token[1:]) {
		return 0, operandErrorf(Register, token, "expected register, found '%s'", token)
	}

	n, err := strconv.Atoi(token[1:])
	if err != nil || n >= isa.NumRegisters {
		return 0, operandErrorf(Register, token, "invalid register '%s'", token)
	}
	return n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !unicode.IsLetter(r) && r != '_' {
				return false
			}
			continue
		}

		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}

	return true
}
