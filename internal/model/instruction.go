package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// InstructionKind separates structural markers from real instructions.
type InstructionKind int

const (
	// KindInsn is an executable instruction.
	KindInsn InstructionKind = iota
	// KindLine marks the start of code for a source line.
	KindLine
	// KindLabel names a branch destination.
	KindLabel
	// KindBlock starts a new lexical block.
	KindBlock
	// KindFinallyStart opens an exception handler cleanup region.
	KindFinallyStart
	// KindFinallyEnd closes the innermost cleanup region.
	KindFinallyEnd
	// KindSuppress stops recording candidates for a reason.
	KindSuppress
	// KindResume clears a suppression reason.
	KindResume
)

const (
	lineKeyword          = "LINE"
	labelKeyword         = "LABEL"
	blockKeyword         = "BLOCK"
	finallyStartKeyword  = "FINALLY_START"
	finallyEndKeyword    = "FINALLY_END"
	suppressKeyword      = "SUPPRESS"
	resumeKeyword        = "RESUME"
	commentPrefix        = "#"
	instructionSeparator = " "
)

// ErrInvalidInstruction is returned when a listing line cannot be parsed.
var ErrInvalidInstruction = errors.New("invalid instruction")

// Instruction is one element of a method body listing.
//
// Arg holds the label for jumps and labels, the reason for suppression
// markers, the line number for line markers and the raw operand text for
// everything else.
type Instruction struct {
	Kind InstructionKind
	Op   Opcode
	Arg  string
}

// Insn builds an executable instruction.
func Insn(op Opcode, arg ...string) Instruction {
	return Instruction{Kind: KindInsn, Op: op, Arg: strings.Join(arg, instructionSeparator)}
}

// Jump builds a branch to label.
func Jump(op Opcode, label string) Instruction {
	return Instruction{Kind: KindInsn, Op: op, Arg: label}
}

// Line builds a line number marker.
func Line(n int) Instruction {
	return Instruction{Kind: KindLine, Arg: strconv.Itoa(n)}
}

// Label builds a label marker.
func Label(name string) Instruction {
	return Instruction{Kind: KindLabel, Arg: name}
}

// Block builds a new-block marker.
func Block() Instruction {
	return Instruction{Kind: KindBlock}
}

// FinallyStart builds a cleanup region start marker.
func FinallyStart() Instruction {
	return Instruction{Kind: KindFinallyStart}
}

// FinallyEnd builds a cleanup region end marker.
func FinallyEnd() Instruction {
	return Instruction{Kind: KindFinallyEnd}
}

// Suppress builds a suppression marker.
func Suppress(reason string) Instruction {
	return Instruction{Kind: KindSuppress, Arg: reason}
}

// Resume builds the marker that clears a suppression reason.
func Resume(reason string) Instruction {
	return Instruction{Kind: KindResume, Arg: reason}
}

// LineNumber returns the line carried by a line marker.
func (i Instruction) LineNumber() int {
	n, err := strconv.Atoi(i.Arg)
	if err != nil {
		return 0
	}

	return n
}

// WithOpcode returns a copy with the opcode replaced and every operand kept.
func (i Instruction) WithOpcode(op Opcode) Instruction {
	i.Op = op
	return i
}

// String renders the canonical listing form accepted by ParseInstruction.
func (i Instruction) String() string {
	switch i.Kind {
	case KindLine:
		return lineKeyword + instructionSeparator + i.Arg
	case KindLabel:
		return labelKeyword + instructionSeparator + i.Arg
	case KindBlock:
		return blockKeyword
	case KindFinallyStart:
		return finallyStartKeyword
	case KindFinallyEnd:
		return finallyEndKeyword
	case KindSuppress:
		return suppressKeyword + instructionSeparator + i.Arg
	case KindResume:
		return resumeKeyword + instructionSeparator + i.Arg
	case KindInsn:
	}

	if i.Arg == "" {
		return i.Op.String()
	}

	return i.Op.String() + instructionSeparator + i.Arg
}

// ParseInstruction parses one listing line such as "IFEQ L1" or "LINE 10".
func ParseInstruction(text string) (Instruction, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.HasPrefix(text, commentPrefix) {
		return Instruction{}, fmt.Errorf("%w: empty line", ErrInvalidInstruction)
	}

	head, rest, _ := strings.Cut(text, instructionSeparator)
	head = strings.ToUpper(head)
	rest = strings.TrimSpace(rest)

	switch head {
	case lineKeyword:
		n, err := strconv.Atoi(rest)
		if err != nil || n < 0 {
			return Instruction{}, fmt.Errorf("%w: bad line number %q", ErrInvalidInstruction, rest)
		}

		return Line(n), nil
	case labelKeyword:
		if rest == "" {
			return Instruction{}, fmt.Errorf("%w: label without name", ErrInvalidInstruction)
		}

		return Label(rest), nil
	case blockKeyword:
		return Block(), nil
	case finallyStartKeyword:
		return FinallyStart(), nil
	case finallyEndKeyword:
		return FinallyEnd(), nil
	case suppressKeyword, resumeKeyword:
		if rest == "" {
			return Instruction{}, fmt.Errorf("%w: %s without reason", ErrInvalidInstruction, head)
		}

		if head == suppressKeyword {
			return Suppress(rest), nil
		}

		return Resume(rest), nil
	}

	op, ok := OpcodeByName(head)
	if !ok {
		return Instruction{}, fmt.Errorf("%w: unknown opcode %q", ErrInvalidInstruction, head)
	}

	return parseOperand(op, rest)
}

func parseOperand(op Opcode, rest string) (Instruction, error) {
	switch GetInfo(op).Operand {
	case OperandNone:
		if rest != "" {
			return Instruction{}, fmt.Errorf("%w: %s takes no operand", ErrInvalidInstruction, op)
		}
	case OperandInt:
		if _, err := strconv.Atoi(rest); err != nil {
			return Instruction{}, fmt.Errorf("%w: %s needs a numeric operand", ErrInvalidInstruction, op)
		}
	case OperandLabel, OperandRef:
		if rest == "" {
			return Instruction{}, fmt.Errorf("%w: %s needs an operand", ErrInvalidInstruction, op)
		}
	}

	return Instruction{Kind: KindInsn, Op: op, Arg: rest}, nil
}

// ParseListing parses a listing, skipping blank lines and # comments.
func ParseListing(lines []string) ([]Instruction, error) {
	code := make([]Instruction, 0, len(lines))

	for n, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, commentPrefix) {
			continue
		}

		insn, err := ParseInstruction(trimmed)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}

		code = append(code, insn)
	}

	return code, nil
}

// Listing renders instructions in canonical form, one per element.
func Listing(code []Instruction) []string {
	lines := make([]string, 0, len(code))
	for _, insn := range code {
		lines = append(lines, insn.String())
	}

	return lines
}
