package model

import (
	"strconv"
	"strings"
)

// Opcode is a JVM instruction opcode.
type Opcode uint8

// Opcodes understood by the instruction parser. Values match the JVM
// opcode numbers printed by javap.
//
//nolint:revive // JVM mnemonics keep their upper-case spelling.
const (
	NOP         Opcode = 0
	ACONST_NULL Opcode = 1
	ICONST_M1   Opcode = 2
	ICONST_0    Opcode = 3
	ICONST_1    Opcode = 4
	ICONST_2    Opcode = 5
	ICONST_3    Opcode = 6
	ICONST_4    Opcode = 7
	ICONST_5    Opcode = 8
	LCONST_0    Opcode = 9
	LCONST_1    Opcode = 10
	BIPUSH      Opcode = 16
	SIPUSH      Opcode = 17
	LDC         Opcode = 18

	// Loads and stores
	ILOAD  Opcode = 21
	LLOAD  Opcode = 22
	FLOAD  Opcode = 23
	DLOAD  Opcode = 24
	ALOAD  Opcode = 25
	ISTORE Opcode = 54
	LSTORE Opcode = 55
	FSTORE Opcode = 56
	DSTORE Opcode = 57
	ASTORE Opcode = 58

	// Stack
	POP  Opcode = 87
	DUP  Opcode = 89
	SWAP Opcode = 95

	// Arithmetic
	IADD  Opcode = 96
	LADD  Opcode = 97
	FADD  Opcode = 98
	DADD  Opcode = 99
	ISUB  Opcode = 100
	LSUB  Opcode = 101
	FSUB  Opcode = 102
	DSUB  Opcode = 103
	IMUL  Opcode = 104
	LMUL  Opcode = 105
	FMUL  Opcode = 106
	DMUL  Opcode = 107
	IDIV  Opcode = 108
	LDIV  Opcode = 109
	FDIV  Opcode = 110
	DDIV  Opcode = 111
	IREM  Opcode = 112
	LREM  Opcode = 113
	FREM  Opcode = 114
	DREM  Opcode = 115
	INEG  Opcode = 116
	LNEG  Opcode = 117
	FNEG  Opcode = 118
	DNEG  Opcode = 119
	ISHL  Opcode = 120
	LSHL  Opcode = 121
	ISHR  Opcode = 122
	LSHR  Opcode = 123
	IUSHR Opcode = 124
	LUSHR Opcode = 125
	IAND  Opcode = 126
	LAND  Opcode = 127
	IOR   Opcode = 128
	LOR   Opcode = 129
	IXOR  Opcode = 130
	LXOR  Opcode = 131
	IINC  Opcode = 132

	// Comparisons and jumps
	LCMP      Opcode = 148
	IFEQ      Opcode = 153
	IFNE      Opcode = 154
	IFLT      Opcode = 155
	IFGE      Opcode = 156
	IFGT      Opcode = 157
	IFLE      Opcode = 158
	IF_ICMPEQ Opcode = 159
	IF_ICMPNE Opcode = 160
	IF_ICMPLT Opcode = 161
	IF_ICMPGE Opcode = 162
	IF_ICMPGT Opcode = 163
	IF_ICMPLE Opcode = 164
	IF_ACMPEQ Opcode = 165
	IF_ACMPNE Opcode = 166
	GOTO      Opcode = 167

	// Returns
	IRETURN Opcode = 172
	LRETURN Opcode = 173
	FRETURN Opcode = 174
	DRETURN Opcode = 175
	ARETURN Opcode = 176
	RETURN  Opcode = 177

	// Fields and invocations
	GETSTATIC       Opcode = 178
	PUTSTATIC       Opcode = 179
	GETFIELD        Opcode = 180
	PUTFIELD        Opcode = 181
	INVOKEVIRTUAL   Opcode = 182
	INVOKESPECIAL   Opcode = 183
	INVOKESTATIC    Opcode = 184
	INVOKEINTERFACE Opcode = 185
	NEW             Opcode = 187
	ATHROW          Opcode = 191
	CHECKCAST       Opcode = 192
	INSTANCEOF      Opcode = 193
	IFNULL          Opcode = 198
	IFNONNULL       Opcode = 199
)

// OperandKind describes what follows an opcode in a listing.
type OperandKind int

const (
	// OperandNone means the opcode stands alone.
	OperandNone OperandKind = iota
	// OperandInt is a numeric immediate or local variable slot.
	OperandInt
	// OperandLabel is a branch destination.
	OperandLabel
	// OperandRef is a symbolic reference (owner.name descriptor, type name or constant).
	OperandRef
)

// OpcodeInfo contains information about an opcode.
type OpcodeInfo struct {
	Op      Opcode
	Name    string
	Operand OperandKind
}

var (
	infos  = make([]OpcodeInfo, 256)
	byName = make(map[string]Opcode, 128)
)

func init() {
	ops := []OpcodeInfo{
		{NOP, "NOP", OperandNone},
		{ACONST_NULL, "ACONST_NULL", OperandNone},
		{ICONST_M1, "ICONST_M1", OperandNone},
		{ICONST_0, "ICONST_0", OperandNone},
		{ICONST_1, "ICONST_1", OperandNone},
		{ICONST_2, "ICONST_2", OperandNone},
		{ICONST_3, "ICONST_3", OperandNone},
		{ICONST_4, "ICONST_4", OperandNone},
		{ICONST_5, "ICONST_5", OperandNone},
		{LCONST_0, "LCONST_0", OperandNone},
		{LCONST_1, "LCONST_1", OperandNone},
		{BIPUSH, "BIPUSH", OperandInt},
		{SIPUSH, "SIPUSH", OperandInt},
		{LDC, "LDC", OperandRef},
		{ILOAD, "ILOAD", OperandInt},
		{LLOAD, "LLOAD", OperandInt},
		{FLOAD, "FLOAD", OperandInt},
		{DLOAD, "DLOAD", OperandInt},
		{ALOAD, "ALOAD", OperandInt},
		{ISTORE, "ISTORE", OperandInt},
		{LSTORE, "LSTORE", OperandInt},
		{FSTORE, "FSTORE", OperandInt},
		{DSTORE, "DSTORE", OperandInt},
		{ASTORE, "ASTORE", OperandInt},
		{POP, "POP", OperandNone},
		{DUP, "DUP", OperandNone},
		{SWAP, "SWAP", OperandNone},
		{IADD, "IADD", OperandNone},
		{LADD, "LADD", OperandNone},
		{FADD, "FADD", OperandNone},
		{DADD, "DADD", OperandNone},
		{ISUB, "ISUB", OperandNone},
		{LSUB, "LSUB", OperandNone},
		{FSUB, "FSUB", OperandNone},
		{DSUB, "DSUB", OperandNone},
		{IMUL, "IMUL", OperandNone},
		{LMUL, "LMUL", OperandNone},
		{FMUL, "FMUL", OperandNone},
		{DMUL, "DMUL", OperandNone},
		{IDIV, "IDIV", OperandNone},
		{LDIV, "LDIV", OperandNone},
		{FDIV, "FDIV", OperandNone},
		{DDIV, "DDIV", OperandNone},
		{IREM, "IREM", OperandNone},
		{LREM, "LREM", OperandNone},
		{FREM, "FREM", OperandNone},
		{DREM, "DREM", OperandNone},
		{INEG, "INEG", OperandNone},
		{LNEG, "LNEG", OperandNone},
		{FNEG, "FNEG", OperandNone},
		{DNEG, "DNEG", OperandNone},
		{ISHL, "ISHL", OperandNone},
		{LSHL, "LSHL", OperandNone},
		{ISHR, "ISHR", OperandNone},
		{LSHR, "LSHR", OperandNone},
		{IUSHR, "IUSHR", OperandNone},
		{LUSHR, "LUSHR", OperandNone},
		{IAND, "IAND", OperandNone},
		{LAND, "LAND", OperandNone},
		{IOR, "IOR", OperandNone},
		{LOR, "LOR", OperandNone},
		{IXOR, "IXOR", OperandNone},
		{LXOR, "LXOR", OperandNone},
		{IINC, "IINC", OperandRef},
		{LCMP, "LCMP", OperandNone},
		{IFEQ, "IFEQ", OperandLabel},
		{IFNE, "IFNE", OperandLabel},
		{IFLT, "IFLT", OperandLabel},
		{IFGE, "IFGE", OperandLabel},
		{IFGT, "IFGT", OperandLabel},
		{IFLE, "IFLE", OperandLabel},
		{IF_ICMPEQ, "IF_ICMPEQ", OperandLabel},
		{IF_ICMPNE, "IF_ICMPNE", OperandLabel},
		{IF_ICMPLT, "IF_ICMPLT", OperandLabel},
		{IF_ICMPGE, "IF_ICMPGE", OperandLabel},
		{IF_ICMPGT, "IF_ICMPGT", OperandLabel},
		{IF_ICMPLE, "IF_ICMPLE", OperandLabel},
		{IF_ACMPEQ, "IF_ACMPEQ", OperandLabel},
		{IF_ACMPNE, "IF_ACMPNE", OperandLabel},
		{GOTO, "GOTO", OperandLabel},
		{IRETURN, "IRETURN", OperandNone},
		{LRETURN, "LRETURN", OperandNone},
		{FRETURN, "FRETURN", OperandNone},
		{DRETURN, "DRETURN", OperandNone},
		{ARETURN, "ARETURN", OperandNone},
		{RETURN, "RETURN", OperandNone},
		{GETSTATIC, "GETSTATIC", OperandRef},
		{PUTSTATIC, "PUTSTATIC", OperandRef},
		{GETFIELD, "GETFIELD", OperandRef},
		{PUTFIELD, "PUTFIELD", OperandRef},
		{INVOKEVIRTUAL, "INVOKEVIRTUAL", OperandRef},
		{INVOKESPECIAL, "INVOKESPECIAL", OperandRef},
		{INVOKESTATIC, "INVOKESTATIC", OperandRef},
		{INVOKEINTERFACE, "INVOKEINTERFACE", OperandRef},
		{NEW, "NEW", OperandRef},
		{ATHROW, "ATHROW", OperandNone},
		{CHECKCAST, "CHECKCAST", OperandRef},
		{INSTANCEOF, "INSTANCEOF", OperandRef},
		{IFNULL, "IFNULL", OperandLabel},
		{IFNONNULL, "IFNONNULL", OperandLabel},
	}

	for _, info := range ops {
		infos[info.Op] = info
		byName[info.Name] = info.Op
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(op Opcode) OpcodeInfo {
	return infos[op]
}

// OpcodeByName resolves a mnemonic such as "IFEQ" (case-insensitive).
func OpcodeByName(name string) (Opcode, bool) {
	op, ok := byName[strings.ToUpper(strings.TrimSpace(name))]
	return op, ok
}

// String returns the mnemonic, or "OP_<n>" for opcodes missing from the table.
func (op Opcode) String() string {
	if name := infos[op].Name; name != "" {
		return name
	}

	return "OP_" + strconv.Itoa(int(op))
}

// Known reports whether the opcode is present in the table.
func (op Opcode) Known() bool {
	return infos[op].Name != ""
}

// IsJump reports whether the opcode transfers control to a label.
func (op Opcode) IsJump() bool {
	return infos[op].Operand == OperandLabel
}
