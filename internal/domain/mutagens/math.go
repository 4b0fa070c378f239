package mutagens

import (
	"fmt"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

type numericType struct {
	name string
	ops  map[string]m.Opcode
}

var numericTypes = []numericType{
	{"integer", map[string]m.Opcode{
		"addition": m.IADD, "subtraction": m.ISUB, "multiplication": m.IMUL, "division": m.IDIV,
		"modulus": m.IREM, "bitwise AND": m.IAND, "bitwise OR": m.IOR, "XOR": m.IXOR,
		"shift left": m.ISHL, "shift right": m.ISHR, "unsigned shift right": m.IUSHR,
	}},
	{"long", map[string]m.Opcode{
		"addition": m.LADD, "subtraction": m.LSUB, "multiplication": m.LMUL, "division": m.LDIV,
		"modulus": m.LREM, "bitwise AND": m.LAND, "bitwise OR": m.LOR, "XOR": m.LXOR,
		"shift left": m.LSHL, "shift right": m.LSHR, "unsigned shift right": m.LUSHR,
	}},
	{"float", map[string]m.Opcode{
		"addition": m.FADD, "subtraction": m.FSUB, "multiplication": m.FMUL, "division": m.FDIV,
		"modulus": m.FREM,
	}},
	{"double", map[string]m.Opcode{
		"addition": m.DADD, "subtraction": m.DSUB, "multiplication": m.DMUL, "division": m.DDIV,
		"modulus": m.DREM,
	}},
}

// operation -> replacement operation
var mathReplacements = map[string]string{
	"addition":             "subtraction",
	"subtraction":          "addition",
	"multiplication":       "division",
	"division":             "multiplication",
	"modulus":              "multiplication",
	"bitwise AND":          "bitwise OR",
	"bitwise OR":           "bitwise AND",
	"XOR":                  "bitwise AND",
	"shift left":           "shift right",
	"shift right":          "shift left",
	"unsigned shift right": "shift left",
}

func buildMathTable() Table {
	table := Table{}

	for _, typ := range numericTypes {
		for op, from := range typ.ops {
			to, ok := typ.ops[mathReplacements[op]]
			if !ok {
				continue
			}

			table[from] = Substitution{
				Replacement: to,
				Description: fmt.Sprintf("Replaced %s %s with %s", typ.name, op, mathReplacements[op]),
			}
		}
	}

	return table
}

var math = mustTableKind("bytemut.mutagens.Math", "MATH", buildMathTable())

// Math replaces binary arithmetic operators with another operator.
func Math() TableKind {
	return math
}

const removedNegation = "removed negation"

// Many-to-one: every negation becomes a NOP.
var invertNegs = mustTableKind(
	"bytemut.mutagens.InvertNegs",
	"INVERT_NEGS",
	Table{
		m.INEG: {m.NOP, removedNegation},
		m.LNEG: {m.NOP, removedNegation},
		m.FNEG: {m.NOP, removedNegation},
		m.DNEG: {m.NOP, removedNegation},
	},
)

// InvertNegs drops unary negation.
func InvertNegs() TableKind {
	return invertNegs
}
