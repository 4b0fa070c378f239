package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

const accountYAML = `class: com/example/Account
source: Account.java
annotations: [Deprecated]
methods:
  - name: check
    descriptor: (I)Z
    annotations: ["@Override"]
    code:
      # first branch
      - LINE 10
      - IFEQ L1
      - LINE 11
      - IFNE L2
      - LABEL L1
      - ICONST_0
      - IRETURN
      - LABEL L2
      - ICONST_1
      - IRETURN
  - name: total
    descriptor: (II)I
    code:
      - ILOAD 1
      - ILOAD 2
      - IADD
      - IRETURN
`

func TestLocalUnitFileAdapter_Decode(t *testing.T) {
	unit, err := NewLocalUnitFileAdapter().Decode("units/Account.unit.yaml", []byte(accountYAML))
	require.NoError(t, err)

	assert.Equal(t, "com/example/Account", unit.Name)
	assert.Equal(t, "com.example.Account", unit.ClassName())
	assert.Equal(t, "Account.java", unit.SourceFile)
	assert.Equal(t, []string{"Deprecated"}, unit.Annotations)
	assert.Equal(t, m.Path("units/Account.unit.yaml"), unit.Origin)

	require.Len(t, unit.Methods, 2)
	assert.Equal(t, "check", unit.Methods[0].Name)
	assert.Equal(t, []string{"@Override"}, unit.Methods[0].Annotations)
	assert.Equal(t, m.Jump(m.IFEQ, "L1"), unit.Methods[0].Code[1])
	assert.Len(t, unit.Methods[0].Code, 10)
	assert.Equal(t, m.Insn(m.IADD), unit.Methods[1].Code[2])
}

func TestLocalUnitFileAdapter_RoundTrip(t *testing.T) {
	adapter := NewLocalUnitFileAdapter()

	unit, err := adapter.Decode("Account.unit.yaml", []byte(accountYAML))
	require.NoError(t, err)

	content, err := adapter.Encode(unit)
	require.NoError(t, err)

	again, err := adapter.Decode("Account.unit.yaml", content)
	require.NoError(t, err)

	assert.Equal(t, unit, again)
	assert.Contains(t, string(content), "- IFEQ L1")
}

func TestLocalUnitFileAdapter_DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{"empty", "", "decode bad.unit.yaml"},
		{"no class", "methods: []\n", "missing class"},
		{"unknown field", "class: A\nfields: []\n", "fields"},
		{"bad instruction", "class: A\nmethods:\n  - name: m\n    descriptor: ()V\n    code: [FROB]\n", "method m()V: line 1"},
		{"nameless method", "class: A\nmethods:\n  - descriptor: ()V\n", "method without name"},
		{"duplicate method", "class: A\nmethods:\n  - name: m\n    descriptor: ()V\n  - name: m\n    descriptor: ()V\n", "duplicate method: A.m()V"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLocalUnitFileAdapter().Decode("bad.unit.yaml", []byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLocalUnitFileAdapter_DecodeFixtures(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "examples", "*", "*.unit.yaml"))
	require.NoError(t, err)
	require.Len(t, files, 4)

	adapter := NewLocalUnitFileAdapter()

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			content, err := os.ReadFile(file)
			require.NoError(t, err)

			unit, err := adapter.Decode(m.Path(file), content)
			require.NoError(t, err)

			assert.Contains(t, unit.Name, "com/example/")
			assert.NotEmpty(t, unit.Methods)
		})
	}
}
