package domain_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"bytemut.dev/pkg/bytemut/internal/adapter"
	m "bytemut.dev/pkg/bytemut/internal/model"
)

// accountYAML holds five default candidates: two negations in check, then a
// math candidate, a negation and a boundary candidate in deposit.
const accountYAML = `class: com/example/Account
source: Account.java
methods:
  - name: check
    descriptor: (I)Z
    code:
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
  - name: deposit
    descriptor: (II)I
    code:
      - LINE 20
      - ILOAD 1
      - ILOAD 2
      - IADD
      - LINE 21
      - ILOAD 2
      - IFLE L3
      - IRETURN
      - LABEL L3
      - ICONST_0
      - IRETURN
`

// ledgerYAML holds two math candidates.
const ledgerYAML = `class: com/example/Ledger
source: Ledger.java
methods:
  - name: net
    descriptor: (II)I
    code:
      - LINE 5
      - ILOAD 1
      - ILOAD 2
      - ISUB
      - LINE 6
      - ILOAD 1
      - IMUL
      - IRETURN
`

const (
	accountCandidates = 5
	ledgerCandidates  = 2
)

type fixture struct {
	dir     string
	account m.Path
	ledger  m.Path
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	dir := t.TempDir()

	return fixture{
		dir:     dir,
		account: writeUnit(t, dir, "Account", accountYAML),
		ledger:  writeUnit(t, dir, "Ledger", ledgerYAML),
	}
}

func writeUnit(t *testing.T, dir, name, content string) m.Path {
	t.Helper()

	path := filepath.Join(dir, name+adapter.UnitFileSuffix)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return m.Path(path)
}

func candidateIDs(candidates []m.Candidate) []string {
	ids := make([]string, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.Details.ID.String())
	}

	return ids
}

func reportIDs(reports []m.Report) []string {
	ids := make([]string, 0, len(reports))
	for _, r := range reports {
		ids = append(ids, r.Candidate.Details.ID.String())
	}

	return ids
}

// changedLines splits the body of a unified diff into removed and added lines.
func changedLines(diff string) (removed, added []string) {
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		case strings.HasPrefix(line, "-"):
			removed = append(removed, line)
		case strings.HasPrefix(line, "+"):
			added = append(added, line)
		}
	}

	return removed, added
}

func mustRead(t *testing.T, path m.Path) []byte {
	t.Helper()

	content, err := os.ReadFile(string(path))
	require.NoError(t, err)

	return content
}
