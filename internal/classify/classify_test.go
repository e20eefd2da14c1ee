package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"intentguard/internal/hasher"
)

const v1 = `export function add(a, b) {
  return a + b;
}
`

// v1Reformatted is semantically identical to v1 (same exported surface,
// same arity) but reshuffled whitespace — must classify as AST_REFACTOR.
const v1Reformatted = `export function add(a, b) {
        return a + b;
}

// a trailing comment
`

const v2NewExport = `export function add(a, b) {
  return a + b;
}

export function subtract(a, b) {
  return a - b;
}
`

const v2ArityChange = `export function add(a, b, c) {
  return a + b + c;
}
`

// TestClassify_Tautology exercises invariant 5: for any content, content
// classified against itself is always AST_REFACTOR (or UNKNOWN for
// non-source), never INTENT_EVOLUTION.
func TestClassify_Tautology(t *testing.T) {
	for _, content := range []string{v1, v2NewExport, v2ArityChange} {
		result := Classify("calc.ts", []byte(content), []byte(content))
		require.Equal(t, ClassASTRefactor, result.MutationClass)
	}
}

func TestClassify_PureReformatIsASTRefactor(t *testing.T) {
	result := Classify("calc.ts", []byte(v1), []byte(v1Reformatted))
	require.Equal(t, ClassASTRefactor, result.MutationClass)
	require.Empty(t, result.Added)
	require.Empty(t, result.Removed)
}

func TestClassify_NewExportIsIntentEvolution(t *testing.T) {
	result := Classify("calc.ts", []byte(v1), []byte(v2NewExport))
	require.Equal(t, ClassIntentEvoluted, result.MutationClass)
	require.Len(t, result.Added, 1)
	require.Equal(t, "subtract", result.Added[0].Name)
}

func TestClassify_ArityChangeIsIntentEvolution(t *testing.T) {
	result := Classify("calc.ts", []byte(v1), []byte(v2ArityChange))
	require.Equal(t, ClassIntentEvoluted, result.MutationClass)
	require.NotEmpty(t, result.Changed)
}

func TestClassify_RemovedExportIsIntentEvolution(t *testing.T) {
	result := Classify("calc.ts", []byte(v2NewExport), []byte(v1))
	require.Equal(t, ClassIntentEvoluted, result.MutationClass)
	require.Len(t, result.Removed, 1)
	require.Equal(t, "subtract", result.Removed[0].Name)
}

func TestClassify_BothEmptyIsUnknown(t *testing.T) {
	result := Classify("notes.txt", nil, nil)
	require.Equal(t, ClassUnknown, result.MutationClass)
}

func TestClassify_NewFileAllExportsAreAdded(t *testing.T) {
	result := Classify("calc.ts", nil, []byte(v1))
	require.Equal(t, ClassIntentEvoluted, result.MutationClass)
	require.Len(t, result.Added, 1)
}

// TestClassify_AddedSignatureMatchesDirectExtraction cross-checks the
// classifier's Added slice against extracting signatures directly,
// using go-cmp for a structural deep-equality diff rather than
// field-by-field assertions.
func TestClassify_AddedSignatureMatchesDirectExtraction(t *testing.T) {
	result := Classify("calc.ts", []byte(v1), []byte(v2NewExport))
	require.Len(t, result.Added, 1)

	direct := hasher.ExtractExportSignatures("calc.ts", []byte(v2NewExport))
	var subtract *hasher.ExportSignature
	for _, s := range direct {
		if s.Name == "subtract" {
			sig := s
			subtract = &sig
		}
	}
	require.NotNil(t, subtract)

	if diff := cmp.Diff(*subtract, result.Added[0]); diff != "" {
		t.Fatalf("added signature mismatch (-direct +classified):\n%s", diff)
	}
}
