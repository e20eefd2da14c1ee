// Package classify implements the Mutation Classifier: given the old
// and new content of a file, decide whether its exported API surface
// changed (spec §4.D).
package classify

import (
	"fmt"
	"strings"

	"intentguard/internal/hasher"
)

// Class is the mutation classification outcome.
type Class string

const (
	ClassASTRefactor    Class = "AST_REFACTOR"
	ClassIntentEvoluted Class = "INTENT_EVOLUTION"
	ClassUnknown        Class = "UNKNOWN"
)

// Classification is the result of classifying one mutation, per spec §3.
type Classification struct {
	MutationClass Class
	Reason        string
	Added         []hasher.ExportSignature
	Removed       []hasher.ExportSignature
	Changed       []string
}

// Classify compares the exported API surface of oldContent and
// newContent at path, following the same parse path as the Structural
// Hasher (spec §4.C). Both nil/empty contents are valid (e.g. new-file
// or deleted-file cases use the present side only).
func Classify(path string, oldContent, newContent []byte) Classification {
	oldSigs := hasher.ExtractExportSignatures(path, oldContent)
	newSigs := hasher.ExtractExportSignatures(path, newContent)

	if len(oldSigs) == 0 && len(newSigs) == 0 {
		return Classification{
			MutationClass: ClassUnknown,
			Reason:        "non-source or parse failure",
		}
	}

	oldByKey := toMap(oldSigs)
	newByKey := toMap(newSigs)

	var added, removed []hasher.ExportSignature
	var changed []string

	for key, sig := range newByKey {
		if _, ok := oldByKey[key]; !ok {
			added = append(added, sig)
		}
	}
	for key, sig := range oldByKey {
		if _, ok := newByKey[key]; !ok {
			removed = append(removed, sig)
		}
	}
	for key, oldSig := range oldByKey {
		newSig, ok := newByKey[key]
		if !ok {
			continue
		}
		if oldSig.Kind != newSig.Kind {
			changed = append(changed, fmt.Sprintf("%s → %s", oldSig.Format(), newSig.Format()))
			continue
		}
		if oldSig.Kind == "fn" && paramCountDiffers(oldSig, newSig) {
			changed = append(changed, fmt.Sprintf("%s → %s", oldSig.Format(), newSig.Format()))
		}
	}

	if len(added) == 0 && len(removed) == 0 && len(changed) == 0 {
		return Classification{
			MutationClass: ClassASTRefactor,
			Reason:        "Exported API surface unchanged — internal refactor only",
		}
	}

	return Classification{
		MutationClass: ClassIntentEvoluted,
		Reason:        summarize(added, removed, changed),
		Added:         added,
		Removed:       removed,
		Changed:       changed,
	}
}

func toMap(sigs []hasher.ExportSignature) map[string]hasher.ExportSignature {
	m := make(map[string]hasher.ExportSignature, len(sigs))
	for _, s := range sigs {
		m[s.Key()] = s
	}
	return m
}

func paramCountDiffers(a, b hasher.ExportSignature) bool {
	switch {
	case a.ParamCount == nil && b.ParamCount == nil:
		return false
	case a.ParamCount == nil || b.ParamCount == nil:
		return true
	default:
		return *a.ParamCount != *b.ParamCount
	}
}

func summarize(added, removed []hasher.ExportSignature, changed []string) string {
	var parts []string
	if n := len(added); n > 0 {
		parts = append(parts, fmt.Sprintf("%d added (%s)", n, formatAll(added)))
	}
	if n := len(removed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d removed (%s)", n, formatAll(removed)))
	}
	if n := len(changed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d changed (%s)", n, strings.Join(changed, ", ")))
	}
	return "Exported API surface changed: " + strings.Join(parts, "; ")
}

func formatAll(sigs []hasher.ExportSignature) string {
	formatted := make([]string, len(sigs))
	for i, s := range sigs {
		formatted[i] = s.Format()
	}
	return strings.Join(formatted, ", ")
}
