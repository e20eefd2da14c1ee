package hasher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"

	"github.com/gowebpki/jcs"
)

var parser = newSourceParser()

// ComputeFingerprint produces the content fingerprint for a file, per
// spec §4.C: an AST fingerprint for a supported, parseable extension, or
// a raw SHA-256 fallback otherwise.
func ComputeFingerprint(path string, content []byte) Fingerprint {
	ext := filepath.Ext(path)
	if !IsSupportedExtension(ext) {
		return rawFingerprint(content)
	}

	nodes, err := parseDeclarations(lowerExt(ext), content)
	if err != nil {
		return rawFingerprint(content)
	}

	hash, err := canonicalHash(nodes)
	if err != nil {
		return rawFingerprint(content)
	}

	return Fingerprint{
		Hash:      "ast-sha256:" + hash,
		Method:    MethodAST,
		NodeCount: len(nodes),
	}
}

func rawFingerprint(content []byte) Fingerprint {
	sum := sha256.Sum256(content)
	return Fingerprint{
		Hash:      "raw-sha256:" + hex.EncodeToString(sum[:]),
		Method:    MethodRaw,
		NodeCount: 0,
	}
}

// RawHash computes the bare raw-sha256 fingerprint hash string for
// content, used by the Optimistic Lock Guard to compare against a
// caller-declared read_hash without needing a full Fingerprint value.
func RawHash(content []byte) string {
	return rawFingerprint(content).Hash
}

func parseDeclarations(ext string, content []byte) ([]fingerprintNode, error) {
	ctx := context.Background()
	root, err := parser.parse(ctx, ext, content)
	if err != nil {
		return nil, err
	}
	return walkTopLevel(root, content), nil
}

// ExtractExportSignatures returns the exported declarations of content
// as ExportSignatures, used by the Mutation Classifier. Non-source
// files or parse failures yield nil.
func ExtractExportSignatures(path string, content []byte) []ExportSignature {
	ext := filepath.Ext(path)
	if !IsSupportedExtension(ext) {
		return nil
	}

	nodes, err := parseDeclarations(lowerExt(ext), content)
	if err != nil {
		return nil
	}

	sigs := make([]ExportSignature, 0, len(nodes))
	for _, n := range nodes {
		if !n.Exported {
			continue
		}
		sigs = append(sigs, ExportSignature{
			Kind:       kindFor(n.TypeTag),
			Name:       n.Name,
			ParamCount: n.ParamCount,
		})
	}
	return sigs
}

// kindFor maps a fingerprint node's type_tag to the Export Signature
// kind vocabulary of spec §3: {fn, class, interface, type, var, ref, default}.
func kindFor(typeTag string) string {
	switch typeTag {
	case "type-alias":
		return "type"
	case "export-ref":
		return "ref"
	case "export-default":
		return "default"
	default:
		return typeTag
	}
}

// canonicalHash serializes nodes as canonical JSON (RFC 8785: sorted
// keys, no insignificant whitespace) via the dedicated JCS library, and
// returns the hex SHA-256 digest of that serialization.
func canonicalHash(nodes []fingerprintNode) (string, error) {
	if nodes == nil {
		nodes = []fingerprintNode{}
	}
	raw, err := json.Marshal(nodes)
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
