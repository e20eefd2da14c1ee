package hasher

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// walkTopLevel walks the top-level statement list of root, producing a
// fingerprintNode for each recognized declaration in source order. Only
// the declarations named in spec §4.C's table are recognized; anything
// else is skipped (it contributes nothing to the fingerprint or the
// export surface, same as the original's "unrecognized node" case).
func walkTopLevel(root *sitter.Node, source []byte) []fingerprintNode {
	var nodes []fingerprintNode
	count := int(root.NamedChildCount())
	for i := 0; i < count; i++ {
		child := root.NamedChild(i)
		nodes = append(nodes, walkStatement(child, source)...)
	}
	return nodes
}

// walkStatement classifies a single top-level statement, unwrapping
// export_statement wrappers so the inner declaration inherits
// exported=true, per spec §4.C's "Exported wrapper" row.
func walkStatement(n *sitter.Node, source []byte) []fingerprintNode {
	switch n.Type() {
	case "export_statement":
		return walkExportStatement(n, source)
	case "class_declaration":
		return []fingerprintNode{declClass(n, source, hasExport(n))}
	case "interface_declaration":
		return []fingerprintNode{declInterface(n, source, hasExport(n))}
	case "type_alias_declaration":
		return []fingerprintNode{declTypeAlias(n, source, hasExport(n))}
	case "function_declaration", "generator_function_declaration":
		return []fingerprintNode{declFunc(n, source, hasExport(n))}
	case "lexical_declaration", "variable_declaration":
		return declVars(n, source, hasExport(n))
	default:
		return nil
	}
}

func walkExportStatement(n *sitter.Node, source []byte) []fingerprintNode {
	// Default export: "export default <expr-or-decl>". Checked first, since
	// a named default declaration also fills the "declaration" field.
	if isDefaultExport(n) {
		return []fingerprintNode{declDefaultExport(n, source)}
	}

	// Exported wrapper: "export <declaration>" — the inner declaration
	// inherits exported=true.
	if clause := n.ChildByFieldName("declaration"); clause != nil {
		switch clause.Type() {
		case "class_declaration":
			return []fingerprintNode{declClass(clause, source, true)}
		case "interface_declaration":
			return []fingerprintNode{declInterface(clause, source, true)}
		case "type_alias_declaration":
			return []fingerprintNode{declTypeAlias(clause, source, true)}
		case "function_declaration", "generator_function_declaration":
			return []fingerprintNode{declFunc(clause, source, true)}
		case "lexical_declaration", "variable_declaration":
			return declVars(clause, source, true)
		default:
			return nil
		}
	}

	// Re-export specifier list: "export { a, b as c }". An
	// "export * from ..." has no export_clause and yields no node.
	count := int(n.NamedChildCount())
	var out []fingerprintNode
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if child.Type() == "export_clause" {
			out = append(out, declExportRefs(child, source)...)
		}
	}
	return out
}

func isDefaultExport(n *sitter.Node) bool {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if n.Child(i).Type() == "default" {
			return true
		}
	}
	return false
}

func declClass(n *sitter.Node, source []byte, exported bool) fingerprintNode {
	name := fieldText(n, "name", source)
	return fingerprintNode{
		TypeTag:  "class",
		Name:     name,
		Exported: exported,
		Children: bodyChildTypes(n.ChildByFieldName("body"), source),
	}
}

func declInterface(n *sitter.Node, source []byte, exported bool) fingerprintNode {
	name := fieldText(n, "name", source)
	return fingerprintNode{
		TypeTag:  "interface",
		Name:     name,
		Exported: exported,
		Children: bodyChildTypes(n.ChildByFieldName("body"), source),
	}
}

func declTypeAlias(n *sitter.Node, source []byte, exported bool) fingerprintNode {
	name := fieldText(n, "name", source)
	return fingerprintNode{
		TypeTag:  "type-alias",
		Name:     name,
		Exported: exported,
		Children: []string{},
	}
}

func declFunc(n *sitter.Node, source []byte, exported bool) fingerprintNode {
	name := fieldText(n, "name", source)
	arity := countParams(n.ChildByFieldName("parameters"))
	return fingerprintNode{
		TypeTag:    "fn",
		Name:       name,
		ParamCount: &arity,
		Exported:   exported,
		Children:   bodyChildTypes(n.ChildByFieldName("body"), source),
	}
}

func declVars(n *sitter.Node, source []byte, exported bool) []fingerprintNode {
	var out []fingerprintNode
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		declarator := n.NamedChild(i)
		if declarator.Type() != "variable_declarator" {
			continue
		}
		name := fieldText(declarator, "name", source)
		initType := "unknown"
		if init := declarator.ChildByFieldName("value"); init != nil {
			initType = init.Type()
		}
		out = append(out, fingerprintNode{
			TypeTag:  "var",
			Name:     name,
			Exported: exported,
			Children: []string{initType},
		})
	}
	return out
}

func declDefaultExport(n *sitter.Node, source []byte) fingerprintNode {
	// Find the exported value/declaration child (the node after "default").
	count := int(n.ChildCount())
	var target *sitter.Node
	seenDefault := false
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if seenDefault && c.IsNamed() {
			target = c
			break
		}
		if c.Type() == "default" {
			seenDefault = true
		}
	}

	name := "default"
	if target != nil {
		if nameField := target.ChildByFieldName("name"); nameField != nil {
			name = fieldTextOf(nameField, source)
		} else {
			name = target.Type()
		}
	}

	return fingerprintNode{
		TypeTag:  "export-default",
		Name:     name,
		Exported: true,
		Children: []string{},
	}
}

func declExportRefs(clause *sitter.Node, source []byte) []fingerprintNode {
	var out []fingerprintNode
	count := int(clause.NamedChildCount())
	for i := 0; i < count; i++ {
		spec := clause.NamedChild(i)
		if spec.Type() != "export_specifier" {
			continue
		}
		name := fieldText(spec, "alias", source)
		if name == "" {
			name = fieldText(spec, "name", source)
		}
		out = append(out, fingerprintNode{
			TypeTag:  "export-ref",
			Name:     name,
			Exported: true,
			Children: []string{},
		})
	}
	return out
}

// bodyChildTypes returns the type tags of a body node's immediate named
// children, used as the "children" projection for class/interface/
// function declarations. A nil body yields an empty (non-nil) slice so
// JSON serialization always emits "[]" rather than "null".
func bodyChildTypes(body *sitter.Node, source []byte) []string {
	out := []string{}
	if body == nil {
		return out
	}
	count := int(body.NamedChildCount())
	for i := 0; i < count; i++ {
		out = append(out, body.NamedChild(i).Type())
	}
	return out
}

func countParams(params *sitter.Node) int {
	if params == nil {
		return 0
	}
	return int(params.NamedChildCount())
}

func fieldText(n *sitter.Node, field string, source []byte) string {
	f := n.ChildByFieldName(field)
	if f == nil {
		return ""
	}
	return fieldTextOf(f, source)
}

func fieldTextOf(n *sitter.Node, source []byte) string {
	return trimmedContent(n, source)
}
