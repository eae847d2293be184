// Package lang implements CodeParser for every grammar-backed and
// heuristic-structural language rlm indexes.
package lang

import "github.com/rlm-dev/rlm/internal/store"

// spec declares, per language, which grammar node kinds carry which kind of
// chunk and which field holds the declared identifier. Both tree-sitter
// binding families below are driven by the same spec shape.
type spec struct {
	lang string

	functionTypes  []string
	methodTypes    []string
	classTypes     []string
	interfaceTypes []string
	typeDefTypes   []string
	enumTypes      []string
	constantTypes  []string
	importTypes    []string
	callTypes      []string // call/invocation expressions, for reference extraction
	commentTypes   []string
	attributeTypes []string // attribute/annotation/decorator node kinds

	nameField   string // field name holding the declared identifier
	calleeField string // field name holding the callee in a call expression
}

func (s spec) kindOf(nodeType string) (store.ChunkKind, bool) {
	for _, t := range s.functionTypes {
		if t == nodeType {
			return store.KindFunction, true
		}
	}
	for _, t := range s.methodTypes {
		if t == nodeType {
			return store.KindMethod, true
		}
	}
	for _, t := range s.classTypes {
		if t == nodeType {
			return store.KindClass, true
		}
	}
	for _, t := range s.interfaceTypes {
		if t == nodeType {
			return store.KindInterface, true
		}
	}
	for _, t := range s.enumTypes {
		if t == nodeType {
			return store.KindEnum, true
		}
	}
	for _, t := range s.typeDefTypes {
		if t == nodeType {
			return store.KindType, true
		}
	}
	for _, t := range s.constantTypes {
		if t == nodeType {
			return store.KindConstant, true
		}
	}
	return "", false
}

func (s spec) isContainer(k store.ChunkKind) bool {
	return k == store.KindClass || k == store.KindInterface || k == store.KindEnum || k == store.KindType
}

func (s spec) isImport(nodeType string) bool {
	for _, t := range s.importTypes {
		if t == nodeType {
			return true
		}
	}
	return false
}

func (s spec) isCall(nodeType string) bool {
	for _, t := range s.callTypes {
		if t == nodeType {
			return true
		}
	}
	return false
}

func (s spec) isComment(nodeType string) bool {
	for _, t := range s.commentTypes {
		if t == nodeType {
			return true
		}
	}
	return false
}

func (s spec) isAttribute(nodeType string) bool {
	for _, t := range s.attributeTypes {
		if t == nodeType {
			return true
		}
	}
	return false
}

var rustSpec = spec{
	lang:           "rust",
	functionTypes:  []string{"function_item"},
	methodTypes:    []string{},
	classTypes:     []string{"struct_item"},
	interfaceTypes: []string{"trait_item"},
	typeDefTypes:   []string{"type_item", "impl_item"},
	enumTypes:      []string{"enum_item"},
	constantTypes:  []string{"const_item", "static_item"},
	importTypes:    []string{"use_declaration"},
	callTypes:      []string{"call_expression"},
	commentTypes:   []string{"line_comment", "block_comment"},
	attributeTypes: []string{"attribute_item"},
	nameField:      "name",
	calleeField:    "function",
}

var javaSpec = spec{
	lang:           "java",
	functionTypes:  []string{},
	methodTypes:    []string{"method_declaration", "constructor_declaration"},
	classTypes:     []string{"class_declaration"},
	interfaceTypes: []string{"interface_declaration"},
	typeDefTypes:   []string{},
	enumTypes:      []string{"enum_declaration"},
	constantTypes:  []string{"field_declaration"},
	importTypes:    []string{"import_declaration"},
	callTypes:      []string{"method_invocation"},
	commentTypes:   []string{"line_comment", "block_comment"},
	attributeTypes: []string{"marker_annotation", "annotation"},
	nameField:      "name",
	calleeField:    "name",
}

var pythonSpec = spec{
	lang:           "python",
	functionTypes:  []string{"function_definition"},
	methodTypes:    []string{},
	classTypes:     []string{"class_definition"},
	interfaceTypes: []string{},
	typeDefTypes:   []string{},
	enumTypes:      []string{},
	constantTypes:  []string{},
	importTypes:    []string{"import_statement", "import_from_statement"},
	callTypes:      []string{"call"},
	commentTypes:   []string{"comment"},
	nameField:      "name",
	calleeField:    "function",
}

var phpSpec = spec{
	lang:           "php",
	functionTypes:  []string{"function_definition"},
	methodTypes:    []string{"method_declaration"},
	classTypes:     []string{"class_declaration"},
	interfaceTypes: []string{"interface_declaration"},
	typeDefTypes:   []string{},
	enumTypes:      []string{"enum_declaration"},
	constantTypes:  []string{"const_declaration"},
	importTypes:    []string{"namespace_use_declaration"},
	callTypes:      []string{"function_call_expression"},
	commentTypes:   []string{"comment"},
	attributeTypes: []string{"attribute_list"},
	nameField:      "name",
	calleeField:    "function",
}

var cSpec = spec{
	lang:           "c",
	functionTypes:  []string{"function_definition"},
	methodTypes:    []string{},
	classTypes:     []string{"struct_specifier"},
	interfaceTypes: []string{},
	typeDefTypes:   []string{"type_definition"},
	enumTypes:      []string{"enum_specifier"},
	constantTypes:  []string{},
	importTypes:    []string{"preproc_include"},
	callTypes:      []string{"call_expression"},
	commentTypes:   []string{"comment"},
	nameField:      "name",
	calleeField:    "function",
}

var rubySpec = spec{
	lang:           "ruby",
	functionTypes:  []string{"method"},
	methodTypes:    []string{"singleton_method"},
	classTypes:     []string{"class"},
	interfaceTypes: []string{"module"},
	typeDefTypes:   []string{},
	enumTypes:      []string{},
	constantTypes:  []string{"assignment"},
	importTypes:    []string{"call"}, // require/require_relative surface as call nodes
	callTypes:      []string{"call"},
	commentTypes:   []string{"comment"},
	nameField:      "name",
	calleeField:    "method",
}

var goSpec = spec{
	lang:           "go",
	functionTypes:  []string{"function_declaration"},
	methodTypes:    []string{"method_declaration"},
	classTypes:     []string{},
	interfaceTypes: []string{},
	typeDefTypes:   []string{"type_declaration"},
	enumTypes:      []string{},
	constantTypes:  []string{"const_declaration"},
	importTypes:    []string{"import_declaration"},
	callTypes:      []string{"call_expression"},
	commentTypes:   []string{"comment"},
	nameField:      "name",
	calleeField:    "function",
}

var javascriptSpec = spec{
	lang:           "javascript",
	functionTypes:  []string{"function_declaration", "function"},
	methodTypes:    []string{"method_definition"},
	classTypes:     []string{"class_declaration"},
	interfaceTypes: []string{},
	typeDefTypes:   []string{},
	enumTypes:      []string{},
	constantTypes:  []string{"lexical_declaration"},
	importTypes:    []string{"import_statement"},
	callTypes:      []string{"call_expression"},
	commentTypes:   []string{"comment"},
	nameField:      "name",
	calleeField:    "function",
}

var typescriptSpec = spec{
	lang:           "typescript",
	functionTypes:  []string{"function_declaration"},
	methodTypes:    []string{"method_definition"},
	classTypes:     []string{"class_declaration"},
	interfaceTypes: []string{"interface_declaration"},
	typeDefTypes:   []string{"type_alias_declaration"},
	enumTypes:      []string{"enum_declaration"},
	constantTypes:  []string{"lexical_declaration"},
	importTypes:    []string{"import_statement"},
	callTypes:      []string{"call_expression"},
	commentTypes:   []string{"comment"},
	attributeTypes: []string{"decorator"},
	nameField:      "name",
	calleeField:    "function",
}

var tsxSpec = spec{
	lang:           "tsx",
	functionTypes:  typescriptSpec.functionTypes,
	methodTypes:    typescriptSpec.methodTypes,
	classTypes:     typescriptSpec.classTypes,
	interfaceTypes: typescriptSpec.interfaceTypes,
	typeDefTypes:   typescriptSpec.typeDefTypes,
	enumTypes:      typescriptSpec.enumTypes,
	constantTypes:  typescriptSpec.constantTypes,
	importTypes:    typescriptSpec.importTypes,
	callTypes:      typescriptSpec.callTypes,
	commentTypes:   typescriptSpec.commentTypes,
	attributeTypes: typescriptSpec.attributeTypes,
	nameField:      typescriptSpec.nameField,
	calleeField:    typescriptSpec.calleeField,
}
