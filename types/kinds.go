package types

import (
	"github.com/xorpse/sourcetrail/sterrors"
)

// The tag sets below are persisted as integer discriminants and parsed back
// by the Sourcetrail GUI. The values are part of the on-disk format and must
// never be renumbered. Unknown values read back from storage are rejected as
// decode failures rather than defaulted.

// NodeKind identifies the concrete entity a graph node represents.
type NodeKind int32

const (
	NodeKindSymbol         NodeKind = 1 << 0
	NodeKindType           NodeKind = 1 << 1
	NodeKindBuiltinType    NodeKind = 1 << 2
	NodeKindModule         NodeKind = 1 << 3
	NodeKindNamespace      NodeKind = 1 << 4
	NodeKindPackage        NodeKind = 1 << 5
	NodeKindStruct         NodeKind = 1 << 6
	NodeKindClass          NodeKind = 1 << 7
	NodeKindInterface      NodeKind = 1 << 8
	NodeKindAnnotation     NodeKind = 1 << 9
	NodeKindGlobalVariable NodeKind = 1 << 10
	NodeKindField          NodeKind = 1 << 11
	NodeKindFunction       NodeKind = 1 << 12
	NodeKindMethod         NodeKind = 1 << 13
	NodeKindEnum           NodeKind = 1 << 14
	NodeKindEnumConstant   NodeKind = 1 << 15
	NodeKindTypedef        NodeKind = 1 << 16
	NodeKindTypeParameter  NodeKind = 1 << 17
	NodeKindFile           NodeKind = 1 << 18
	NodeKindMacro          NodeKind = 1 << 19
	NodeKindUnion          NodeKind = 1 << 20
)

// NodeKindFromInt converts a persisted discriminant back to a NodeKind.
func NodeKindFromInt(v int32) (NodeKind, error) {
	k := NodeKind(v)
	switch k {
	case NodeKindSymbol, NodeKindType, NodeKindBuiltinType, NodeKindModule,
		NodeKindNamespace, NodeKindPackage, NodeKindStruct, NodeKindClass,
		NodeKindInterface, NodeKindAnnotation, NodeKindGlobalVariable,
		NodeKindField, NodeKindFunction, NodeKindMethod, NodeKindEnum,
		NodeKindEnumConstant, NodeKindTypedef, NodeKindTypeParameter,
		NodeKindFile, NodeKindMacro, NodeKindUnion:
		return k, nil
	}
	return 0, sterrors.Decodef("unknown node kind %d", v)
}

func (k NodeKind) String() string {
	switch k {
	case NodeKindSymbol:
		return "symbol"
	case NodeKindType:
		return "type"
	case NodeKindBuiltinType:
		return "builtin_type"
	case NodeKindModule:
		return "module"
	case NodeKindNamespace:
		return "namespace"
	case NodeKindPackage:
		return "package"
	case NodeKindStruct:
		return "struct"
	case NodeKindClass:
		return "class"
	case NodeKindInterface:
		return "interface"
	case NodeKindAnnotation:
		return "annotation"
	case NodeKindGlobalVariable:
		return "global_variable"
	case NodeKindField:
		return "field"
	case NodeKindFunction:
		return "function"
	case NodeKindMethod:
		return "method"
	case NodeKindEnum:
		return "enum"
	case NodeKindEnumConstant:
		return "enum_constant"
	case NodeKindTypedef:
		return "typedef"
	case NodeKindTypeParameter:
		return "type_parameter"
	case NodeKindFile:
		return "file"
	case NodeKindMacro:
		return "macro"
	case NodeKindUnion:
		return "union"
	default:
		return "unknown"
	}
}

// EdgeKind identifies the relationship an edge records.
type EdgeKind int32

const (
	EdgeKindUndefined              EdgeKind = 0
	EdgeKindMember                 EdgeKind = 1 << 0
	EdgeKindTypeUsage              EdgeKind = 1 << 1
	EdgeKindUsage                  EdgeKind = 1 << 2
	EdgeKindCall                   EdgeKind = 1 << 3
	EdgeKindInheritance            EdgeKind = 1 << 4
	EdgeKindOverride               EdgeKind = 1 << 5
	EdgeKindTypeArgument           EdgeKind = 1 << 6
	EdgeKindTemplateSpecialization EdgeKind = 1 << 7
	EdgeKindInclude                EdgeKind = 1 << 8
	EdgeKindImport                 EdgeKind = 1 << 9
	EdgeKindBundledEdges           EdgeKind = 1 << 10
	EdgeKindMacroUsage             EdgeKind = 1 << 11
	EdgeKindAnnotationUsage        EdgeKind = 1 << 12
)

// EdgeKindFromInt converts a persisted discriminant back to an EdgeKind.
func EdgeKindFromInt(v int32) (EdgeKind, error) {
	k := EdgeKind(v)
	switch k {
	case EdgeKindUndefined, EdgeKindMember, EdgeKindTypeUsage, EdgeKindUsage,
		EdgeKindCall, EdgeKindInheritance, EdgeKindOverride,
		EdgeKindTypeArgument, EdgeKindTemplateSpecialization, EdgeKindInclude,
		EdgeKindImport, EdgeKindBundledEdges, EdgeKindMacroUsage,
		EdgeKindAnnotationUsage:
		return k, nil
	}
	return 0, sterrors.Decodef("unknown edge kind %d", v)
}

func (k EdgeKind) String() string {
	switch k {
	case EdgeKindUndefined:
		return "undefined"
	case EdgeKindMember:
		return "member"
	case EdgeKindTypeUsage:
		return "type_usage"
	case EdgeKindUsage:
		return "usage"
	case EdgeKindCall:
		return "call"
	case EdgeKindInheritance:
		return "inheritance"
	case EdgeKindOverride:
		return "override"
	case EdgeKindTypeArgument:
		return "type_argument"
	case EdgeKindTemplateSpecialization:
		return "template_specialization"
	case EdgeKindInclude:
		return "include"
	case EdgeKindImport:
		return "import"
	case EdgeKindBundledEdges:
		return "bundled_edges"
	case EdgeKindMacroUsage:
		return "macro_usage"
	case EdgeKindAnnotationUsage:
		return "annotation_usage"
	default:
		return "unknown"
	}
}

// DefinitionKind records how a symbol definition was established.
type DefinitionKind int32

const (
	DefinitionNone     DefinitionKind = 0
	DefinitionImplicit DefinitionKind = 1
	DefinitionExplicit DefinitionKind = 2
)

// DefinitionKindFromInt converts a persisted discriminant back to a
// DefinitionKind.
func DefinitionKindFromInt(v int32) (DefinitionKind, error) {
	k := DefinitionKind(v)
	switch k {
	case DefinitionNone, DefinitionImplicit, DefinitionExplicit:
		return k, nil
	}
	return 0, sterrors.Decodef("unknown definition kind %d", v)
}

func (k DefinitionKind) String() string {
	switch k {
	case DefinitionNone:
		return "none"
	case DefinitionImplicit:
		return "implicit"
	case DefinitionExplicit:
		return "explicit"
	default:
		return "unknown"
	}
}

// LocationKind classifies a source location.
type LocationKind int32

const (
	LocationToken          LocationKind = 0
	LocationScope          LocationKind = 1
	LocationQualifier      LocationKind = 2
	LocationLocalSymbol    LocationKind = 3
	LocationSignature      LocationKind = 4
	LocationAtomicRange    LocationKind = 5
	LocationIndexerError   LocationKind = 6
	LocationFulltextSearch LocationKind = 7
	LocationScreenSearch   LocationKind = 8
	LocationUnsolved       LocationKind = 9
)

// LocationKindFromInt converts a persisted discriminant back to a
// LocationKind.
func LocationKindFromInt(v int32) (LocationKind, error) {
	k := LocationKind(v)
	switch k {
	case LocationToken, LocationScope, LocationQualifier, LocationLocalSymbol,
		LocationSignature, LocationAtomicRange, LocationIndexerError,
		LocationFulltextSearch, LocationScreenSearch, LocationUnsolved:
		return k, nil
	}
	return 0, sterrors.Decodef("unknown source location kind %d", v)
}

func (k LocationKind) String() string {
	switch k {
	case LocationToken:
		return "token"
	case LocationScope:
		return "scope"
	case LocationQualifier:
		return "qualifier"
	case LocationLocalSymbol:
		return "local_symbol"
	case LocationSignature:
		return "signature"
	case LocationAtomicRange:
		return "atomic_range"
	case LocationIndexerError:
		return "indexer_error"
	case LocationFulltextSearch:
		return "fulltext_search"
	case LocationScreenSearch:
		return "screen_search"
	case LocationUnsolved:
		return "unsolved"
	default:
		return "unknown"
	}
}

// AccessKind records member visibility on a node.
type AccessKind int32

const (
	AccessNone              AccessKind = 0
	AccessPublic            AccessKind = 1
	AccessProtected         AccessKind = 2
	AccessPrivate           AccessKind = 3
	AccessDefault           AccessKind = 4
	AccessTemplateParameter AccessKind = 5
	AccessTypeParameter     AccessKind = 6
)

// AccessKindFromInt converts a persisted discriminant back to an AccessKind.
func AccessKindFromInt(v int32) (AccessKind, error) {
	k := AccessKind(v)
	switch k {
	case AccessNone, AccessPublic, AccessProtected, AccessPrivate,
		AccessDefault, AccessTemplateParameter, AccessTypeParameter:
		return k, nil
	}
	return 0, sterrors.Decodef("unknown component access kind %d", v)
}

func (k AccessKind) String() string {
	switch k {
	case AccessNone:
		return "none"
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	case AccessDefault:
		return "default"
	case AccessTemplateParameter:
		return "template_parameter"
	case AccessTypeParameter:
		return "type_parameter"
	default:
		return "unknown"
	}
}

// ElementComponentKind tags auxiliary data attached to an element.
type ElementComponentKind int32

const (
	ElementComponentNone        ElementComponentKind = 0
	ElementComponentIsAmbiguous ElementComponentKind = 1
)

// ElementComponentKindFromInt converts a persisted discriminant back to an
// ElementComponentKind.
func ElementComponentKindFromInt(v int32) (ElementComponentKind, error) {
	k := ElementComponentKind(v)
	switch k {
	case ElementComponentNone, ElementComponentIsAmbiguous:
		return k, nil
	}
	return 0, sterrors.Decodef("unknown element component kind %d", v)
}

func (k ElementComponentKind) String() string {
	switch k {
	case ElementComponentNone:
		return "none"
	case ElementComponentIsAmbiguous:
		return "is_ambiguous"
	default:
		return "unknown"
	}
}
