package syntax

// NodeKind is the closed taxonomy of declaration kinds the pipeline cares
// about. Everything the front end reports that has no dedicated kind maps to
// KindOtherDecl (for declarations) or KindUnknown (for non-declarations).
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindFunctionDecl
	KindClassDecl
	KindStructDecl
	KindUnionDecl
	KindClassTemplate
	KindPartialSpecialization
	KindTemplateTypeParam
	KindNonTypeTemplateParam
	KindTemplateTemplateParam
	KindTypeAliasDecl
	KindMacroDefinition
	KindParamDecl
	KindBaseSpecifier
	KindOtherDecl

	// Statement kinds needed to locate a function body.
	KindCompoundStmt
	KindTryStmt
)

var kindNames = map[NodeKind]string{
	KindUnknown:               "unknown",
	KindFunctionDecl:          "function",
	KindClassDecl:             "class",
	KindStructDecl:            "struct",
	KindUnionDecl:             "union",
	KindClassTemplate:         "class_template",
	KindPartialSpecialization: "partial_specialization",
	KindTemplateTypeParam:     "template_type_param",
	KindNonTypeTemplateParam:  "non_type_template_param",
	KindTemplateTemplateParam: "template_template_param",
	KindTypeAliasDecl:         "type_alias",
	KindMacroDefinition:       "macro",
	KindParamDecl:             "param",
	KindBaseSpecifier:         "base_specifier",
	KindOtherDecl:             "declaration",
	KindCompoundStmt:          "compound_stmt",
	KindTryStmt:               "try_stmt",
}

func (k NodeKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "invalid"
}

// KindFromName is the inverse of NodeKind.String. Unrecognized names map to
// KindUnknown.
func KindFromName(name string) NodeKind {
	for k, n := range kindNames {
		if n == name {
			return k
		}
	}
	return KindUnknown
}

// IsFunction reports whether the kind is function-like, including function
// templates.
func (k NodeKind) IsFunction() bool {
	return k == KindFunctionDecl
}

// IsClass reports whether the kind is a class, struct, union, class template
// or partial specialization.
func (k NodeKind) IsClass() bool {
	switch k {
	case KindClassDecl, KindStructDecl, KindUnionDecl, KindClassTemplate, KindPartialSpecialization:
		return true
	}
	return false
}

// IsTemplateParam reports whether the kind is a type, non-type or
// template-template parameter.
func (k NodeKind) IsTemplateParam() bool {
	switch k {
	case KindTemplateTypeParam, KindNonTypeTemplateParam, KindTemplateTemplateParam:
		return true
	}
	return false
}

// IsDeclaration reports whether the kind names a declaration at all, as
// opposed to a statement or an unrecognized construct.
func (k NodeKind) IsDeclaration() bool {
	switch k {
	case KindUnknown, KindCompoundStmt, KindTryStmt:
		return false
	}
	return true
}
