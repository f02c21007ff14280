package ast

type Kind int

const (
	KindInvalid Kind = iota

	// Program structure
	KindProgram
	KindBlock

	// Declarations
	KindVarDecl
	KindFunctionDecl

	// Statements
	KindReturn
	KindIf
	KindFor
	KindWhile
	KindDoWhile
	KindSwitch
	KindTry
	KindWith
	KindLabeled
	KindBreak
	KindContinue
	KindThrow
	KindExpressionStatement
	KindEmpty
	KindDebugger

	// Expressions
	KindIdentifier
	KindLiteral
	KindThis
	KindAssignment
	KindBinary
	KindConditional
	KindSequence
	KindUnary
	KindUpdate
	KindCall
	KindNew
	KindMember
	KindFunctionExpression
	KindArrayLiteral
	KindObjectLiteral

	// Auxiliary nodes
	KindProperty
	KindSwitchCase
	KindCatchClause
)

var kindNames = map[Kind]string{
	KindInvalid:             "Invalid",
	KindProgram:             "Program",
	KindBlock:               "BlockStatement",
	KindVarDecl:             "VariableDeclaration",
	KindFunctionDecl:        "FunctionDeclaration",
	KindReturn:              "ReturnStatement",
	KindIf:                  "IfStatement",
	KindFor:                 "ForStatement",
	KindWhile:               "WhileStatement",
	KindDoWhile:             "DoWhileStatement",
	KindSwitch:              "SwitchStatement",
	KindTry:                 "TryStatement",
	KindWith:                "WithStatement",
	KindLabeled:             "LabeledStatement",
	KindBreak:               "BreakStatement",
	KindContinue:            "ContinueStatement",
	KindThrow:               "ThrowStatement",
	KindExpressionStatement: "ExpressionStatement",
	KindEmpty:               "EmptyStatement",
	KindDebugger:            "DebuggerStatement",
	KindIdentifier:          "Identifier",
	KindLiteral:             "Literal",
	KindThis:                "ThisExpression",
	KindAssignment:          "AssignmentExpression",
	KindBinary:              "BinaryExpression",
	KindConditional:         "ConditionalExpression",
	KindSequence:            "SequenceExpression",
	KindUnary:               "UnaryExpression",
	KindUpdate:              "UpdateExpression",
	KindCall:                "CallExpression",
	KindNew:                 "NewExpression",
	KindMember:              "MemberExpression",
	KindFunctionExpression:  "FunctionExpression",
	KindArrayLiteral:        "ArrayExpression",
	KindObjectLiteral:       "ObjectExpression",
	KindProperty:            "Property",
	KindSwitchCase:          "SwitchCase",
	KindCatchClause:         "CatchClause",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type VarKind int

const (
	VarKindVar VarKind = iota
	VarKindLet
	VarKindConst
)

func (k VarKind) String() string {
	switch k {
	case VarKindVar:
		return "var"
	case VarKindLet:
		return "let"
	case VarKindConst:
		return "const"
	}
	return "unknown"
}

type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBoolean
	LiteralNull
	LiteralUndefined
	LiteralRegExp
)

func (k LiteralKind) String() string {
	switch k {
	case LiteralNumber:
		return "number"
	case LiteralString:
		return "string"
	case LiteralBoolean:
		return "boolean"
	case LiteralNull:
		return "null"
	case LiteralUndefined:
		return "undefined"
	case LiteralRegExp:
		return "regexp"
	}
	return "unknown"
}
