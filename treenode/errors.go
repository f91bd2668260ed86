package treenode

import "fmt"

// Code classifies a SyntaxError.
type Code int

const (
	CodeNone Code = iota
	CodeInvalidNode
	CodeInvalidToken
	CodeUnclosedBracket
	CodeMissingOperands
	CodeMissingLeftOperand
	CodeMissingRightOperand
	CodeMissingOperand
	CodeMissingCondition
	CodeMissingBody
	CodeMissingSemicolon
)

func (c Code) String() string {
	switch c {
	case CodeNone:
		return "none"
	case CodeInvalidNode:
		return "invalid_node"
	case CodeInvalidToken:
		return "invalid_token"
	case CodeUnclosedBracket:
		return "unclosed_bracket"
	case CodeMissingOperands:
		return "missing_operands"
	case CodeMissingLeftOperand:
		return "missing_left_operand"
	case CodeMissingRightOperand:
		return "missing_right_operand"
	case CodeMissingOperand:
		return "missing_operand"
	case CodeMissingCondition:
		return "missing_condition"
	case CodeMissingBody:
		return "missing_body"
	case CodeMissingSemicolon:
		return "missing_semicolon"
	default:
		return "unknown"
	}
}

func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Code) UnmarshalText(text []byte) error {
	for k := CodeNone; k <= CodeMissingSemicolon; k++ {
		if k.String() == string(text) {
			*c = k
			return nil
		}
	}
	return fmt.Errorf("treenode: unknown error code %q", text)
}

// SyntaxError is a recoverable problem attached to one node.
type SyntaxError struct {
	Code    Code
	Message string
}

func (e *SyntaxError) Error() string { return e.Message }

func errInvalidNode() *SyntaxError {
	return &SyntaxError{Code: CodeInvalidNode, Message: "Invalid node"}
}

func errInvalidToken(text string) *SyntaxError {
	return &SyntaxError{Code: CodeInvalidToken, Message: fmt.Sprintf("Invalid token %q", text)}
}

func errUnclosedBracket(open string) *SyntaxError {
	return &SyntaxError{
		Code:    CodeUnclosedBracket,
		Message: fmt.Sprintf("Lack of closing parenthesis \"%s\"", open),
	}
}

// errOperands returns nil when both operands were found.
func errOperands(op string, haveLeft, haveRight bool) *SyntaxError {
	switch {
	case !haveLeft && !haveRight:
		return &SyntaxError{
			Code:    CodeMissingOperands,
			Message: fmt.Sprintf("Both sides of operator '%s' are invalid", op),
		}
	case !haveRight:
		return &SyntaxError{
			Code:    CodeMissingRightOperand,
			Message: fmt.Sprintf("Right side of operator '%s' is invalid", op),
		}
	case !haveLeft:
		return &SyntaxError{
			Code:    CodeMissingLeftOperand,
			Message: fmt.Sprintf("Left side of operator '%s' is invalid", op),
		}
	}
	return nil
}

func errOperand(op string) *SyntaxError {
	return &SyntaxError{
		Code:    CodeMissingOperand,
		Message: fmt.Sprintf("Operand of operator '%s' is invalid", op),
	}
}

func errMissingCondition() *SyntaxError {
	return &SyntaxError{Code: CodeMissingCondition, Message: "Missing condition expression"}
}

func errMissingBody() *SyntaxError {
	return &SyntaxError{Code: CodeMissingBody, Message: "Missing body block"}
}

func errMissingSemicolon() *SyntaxError {
	return &SyntaxError{Code: CodeMissingSemicolon, Message: "Missing semicolon at the end"}
}
