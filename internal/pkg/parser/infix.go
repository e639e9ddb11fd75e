package parser

import (
	"github.com/T-Brick/parse-sml/internal/pkg/ast"
	"github.com/T-Brick/parse-sml/internal/pkg/ast/parsed"
	"github.com/T-Brick/parse-sml/internal/pkg/common"
)

type opToken struct {
	tok    ast.Token
	fixity Fixity
}

// shouldReduce decides, for the operator on top of the stack and the
// incoming one, whether to reduce first. Equal precedence with mixed
// associativity has no defined grouping and is rejected.
func shouldReduce(top, incoming opToken) (bool, error) {
	if top.fixity.Precedence > incoming.fixity.Precedence {
		return true, nil
	}
	if top.fixity.Precedence < incoming.fixity.Precedence {
		return false, nil
	}
	if top.fixity.Assoc != incoming.fixity.Assoc {
		return false, common.Error{
			Location: incoming.tok.Location,
			What:     "operators of equal precedence associate differently",
			Explain: "`" + top.tok.Text() + "` and `" + incoming.tok.Text() +
				"` have the same precedence but opposite associativity; parenthesize to disambiguate.",
		}
	}
	return top.fixity.Assoc == AssocLeft, nil
}

// resolveExpInfix rebrackets a flat operand/operator run into Infix
// nodes by precedence climbing.
func (p *parser) resolveExpInfix(operands []parsed.Exp, ops []opToken) (parsed.Exp, error) {
	out := []parsed.Exp{operands[0]}
	var stack []opToken
	reduce := func() {
		op := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		right := out[len(out)-1]
		left := out[len(out)-2]
		out = out[:len(out)-2]
		out = append(out, &parsed.ExpInfix{Left: left, Op: op.tok, Right: right})
	}
	for i, op := range ops {
		for len(stack) > 0 {
			doReduce, err := shouldReduce(stack[len(stack)-1], op)
			if err != nil {
				return nil, err
			}
			if !doReduce {
				break
			}
			reduce()
		}
		stack = append(stack, op)
		out = append(out, operands[i+1])
	}
	for len(stack) > 0 {
		reduce()
	}
	return out[0], nil
}

func (p *parser) resolvePatInfix(operands []parsed.Pat, ops []opToken) (parsed.Pat, error) {
	out := []parsed.Pat{operands[0]}
	var stack []opToken
	reduce := func() {
		op := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		right := out[len(out)-1]
		left := out[len(out)-2]
		out = out[:len(out)-2]
		out = append(out, &parsed.PatInfix{Left: left, Op: op.tok, Right: right})
	}
	for i, op := range ops {
		for len(stack) > 0 {
			doReduce, err := shouldReduce(stack[len(stack)-1], op)
			if err != nil {
				return nil, err
			}
			if !doReduce {
				break
			}
			reduce()
		}
		stack = append(stack, op)
		out = append(out, operands[i+1])
	}
	for len(stack) > 0 {
		reduce()
	}
	return out[0], nil
}
