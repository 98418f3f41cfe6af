package expr

import (
	"errors"
	"math"
	"strconv"

	"github.com/npillmayer/fo/value"
)

// Parse evaluates a property expression within a context.
//
// An empty expression evaluates to an empty string. Expressions consisting
// of more than one top-level term without operators in between (e.g.
// "1cm 2cm") evaluate to a list of the terms.
// Arithmetic results are of kind Numeric.
func Parse(text string, ctx *Context) (value.Value, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	p := &parser{tok: newTokenizer(text), ctx: ctx}
	v, err := p.parseProperty()
	if err != nil {
		tracer().Debugf("expression %q: %v", text, err)
		return nil, err
	}
	tracer().Debugf("expression %q = %s", text, v)
	return v, nil
}

type parser struct {
	tok *tokenizer
	ctx *Context
}

func (p *parser) current() Token {
	return p.tok.token
}

func (p *parser) next() error {
	return p.tok.next()
}

func (p *parser) parseProperty() (value.Value, error) {
	if err := p.next(); err != nil {
		return nil, err
	}
	if p.current().Type == EOF {
		return value.Str(""), nil
	}
	var list value.List
	for {
		v, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if p.current().Type == EOF {
			if list == nil {
				return v, nil
			}
			return append(list, v), nil
		}
		list = append(list, v)
	}
}

func (p *parser) parseAdditive() (value.Value, error) {
	v, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op := p.current()
		if op.Type != PLUS && op.Type != MINUS {
			return v, nil
		}
		if err = p.next(); err != nil {
			return nil, err
		}
		r, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		a, b, err := p.numericOperands(op, v, r)
		if err != nil {
			return nil, err
		}
		var n value.Numeric
		if op.Type == PLUS {
			n, err = a.Add(b)
		} else {
			n, err = a.Subtract(b)
		}
		if err != nil {
			return nil, p.wrap(op.Pos, err)
		}
		v = n
	}
}

func (p *parser) parseMultiplicative() (value.Value, error) {
	v, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.current()
		if op.Type != MULTIPLY && op.Type != DIV && op.Type != MOD {
			return v, nil
		}
		if err = p.next(); err != nil {
			return nil, err
		}
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op.Type == MOD {
			if v, err = p.modulo(op, v, r); err != nil {
				return nil, err
			}
			continue
		}
		a, b, err := p.numericOperands(op, v, r)
		if err != nil {
			return nil, err
		}
		var n value.Numeric
		if op.Type == MULTIPLY {
			n, err = a.Multiply(b)
		} else {
			n, err = a.Divide(b)
		}
		if err != nil {
			return nil, p.wrap(op.Pos, err)
		}
		v = n
	}
}

// modulo is defined for numbers only, lengths are rejected.
func (p *parser) modulo(op Token, l, r value.Value) (value.Value, error) {
	a, ok1 := value.AsNumber(l)
	b, ok2 := value.AsNumber(r)
	if !ok1 || !ok2 {
		return nil, p.errorf(op.Pos, ErrNonNumberOperand, "operands of mod must be numbers")
	}
	if b == 0 {
		return nil, p.wrap(op.Pos, value.ErrDivisionByZero)
	}
	return value.Number(math.Mod(float64(a), float64(b))), nil
}

func (p *parser) parseUnary() (value.Value, error) {
	if p.current().Type != MINUS {
		return p.parsePrimary()
	}
	pos := p.current().Pos
	if err := p.next(); err != nil {
		return nil, err
	}
	v, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	n, ok := value.AsNumeric(v)
	if !ok {
		return nil, p.errorf(pos, ErrNonNumericOperand, "operand of unary minus: "+v.String())
	}
	return n.Negate(), nil
}

func (p *parser) parsePrimary() (v value.Value, err error) {
	t := p.current()
	switch t.Type {
	case LPAR:
		if err = p.next(); err != nil {
			return nil, err
		}
		if v, err = p.parseAdditive(); err != nil {
			return nil, err
		}
		if err = p.expectRPar(); err != nil {
			return nil, err
		}
		return v, nil
	case FUNCTION_LPAR:
		return p.parseFunctionCall(t)
	case LITERAL:
		v = value.Str(t.Text)
	case NCNAME:
		v = value.Name(t.Text)
	case FLOAT, INTEGER:
		x, err := strconv.ParseFloat(t.Text, 64)
		if err != nil {
			return nil, p.errorf(t.Pos, ErrSyntax, "illegal number "+t.Text)
		}
		v = value.Number(x)
	case PERCENT:
		x, err := strconv.ParseFloat(t.Text[:len(t.Text)-1], 64)
		if err != nil {
			return nil, p.errorf(t.Pos, ErrSyntax, "illegal percentage "+t.Text)
		}
		if v, err = value.Percent(x/100, p.ctx.PercentBase); err != nil {
			return nil, p.wrap(t.Pos, err)
		}
	case NUMERIC:
		if v, err = p.length(t); err != nil {
			return nil, err
		}
	case COLORSPEC:
		c, err := value.ParseColor(t.Text)
		if err != nil {
			return nil, p.wrap(t.Pos, err)
		}
		v = c
	case EOF:
		return nil, p.errorf(t.Pos, ErrSyntax, "unexpected end of expression")
	default:
		return nil, p.errorf(t.Pos, ErrSyntax, "unexpected "+t.String())
	}
	if err = p.next(); err != nil {
		return nil, err
	}
	return v, nil
}

// length splits a NUMERIC token into magnitude and unit. Font-relative
// lengths are resolved immediately.
func (p *parser) length(t Token) (value.Value, error) {
	numLen := len(t.Text) - t.UnitLen
	mag, err := strconv.ParseFloat(t.Text[:numLen], 64)
	if err != nil {
		return nil, p.errorf(t.Pos, ErrSyntax, "illegal number "+t.Text)
	}
	unit, ok := value.ParseUnit(t.Text[numLen:])
	if !ok {
		return nil, p.errorf(t.Pos, value.ErrUnknownUnit, t.Text[numLen:])
	}
	if unit != value.Em {
		return value.NewLength(mag, unit), nil
	}
	fs, err := p.ctx.fontSize()
	if err != nil {
		return nil, p.wrap(t.Pos, err)
	}
	n, err := value.LengthNumeric(fs).Multiply(value.NumberNumeric(mag))
	if err != nil {
		return nil, p.wrap(t.Pos, err)
	}
	return n.Length(), nil
}

// parseFunctionCall evaluates a function call. The function is active
// during evaluation of its arguments and of itself.
func (p *parser) parseFunctionCall(t Token) (value.Value, error) {
	f, ok := p.ctx.registry().Lookup(t.Text)
	if !ok {
		return nil, p.errorf(t.Pos, ErrUnknownFunction, t.Text)
	}
	if err := p.next(); err != nil {
		return nil, err
	}
	p.ctx.push(f)
	defer p.ctx.pop()
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	min, max := f.Arity()
	if len(args) < min || len(args) > max {
		return nil, p.errorf(t.Pos, ErrArityMismatch, arityMessage(f, len(args)))
	}
	v, err := f.Eval(args, p.ctx)
	if err != nil {
		return nil, p.wrap(t.Pos, err)
	}
	return v, nil
}

func (p *parser) parseArgs() ([]value.Value, error) {
	var args []value.Value
	if p.current().Type == RPAR {
		return args, p.next()
	}
	for {
		arg, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.current().Type != COMMA {
			break
		}
		if err = p.next(); err != nil {
			return nil, err
		}
	}
	return args, p.expectRPar()
}

func (p *parser) expectRPar() error {
	if t := p.current(); t.Type != RPAR {
		return p.errorf(t.Pos, ErrSyntax, "expected ')', have "+t.String())
	}
	return p.next()
}

func (p *parser) numericOperands(op Token, l, r value.Value) (a, b value.Numeric, err error) {
	var ok1, ok2 bool
	a, ok1 = value.AsNumeric(l)
	b, ok2 = value.AsNumeric(r)
	if !ok1 || !ok2 {
		err = p.errorf(op.Pos, ErrNonNumericOperand, "operands of "+op.Type.String()+" must be numeric")
	}
	return
}

func (p *parser) errorf(pos int, err error, msg string) error {
	return &PropertyError{Expr: p.tok.expr, Pos: pos, Err: err, Msg: msg}
}

// wrap wraps err into a *PropertyError, if it isn't one already.
func (p *parser) wrap(pos int, err error) error {
	var perr *PropertyError
	if errors.As(err, &perr) {
		return err
	}
	return &PropertyError{Expr: p.tok.expr, Pos: pos, Err: err}
}

func arityMessage(f Function, n int) string {
	min, max := f.Arity()
	if min == max {
		return f.Name() + " expects " + strconv.Itoa(min) + " argument(s), have " + strconv.Itoa(n)
	}
	return f.Name() + " expects " + strconv.Itoa(min) + " to " + strconv.Itoa(max) +
		" argument(s), have " + strconv.Itoa(n)
}
