package js_ast

import (
	"github.com/e2b-dev/ijavascript-babel/internal/logger"
)

func Assign(a Expr, b Expr) Expr {
	return Expr{Loc: a.Loc, Data: &EBinary{Op: BinOpAssign, Left: a, Right: b}}
}

func AssignStmt(a Expr, b Expr) Stmt {
	return Stmt{Loc: a.Loc, Data: &SExpr{Value: Assign(a, b)}}
}

func JoinWithComma(a Expr, b Expr) Expr {
	return Expr{Loc: a.Loc, Data: &EBinary{Op: BinOpComma, Left: a, Right: b}}
}

// Turns a binding pattern into the equivalent assignment target expression,
// preserving the pattern's shape: array and object structure, defaults, rest
// elements, and computed keys all survive the conversion.
func ConvertBindingToExpr(binding Binding) Expr {
	loc := binding.Loc

	switch b := binding.Data.(type) {
	case *BMissing:
		return Expr{Loc: loc, Data: &EMissing{}}

	case *BIdentifier:
		return Expr{Loc: loc, Data: &EIdentifier{Name: b.Name}}

	case *BArray:
		exprs := make([]Expr, len(b.Items))
		for i, item := range b.Items {
			expr := ConvertBindingToExpr(item.Binding)
			if b.HasSpread && i+1 == len(b.Items) {
				expr = Expr{Loc: expr.Loc, Data: &ESpread{Value: expr}}
			} else if item.DefaultValue != nil {
				expr = Assign(expr, *item.DefaultValue)
			}
			exprs[i] = expr
		}
		return Expr{Loc: loc, Data: &EArray{
			Items:        exprs,
			IsSingleLine: b.IsSingleLine,
		}}

	case *BObject:
		properties := make([]Property, len(b.Properties))
		for i, property := range b.Properties {
			value := ConvertBindingToExpr(property.Value)
			kind := PropertyNormal
			if property.IsSpread {
				kind = PropertySpread
			}
			wasShorthand := false
			if !property.IsComputed && !property.IsSpread {
				if key, ok := property.Key.Data.(*EString); ok {
					if id, ok := value.Data.(*EIdentifier); ok && key.Value == id.Name {
						wasShorthand = true
					}
				}
			}
			properties[i] = Property{
				Kind:         kind,
				IsComputed:   property.IsComputed,
				Key:          property.Key,
				Value:        &value,
				Initializer:  property.DefaultValue,
				WasShorthand: wasShorthand,
			}
		}
		return Expr{Loc: loc, Data: &EObject{
			Properties:   properties,
			IsSingleLine: b.IsSingleLine,
		}}

	default:
		panic("Internal error")
	}
}

// Calls the callback once for every identifier bound by the pattern, in
// source order
func ForEachIdentifierBinding(binding Binding, callback func(loc logger.Loc, b *BIdentifier)) {
	switch b := binding.Data.(type) {
	case *BMissing:

	case *BIdentifier:
		callback(binding.Loc, b)

	case *BArray:
		for _, item := range b.Items {
			ForEachIdentifierBinding(item.Binding, callback)
		}

	case *BObject:
		for _, property := range b.Properties {
			ForEachIdentifierBinding(property.Value, callback)
		}

	default:
		panic("Internal error")
	}
}

func ForEachIdentifierBindingInDecls(decls []Decl, callback func(loc logger.Loc, b *BIdentifier)) {
	for _, decl := range decls {
		ForEachIdentifierBinding(decl.Binding, callback)
	}
}
