package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"src.slt.sh/pkg/eval/vals"
)

var builtins = []*Builtin{
	{"len", 1, 1, lenFn},
	{"str", 1, 1, func(_ *Evaler, args []any) (any, error) {
		return vals.ToString(args[0]), nil
	}},
	{"type", 1, 1, func(_ *Evaler, args []any) (any, error) {
		return vals.Kind(args[0]), nil
	}},
	{"int", 1, 1, intFn},
	{"float", 1, 1, floatFn},
	{"push", 1, -1, pushFn},
	{"range", 1, 2, rangeFn},
	{"print", 0, -1, printValues},
}

func lenFn(_ *Evaler, args []any) (any, error) {
	switch v := args[0].(type) {
	case string:
		return utf8.RuneCountInString(v), nil
	case vals.List:
		return v.Len(), nil
	}
	return nil, typeError("len of %s", vals.Kind(args[0]))
}

func intFn(_ *Evaler, args []any) (any, error) {
	switch v := args[0].(type) {
	case int:
		return v, nil
	case float64:
		// NaN fails both range checks.
		if !(v >= math.MinInt && v < math.MaxInt+1.0) {
			return nil, fmt.Errorf("%w %s to int", ErrBadConversion, vals.Repr(v))
		}
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("%w %s to int", ErrBadConversion, vals.Repr(v))
		}
		return i, nil
	}
	return nil, typeError("cannot convert %s to int", vals.Kind(args[0]))
}

func floatFn(_ *Evaler, args []any) (any, error) {
	switch v := args[0].(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("%w %s to float", ErrBadConversion, vals.Repr(v))
		}
		return f, nil
	}
	return nil, typeError("cannot convert %s to float", vals.Kind(args[0]))
}

func pushFn(_ *Evaler, args []any) (any, error) {
	l, ok := args[0].(vals.List)
	if !ok {
		return nil, typeError("push to %s", vals.Kind(args[0]))
	}
	return l.Append(args[1:]...), nil
}

func rangeFn(_ *Evaler, args []any) (any, error) {
	from, to := 0, 0
	var ok bool
	if len(args) == 1 {
		to, ok = args[0].(int)
	} else {
		from, ok = args[0].(int)
		if ok {
			to, ok = args[1].(int)
		}
	}
	if !ok {
		return nil, typeError("arguments of range must be int")
	}
	var elems []any
	for i := from; i < to; i++ {
		elems = append(elems, i)
	}
	return vals.MakeList(elems...), nil
}
