package vals

import (
	"math"
	"testing"

	. "src.slt.sh/pkg/tt"
)

type customKind struct{}

func (customKind) Kind() string   { return "custom" }
func (customKind) String() string { return "<custom>" }

func TestKind(t *testing.T) {
	Test(t, Kind,
		Args(nil).Rets("null"),
		Args(true).Rets("bool"),
		Args(1).Rets("int"),
		Args(1.5).Rets("float"),
		Args("x").Rets("string"),
		Args(MakeList(1)).Rets("list"),
		Args(customKind{}).Rets("custom"),
		Args(int8(1)).Rets("!!int8"),
	)
}

func TestToStringAndRepr(t *testing.T) {
	Test(t, ToString,
		Args(nil).Rets("null"),
		Args(false).Rets("false"),
		Args(3).Rets("3"),
		Args(-2.5).Rets("-2.5"),
		Args(2.0).Rets("2.0"),
		Args(1e7).Rets("10000000.0"),
		Args(1e-7).Rets("1e-07"),
		Args(math.Inf(-1)).Rets("-inf"),
		Args("a b").Rets("a b"),
		Args(MakeList(1, "a", nil, MakeList())).Rets(`[1, "a", null, []]`),
		Args(customKind{}).Rets("<custom>"),
	)
	Test(t, Repr,
		Args("a\nb").Rets(`"a\nb"`),
		Args(List{}).Rets("[]"),
	)
}

func TestList(t *testing.T) {
	l := MakeList(1, 2)
	l2 := l.Append(3)
	if l.Len() != 2 || l2.Len() != 3 {
		t.Errorf("Append modified the original list")
	}
	if v, ok := l2.Index(-1); !ok || v != 3 {
		t.Errorf("Index(-1) -> %v, %v, want 3, true", v, ok)
	}
	if _, ok := l2.Index(3); ok {
		t.Errorf("Index(3) of 3-element list is in range")
	}
	if got := l.Concat(l2); got.Len() != 5 {
		t.Errorf("Concat -> %v, want 5 elements", Repr(got))
	}
}

func TestEqual(t *testing.T) {
	Test(t, Equal,
		Args(1, 1).Rets(true),
		Args(1, 1.0).Rets(true),
		Args(1.5, 1).Rets(false),
		Args("a", "a").Rets(true),
		Args("1", 1).Rets(false),
		Args(nil, nil).Rets(true),
		Args(nil, false).Rets(false),
		Args(MakeList(1, MakeList("a")), MakeList(1.0, MakeList("a"))).Rets(true),
		Args(MakeList(1), MakeList(1, 2)).Rets(false),
	)
}
