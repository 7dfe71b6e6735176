package diag

import (
	"testing"

	. "src.slt.sh/pkg/tt"
)

func contextShow(src string, from, to int, indent string) string {
	return NewContext("[test]", src, Ranging{from, to}).Show(indent)
}

func contextShowCompact(src string, from, to int, indent string) string {
	return NewContext("[test]", src, Ranging{from, to}).ShowCompact(indent)
}

func contextPosition(src string, from int) (int, int) {
	return NewContext("[test]", src, PointRanging(from)).Position()
}

func TestContext_Show(t *testing.T) {
	Test(t, contextShow,
		Args("x = 1 +", 6, 7, "  ").Rets(
			"[test], line 1:\n"+
				"  x = 1 +\n"+
				"        ^"),
		Args("a\nbc d", 5, 6, "").Rets(
			"[test], line 2:\n"+
				"bc d\n"+
				"   ^"),
		// Zero-width range still gets one caret.
		Args("ab", 2, 2, "").Rets(
			"[test], line 1:\n"+
				"ab\n"+
				"  ^"),
		Args("foo\nbar", 0, 7, "").Rets(
			"[test], line 1-2:\n"+
				"foo\n"+
				"^^^"),
		Args("ab", 1, 5, "").Rets("[test], invalid position 1-5"),
		Args("ab", -1, 0, "").Rets("[test], unknown position"),
	)
}

func TestContext_ShowCompact(t *testing.T) {
	Test(t, contextShowCompact,
		Args("1 +", 3, 3, "").Rets(
			"[test], line 1: 1 +\n"+
				"                   ^"),
	)
}

func TestContext_Position(t *testing.T) {
	Test(t, contextPosition,
		Args("abc", 0).Rets(1, 1),
		Args("abc\nde", 5).Rets(2, 2),
		Args("ab", 5).Rets(0, 0),
	)
}
