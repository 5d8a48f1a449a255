package ldraw

import (
	"testing"

	"github.com/brickforge/brickstep/pkg/geom"
)

const testGroupA = `0 FILE submodel1.ldr
0 untitled model
0 Name: submodel1.ldr
0 Author: Michael Gale
1 28 0 0 0 1 0 0 0 1 0 -0 0 1 3031.dat
1 0 0 -8 0 1 0 0 0 1 0 -0 0 1 3068b.dat
0 STEP
1 70 -30 -8 -30 1 0 0 0 1 0 -0 0 1 2420.dat
1 70 -30 -8 30 -0 0 1 0 1 0 -1 0 -0 2420.dat
1 70 30 -8 30 -1 0 0 0 1 0 -0 0 -1 2420.dat
1 70 30 -8 -30 0 0 -1 0 1 0 1 0 0 2420.dat
0 STEP
1 14 0 -32 30 -1 0 0 0 1 0 -0 0 -1 3010.dat
1 15 0 -32 30 -1 0 0 0 1 0 -0 0 -1 3010.dat
1 71 0 -32 30 -1 0 0 0 1 0 -0 0 -1 3010.dat
0 STEP
0 NOFILE
`

const testGroupB = `0 FILE submodel1.ldr
0 untitled model
0 Name: submodel1.ldr
0 Author: Michael Gale
1 28 0 0 0 1 0 0 0 1 0 -0 0 1 3031.dat
1 0 0 -8 0 1 0 0 0 1 0 -0 0 1 3068b.dat
1 28 0 0 0 1 0 0 0 1 0 -0 0 1 3031.dat
1 28 20 0 0 1 0 0 0 1 0 -0 0 1 3031.dat
1 28 40 0 0 1 0 0 0 1 0 -0 0 1 3031.dat
0 STEP
1 70 -30 -8 -30 1 0 0 0 1 0 -0 0 1 2420.dat
1 70 -30 -8 30 -0 0 1 0 1 0 -1 0 -0 2420.dat
1 70 30 -8 30 -1 0 0 0 1 0 -0 0 -1 2420.dat
1 70 30 -8 -30 0 0 -1 0 1 0 1 0 0 2420.dat
0 STEP
1 14 0 -32 30 -1 0 0 0 1 0 -0 0 -1 3010.dat
0 STEP
0 NOFILE
`

// groupA parses the first fixture with path "0/groupa" stamped on the
// objects of the middle step only.
func groupA(t *testing.T) []Object {
	t.Helper()
	m, err := NewParser(DefaultGrammar()).ParseModel(testGroupA, "GroupA")
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range m.Steps {
		if i%2 == 1 {
			for j, o := range s.Objs {
				s.Objs[j] = o.WithPath("0/groupa")
			}
		}
	}
	return m.Objs()
}

// groupB parses the second fixture with path "0/groupb" on every object.
func groupB(t *testing.T) []Object {
	t.Helper()
	m, err := NewParser(DefaultGrammar()).ParseModel(testGroupB, "GroupB")
	if err != nil {
		t.Fatal(err)
	}
	var out []Object
	for _, o := range m.Objs() {
		out = append(out, o.WithPath("0/groupb"))
	}
	return out
}

func intp(v int) *int { return &v }

func TestFilterObjs(t *testing.T) {
	ga := groupA(t)
	gb := groupB(t)

	if got := len(FilterObjs(ga, Filter{Kind: KindMeta})); got != 5 {
		t.Errorf("metas = %d, want 5", got)
	}
	if got := len(FilterObjs(ga, Filter{MetaCommand: "STEP"})); got != 3 {
		t.Errorf("STEP metas = %d, want 3", got)
	}
	if got := len(FilterObjs(ga, Filter{MetaCommand: "FILE"})); got != 1 {
		t.Errorf("FILE metas = %d, want 1", got)
	}
	if got := len(FilterObjs(gb, Filter{PartsOnly: true})); got != 10 {
		t.Errorf("parts = %d, want 10", got)
	}
	if got := len(FilterObjs(ga, Filter{PathContains: "0/groupa"})); got != 5 {
		t.Errorf("path objs = %d, want 5", got)
	}
	if got := len(FilterObjs(ga, Filter{PathContains: "group"})); got != 5 {
		t.Errorf("partial path objs = %d, want 5", got)
	}
	if got := len(FilterObjs(ga, Filter{PathContains: "0/groupb"})); got != 0 {
		t.Errorf("foreign path objs = %d, want 0", got)
	}
	if got := len(FilterObjs(gb, Filter{ColourCode: intp(28)})); got != 4 {
		t.Errorf("colour 28 objs = %d, want 4", got)
	}
	if got := len(FilterObjs(gb, Filter{Name: "3010.dat"})); got != 1 {
		t.Errorf("named objs = %d, want 1", got)
	}
	if got := len(FilterObjs(gb, Filter{Name: "3010"})); got != 1 {
		t.Errorf("stem-named objs = %d, want 1", got)
	}
	if got := len(FilterObjs(gb, Filter{PartKey: "3010-14"})); got != 1 {
		t.Errorf("keyed objs = %d, want 1", got)
	}
	if got := len(FilterObjs(gb, Filter{PartKey: "3010-15"})); got != 0 {
		t.Errorf("missing key objs = %d, want 0", got)
	}
}

func TestChangeColourAndRename(t *testing.T) {
	ga := groupA(t)
	gb := groupB(t)

	z := ChangeColour(ga, ColourFromCode(8), Filter{})
	if len(z) != 17 {
		t.Fatalf("len = %d, want 17", len(z))
	}
	for _, o := range FilterObjs(z, Filter{PartsOnly: true}) {
		if o.Colour().Code != 8 {
			t.Errorf("part colour = %d, want 8", o.Colour().Code)
		}
	}

	x := ChangeColour(gb, ColourFromCode(72), Filter{ColourCode: intp(28)})
	n := 0
	for _, o := range x {
		if o.Colour().Code == 72 {
			n++
		}
	}
	if n != 4 {
		t.Errorf("recoloured = %d, want 4", n)
	}

	countNamed := func(objs []Object, name string) int {
		c := 0
		for _, o := range objs {
			if p, ok := o.(*Part); ok && p.Name == name {
				c++
			}
		}
		return c
	}
	x = Rename(gb, "3666.dat", Filter{Name: "3010"})
	if got := countNamed(x, "3666.dat"); got != 1 {
		t.Errorf("renamed = %d, want 1", got)
	}
	x = Rename(gb, "3666.dat", Filter{Name: "3010", ColourCode: intp(14)})
	if got := countNamed(x, "3666.dat"); got != 1 {
		t.Errorf("renamed with matching colour = %d, want 1", got)
	}
	x = Rename(gb, "3666.dat", Filter{Name: "3010", ColourCode: intp(15)})
	if got := countNamed(x, "3666.dat"); got != 0 {
		t.Errorf("renamed with wrong colour = %d, want 0", got)
	}
}

func TestSetOps(t *testing.T) {
	ga := groupA(t)
	gb := groupB(t)

	if got := len(Union(ga, gb)); got != 19 {
		t.Errorf("union = %d, want 19", got)
	}
	if got := len(Difference(ga, gb)); got != 2 {
		t.Errorf("difference = %d, want 2", got)
	}
	if got := len(Intersect(ga, gb)); got != 15 {
		t.Errorf("intersect = %d, want 15", got)
	}
	if got := len(Exclusive(ga, gb)); got != 4 {
		t.Errorf("exclusive = %d, want 4", got)
	}

	// Removing the path-stamped run also removes every identical delimiter.
	x := FilterObjs(ga, Filter{PathContains: "0/groupa"})
	if got := len(Difference(ga, x)); got != 10 {
		t.Errorf("difference with path group = %d, want 10", got)
	}
}

func TestMoveAndTranslate(t *testing.T) {
	ga := groupA(t)
	target := geom.V(-30, -40, 0)

	count := func(objs []Object) int {
		n := 0
		for _, o := range objs {
			if p, ok := o.(*Part); ok && p.Pos.AlmostEqual(target) {
				n++
			}
		}
		return n
	}

	y := MoveTo(ga, target, Filter{PartsOnly: true})
	if got := count(y); got != 9 {
		t.Errorf("moved parts = %d, want 9", got)
	}
	y = MoveTo(ga, target, Filter{PartsOnly: true, PathContains: "0/groupa"})
	if got := count(y); got != 4 {
		t.Errorf("moved path parts = %d, want 4", got)
	}

	x := FilterObjs(ga, Filter{PartsOnly: true})
	moved := Translated(x, geom.V(-7, 20, -50), Filter{})
	for i := range x {
		d := x[i].(*Part).Pos.Sub(moved[i].(*Part).Pos)
		if !d.AlmostEqual(geom.V(7, -20, 50)) {
			t.Errorf("offset = %v", d)
		}
	}

	// Translating a sub-group and reassembling is equivalent to translating
	// with a path filter directly.
	sub := FilterObjs(ga, Filter{PathContains: "0/groupa"})
	rest := Difference(ga, sub)
	z := Union(rest, Translated(sub, geom.V(0, 100, 0), Filter{}))
	w := Translated(ga, geom.V(0, 100, 0), Filter{PathContains: "0/groupa"})
	if got := len(Exclusive(z, w)); got != 0 {
		t.Errorf("exclusive = %d, want 0", got)
	}
}
