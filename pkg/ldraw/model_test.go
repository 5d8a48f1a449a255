package ldraw

import (
	"fmt"
	"testing"
)

const testMPD = `0 FILE root.ldr
0 my model
1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat
0 STEP
1 16 0 -24 0 1 0 0 0 1 0 0 0 1 wing.ldr
1 16 0 -24 40 1 0 0 0 1 0 0 0 1 wing.ldr
0 STEP
0 NOFILE
0 FILE wing.ldr
1 14 0 0 0 1 0 0 0 1 0 0 0 1 3010.dat
0 STEP
1 14 20 0 0 1 0 0 0 1 0 0 0 1 3010.dat
0 STEP
0 NOFILE
`

func TestParseModelTableMPD(t *testing.T) {
	table, err := ParseModelTable(testMPD)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 2 {
		t.Fatalf("models = %d, want 2", len(table))
	}
	root, ok := table[RootName]
	if !ok {
		t.Fatal("no root model")
	}
	if root.StepCount() != 2 {
		t.Errorf("root steps = %d, want 2", root.StepCount())
	}
	wing, ok := table["wing.ldr"]
	if !ok {
		t.Fatal("no wing.ldr model")
	}
	if wing.StepCount() != 2 {
		t.Errorf("wing steps = %d, want 2", wing.StepCount())
	}
	if wing.PartQty() != 2 {
		t.Errorf("wing part qty = %d, want 2", wing.PartQty())
	}
	if root.SubModelQty() != 2 {
		t.Errorf("root sub-model qty = %d, want 2", root.SubModelQty())
	}
	if got := root.Steps[1].SubModels()["wing.ldr"]; got != 2 {
		t.Errorf("wing refs in step 2 = %d, want 2", got)
	}
}

func TestParseModelTableBareRoot(t *testing.T) {
	table, err := ParseModelTable("1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat\n0 STEP\n")
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 1 {
		t.Fatalf("models = %d, want 1", len(table))
	}
	if table[RootName].StepCount() != 1 {
		t.Errorf("steps = %d, want 1", table[RootName].StepCount())
	}
}

func TestParseModelTableEmpty(t *testing.T) {
	if _, err := ParseModelTable("   \n  \n"); err == nil {
		t.Error("empty document should fail")
	}
}

func TestParseModelTrailingObjectsFold(t *testing.T) {
	// Objects after the last STEP join the final step.
	text := "1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat\n" +
		"0 STEP\n" +
		"1 4 0 -24 0 1 0 0 0 1 0 0 0 1 3003.dat\n"
	m, err := NewParser(DefaultGrammar()).ParseModel(text, "t")
	if err != nil {
		t.Fatal(err)
	}
	if m.StepCount() != 1 {
		t.Fatalf("steps = %d, want 1", m.StepCount())
	}
	if got := m.Steps[0].PartQty(); got != 2 {
		t.Errorf("part qty = %d, want 2", got)
	}
}

func TestParseModelRotStepDelimits(t *testing.T) {
	text := "1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat\n" +
		"0 ROTSTEP 0 90 0 REL\n" +
		"1 4 0 -24 0 1 0 0 0 1 0 0 0 1 3003.dat\n" +
		"0 STEP\n"
	m, err := NewParser(DefaultGrammar()).ParseModel(text, "t")
	if err != nil {
		t.Fatal(err)
	}
	if m.StepCount() != 2 {
		t.Fatalf("steps = %d, want 2", m.StepCount())
	}
	if v, ok := m.Steps[0].RotationRelative(); !ok || v.Y != 90 {
		t.Errorf("step 1 relative rotation = %v %v", v, ok)
	}
}

func TestStepMetaQueries(t *testing.T) {
	text := "0 FILE t.ldr\n" +
		"0 !PY SCALE 0.75\n" +
		"1 4 0 0 0 1 0 0 0 1 0 0 0 1 3001.dat\n" +
		"0 ROTSTEP 30 45 0 ABS\n" +
		"0 NOFILE\n"
	m, err := NewParser(DefaultGrammar()).ParseModel(text, "t")
	if err != nil {
		t.Fatal(err)
	}
	s := m.Steps[0]
	if !s.StartOfModel() {
		t.Error("StartOfModel = false")
	}
	if v, ok := s.RotationAbsolute(); !ok || v.X != 30 || v.Y != 45 {
		t.Errorf("absolute rotation = %v %v", v, ok)
	}
	if sc, ok := s.NewScale(); !ok || sc != 0.75 {
		t.Errorf("scale = %v %v", sc, ok)
	}
	// NOFILE folds into the only step.
	if !m.Steps[len(m.Steps)-1].EndOfModel() {
		t.Error("EndOfModel = false")
	}
}

func ExampleParseModelTable() {
	table, _ := ParseModelTable(testMPD)
	root := table[RootName]
	fmt.Println(root.StepCount(), root.PartQty(), root.SubModelQty())
	// Output: 2 1 2
}
