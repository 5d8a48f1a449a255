package pipeline

import (
	"bufio"
	"io"

	"github.com/brickforge/brickstep/pkg/build"
)

// WriteStep writes one step's visible objects as LDraw text, one object
// per line, followed by a step delimiter.
func WriteStep(w io.Writer, step *build.BuildStep) error {
	bw := bufio.NewWriter(w)
	for _, o := range step.StepParts() {
		if _, err := bw.WriteString(o.String() + "\n"); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("0 STEP\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// WriteModel writes the fully unwrapped model as LDraw text: every step
// in sequence with its flattened, visible objects. The output is a flat
// single-model file regardless of how many sub-models the input had.
func WriteModel(w io.Writer, res *build.Result) error {
	for _, step := range res.Steps {
		if step.Level != 0 || step.Virtual() {
			continue
		}
		if err := WriteStep(w, step); err != nil {
			return err
		}
	}
	return nil
}
