package session

import (
	"reflect"
	"testing"
)

func TestCompletion(t *testing.T) {
	c := NewCompletion()

	c.ToggleStep(4)
	c.ToggleStep(1)
	c.ToggleStep(2)
	c.ToggleStep(2)
	c.TogglePrerequisite(0)

	if got := c.Steps(); !reflect.DeepEqual(got, []int{1, 4}) {
		t.Fatalf("steps = %v, want [1 4]", got)
	}
	if !c.StepDone(4) || c.StepDone(2) {
		t.Fatal("StepDone disagrees with Steps")
	}
	if !c.PrerequisiteDone(0) || c.StepDone(0) {
		t.Fatal("prerequisites and steps must be independent sets")
	}

	c.Reset()
	if len(c.Steps()) != 0 || len(c.Prerequisites()) != 0 {
		t.Fatal("reset left entries behind")
	}
}
