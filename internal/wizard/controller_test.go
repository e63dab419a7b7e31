package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestController_StartsOnFirstStep(t *testing.T) {
	c := NewController()
	assert.Equal(t, StepPersonal, c.Step())

	var zero Controller
	assert.Equal(t, FirstStep, zero.Step())
}

func TestController_GoNextClampsAtLastStep(t *testing.T) {
	c := NewController()
	for range 10 {
		c.GoNext()
	}
	assert.Equal(t, LastStep, c.Step())
	assert.True(t, c.IsTerminal())
}

func TestController_GoBackClampsAtFirstStep(t *testing.T) {
	c := NewController()
	c.GoBack()
	assert.Equal(t, FirstStep, c.Step())

	c.JumpTo(3)
	c.GoBack()
	c.GoBack()
	c.GoBack()
	assert.Equal(t, FirstStep, c.Step())
}

func TestController_JumpTo(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
		want Step
	}{
		{name: "forward skip", from: 1, to: 4, want: StepSkills},
		{name: "backward", from: 5, to: 2, want: StepEducation},
		{name: "same step", from: 3, to: 3, want: StepExperience},
		{name: "zero ignored", from: 2, to: 0, want: StepEducation},
		{name: "negative ignored", from: 2, to: -1, want: StepEducation},
		{name: "too large ignored", from: 4, to: 6, want: StepSkills},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.JumpTo(tt.from)
			c.JumpTo(tt.to)
			assert.Equal(t, tt.want, c.Step())
		})
	}
}

func TestController_StepAlwaysInRange(t *testing.T) {
	c := NewController()
	ops := []func(){
		c.GoNext, c.GoBack, c.GoNext, c.GoNext,
		func() { c.JumpTo(9) }, func() { c.JumpTo(5) },
		c.GoNext, c.GoNext, func() { c.JumpTo(-3) }, c.GoBack,
	}
	for _, op := range ops {
		op()
		assert.True(t, c.Step().Valid(), "step %d out of range", c.Step())
	}
}

func TestController_CanAdvanceAndReset(t *testing.T) {
	c := NewController()
	for _, step := range Steps() {
		c.JumpTo(int(step))
		assert.True(t, c.CanAdvance())
	}
	c.Reset()
	assert.Equal(t, FirstStep, c.Step())
}
