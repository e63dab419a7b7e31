package wizard

// Controller tracks the active step. Any step can be selected directly; the
// zero value starts on FirstStep.
type Controller struct {
	step Step
}

// NewController returns a controller on FirstStep.
func NewController() *Controller {
	return &Controller{step: FirstStep}
}

// Step returns the active step.
func (c *Controller) Step() Step {
	if !c.step.Valid() {
		return FirstStep
	}
	return c.step
}

// GoNext moves forward one step, stopping at LastStep.
func (c *Controller) GoNext() {
	c.step = min(c.Step()+1, LastStep)
}

// GoBack moves back one step, stopping at FirstStep.
func (c *Controller) GoBack() {
	c.step = max(c.Step()-1, FirstStep)
}

// JumpTo selects step n; out-of-range values are ignored.
func (c *Controller) JumpTo(n int) {
	if s := Step(n); s.Valid() {
		c.step = s
	}
}

// IsTerminal reports whether advancing would export instead of moving.
func (c *Controller) IsTerminal() bool {
	return c.Step() == LastStep
}

// CanAdvance is always true: the flow has no gated steps.
func (c *Controller) CanAdvance() bool {
	return true
}

// Reset returns to FirstStep.
func (c *Controller) Reset() {
	c.step = FirstStep
}
