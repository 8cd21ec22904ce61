package koch

// Status is the externally visible state of a controller.
type Status struct {
	Generation int
	Complete   bool
}

// Controller grows a boundary one generation per Step until the configured
// maximum is reached. It has two states: growing while
// generation < maxGenerations, complete afterwards.
type Controller struct {
	boundary       *Boundary
	generation     int
	maxGenerations int
}

// NewController wraps a freshly built boundary. maxGenerations of zero yields
// a controller that is complete from the start.
func NewController(b *Boundary, maxGenerations int) (*Controller, error) {
	const op = "controller.new"
	if err := b.ready(op); err != nil {
		return nil, err
	}
	if maxGenerations < 0 {
		return nil, invalidConfig(op, "max generations %d must not be negative", maxGenerations)
	}
	return &Controller{boundary: b, maxGenerations: maxGenerations}, nil
}

// Step advances one generation. Once complete it leaves the boundary alone
// and keeps reporting the complete status.
func (c *Controller) Step() (Status, error) {
	if c.IsComplete() {
		return c.Status(), nil
	}
	if err := Subdivide(c.boundary); err != nil {
		return c.Status(), err
	}
	c.generation++
	return c.Status(), nil
}

// IsComplete reports whether the configured number of generations has run.
func (c *Controller) IsComplete() bool {
	return c.generation >= c.maxGenerations
}

// Generation returns how many subdivisions have been applied.
func (c *Controller) Generation() int {
	return c.generation
}

// MaxGenerations returns the configured ceiling.
func (c *Controller) MaxGenerations() int {
	return c.maxGenerations
}

// Status returns the current generation and completion flag.
func (c *Controller) Status() Status {
	return Status{Generation: c.generation, Complete: c.IsComplete()}
}

// Boundary returns the boundary the controller grows.
func (c *Controller) Boundary() *Boundary {
	return c.boundary
}
