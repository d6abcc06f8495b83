package order

// Order is a request to provision a tracked automated test.
type Order struct {
	Title string `json:"title"`
	Steps string `json:"steps"`
}

// StepList returns the order's steps in input order, one per line.
func (o Order) StepList() []string {
	return SplitSteps(o.Steps)
}

// Placeholders is what the list endpoint returns; orders are never stored.
func Placeholders() []Order {
	return []Order{{}, {}}
}
