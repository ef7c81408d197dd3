package domain

// Check is one validation assertion.
type Check struct {
	// Name identifies the check within its category.
	Name string

	// Passed reports whether the check succeeded.
	Passed bool

	// Detail explains a failure. Empty on success.
	Detail string
}

// Category groups related checks in a validation report.
type Category struct {
	// Name is the category heading.
	Name string

	// Checks are the assertions in this category.
	Checks []Check
}

// Report is a categorised validation result.
type Report struct {
	Categories []Category
}

// Add appends a check to the named category, creating it if needed.
// The detail only describes failures, so it is dropped when the check
// passed.
func (r *Report) Add(category, name string, passed bool, detail string) {
	if passed {
		detail = ""
	}
	for i := range r.Categories {
		if r.Categories[i].Name == category {
			r.Categories[i].Checks = append(r.Categories[i].Checks, Check{Name: name, Passed: passed, Detail: detail})
			return
		}
	}
	r.Categories = append(r.Categories, Category{
		Name:   category,
		Checks: []Check{{Name: name, Passed: passed, Detail: detail}},
	})
}

// Total returns the number of checks in the report.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Checks)
	}
	return n
}

// PassedCount returns the number of passing checks.
func (r *Report) PassedCount() int {
	n := 0
	for _, c := range r.Categories {
		for _, check := range c.Checks {
			if check.Passed {
				n++
			}
		}
	}
	return n
}

// FailedCount returns the number of failing checks.
func (r *Report) FailedCount() int {
	return r.Total() - r.PassedCount()
}

// SuccessRate returns the fraction of passing checks in percent.
// An empty report has a success rate of zero.
func (r *Report) SuccessRate() float64 {
	total := r.Total()
	if total == 0 {
		return 0
	}
	return float64(r.PassedCount()) / float64(total) * 100
}

// AllPassed reports whether every check passed. An empty report does
// not pass: it means nothing was validated.
func (r *Report) AllPassed() bool {
	return r.Total() > 0 && r.FailedCount() == 0
}
