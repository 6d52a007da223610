package view

// Option is one entry of a select control.
type Option struct {
	Value string
	Label string
}

func hasOption(opts []Option, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

var (
	ExperienceLevels = []Option{
		{"beginner", "Beginner"},
		{"intermediate", "Intermediate"},
		{"advanced", "Advanced"},
	}

	JobLocations = []Option{
		{"India", "All India"},
		{"Bangalore", "Bangalore"},
		{"Hyderabad", "Hyderabad"},
		{"Chennai", "Chennai"},
		{"Mumbai", "Mumbai"},
		{"Delhi", "Delhi NCR"},
		{"Pune", "Pune"},
	}

	JobExperience = []Option{
		{"all", "All Levels"},
		{"fresher", "Fresher (0-1 years)"},
		{"junior", "Junior (1-3 years)"},
		{"mid", "Mid-level (3-5 years)"},
		{"senior", "Senior (5+ years)"},
	}

	Industries = []Option{
		{"technology", "IT & Technology"},
		{"data", "Data Science"},
		{"design", "Design"},
		{"finance", "Finance"},
		{"healthcare", "Healthcare"},
		{"ecommerce", "E-commerce"},
	}
)
