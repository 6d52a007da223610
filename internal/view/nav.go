package view

// NavItem is one link of the navigation bar.
type NavItem struct {
	Path   string
	Label  string
	Icon   string
	Active bool
}

var navLabels = map[Kind][2]string{
	KindRoadmap:  {"Career Roadmap", "navigation"},
	KindJobs:     {"Job Search", "briefcase"},
	KindLearn:    {"Learning Hub", "book-open"},
	KindResume:   {"Resume Analyzer", "file-text"},
	KindInsights: {"Career Insights", "line-chart"},
}

// NavItems returns the navigation links in fixed order, marking the one whose
// path equals currentPath.
func NavItems(currentPath string) []NavItem {
	items := make([]NavItem, 0, len(navLabels))
	for _, k := range Kinds() {
		l := navLabels[k]
		items = append(items, NavItem{
			Path:   k.Path(),
			Label:  l[0],
			Icon:   l[1],
			Active: k.Path() == currentPath,
		})
	}
	return items
}
