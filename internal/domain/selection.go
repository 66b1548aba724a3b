package domain

// Selection is the discovery and navigation state of a session. Empty
// strings mean "nothing selected".
type Selection struct {
	Region    string
	Subregion string // only meaningful together with Region
	RecipeID  string // non-empty switches the view to recipe detail
	Query     string // stored verbatim, trimmed only when filtering
	Mood      string // single-select
}

// HasCuisine reports whether the cuisine filter is active.
func (s Selection) HasCuisine() bool {
	return s.Region != "" && s.Subregion != ""
}
