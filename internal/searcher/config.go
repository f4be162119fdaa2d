package searcher

// Default selector values.
const (
	DefaultItemSelector = "tbody > tr"
	DefaultTextSelector = "td"
)

// Config is the resolved behavior of a Searcher. One Config governs a whole
// search pass.
type Config struct {
	// ItemSelector locates the repeating items inside the container.
	ItemSelector string
	// TextSelector locates the text-bearing elements inside an item.
	// Empty means the item itself is the only text element.
	TextSelector string
	// InputSelector locates the input control through the Document when
	// Input is nil.
	InputSelector string
	// Input is the control whose value is the search term.
	Input Input
	// CaseSensitive disables case-insensitive matching.
	CaseSensitive bool
	// Toggle shows or hides an item once its match result is known.
	Toggle Toggler
	// Highlight is a markup template wrapped around every match, e.g.
	// `<span class="highlight">$1</span>`. Empty disables highlighting.
	Highlight string
}

// Options is a partial Config. Nil fields are left unchanged when merged.
type Options struct {
	ItemSelector  *string
	TextSelector  *string
	InputSelector *string
	Input         Input
	CaseSensitive *bool
	Toggle        Toggler
	Highlight     *string
}

// Ptr returns a pointer to v, for filling Options literals.
func Ptr[T any](v T) *T {
	return &v
}

// Defaults returns the Config used when no option overrides a field.
func Defaults() Config {
	return Config{
		ItemSelector: DefaultItemSelector,
		TextSelector: DefaultTextSelector,
		Toggle:       ShowHide,
	}
}

// Resolve overlays opts, in order, onto Defaults.
func Resolve(opts ...Options) Config {
	cfg := Defaults()
	for _, o := range opts {
		cfg.Merge(o)
	}
	return cfg
}

// Merge overlays the fields set in o onto c in place.
func (c *Config) Merge(o Options) {
	if o.ItemSelector != nil {
		c.ItemSelector = *o.ItemSelector
	}
	if o.TextSelector != nil {
		c.TextSelector = *o.TextSelector
	}
	if o.InputSelector != nil {
		c.InputSelector = *o.InputSelector
	}
	if o.Input != nil {
		c.Input = o.Input
	}
	if o.CaseSensitive != nil {
		c.CaseSensitive = *o.CaseSensitive
	}
	if o.Toggle != nil {
		c.Toggle = o.Toggle
	}
	if o.Highlight != nil {
		c.Highlight = *o.Highlight
	}
}
