package internal

// Source reads one candidate value from a request. Empty means absent.
type Source func(Context) string

// Extractor returns the first value any of its sources yields. Method
// override reads _method through one.
type Extractor []Source

func NewExtractor(sources ...Source) Extractor {
	return Extractor(sources)
}

func (e Extractor) Extract(c Context) (string, bool) {
	for _, src := range e {
		if v := src(c); v != "" {
			return v, true
		}
	}
	return "", false
}

func FromQuery(name string) Source {
	return func(c Context) string { return c.Query(name) }
}

// FromForm reads a urlencoded or multipart body field.
func FromForm(name string) Source {
	return func(c Context) string { return c.Form(name) }
}

func FromHeader(name string) Source {
	return func(c Context) string { return c.Header(name) }
}

func FromParam(name string) Source {
	return func(c Context) string { return c.Param(name) }
}

// FromCookieSigned ignores cookies whose signature does not verify.
func FromCookieSigned(name string) Source {
	return func(c Context) string {
		v, err := c.CookieSigned(name)
		if err != nil {
			return ""
		}
		return v
	}
}
