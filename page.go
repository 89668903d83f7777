package castgraph

// Page is the structured decoding of one raw page unit from the dump.
type Page struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"` // Wikitext of the page revision.
	Hash  string `json:"hash"` // Fingerprint of Text.
}

// PageDecoder decodes a raw page unit into a Page.
type PageDecoder interface {
	// Decode parses the text of a single <page> element.
	// Returns EMALFORMED if the unit cannot be decoded.
	Decode(raw string) (*Page, error)
}
