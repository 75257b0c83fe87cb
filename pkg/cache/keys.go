package cache

// Keyer builds cache keys.
type Keyer interface {
	// RenderKey identifies a rendered image of the pattern with the given
	// content hash.
	RenderKey(patternHash string, opts RenderKeyOpts) string
	// PatternKey identifies a decoded pattern by source format and the hash
	// of its encoded bytes.
	PatternKey(format, dataHash string) string
}

// RenderKeyOpts lists every render option that changes the output bytes.
type RenderKeyOpts struct {
	Format         string  `json:"format"`
	LineWidth      float64 `json:"line_width"`
	StitchDiameter float64 `json:"stitch_diameter"`
	Margin         float64 `json:"margin"`
	Scale          float64 `json:"scale,omitempty"`
	Metadata       bool    `json:"metadata,omitempty"`
	NoMarkers      bool    `json:"no_markers,omitempty"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RenderKey returns "render:<hash>".
func (DefaultKeyer) RenderKey(patternHash string, opts RenderKeyOpts) string {
	return hashKey("render", patternHash, opts)
}

// PatternKey returns "pattern:<format>:<hash>".
func (DefaultKeyer) PatternKey(format, dataHash string) string {
	return "pattern:" + format + ":" + dataHash
}
