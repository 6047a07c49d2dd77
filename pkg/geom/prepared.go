package geom

// PreparedGeometry pairs a geometry with a spatial reference id and keeps
// its own envelope cache.
type PreparedGeometry struct {
	Geometry Geometry
	SRID     uint32

	env *Envelope
}

// NewPreparedGeometry wraps g.
func NewPreparedGeometry(g Geometry, srid uint32) *PreparedGeometry {
	return &PreparedGeometry{Geometry: g, SRID: srid}
}

// Envelope returns the cached envelope of the wrapped geometry.
func (p *PreparedGeometry) Envelope() Envelope {
	if p.env == nil {
		e := p.Geometry.Envelope()
		p.env = &e
	}
	return *p.env
}

// InvalidateCache drops the cached envelope, also on the wrapped geometry.
func (p *PreparedGeometry) InvalidateCache() {
	p.env = nil
	p.Geometry.InvalidateEnvelope()
}
