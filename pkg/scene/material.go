package scene

// Material describes how a surface responds to light.
//
// Specular is the Phong exponent; a negative value disables the
// specular term entirely. Reflective in [0, 1] blends in the color
// seen by a mirrored ray. Transparency, when positive, is the
// refraction index of the medium inside the surface; zero or negative
// means opaque.
type Material struct {
	Color        Color
	Specular     int
	Reflective   float64
	Transparency float64
}

// Transparent reports whether the material refracts light.
func (m Material) Transparent() bool {
	return m.Transparency > 0
}
