package field

import "fmt"

// Extension is an element of a degree-D extension field over a base
// Element's field, represented in the standard polynomial basis: a value
// a_0 + a_1*x + ... + a_{D-1}*x^(D-1). Full extension arithmetic requires
// a reduction polynomial, so this type only implements what witness
// generation needs: componentwise construction and decomposition for
// extension-target writes, which never multiply extension values, only
// split them into base-field coordinates.
type Extension struct {
	coeffs []Element
}

// NewExtension builds an Extension from its base-field coordinates, lowest
// degree first. len(coeffs) is the extension's degree D.
func NewExtension(coeffs []Element) Extension {
	out := make([]Element, len(coeffs))
	copy(out, coeffs)
	return Extension{coeffs: out}
}

// Degree returns D.
func (x Extension) Degree() int {
	return len(x.coeffs)
}

// Coefficient returns the i-th base-field coordinate.
func (x Extension) Coefficient(i int) Element {
	return x.coeffs[i]
}

// Coefficients returns a copy of the underlying coordinate slice.
func (x Extension) Coefficients() []Element {
	out := make([]Element, len(x.coeffs))
	copy(out, x.coeffs)
	return out
}

// String renders x for debug printing.
func (x Extension) String() string {
	return fmt.Sprintf("%v", x.coeffs)
}
