package tss

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v3"
	"github.com/stretchr/testify/require"
)

// TestEvalPolynomialConstantTerm checks Horner's method evaluates a
// polynomial's constant term correctly at x=0: eval(0) == coeffs[0].
func TestEvalPolynomialConstantTerm(t *testing.T) {
	var a0, a1, a2 secp256k1.ModNScalar
	a0.SetInt(7)
	a1.SetInt(3)
	a2.SetInt(11)
	coeffs := []secp256k1.ModNScalar{a0, a1, a2}

	var zero secp256k1.ModNScalar
	got := evalPolynomial(coeffs, &zero)

	require.True(t, got.Equals(&a0))
}

// TestLagrangeReconstructsSecret drives a full degree-1 (t=2) Shamir
// split and checks that interpolating at x=0 over any two of three
// shares recovers the same secret, the invariant keygen.go and
// signing.go both depend on.
func TestLagrangeReconstructsSecret(t *testing.T) {
	var secret, coeff1 secp256k1.ModNScalar
	secret.SetInt(42)
	coeff1.SetInt(17)
	coeffs := []secp256k1.ModNScalar{secret, coeff1}

	shares := make(map[PartyIndex]secp256k1.ModNScalar)
	for _, idx := range []PartyIndex{1, 2, 3} {
		x := scalarFromIndex(idx)
		shares[idx] = evalPolynomial(coeffs, x)
	}

	for _, coalition := range [][]PartyIndex{{1, 2}, {1, 3}, {2, 3}} {
		var reconstructed secp256k1.ModNScalar
		for _, p := range coalition {
			lc := lagrangeCoefficient(p, coalition)
			share := shares[p]
			var term secp256k1.ModNScalar
			term.Set(&share)
			term.Mul(&lc)
			reconstructed.Add(&term)
		}
		require.True(t, reconstructed.Equals(&secret), "coalition %v failed to reconstruct secret", coalition)
	}
}

// TestAddPointsMatchesScalarBasePoint checks that adding s1*G and s2*G
// equals (s1+s2)*G, the identity the Feldman commitment-sum step in
// keygen.go relies on.
func TestAddPointsMatchesScalarBasePoint(t *testing.T) {
	var s1, s2, sum secp256k1.ModNScalar
	s1.SetInt(5)
	s2.SetInt(9)
	sum.Set(&s1)
	sum.Add(&s2)

	p1 := scalarBasePoint(&s1)
	p2 := scalarBasePoint(&s2)
	got := addPoints(p1, p2)
	want := scalarBasePoint(&sum)

	require.True(t, got.IsEqual(want))
}

// TestScalarSub checks (a - b) - b == a - 2b, the modular subtraction
// the cleaned-up lagrangeCoefficient negation relies on.
func TestScalarSub(t *testing.T) {
	var a, b secp256k1.ModNScalar
	a.SetInt(3)
	b.SetInt(50)

	diff := scalarSub(&a, &b)
	back := scalarSub(&diff, &b)
	var negB secp256k1.ModNScalar
	negB.Set(&b)
	negB.Negate()

	// back = (a - b) - b = a - 2b; check against direct computation.
	var twoB, want secp256k1.ModNScalar
	twoB.Set(&b)
	twoB.Add(&b)
	want = scalarSub(&a, &twoB)

	require.True(t, back.Equals(&want))
}
