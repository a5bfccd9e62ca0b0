package tss

import (
	"crypto/rand"

	"github.com/decred/dcrd/dcrec/secp256k1/v3"
)

// randScalar draws a uniformly random nonzero scalar mod the curve order.
func randScalar() (*secp256k1.ModNScalar, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	s := priv.Key
	return &s, nil
}

// scalarFromIndex turns a 0-based party index into the curve scalar
// idx+1, used as the x-coordinate each party's Shamir polynomial is
// evaluated at.
func scalarFromIndex(idx PartyIndex) *secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	s.SetInt(uint32(idx) + 1)
	return &s
}

// evalPolynomial evaluates a polynomial with the given coefficients
// (lowest degree first) at x using Horner's method.
func evalPolynomial(coeffs []secp256k1.ModNScalar, x *secp256k1.ModNScalar) secp256k1.ModNScalar {
	var acc secp256k1.ModNScalar
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(x)
		acc.Add(&coeffs[i])
	}
	return acc
}

// addPoints sums two curve points.
func addPoints(a, b *secp256k1.PublicKey) *secp256k1.PublicKey {
	var ja, jb, sum secp256k1.JacobianPoint
	a.AsJacobian(&ja)
	b.AsJacobian(&jb)
	secp256k1.AddNonConst(&ja, &jb, &sum)
	sum.ToAffine()
	return secp256k1.NewPublicKey(&sum.X, &sum.Y)
}

// scalarBasePoint computes s*G.
func scalarBasePoint(s *secp256k1.ModNScalar) *secp256k1.PublicKey {
	var p secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(s, &p)
	p.ToAffine()
	return secp256k1.NewPublicKey(&p.X, &p.Y)
}

// scalarMultPoint computes s*P.
func scalarMultPoint(s *secp256k1.ModNScalar, point *secp256k1.PublicKey) *secp256k1.PublicKey {
	var jp, res secp256k1.JacobianPoint
	point.AsJacobian(&jp)
	secp256k1.ScalarMultNonConst(s, &jp, &res)
	res.ToAffine()
	return secp256k1.NewPublicKey(&res.X, &res.Y)
}

// scalarSub returns a - b mod n.
func scalarSub(a, b *secp256k1.ModNScalar) secp256k1.ModNScalar {
	var negB, diff secp256k1.ModNScalar
	negB.Set(b)
	negB.Negate()
	diff.Set(a)
	diff.Add(&negB)
	return diff
}

// lagrangeCoefficient computes the Lagrange basis coefficient for party
// index "me" (1-based x-coordinate) interpolating at x=0, given the set
// of participating x-coordinates.
func lagrangeCoefficient(me PartyIndex, others []PartyIndex) secp256k1.ModNScalar {
	var num, den secp256k1.ModNScalar
	num.SetInt(1)
	den.SetInt(1)

	xMe := scalarFromIndex(me)
	for _, o := range others {
		if o == me {
			continue
		}
		xo := scalarFromIndex(o)

		// num *= -xo  (=  0 - xo)
		var zero, negXo secp256k1.ModNScalar
		negXo = scalarSub(&zero, xo)
		num.Mul(&negXo)

		// den *= (xMe - xo)
		diff := scalarSub(xMe, xo)
		den.Mul(&diff)
	}

	var denInv secp256k1.ModNScalar
	denInv.Set(&den)
	denInv.InverseNonConst()

	var coeff secp256k1.ModNScalar
	coeff.Set(&num)
	coeff.Mul(&denInv)
	return coeff
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}
