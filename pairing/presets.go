package pairing

import (
	"github.com/HarryR/go-eip1962/bigint"
	"github.com/HarryR/go-eip1962/wire"
)

// Preset bundles a named pairing-friendly curve's descriptor together with
// its G1 and G2 generators, for tests and for callers that want a
// known-good curve without building a wire request by hand. Constants are
// transcribed from original_source/pyeip1962/curves/{bls12_377,bls12_381,
// altbn_254}.py.
type Preset struct {
	Name       string
	Descriptor wire.PairingDescriptor
	G1Gen      wire.G1Point
	G2Gen      wire.G2Point
}

func decimalModulus(s string) *bigint.Modulus {
	limbs := len(s) + 4
	v := bigint.FromDecimal(s, limbs)
	return bigint.NewModulus(bigint.ToBytes(v, limbs*8))
}

func dec(m *bigint.Modulus, s string) bigint.Int {
	return bigint.FromDecimal(s, m.Limbs())
}

// negSmall returns (-k) mod m's modulus, for the small negative constants
// (Fq2 non-residues) every preset below is built from.
func negSmall(m *bigint.Modulus, k uint64) bigint.Int {
	v := bigint.NewInt(m.Limbs())
	v.SetUint64(k)
	return m.Neg(v)
}

// BLS12_377 returns the BLS12-377 preset (Zexe), an M-twist curve.
func BLS12_377() Preset {
	m := decimalModulus("258664426012969094010652733694893533536393512754914660539884262666720468348340822774968888139573360124440321458177")

	d := wire.PairingDescriptor{
		Family:          wire.FamilyBLS12,
		FieldLength:     m.ByteLen(),
		Modulus:         m,
		ExtensionDegree: 2,
		A:               dec(m, "0"),
		B:               dec(m, "1"),
		Order:           dec(m, "8444461749428370424248824938781546531375899335154063827935233455917409239041"),
		Fp2NonResidue:   negSmall(m, 5), // X^2 = -5
		Fp6NonResidue:   []bigint.Int{dec(m, "0"), dec(m, "1")}, // w^6 = i
		TwistKind:       wire.TwistM,
		XParam:          bigint.FromHex("0x8508c00000000001", m.Limbs()),
		Sign:            0,
	}

	g1 := wire.G1Point{
		X: dec(m, "81937999373150964239938255573465948239988671502647976594219695644855304257327692006745978603320413799295628339695"),
		Y: dec(m, "17397676153253620270863855454307851802466321586312764156125140564607560990561071773762088186709545111705113293147"),
	}
	g2 := wire.G2Point{
		X: []bigint.Int{
			dec(m, "39292833563790338514455678255839969442444299076493345799525535236324569704972737101027043002275594504529645125033"),
			dec(m, "97668274349181098911216378040700666521757961257997861327997265570326738925466145318868002777904267769221513117576"),
		},
		Y: []bigint.Int{
			dec(m, "12670168495311570839246849220246345469108307986667888010668101126790399240749545663887747620979098015764659835358"),
			dec(m, "84432745052336413615082002597703423810618940985259643064855840274752478639694687962835382580467718604598437838768"),
		},
	}
	return Preset{Name: "BLS12-377", Descriptor: d, G1Gen: g1, G2Gen: g2}
}

// BLS12_381 returns the BLS12-381 preset, a D-twist curve.
func BLS12_381() Preset {
	m := decimalModulus("4002409555221667393417789825735904156556882819939007885332058136124031650490837864442687629129015664037894272559787")

	d := wire.PairingDescriptor{
		Family:          wire.FamilyBLS12,
		FieldLength:     m.ByteLen(),
		Modulus:         m,
		ExtensionDegree: 2,
		A:               dec(m, "0"),
		B:               dec(m, "4"),
		Order:           dec(m, "52435875175126190479447740508185965837690552500527637822603658699938581184513"),
		Fp2NonResidue:   negSmall(m, 1), // X^2 = -1
		Fp6NonResidue:   []bigint.Int{dec(m, "1"), dec(m, "1")}, // w^6 = 1+i
		TwistKind:       wire.TwistD,
		XParam:          bigint.FromDecimal("15132376222941642752", m.Limbs()),
		Sign:            0,
	}

	g1 := wire.G1Point{
		X: dec(m, "3685416753713387016781088315183077757961620795782546409894578378688607592378376318836054947676345821548104185464507"),
		Y: dec(m, "1339506544944476473020471379941921221584933875938349620426543736416511423956333506472724655353366534992391756441569"),
	}
	g2 := wire.G2Point{
		X: []bigint.Int{
			dec(m, "352701069587466618187139116011060144890029952792775240219908644239793785735715026873347600343865175952761926303160"),
			dec(m, "3059144344244213709971259814753781636986470325476647558659373206291635324768958432433509563104347017837885763365758"),
		},
		Y: []bigint.Int{
			dec(m, "1985150602287291935568054521177171638300868978215655730859378665066344726373823718423869104263333984641494340347905"),
			dec(m, "927553665492332455747201965776037880757740193453592970025027978793976877002675564980949289727957565575433344219582"),
		},
	}
	return Preset{Name: "BLS12-381", Descriptor: d, G1Gen: g1, G2Gen: g2}
}

// ALTBN_254 returns the alt_bn128 preset. original_source leaves its
// pairing() method unfinished (spec.md §9 Open Question 1); the ate loop
// count below is the well-known alt_bn128 constant (6x+2 in its standard
// NAF-free form), supplementing what the distillation dropped.
func ALTBN_254() Preset {
	m := decimalModulus("21888242871839275222246405745257275088696311157297823662689037894645226208583")

	d := wire.PairingDescriptor{
		Family:          wire.FamilyBN,
		FieldLength:     m.ByteLen(),
		Modulus:         m,
		ExtensionDegree: 2,
		A:               dec(m, "0"),
		B:               dec(m, "3"),
		Order:           dec(m, "21888242871839275222246405745257275088548364400416034343698204186575808495617"),
		Fp2NonResidue:   negSmall(m, 1), // X^2 = -1
		Fp6NonResidue:   []bigint.Int{dec(m, "9"), dec(m, "1")}, // w^6 = 9+i
		TwistKind:       wire.TwistD,
		XParam:          dec(m, "29793968203157093288"),
		Sign:            0,
	}

	g1 := wire.G1Point{X: dec(m, "1"), Y: dec(m, "2")}
	g2 := wire.G2Point{
		X: []bigint.Int{
			dec(m, "10857046999023057135944570762232829481370756359578518086990519993285655852781"),
			dec(m, "11559732032986387107991004021392285783925812861821192530917403151452391805634"),
		},
		Y: []bigint.Int{
			dec(m, "8495653923123431417604973247489272438418190587263600148770280649306958101930"),
			dec(m, "4082367875863433681332203403145435568316851327593401208105741076214120093531"),
		},
	}
	return Preset{Name: "ALTBN-254", Descriptor: d, G1Gen: g1, G2Gen: g2}
}
