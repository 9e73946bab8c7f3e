package checkdigit

// Remainder sequences for modulus 11 schemes, read at position 11-r.
const (
	// SequenceZeroBelowTwo maps remainders 0 and 1 to '0' and r to 11-r otherwise.
	SequenceZeroBelowTwo = "012345678900"
	// SequenceRUT maps remainder 0 to '0' and remainder 1 to 'K'.
	SequenceRUT = "0123456789K0"
	// SequenceCUIT maps remainder 0 to '0' and remainder 1 to '9'.
	SequenceCUIT = "012345678990"
)

// Schemes in use. Built once, never mutated.
var (
	CPF = Must(Spec{
		Name:     "cpf",
		Weights:  [][]int{{10, 9, 8, 7, 6, 5, 4, 3, 2}, {11, 10, 9, 8, 7, 6, 5, 4, 3, 2}},
		Modulus:  11,
		Sequence: SequenceZeroBelowTwo,
		Chained:  true,
	})

	CNPJ = Must(Spec{
		Name: "cnpj",
		Weights: [][]int{
			{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2},
			{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2},
		},
		Modulus:  11,
		Sequence: SequenceZeroBelowTwo,
		Chained:  true,
	})

	// RUT enumerates the body right to left with multipliers 2..7, restarting at 2.
	RUT = Must(Spec{
		Name:      "rut",
		Weights:   [][]int{{2, 3, 4, 5, 6, 7}},
		Modulus:   11,
		Sequence:  SequenceRUT,
		Direction: RightToLeft,
	})

	CUIT = Must(Spec{
		Name:     "cuit",
		Weights:  [][]int{{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}},
		Modulus:  11,
		Sequence: SequenceCUIT,
	})
)
