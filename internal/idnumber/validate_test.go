package idnumber_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"idcheck/internal/idnumber"
	"idcheck/internal/idnumber/failure"
	"idcheck/internal/idnumber/shape"
	"idcheck/pkg/platform/sentinel"
)

type ValidateSuite struct {
	suite.Suite
}

func TestValidateSuite(t *testing.T) {
	suite.Run(t, new(ValidateSuite))
}

func (s *ValidateSuite) requireKind(err error, class error, kind failure.Kind) {
	s.T().Helper()
	s.Require().Error(err)
	s.Require().ErrorIs(err, class)
	fe, ok := failure.As(err)
	s.Require().True(ok)
	s.Equal(kind, fe.Kind)
}

func (s *ValidateSuite) TestAcceptedFixtures() {
	tests := []struct {
		typ     idnumber.Type
		input   string
		value   string
		display string
	}{
		{idnumber.TypeBRCPF, "111.444.777-35", "11144477735", "111.444.777-35"},
		{idnumber.TypeBRCPF, "11144477735", "11144477735", "111.444.777-35"},
		{idnumber.TypeBRCPF, "529.982.247-25", "52998224725", "529.982.247-25"},
		{idnumber.TypeBRCNPJ, "11.222.333/0001-81", "11222333000181", "11.222.333/0001-81"},
		{idnumber.TypeBRCNPJ, "11222333000181", "11222333000181", "11.222.333/0001-81"},
		{idnumber.TypeBRCEP, "01.310-100", "01310100", "01310-100"},
		{idnumber.TypeCLRUT, "7.654.321-6", "7654321-6", "7.654.321-6"},
		{idnumber.TypeCLRUT, "76543216", "7654321-6", "7.654.321-6"},
		{idnumber.TypeCLRUT, "12.345.678-5", "12345678-5", "12.345.678-5"},
		{idnumber.TypeCLRUT, "1.000.005-k", "1000005-K", "1.000.005-K"},
		{idnumber.TypeCLRUT, "6-K", "6-K", "6-K"},
		{idnumber.TypeARCUIT, "20-12345678-6", "20123456786", "20-12345678-6"},
		{idnumber.TypeARCUIT, "20000000019", "20000000019", "20-00000001-9"},
		{idnumber.TypeINPAN, "ABCPT1234C", "ABCPT1234C", "ABCPT1234C"},
		{idnumber.TypeINPAN, "abcpt1234c", "ABCPT1234C", "ABCPT1234C"},
		{idnumber.TypeKEID, "12345678", "12345678", "12345678"},
		{idnumber.TypeKEKRAPIN, "a123456789z", "A123456789Z", "A123456789Z"},
		{idnumber.TypeKEPassport, "AK1234567", "AK1234567", "AK1234567"},
		{idnumber.TypeKEPostcode, "00100", "00100", "00100"},
		{idnumber.TypeMTPostcode, "AAA 0000", "AAA0000", "AAA 0000"},
		{idnumber.TypeMTPostcode, "VLT 1117", "VLT1117", "VLT 1117"},
	}

	for _, tt := range tests {
		s.Run(string(tt.typ)+" "+tt.input, func() {
			res, err := idnumber.Validate(tt.typ, tt.input, idnumber.Options{})
			s.Require().NoError(err)
			s.Equal(tt.typ, res.Type)
			s.Equal(tt.value, res.Value)
			s.Equal(tt.display, res.Display)
			s.False(res.Empty)
		})
	}
}

func (s *ValidateSuite) TestShapeFailures() {
	tests := []struct {
		name  string
		typ   idnumber.Type
		input string
		opts  idnumber.Options
		kind  failure.Kind
	}{
		{"malta without separator", idnumber.TypeMTPostcode, "AAA0000", idnumber.Options{}, failure.KindInvalidFormat},
		{"malta without separator strict", idnumber.TypeMTPostcode, "AAA0000", idnumber.Options{Strict: true}, failure.KindInvalidFormat},
		{"pan digits first", idnumber.TypeINPAN, "123456789A", idnumber.Options{}, failure.KindInvalidFormat},
		{"pan bad holder type", idnumber.TypeINPAN, "ABCXT1234C", idnumber.Options{}, failure.KindInvalidFormat},
		{"pan lowercase strict", idnumber.TypeINPAN, "abcpt1234c", idnumber.Options{Strict: true}, failure.KindInvalidFormat},
		{"cpf bare strict", idnumber.TypeBRCPF, "11144477735", idnumber.Options{Strict: true}, failure.KindInvalidFormat},
		{"cpf letters", idnumber.TypeBRCPF, "111.444.77A-35", idnumber.Options{}, failure.KindInvalidFormat},
		{"cpf too short", idnumber.TypeBRCPF, "111.444.777-3", idnumber.Options{}, failure.KindWrongLength},
		{"cpf too long", idnumber.TypeBRCPF, "111.444.777-355", idnumber.Options{}, failure.KindWrongLength},
		{"cnpj too short", idnumber.TypeBRCNPJ, "11.222.333/001-81", idnumber.Options{}, failure.KindWrongLength},
		{"rut only check", idnumber.TypeCLRUT, "...-K", idnumber.Options{}, failure.KindWrongLength},
		{"rut bare strict", idnumber.TypeCLRUT, "7654321-6", idnumber.Options{Strict: true}, failure.KindInvalidFormat},
		{"cuit unknown prefix", idnumber.TypeARCUIT, "21-12345678-6", idnumber.Options{}, failure.KindInvalidPrefix},
		{"ke id too short", idnumber.TypeKEID, "123456", idnumber.Options{}, failure.KindInvalidFormat},
		{"kra pin wrong lead letter", idnumber.TypeKEKRAPIN, "B123456789Z", idnumber.Options{}, failure.KindInvalidFormat},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := idnumber.Validate(tt.typ, tt.input, tt.opts)
			s.requireKind(err, failure.ErrShape, tt.kind)
		})
	}
}

func (s *ValidateSuite) TestWrongLengthCarriesExpectedLength() {
	_, err := idnumber.Validate(idnumber.TypeBRCPF, "111.444.777-3", idnumber.Options{})
	fe, ok := failure.As(err)
	s.Require().True(ok)
	s.Equal("11", fe.Params[failure.ParamLength])
	s.Equal("10", fe.Params[failure.ParamActual])
	s.Equal("br_cpf", fe.Type)
}

func (s *ValidateSuite) TestLookalikeLettersRejected() {
	tests := []struct {
		name  string
		typ   idnumber.Type
		input string
	}{
		{"pan long s", idnumber.TypeINPAN, "\u017fBCPT1234C"},
		{"pan kelvin sign", idnumber.TypeINPAN, "ABCPT1234\u212a"},
		{"kra pin long s", idnumber.TypeKEKRAPIN, "A123456789\u017f"},
		{"passport long s", idnumber.TypeKEPassport, "\u017fK1234567"},
	}

	for _, tt := range tests {
		for _, strict := range []bool{false, true} {
			s.Run(tt.name, func() {
				res, err := idnumber.Validate(tt.typ, tt.input, idnumber.Options{Strict: strict})
				s.requireKind(err, failure.ErrShape, failure.KindInvalidFormat)
				s.Empty(res.Value)
			})
		}
	}
}

func (s *ValidateSuite) TestChecksumFailures() {
	tests := []struct {
		name     string
		typ      idnumber.Type
		input    string
		position string
	}{
		{"rut wrong verifier", idnumber.TypeCLRUT, "7.654.321-9", "1"},
		{"rut K instead of digit", idnumber.TypeCLRUT, "7.654.321-K", "1"},
		{"cpf second digit", idnumber.TypeBRCPF, "111.444.777-34", "2"},
		{"cpf first digit", idnumber.TypeBRCPF, "111.444.777-45", "1"},
		{"cnpj second digit", idnumber.TypeBRCNPJ, "11.222.333/0001-80", "2"},
		{"cnpj repeated ones", idnumber.TypeBRCNPJ, "11.111.111/1111-11", "1"},
		{"cuit", idnumber.TypeARCUIT, "20-12345678-5", "1"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := idnumber.Validate(tt.typ, tt.input, idnumber.Options{})
			s.requireKind(err, failure.ErrChecksum, failure.KindChecksum)
			fe, _ := failure.As(err)
			s.Equal(tt.position, fe.Params[failure.ParamPosition])
		})
	}
}

// TestTamperedBodyRejected flips each body digit of known-good values.
func (s *ValidateSuite) TestTamperedBodyRejected() {
	fixtures := []struct {
		typ   idnumber.Type
		value string
		body  int
	}{
		{idnumber.TypeBRCPF, "11144477735", 9},
		{idnumber.TypeBRCPF, "52998224725", 9},
		{idnumber.TypeBRCNPJ, "11222333000181", 12},
		{idnumber.TypeCLRUT, "76543216", 7},
		{idnumber.TypeCLRUT, "123456785", 8},
		{idnumber.TypeARCUIT, "20123456786", 10},
	}

	for _, f := range fixtures {
		_, err := idnumber.Validate(f.typ, f.value, idnumber.Options{})
		s.Require().NoError(err, f.value)

		for i := 0; i < f.body; i++ {
			tampered := []byte(f.value)
			tampered[i] = '0' + (tampered[i]-'0'+1)%10
			if f.typ == idnumber.TypeARCUIT && i < 2 {
				// The prefix check runs first for the first two digits.
				continue
			}
			_, err := idnumber.Validate(f.typ, string(tampered), idnumber.Options{})
			s.ErrorIs(err, failure.ErrChecksum, "%s position %d: %s", f.typ, i, tampered)
		}
	}
}

func (s *ValidateSuite) TestRepeatedDigitsRejected() {
	for d := '0'; d <= '9'; d++ {
		cpf := strings.Repeat(string(d), 11)
		_, err := idnumber.Validate(idnumber.TypeBRCPF, cpf, idnumber.Options{})
		s.requireKind(err, failure.ErrDegenerate, failure.KindRepeatedDigits)
	}

	_, err := idnumber.Validate(idnumber.TypeBRCPF, "000.000.000-00", idnumber.Options{Strict: true})
	s.requireKind(err, failure.ErrDegenerate, failure.KindRepeatedDigits)

	_, err = idnumber.Validate(idnumber.TypeBRCNPJ, "00.000.000/0000-00", idnumber.Options{})
	s.requireKind(err, failure.ErrDegenerate, failure.KindRepeatedDigits)
}

func (s *ValidateSuite) TestEmptyInput() {
	for _, in := range []string{"", "   ", "\t\n"} {
		res, err := idnumber.Validate(idnumber.TypeBRCPF, in, idnumber.Options{})
		s.Require().NoError(err)
		s.True(res.Empty)
		s.Empty(res.Value)
		s.Empty(res.Display)

		_, err = idnumber.Validate(idnumber.TypeBRCPF, in, idnumber.Options{Required: true})
		s.requireKind(err, failure.ErrEmpty, failure.KindRequired)
	}
}

func (s *ValidateSuite) TestUnknownType() {
	_, err := idnumber.Validate("xx_unknown", "123", idnumber.Options{})
	s.ErrorIs(err, sentinel.ErrNotFound)

	_, err = idnumber.Default.ParseType("nope")
	s.ErrorIs(err, sentinel.ErrNotFound)

	t, err := idnumber.Default.ParseType(" BR_CPF ")
	s.Require().NoError(err)
	s.Equal(idnumber.TypeBRCPF, t)
}

// TestIdempotence checks accepted display values re-validate to themselves,
// and that canonicalizing the display gives back the bare canonical value.
func (s *ValidateSuite) TestIdempotence() {
	inputs := map[idnumber.Type][]string{
		idnumber.TypeBRCPF:      {"11144477735", "529.982.247-25"},
		idnumber.TypeBRCNPJ:     {"11222333000181"},
		idnumber.TypeBRCEP:      {"01310100"},
		idnumber.TypeCLRUT:      {"76543216", "12345678-5", "1000005k"},
		idnumber.TypeARCUIT:     {"20123456786"},
		idnumber.TypeINPAN:      {"abcpt1234c"},
		idnumber.TypeKEPassport: {"ak1234567"},
		idnumber.TypeMTPostcode: {"VLT 1117"},
	}

	for typ, values := range inputs {
		def, err := idnumber.Default.Lookup(typ)
		s.Require().NoError(err)
		for _, v := range values {
			first, err := def.Validate(v, idnumber.Options{})
			s.Require().NoError(err, v)

			again, err := def.Validate(first.Display, idnumber.Options{})
			s.Require().NoError(err)
			s.Equal(first, again)

			strict, err := def.Validate(first.Display, idnumber.Options{Strict: true})
			s.Require().NoError(err, "display %q must satisfy the strict pattern", first.Display)
			s.Equal(first, strict)

			s.Equal(shape.Canonicalize(first.Value), shape.Canonicalize(first.Display))
		}
	}
}

func (s *ValidateSuite) TestConcurrentValidation() {
	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := "7.654.321-6"
			if i%2 == 1 {
				in = "111.444.777-35"
			}
			typ := idnumber.TypeCLRUT
			if i%2 == 1 {
				typ = idnumber.TypeBRCPF
			}
			if _, err := idnumber.Validate(typ, in, idnumber.Options{}); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}
}
