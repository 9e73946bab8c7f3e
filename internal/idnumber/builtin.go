package idnumber

import (
	"idcheck/internal/idnumber/checkdigit"
	"idcheck/internal/idnumber/format"
	"idcheck/internal/idnumber/shape"
)

// builtin is the process-wide definition table. Patterns compile once at init.
var builtin = []Definition{
	MustDefinition(DefinitionSpec{
		Type:    TypeBRCPF,
		Country: "BR",
		Name:    "CPF",
		Shape: shape.Spec{
			Lenient: `^\d[\d.\-\s]*\d$`,
			Strict:  `^\d{3}\.\d{3}\.\d{3}-\d{2}$`,
			Length:  11,
		},
		Algorithm: &checkdigit.CPF,
		Layout:    format.Mask{Pattern: "###.###.###-##"},
		Rules:     []Rule{RepeatedDigits},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeBRCNPJ,
		Country: "BR",
		Name:    "CNPJ",
		Shape: shape.Spec{
			Lenient: `^\d[\d./\-\s]*\d$`,
			Strict:  `^\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}$`,
			Length:  14,
		},
		Algorithm: &checkdigit.CNPJ,
		Layout:    format.Mask{Pattern: "##.###.###/####-##"},
		Rules:     []Rule{RepeatedDigits},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeBRCEP,
		Country: "BR",
		Name:    "CEP",
		Shape: shape.Spec{
			Lenient: `^\d{2}\.?\d{3}-?\d{3}$`,
			Strict:  `^\d{5}-\d{3}$`,
			Length:  8,
		},
		Layout: format.Mask{Pattern: "#####-###"},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeCLRUT,
		Country: "CL",
		Name:    "RUT",
		Shape: shape.Spec{
			Lenient:        `^[\d\.]{1,11}-?[\dkK]$`,
			Strict:         `^(\d{1,2}\.)?\d{3}\.\d{3}-[\dkK]$`,
			MinLength:      2,
			MaxLength:      9,
			CheckSeparator: "-",
		},
		Algorithm: &checkdigit.RUT,
		Layout:    format.Grouped{Size: 3, Separator: ".", CheckSeparator: "-"},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeARCUIT,
		Country: "AR",
		Name:    "CUIT",
		Shape: shape.Spec{
			Lenient:  `^\d[\d\-\s]*\d$`,
			Strict:   `^\d{2}-\d{8}-\d$`,
			Length:   11,
			Prefixes: []string{"20", "23", "24", "27", "30", "33", "34"},
		},
		Algorithm: &checkdigit.CUIT,
		Layout:    format.Mask{Pattern: "##-########-#"},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeINPAN,
		Country: "IN",
		Name:    "PAN",
		Shape: shape.Spec{
			Lenient: `^[A-Za-z]{3}[ABCFGHLJPTabcfghljpt][A-Za-z][0-9]{4}[A-Za-z]$`,
			Strict:  `^[A-Z]{3}[ABCFGHLJPT][A-Z][0-9]{4}[A-Z]$`,
			Length:  10,
		},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeKEID,
		Country: "KE",
		Name:    "National ID",
		Shape: shape.Spec{
			Strict:    `^\d{7,8}$`,
			MinLength: 7,
			MaxLength: 8,
		},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeKEKRAPIN,
		Country: "KE",
		Name:    "KRA PIN",
		Shape: shape.Spec{
			Lenient: `^[APap]\d{9}[A-Za-z]$`,
			Strict:  `^[AP]\d{9}[A-Z]$`,
			Length:  11,
		},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeKEPassport,
		Country: "KE",
		Name:    "Passport number",
		Shape: shape.Spec{
			Lenient:   `^[A-Za-z]{1,2}\d{7}$`,
			Strict:    `^[A-Z]{1,2}\d{7}$`,
			MinLength: 8,
			MaxLength: 9,
		},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeKEPostcode,
		Country: "KE",
		Name:    "Postal code",
		Shape: shape.Spec{
			Strict: `^\d{5}$`,
			Length: 5,
		},
	}),
	MustDefinition(DefinitionSpec{
		Type:    TypeMTPostcode,
		Country: "MT",
		Name:    "Postcode",
		Shape: shape.Spec{
			Strict: `^[A-Z]{3} \d{4}$`,
			Length: 7,
		},
		Layout: format.Mask{Pattern: "### ####"},
	}),
}
