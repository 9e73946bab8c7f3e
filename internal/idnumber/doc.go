// Package idnumber validates country-specific identifiers: national ID and tax
// numbers with check digits, and fixed-pattern codes such as postcodes.
//
// # Structure
//
//	idnumber/
//	├── failure/     # classified rejections (shape, checksum, degenerate, empty)
//	├── shape/       # canonicalizer and strict/lenient surface matching
//	├── checkdigit/  # weighted-sum modulo engine and scheme descriptors
//	├── format/      # display layouts
//	├── service/     # application layer: logging, metrics, tracing, batches
//	├── handler/     # HTTP endpoints
//	└── tags/        # go-playground/validator integration for form layers
//
// Each supported type is one Definition: a shape, an optional checksum
// descriptor, a display layout and optional domain rules. The built-in table
// is assembled once into Default and never mutated, so validation needs no
// locking.
//
// # Pipeline
//
// Validation is linear with an early exit on the first failure:
//
//	Start → Canonicalized → ShapeChecked → ChecksumVerified → Accepted
//
// Shape failures carry invalid_format, wrong_length or invalid_prefix; a
// checksum failure names the 1-based check position; domain rules such as
// repeated digits on a CPF run only after the checksum holds.
//
// # Domain Purity
//
// This package and its leaf packages perform no I/O and take no context.Context.
// Side effects (logs, metrics, spans) belong to service/.
package idnumber
