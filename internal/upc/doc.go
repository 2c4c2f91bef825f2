// Package upc validates and converts retail barcodes and looks up product
// records for them.
//
// # Symbologies
//
// UPC-A is the 12-digit form with a trailing check digit. UPC-E is the
// 8-digit zero-suppressed form; ConvertUPCE expands it to UPC-A using the
// digit at index 6 to decide where the zeros go, then re-validates the
// result. Only number systems 0 and 1 are accepted.
//
//	ok := upc.ValidateUPCA("036000291452")   // true
//	full, err := upc.ConvertUPCE("01234565") // "012345000065", nil
//
// Normalize accepts either form (as a scanner emits it) and returns the
// validated UPC-A.
//
// # Errors
//
// Conversion failures wrap ErrInvalidFormat or ErrChecksumMismatch; match
// them with errors.Is. They are expected outcomes of a bad scan, not
// program faults.
//
// # Lookup
//
// LookupClient fetches a CatalogItem from the public lookup service at
// GET {base}/upc/{code}. Any non-200 response or a body that is not exactly
// a catalog object is reported as ErrNotFound; transport failures are
// returned as they are. Validation is always local because the remote
// validation endpoint rate-limits.
package upc
