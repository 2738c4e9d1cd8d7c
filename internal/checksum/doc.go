// Package checksum provides content hashing for backup verification.
//
// A backup is accepted only when the bytes read back from disk hash to the
// same SHA-256 as the original notebook bytes.
//
// # Example Usage
//
//	calculator := checksum.New()
//	sum := calculator.CalculateRaw(original)
//	if !calculator.Matches(readBack, sum) {
//	    // backup is truncated or corrupted
//	}
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
