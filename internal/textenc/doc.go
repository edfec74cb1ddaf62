// Package textenc decodes MOSES output files into Go strings.
//
// MOSES installations write reports in whatever codepage the host uses, so
// the on-disk bytes may be UTF-8, plain ASCII, or one of the common 8-bit
// Windows/ISO codepages. This package tries a fixed, ordered list of
// encodings and returns the first successful decode.
package textenc
