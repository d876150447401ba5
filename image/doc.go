// Package image reads and writes executable program images.
//
// An image is a fixed header followed by the program payload. The header
// holds the magic "AssEmbly", the instruction set version, the feature
// flags the program requires, the entry point, and a blake3-256 digest of
// the program. With FEATURE_COMPRESSED the payload is zstd compressed.
package image
