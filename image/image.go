// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
)

// MAGIC starts every executable image.
const MAGIC = "AssEmbly"

// DIGEST_SIZE is the size of the blake3-256 program digest.
const DIGEST_SIZE = 32

// HEADER_SIZE is the size of the fixed image header:
// magic, version, features, entry point, digest.
const HEADER_SIZE = len(MAGIC) + 3*4 + 8 + 8 + DIGEST_SIZE

// Feature flags of an image.
type Feature uint64

const (
	FEATURE_V1_CALL_STACK    = Feature(1 << 0) // v1-call-stack
	FEATURE_EXTENSION_SIGNED = Feature(1 << 1) // extension-signed
	FEATURE_EXTENSION_FLOAT  = Feature(1 << 2) // extension-float
	FEATURE_COMPRESSED       = Feature(1 << 3) // compressed

	// Features this processor can run.
	FEATURE_SUPPORTED = FEATURE_COMPRESSED | FEATURE_EXTENSION_SIGNED
)

// Version of the instruction set an image was built for.
type Version struct {
	Major uint32
	Minor uint32
	Build uint32
}

// VERSION is the newest instruction set version supported.
var VERSION = Version{Major: 1, Minor: 0, Build: 0}

func (ver Version) String() string {
	return fmt.Sprintf("%d.%d.%d", ver.Major, ver.Minor, ver.Build)
}

// Image is an executable program image.
type Image struct {
	Version    Version // Instruction set version.
	Features   Feature // Required features.
	EntryPoint uint64  // Initial program counter.
	Program    []byte  // Program bytes, loaded at address 0.
}

// IsImage returns true if data starts with the image magic.
func IsImage(data []byte) bool {
	return bytes.HasPrefix(data, []byte(MAGIC))
}

// Digest returns the blake3-256 digest of the program.
func (img *Image) Digest() [DIGEST_SIZE]byte {
	return blake3.Sum256(img.Program)
}

// Marshal writes the image.
// Programs with FEATURE_COMPRESSED set are stored zstd compressed.
func (img *Image) Marshal(w io.Writer) (err error) {
	header := make([]byte, 0, HEADER_SIZE)
	header = append(header, MAGIC...)
	header = binary.LittleEndian.AppendUint32(header, img.Version.Major)
	header = binary.LittleEndian.AppendUint32(header, img.Version.Minor)
	header = binary.LittleEndian.AppendUint32(header, img.Version.Build)
	header = binary.LittleEndian.AppendUint64(header, uint64(img.Features))
	header = binary.LittleEndian.AppendUint64(header, img.EntryPoint)
	digest := img.Digest()
	header = append(header, digest[:]...)

	payload := img.Program
	if img.Features&FEATURE_COMPRESSED != 0 {
		var encoder *zstd.Encoder
		encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return
		}
		defer encoder.Close()
		payload = encoder.EncodeAll(img.Program, nil)
	}

	_, err = w.Write(header)
	if err != nil {
		return
	}

	_, err = w.Write(payload)
	return
}

// Unmarshal reads an image.
func (img *Image) Unmarshal(r io.Reader) (err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if len(data) < HEADER_SIZE || !IsImage(data) {
		err = ErrMagic
		return
	}

	header := data[len(MAGIC):HEADER_SIZE]
	ver := Version{
		Major: binary.LittleEndian.Uint32(header[0:]),
		Minor: binary.LittleEndian.Uint32(header[4:]),
		Build: binary.LittleEndian.Uint32(header[8:]),
	}
	features := Feature(binary.LittleEndian.Uint64(header[12:]))
	entry := binary.LittleEndian.Uint64(header[20:])
	var digest [DIGEST_SIZE]byte
	copy(digest[:], header[28:])

	if ver.Major > VERSION.Major {
		err = ErrImageVersion(ver)
		return
	}

	if unsupported := features &^ FEATURE_SUPPORTED; unsupported != 0 {
		err = ErrFeature(unsupported)
		return
	}

	program := data[HEADER_SIZE:]
	if features&FEATURE_COMPRESSED != 0 {
		var decoder *zstd.Decoder
		decoder, err = zstd.NewReader(nil)
		if err != nil {
			return
		}
		defer decoder.Close()
		program, err = decoder.DecodeAll(program, nil)
		if err != nil {
			err = errors.Join(ErrPayload, err)
			return
		}
	}

	if blake3.Sum256(program) != digest {
		err = ErrDigest
		if features&FEATURE_COMPRESSED != 0 {
			err = errors.Join(ErrPayload, ErrDigest)
		}
		return
	}

	img.Version = ver
	img.Features = features
	img.EntryPoint = entry
	img.Program = program

	return
}
