package image

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ezrec/vproc/translate"
)

var f = translate.From

var (
	ErrMagic       = errors.New(f("not an executable image"))
	ErrDigest      = errors.New(f("image digest mismatch"))
	ErrPayload     = errors.New(f("image payload corrupt"))
	ErrUnsupported = errors.New(f("image not supported"))
)

// ErrImageVersion is an image built for a newer instruction set.
type ErrImageVersion Version

func (err ErrImageVersion) Error() string {
	return f("image version %v is newer than %v", Version(err), VERSION)
}

func (err ErrImageVersion) Is(target error) bool {
	return target == ErrUnsupported
}

// ErrFeature is a set of unsupported image features.
type ErrFeature Feature

func (err ErrFeature) Error() string {
	var names []string
	rest := Feature(err)
	for _, entry := range _feature_names {
		if rest&entry.Feature != 0 {
			names = append(names, entry.Name)
			rest &^= entry.Feature
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint64(rest)))
	}
	return f("image features %v unsupported", strings.Join(names, ","))
}

func (err ErrFeature) Is(target error) bool {
	return target == ErrUnsupported
}

var _feature_names = []struct {
	Feature Feature
	Name    string
}{
	{FEATURE_V1_CALL_STACK, "v1-call-stack"},
	{FEATURE_EXTENSION_SIGNED, "extension-signed"},
	{FEATURE_EXTENSION_FLOAT, "extension-float"},
	{FEATURE_COMPRESSED, "compressed"},
}
