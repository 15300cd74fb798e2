package media

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Minimal valid 1x1 GIF payload.
var gifBytes = []byte("GIF89a\x01\x00\x01\x00\x80\x00\x00\x00\x00\x00\xff\xff\xff!\xf9\x04\x00\x00\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;")

func TestBuildFileNamePreservesExtension(t *testing.T) {
	req := require.New(t)

	name := buildFileName("holiday photo.JPG")

	req.True(strings.HasSuffix(name, ".jpg"))
	req.Len(name, 18+len(".jpg"))
}

func TestBuildFileNameDefaultsExtension(t *testing.T) {
	req := require.New(t)

	req.True(strings.HasSuffix(buildFileName("noext"), ".dat"))
	req.True(strings.HasSuffix(buildFileName(""), ".dat"))
}

func TestBuildFileNameIsCollisionResistant(t *testing.T) {
	req := require.New(t)

	req.NotEqual(buildFileName("a.png"), buildFileName("a.png"))
}

func TestValidateImageAcceptsGIF(t *testing.T) {
	req := require.New(t)

	mimeType, err := validateImage("pixel.gif", gifBytes)

	req.NoError(err)
	req.Equal("image/gif", mimeType)
}

func TestValidateImageRejectsNonImage(t *testing.T) {
	req := require.New(t)

	// An executable disguised with an image extension is rejected by content
	// sniffing.
	_, err := validateImage("evil.png", []byte("#!/bin/sh\nrm -rf /\n"))

	req.Error(err)
	req.Contains(err.Error(), "unsupported file type")
}

func TestValidateImageRejectsOversized(t *testing.T) {
	req := require.New(t)

	big := make([]byte, maxUploadBytes+1)
	copy(big, gifBytes)

	_, err := validateImage("big.gif", big)

	req.Error(err)
	req.Contains(err.Error(), "limit")
}

func TestTitleFromFilename(t *testing.T) {
	req := require.New(t)

	req.Equal("sunset", titleFromFilename("sunset.jpg"))
	req.Equal("archive.tar", titleFromFilename("archive.tar.gz"))
	req.Equal("attachment", titleFromFilename(""))
}
