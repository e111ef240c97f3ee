// Package sniff determines a file's real image type from its leading bytes
// and corrects its extension accordingly.
package sniff

import (
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/log"
	"github.com/favigo/favigo/outpath"
	"github.com/samber/mo"
)

// HeaderSize is the number of leading bytes inspected.
const HeaderSize = 16

// Signature maps an uppercase hex byte prefix to a canonical extension.
type Signature struct {
	Prefix string
	Ext    string
}

// Signatures is checked in order, so the specific JPEG markers come before the
// generic FFD8FF prefix.
var Signatures = []Signature{
	{Prefix: "FFD8FFDB", Ext: ".jpg"},
	{Prefix: "FFD8FFE0", Ext: ".jpg"},
	{Prefix: "FFD8FFE1", Ext: ".jpg"},
	{Prefix: "FFD8FFE2", Ext: ".jpg"},
	{Prefix: "FFD8FFEE", Ext: ".jpg"},
	{Prefix: "FFD8FF", Ext: ".jpg"},
	{Prefix: "89504E470D0A1A0A", Ext: ".png"},
	{Prefix: "00000100", Ext: ".ico"},
}

// Detect returns the extension whose signature prefixes header.
func Detect(header []byte) mo.Option[string] {
	if len(header) > HeaderSize {
		header = header[:HeaderSize]
	}
	hexed := strings.ToUpper(hex.EncodeToString(header))

	for _, sig := range Signatures {
		if strings.HasPrefix(hexed, sig.Prefix) {
			return mo.Some(sig.Ext)
		}
	}
	return mo.None[string]()
}

// Apply sniffs the file at path and renames it when its extension disagrees
// with its signature. It returns the resulting path. An unrecognised
// signature only produces a warning.
func Apply(path string, logger log.Logger) (string, error) {
	if logger == nil {
		logger = log.Nop
	}

	header, err := filesystem.ReadHeader(path, HeaderSize)
	if err != nil {
		return "", fmt.Errorf("sniff %s: %w", path, err)
	}

	detected, ok := Detect(header).Get()
	if !ok {
		logger.Warnf("no known signature in %s (%X), leaving it as is", path, header)
		return path, nil
	}

	if sameExt(filepath.Ext(path), detected) {
		return path, nil
	}

	renamed := outpath.ReplaceExt(path, detected)
	if err := filesystem.API().Rename(path, renamed); err != nil {
		return "", fmt.Errorf("rename %s: %w", path, err)
	}

	logger.Infof("renamed %s to %s after signature check", path, renamed)
	return renamed, nil
}

func sameExt(current, detected string) bool {
	current = strings.ToLower(current)
	if current == ".jpeg" {
		current = ".jpg"
	}
	return current == detected
}
