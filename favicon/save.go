package favicon

import (
	"context"
	"fmt"

	"github.com/favigo/favigo/filesystem"
	"github.com/favigo/favigo/negotiator"
	"github.com/favigo/favigo/outpath"
	"github.com/favigo/favigo/overrides"
	"github.com/favigo/favigo/sniff"
	"github.com/samber/mo"
)

// save downloads fetchURL through the negotiator and writes it to the path
// rendered from template and outputSource.
func (c *call) save(ctx context.Context, fetchURL, outputSource, template string, ov overrides.Overrides) mo.Result[string] {
	out := outpath.Format(template, outputSource)
	if out == "" {
		return mo.Err[string](ErrEmptyOutputPath)
	}

	resp, err := c.negotiator.Fetch(ctx, fetchURL, c.iconTypes, ov)
	if err != nil {
		return mo.Err[string](err)
	}
	defer resp.Body.Close()

	if ov.FileExtFromContentTypeHeader {
		contentType := resp.Header.Get("Content-Type")
		if ext, ok := negotiator.ExtensionFor(contentType).Get(); ok {
			out = outpath.AppendExt(out, ext)
		} else {
			c.logger.Warnf("no extension known for content type %q of %s", contentType, fetchURL)
		}
	}

	fs := filesystem.API()

	if _, err := filesystem.WriteStream(out, resp.Body); err != nil {
		_ = fs.Remove(out)
		return mo.Err[string](fmt.Errorf("write %s: %w", out, err))
	}

	info, err := fs.Stat(out)
	if err != nil {
		return mo.Err[string](fmt.Errorf("stat %s: %w", out, err))
	}
	if info.Size() == 0 {
		if err := fs.Remove(out); err != nil {
			c.logger.Warnf("could not remove empty file %s: %v", out, err)
		}
		return mo.Err[string](fmt.Errorf("%w: %s from %s", ErrEmptyFile, out, fetchURL))
	}

	if ov.FileExtFromMagicNumber {
		return mo.TupleToResult(sniff.Apply(out, c.logger))
	}

	return mo.Ok(out)
}
