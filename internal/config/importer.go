package config

import (
	"github.com/mvp-joe/kinship/internal/charset"
	"github.com/mvp-joe/kinship/internal/importer"
)

// ImportOptions converts the import settings to importer.Options. The
// caller sets Progress and Logger.
func (c *Config) ImportOptions(source string) importer.Options {
	return importer.Options{
		Source:         source,
		DefaultCharset: charset.FromDeclared(c.Import.DefaultCharset),
		Lookahead:      c.Import.Lookahead,
		IgnoreTags:     c.Import.IgnoreTags,
		PlaceForm:      c.Import.PlaceForm,
		SkipLineage:    c.Import.SkipLineage,
	}
}
