package chartify

import (
	"io"

	"github.com/arthur-debert/chartify/internal/version"
	"github.com/spf13/cobra/doc"
)

// GenManPage writes the chartify(1) man page
func GenManPage(w io.Writer) error {
	header := &doc.GenManHeader{
		Title:   "CHARTIFY",
		Section: "1",
		Source:  "chartify " + version.Version,
		Manual:  "chartify manual",
	}
	return doc.GenMan(NewRootCmd(), header, w)
}
