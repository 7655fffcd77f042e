package editor

import (
	"html/template"

	"github.com/teamprincipal/editor/internal/changelog"

	"github.com/sirupsen/logrus"
)

var Changelog template.HTML

func changelogHTML() template.HTML {
	return Changelog
}

// LoadChangelog reads CHANGELOG.md from the working directory so the
// changelog page can render it. A missing file just leaves the page empty.
func LoadChangelog() {
	out, err := changelog.Load("CHANGELOG.md")

	if err != nil {
		logrus.WithError(err).Warn("couldn't load changelog")

		return
	}

	Changelog = out
}
