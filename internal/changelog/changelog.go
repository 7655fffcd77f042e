package changelog

import (
	"html/template"
	"io/ioutil"

	"github.com/russross/blackfriday"
)

// Load renders a markdown changelog file to HTML.
func Load(path string) (template.HTML, error) {
	changelog, err := ioutil.ReadFile(path)

	if err != nil {
		return "", err
	}

	return template.HTML(blackfriday.Run(changelog)), nil
}
