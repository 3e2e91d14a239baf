package utils

import (
	"io"
	"regexp"
)

var htmlTagRegex = regexp.MustCompile("<[^>]*>")

func StripHTMLTags(htmlStr string) string {
	return htmlTagRegex.ReplaceAllString(htmlStr, "")
}

func SafeClose(c io.Closer) {
	if c != nil {
		_ = c.Close()
	}
}
