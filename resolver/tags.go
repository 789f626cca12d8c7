package resolver

import "strings"

// TagVariants renders template with every occurrence of the literal "{tag}"
// placeholder replaced by three spellings of tag: as given, with a single
// leading "v" stripped, and with a leading "v" ensured. Release tags are
// inconsistent about the "v" prefix, so callers match against all three.
func TagVariants(template, tag string) [3]string {
	bare := strings.TrimPrefix(tag, "v")
	withV := tag
	if !strings.HasPrefix(tag, "v") {
		withV = "v" + tag
	}

	return [3]string{
		strings.ReplaceAll(template, "{tag}", tag),
		strings.ReplaceAll(template, "{tag}", bare),
		strings.ReplaceAll(template, "{tag}", withV),
	}
}
