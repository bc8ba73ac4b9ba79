package entities

import "regexp"

// tagPattern matches a # followed by word characters. Case is preserved
// exactly as typed: "#Milk" and "#milk" are distinct tags.
var tagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractTags returns the hashtag tokens found in text, with the leading #
// stripped, de-duplicated, in order of first appearance. Empty text yields
// an empty set.
func ExtractTags(text string) []string {
	matches := tagPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(matches))
	tags := make([]string, 0, len(matches))
	for _, m := range matches {
		tag := m[1]
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	return tags
}

// MergeTags unions tag slices preserving first-appearance order across the
// inputs. Order only affects display; set membership is what matters for
// filtering.
func MergeTags(groups ...[]string) []string {
	seen := make(map[string]struct{})
	var merged []string
	for _, group := range groups {
		for _, tag := range group {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			merged = append(merged, tag)
		}
	}
	return merged
}
