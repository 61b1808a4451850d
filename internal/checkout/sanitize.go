package checkout

import (
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>?`)
	octetPattern      = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	emailLocalInvalid = regexp.MustCompile("[^a-zA-Z0-9!#$%&'*+/=?^_`{|}~.-]")
	emailLabelInvalid = regexp.MustCompile(`[^a-zA-Z0-9-]`)
	multiplePeriods   = regexp.MustCompile(`\.{2,}`)
)

// SanitizeText strips markup and percent-encoded octets, then collapses whitespace.
func SanitizeText(s string) string {
	s = strings.ToValidUTF8(s, "")
	s = tagPattern.ReplaceAllString(s, "")
	s = octetPattern.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

// SanitizeEmail drops characters not allowed in an address. Unrecoverable input yields "".
func SanitizeEmail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 6 {
		return ""
	}

	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		return ""
	}

	local = emailLocalInvalid.ReplaceAllString(local, "")
	if local == "" {
		return ""
	}

	domain = multiplePeriods.ReplaceAllString(domain, "")
	domain = strings.Trim(domain, " \t\n\r\x00\x0B.")
	if domain == "" {
		return ""
	}

	var labels []string
	for _, label := range strings.Split(domain, ".") {
		label = strings.Trim(label, " \t\n\r\x00\x0B-")
		label = emailLabelInvalid.ReplaceAllString(label, "")
		if label != "" {
			labels = append(labels, label)
		}
	}
	if len(labels) < 2 {
		return ""
	}

	return local + "@" + strings.Join(labels, ".")
}

// Truthy reports whether a submitted value counts as set: absent, "" and "0" do not.
func Truthy(v string) bool {
	return v != "" && v != "0"
}

// YesNo renders a checkbox value as "Yes" or "No".
func YesNo(v string) string {
	if Truthy(v) {
		return "Yes"
	}
	return "No"
}
