package schema

import (
	"errors"
	"fmt"
	"net"
	"net/netip"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/language"
)

// validate is shared by every name type; it is safe for concurrent use.
var validate = validator.New()

// check runs a validator tag against s.
func check(s, tag, what string) error {
	if err := validate.Var(s, tag); err != nil {
		return fmt.Errorf("not a valid %s", what)
	}
	return nil
}

var (
	accountPattern      = regexp.MustCompile(`^[A-Z][A-Z0-9_]{1,31}$`)
	usernamePattern     = regexp.MustCompile(`^[a-z_][a-z0-9_.@-]{0,31}$`)
	groupNamePattern    = regexp.MustCompile(`^[a-z_][a-z0-9_.-]{0,31}$`)
	labelPattern        = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?$`)
	phonePattern        = regexp.MustCompile(`^\+?[0-9 ().-]{3,31}$`)
	zipPattern          = regexp.MustCompile(`^[A-Za-z0-9 -]{2,16}$`)
	mysqlDatabasePat    = regexp.MustCompile(`^[A-Za-z0-9_$]{1,64}$`)
	mysqlServerPattern  = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,30}$`)
	mysqlUsernamePat    = regexp.MustCompile(`^[a-z][a-z0-9_]{0,31}$`)
	postgresNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,30}$`)
	postgresServerPat   = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]{0,30}$`)
	firewalldZonePat    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,17}$`)
)

func matching(re *regexp.Regexp, what string) func(string) (string, error) {
	return func(s string) (string, error) {
		if !re.MatchString(s) {
			return "", fmt.Errorf("not a valid %s", what)
		}
		return s, nil
	}
}

func nonEmpty(s string) (string, error) {
	if strings.TrimSpace(s) == "" {
		return "", errors.New("must not be blank")
	}
	return s, nil
}

func validateGecos(s string) (string, error) {
	if strings.ContainsAny(s, ":,=\n\r\x00") {
		return "", errors.New("contains a reserved character")
	}
	return s, nil
}

func validateURL(s string) (string, error) {
	if err := check(s, "url", "URL"); err != nil {
		return "", err
	}
	if u, err := url.Parse(s); err != nil || u.Host == "" {
		return "", errors.New("must have a host")
	}
	return s, nil
}

func validateDomainLabel(s string) (string, error) {
	if !labelPattern.MatchString(s) {
		return "", errors.New("not a valid domain label")
	}
	return s, nil
}

func validateDomainLabels(s string) (string, error) {
	if s == "" || len(s) > 253 {
		return "", errors.New("length must be between 1 and 253")
	}
	if err := check(s, "hostname_rfc1123", "domain name"); err != nil {
		return "", err
	}
	// RFC 1123 allows labels to end with a hyphen; DNS does not.
	for _, label := range strings.Split(s, ".") {
		if strings.HasSuffix(label, "-") {
			return "", fmt.Errorf("label %q ends with a hyphen", label)
		}
	}
	return s, nil
}

// validateDomainName accepts dotted domain names whose top-level label is
// not numeric, so IP literals are never mistaken for names.
func validateDomainName(s string) (string, error) {
	s = strings.TrimSuffix(s, ".")
	if _, err := validateDomainLabels(s); err != nil {
		return "", err
	}
	tld := s[strings.LastIndexByte(s, '.')+1:]
	if strings.Trim(tld, "0123456789") == "" {
		return "", errors.New("top-level label must not be numeric")
	}
	return s, nil
}

func validateHostname(s string) (string, error) {
	if addr, err := netip.ParseAddr(s); err == nil {
		return addr.String(), nil
	}
	return validateDomainName(s)
}

func validateZone(s string) (string, error) {
	if !strings.HasSuffix(s, ".") {
		return "", errors.New("zone must end with a dot")
	}
	name, err := validateDomainName(s)
	if err != nil {
		return "", err
	}
	return name + ".", nil
}

func validateEmail(s string) (string, error) {
	if err := check(s, "email", "email address"); err != nil {
		return "", err
	}
	i := strings.LastIndexByte(s, '@')
	local, domain := s[:i], s[i+1:]
	if len(local) > 64 {
		return "", errors.New("local part longer than 64 characters")
	}
	if _, err := validateDomainName(domain); err != nil {
		return "", fmt.Errorf("domain: %w", err)
	}
	return s, nil
}

// validatePath accepts absolute, already-normalized POSIX paths.
func validatePath(s string) (string, error) {
	if !strings.HasPrefix(s, "/") {
		return "", errors.New("must be absolute")
	}
	if strings.ContainsRune(s, 0) {
		return "", errors.New("contains NUL")
	}
	if s == "/" {
		return s, nil
	}
	for _, part := range strings.Split(s[1:], "/") {
		switch part {
		case "", ".", "..":
			return "", fmt.Errorf("invalid path segment %q", part)
		}
	}
	return s, nil
}

func validateCountry(s string) (string, error) {
	if len(s) != 2 {
		return "", errors.New("must be a two letter code")
	}
	region, err := language.ParseRegion(s)
	if err != nil {
		return "", err
	}
	if !region.IsCountry() {
		return "", errors.New("not a country")
	}
	return region.String(), nil
}

func validateMySQLTableName(s string) (string, error) {
	if s == "" || len(s) > 64 {
		return "", errors.New("length must be between 1 and 64")
	}
	if strings.ContainsAny(s, "/\\.\x00") {
		return "", errors.New("contains a reserved character")
	}
	return s, nil
}

// validateMAC accepts any 48 bit notation net.ParseMAC understands and
// returns the upper case, colon separated form.
func validateMAC(s string) (string, error) {
	if err := check(s, "mac", "MAC address"); err != nil {
		return "", err
	}
	hw, err := net.ParseMAC(s)
	if err != nil {
		return "", err
	}
	if len(hw) != 6 {
		return "", errors.New("must be a 48 bit address")
	}
	return strings.ToUpper(hw.String()), nil
}
