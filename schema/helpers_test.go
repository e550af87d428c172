package schema

import (
	"strings"
	"testing"
)

// sampleTexts holds valid textual values for every type that accepts text.
var sampleTexts = map[TypeID][]string{
	TypeBoolean:              {"true", "false"},
	TypeByte:                 {"-128", "0", "127"},
	TypeShort:                {"-32768", "12"},
	TypeInt:                  {"5", "-2147483648"},
	TypeLong:                 {"9223372036854775807", "-1"},
	TypePKey:                 {"1", "42"},
	TypeFKey:                 {"7"},
	TypeLinuxID:              {"0", "65535"},
	TypeOctalInt:             {"755", "-17"},
	TypeOctalLong:            {"777777"},
	TypeNetPort:              {"1", "80", "65535"},
	TypeDecimal2:             {"12.34", "-0.05", "0.00"},
	TypeDecimal3:             {"1.500", "-3.001"},
	TypeFloat:                {"1.5", "-0.25", "100"},
	TypeDouble:               {"0.1", "-2.5"},
	TypeBigDecimal:           {"1.50", "-123456789012345678901234567890.123", "0"},
	TypeDate:                 {"2024-02-29", "1969-12-31", "1970-01-01"},
	TypeTime:                 {"2024-01-02 03:04:05", "2024-01-02 03:04:05.123", "2024-01-02 03:04:05.123456", "2024-01-02 03:04:05.123456789"},
	TypeInterval:             {"1h0m0s", "1.5s", "0s"},
	TypeString:               {"hello", "Hello World", ""},
	TypeCity:                 {"Mobile"},
	TypeState:                {"AL"},
	TypeZip:                  {"36606"},
	TypePhone:                {"+1 (251) 607-9556"},
	TypeGecos:                {"Jane Doe"},
	TypeURL:                  {"https://example.com/path"},
	TypeAccount:              {"AOINDUSTRIES", "ABC_1"},
	TypeUsername:             {"jdoe", "www-data"},
	TypeGroupName:            {"wheel", "www-data"},
	TypeEmail:                {"info@example.com"},
	TypeHostname:             {"www.example.com", "192.0.2.1", "::1"},
	TypeDomainName:           {"example.com", "localhost"},
	TypeDomainLabel:          {"www"},
	TypeDomainLabels:         {"a.b.c"},
	TypeZone:                 {"example.com."},
	TypePath:                 {"/", "/var/www/html"},
	TypeCountry:              {"US", "DE"},
	TypeMySQLDatabaseName:    {"wordpress"},
	TypeMySQLServerName:      {"mysql-8.0"},
	TypeMySQLTableName:       {"wp_posts"},
	TypeMySQLUsername:        {"wp_user"},
	TypePostgresDatabaseName: {"app_db"},
	TypePostgresServerName:   {"postgresql-14"},
	TypePostgresUsername:     {"app"},
	TypeFirewalldZoneName:    {"public"},
	TypeInetAddress:          {"192.0.2.10", "2001:db8::1"},
	TypeMACAddress:           {"00:11:22:AA:BB:CC"},
	TypeHashedPassword:       {NoPassword},
	TypeHashedKey:            {strings.Repeat("ab", 32)},
	TypeIdentifier:           {"123e4567-e89b-12d3-a456-426614174000"},
	TypeSmallIdentifier:      {"00000000000000ff", "ffffffffffffffff"},
}

func mustParse(t *testing.T, r *Registry, id TypeID, text string) Value {
	t.Helper()
	v, err := r.Parse(r.MustType(id), text)
	if err != nil {
		t.Fatalf("Parse(%s, %q) error = %v", r.MustType(id), text, err)
	}
	return v
}

// samples returns one null and every sample value of each type.
func samples(t *testing.T, r *Registry) []Value {
	t.Helper()
	var values []Value
	for _, typ := range r.Types() {
		values = append(values, Null(typ))
		for _, text := range sampleTexts[typ.ID()] {
			values = append(values, mustParse(t, r, typ.ID(), text))
		}
	}
	return values
}

func format(t *testing.T, r *Registry, v Value, precision int) string {
	t.Helper()
	s, ok := r.Format(v, precision)
	if !ok {
		t.Fatalf("Format(%v) returned null", v)
	}
	return s
}
