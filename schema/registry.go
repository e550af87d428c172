package schema

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Registry is the immutable catalog of scalar types. All methods are safe
// for concurrent use.
type Registry struct {
	loc     *time.Location
	entries []*entry
	byName  map[string]*entry
}

// Option configures a Registry.
type Option func(*Registry)

// WithLocation sets the reference time zone used to render times and to
// decide which calendar day a time belongs to. The default is UTC.
func WithLocation(loc *time.Location) Option {
	return func(r *Registry) {
		if loc != nil {
			r.loc = loc
		}
	}
}

type definition struct {
	id   TypeID
	name string
	h    handler
}

func builtins(loc *time.Location) []definition {
	plain := func(caseInsensitive bool, validate func(string) (string, error)) handler {
		return textHandler(caseInsensitive, validate)
	}
	return []definition{
		{TypeBoolean, "boolean", booleanHandler()},
		{TypeByte, "byte", integerHandler(intSpecs[TypeByte])},
		{TypeShort, "short", integerHandler(intSpecs[TypeShort])},
		{TypeInt, "int", integerHandler(intSpecs[TypeInt])},
		{TypeLong, "long", integerHandler(intSpecs[TypeLong])},
		{TypePKey, "pkey", integerHandler(intSpecs[TypePKey])},
		{TypeFKey, "fkey", integerHandler(intSpecs[TypeFKey])},
		{TypeLinuxID, "linux_id", integerHandler(intSpecs[TypeLinuxID])},
		{TypeOctalInt, "octal_int", integerHandler(intSpecs[TypeOctalInt])},
		{TypeOctalLong, "octal_long", integerHandler(intSpecs[TypeOctalLong])},
		{TypeNetPort, "net_port", integerHandler(intSpecs[TypeNetPort])},
		{TypeDecimal2, "decimal_2", fixedHandler(2)},
		{TypeDecimal3, "decimal_3", fixedHandler(3)},
		{TypeFloat, "float", floatHandler(32)},
		{TypeDouble, "double", floatHandler(64)},
		{TypeBigDecimal, "big_decimal", bigDecimalHandler()},
		{TypeDate, "date", dateHandler()},
		{TypeTime, "time", timeHandler(loc)},
		{TypeInterval, "interval", intervalHandler()},
		{TypeMoney, "money", moneyHandler()},
		{TypeString, "string", plain(true, nil)},
		{TypeCity, "city", plain(true, nonEmpty)},
		{TypeState, "state", plain(true, nonEmpty)},
		{TypeZip, "zip", plain(true, matching(zipPattern, "postal code"))},
		{TypePhone, "phone", plain(true, matching(phonePattern, "phone number"))},
		{TypeGecos, "gecos", plain(true, validateGecos)},
		{TypeURL, "url", plain(true, validateURL)},
		{TypeAccount, "account", plain(false, matching(accountPattern, "account name"))},
		{TypeUsername, "username", plain(false, matching(usernamePattern, "user name"))},
		{TypeGroupName, "group_name", plain(false, matching(groupNamePattern, "group name"))},
		{TypeEmail, "email", plain(true, validateEmail)},
		{TypeHostname, "hostname", plain(true, validateHostname)},
		{TypeDomainName, "domain_name", plain(true, validateDomainName)},
		{TypeDomainLabel, "domain_label", plain(true, validateDomainLabel)},
		{TypeDomainLabels, "domain_labels", plain(true, validateDomainLabels)},
		{TypeZone, "zone", plain(true, validateZone)},
		{TypePath, "path", plain(false, validatePath)},
		{TypeCountry, "country", plain(false, validateCountry)},
		{TypeMySQLDatabaseName, "mysql_database_name", plain(false, matching(mysqlDatabasePat, "MySQL database name"))},
		{TypeMySQLServerName, "mysql_server_name", plain(false, matching(mysqlServerPattern, "MySQL server name"))},
		{TypeMySQLTableName, "mysql_table_name", plain(false, validateMySQLTableName)},
		{TypeMySQLUsername, "mysql_username", plain(false, matching(mysqlUsernamePat, "MySQL user name"))},
		{TypePostgresDatabaseName, "postgres_database_name", plain(false, matching(postgresNamePattern, "PostgreSQL database name"))},
		{TypePostgresServerName, "postgres_server_name", plain(false, matching(postgresServerPat, "PostgreSQL server name"))},
		{TypePostgresUsername, "postgres_username", plain(false, matching(postgresNamePattern, "PostgreSQL user name"))},
		{TypeFirewalldZoneName, "firewalld_zone_name", plain(false, matching(firewalldZonePat, "firewalld zone name"))},
		{TypeInetAddress, "inet_address", inetHandler()},
		{TypeMACAddress, "mac_address", plain(false, validateMAC)},
		{TypeHashedPassword, "hashed_password", plain(false, validateHashedPassword)},
		{TypeHashedKey, "hashed_key", hashedKeyHandler()},
		{TypeIdentifier, "identifier", identifierHandler()},
		{TypeSmallIdentifier, "small_identifier", smallIdentifierHandler()},
	}
}

// NewRegistry builds the scalar type catalog and its cast graph.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{loc: time.UTC}
	for _, opt := range opts {
		opt(r)
	}

	defs := builtins(r.loc)
	r.entries = make([]*entry, numTypes)
	r.byName = make(map[string]*entry, len(defs))
	for _, d := range defs {
		if r.entries[d.id] != nil {
			panic(fmt.Sprintf("schema: duplicate type id %d", d.id))
		}
		if _, dup := r.byName[d.name]; dup {
			panic(fmt.Sprintf("schema: duplicate type name %q", d.name))
		}
		e := &entry{
			handler: d.h,
			typ: &Type{
				id:              d.id,
				name:            d.name,
				alignRight:      d.h.alignRight,
				caseInsensitive: d.h.caseInsensitive,
				maxPrecision:    d.h.maxPrecision,
			},
			casts: make(map[TypeID]caster),
		}
		r.entries[d.id] = e
		r.byName[d.name] = e
	}
	for id, e := range r.entries {
		if e == nil {
			panic(fmt.Sprintf("schema: type id %d has no definition", id))
		}
	}

	r.registerCasts()
	for _, e := range r.entries {
		e.typ.targets = r.targets(e)
	}
	return r
}

// targets lists every destination reachable from e in one cast.
func (r *Registry) targets(e *entry) []TypeID {
	var ids []TypeID
	for _, to := range r.entries {
		if r.canCast(e, to) {
			ids = append(ids, to.typ.id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Location returns the reference time zone.
func (r *Registry) Location() *time.Location { return r.loc }

// Types returns every registered type ordered by id.
func (r *Registry) Types() []*Type {
	types := make([]*Type, len(r.entries))
	for i, e := range r.entries {
		types[i] = e.typ
	}
	return types
}

// Type looks a type up by id.
func (r *Registry) Type(id TypeID) (*Type, error) {
	if id < 0 || int(id) >= len(r.entries) {
		return nil, unknownTypeID(id)
	}
	return r.entries[id].typ, nil
}

// MustType is like Type but panics on unknown ids. Use it with the Type*
// constants, which are always registered.
func (r *Registry) MustType(id TypeID) *Type {
	t, err := r.Type(id)
	if err != nil {
		panic(err)
	}
	return t
}

// TypeByName looks a type up by name, ignoring case.
func (r *Registry) TypeByName(name string) (*Type, error) {
	e, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, unknownTypeName(name)
	}
	return e.typ, nil
}

// lookup returns the entry of t, which must belong to this registry.
func (r *Registry) lookup(t *Type) (*entry, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil type", ErrUnknownType)
	}
	if t.id < 0 || int(t.id) >= len(r.entries) || r.entries[t.id].typ != t {
		return nil, unknownTypeName(t.name)
	}
	return r.entries[t.id], nil
}

// NewValue tags p with the type id. A nil payload yields null. Payloads
// outside the type's domain fail with a *ParseError, and validated text is
// stored in its canonical form.
func (r *Registry) NewValue(id TypeID, p Payload) (Value, error) {
	t, err := r.Type(id)
	if err != nil {
		return Value{}, err
	}
	if p == nil {
		return Null(t), nil
	}
	e := r.entries[id]
	if !e.accepts(p) {
		return Value{}, fmt.Errorf("%w: %T is not a %s payload", ErrTypeMismatch, p, t.name)
	}
	if e.normalize != nil {
		canonical, err := e.normalize(p)
		if err != nil {
			return Value{}, &ParseError{Type: t.name, Text: e.format(p, Unbounded), Err: err}
		}
		p = canonical
	}
	return Value{typ: t, p: p}, nil
}

// MustValue is like NewValue but panics on error.
func (r *Registry) MustValue(id TypeID, p Payload) Value {
	v, err := r.NewValue(id, p)
	if err != nil {
		panic(err)
	}
	return v
}
