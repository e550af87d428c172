package schema

import "slices"

// TypeID is the stable numeric identity of a scalar type.
type TypeID int

// Scalar type identities. The order is part of the catalog and never changes.
const (
	TypeBoolean TypeID = iota
	TypeByte
	TypeShort
	TypeInt
	TypeLong
	TypePKey
	TypeFKey
	TypeLinuxID
	TypeOctalInt
	TypeOctalLong
	TypeNetPort
	TypeDecimal2
	TypeDecimal3
	TypeFloat
	TypeDouble
	TypeBigDecimal
	TypeDate
	TypeTime
	TypeInterval
	TypeMoney
	TypeString
	TypeCity
	TypeState
	TypeZip
	TypePhone
	TypeGecos
	TypeURL
	TypeAccount
	TypeUsername
	TypeGroupName
	TypeEmail
	TypeHostname
	TypeDomainName
	TypeDomainLabel
	TypeDomainLabels
	TypeZone
	TypePath
	TypeCountry
	TypeMySQLDatabaseName
	TypeMySQLServerName
	TypeMySQLTableName
	TypeMySQLUsername
	TypePostgresDatabaseName
	TypePostgresServerName
	TypePostgresUsername
	TypeFirewalldZoneName
	TypeInetAddress
	TypeMACAddress
	TypeHashedPassword
	TypeHashedKey
	TypeIdentifier
	TypeSmallIdentifier

	numTypes
)

// Precision sentinels.
const (
	// Unbounded marks a type or value without a bounded display precision.
	Unbounded = -1
	// Natural asks the formatter to derive the precision from the value.
	Natural = 0
)

// Type describes one scalar type of the catalog. Types are created by
// NewRegistry and are never modified afterwards.
type Type struct {
	id              TypeID
	name            string
	alignRight      bool
	caseInsensitive bool
	maxPrecision    int
	targets         []TypeID
}

// ID returns the type identity.
func (t *Type) ID() TypeID { return t.id }

// Name returns the unique lowercase type name.
func (t *Type) Name() string { return t.name }

func (t *Type) String() string { return t.name }

// AlignRight reports whether values of this type are right aligned in tables.
func (t *Type) AlignRight() bool { return t.alignRight }

// CaseInsensitive reports whether values compare ignoring case.
func (t *Type) CaseInsensitive() bool { return t.caseInsensitive }

// SupportsPrecision reports whether the type has a bounded display precision.
func (t *Type) SupportsPrecision() bool { return t.maxPrecision != Unbounded }

// MaxPrecision returns the widest display precision, or Unbounded.
func (t *Type) MaxPrecision() int { return t.maxPrecision }

// CastTargets returns every type this type may be cast to, itself included.
func (t *Type) CastTargets() []TypeID { return slices.Clone(t.targets) }
