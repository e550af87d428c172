package schema

import (
	"errors"
	"strings"
	"testing"
)

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry()

	if got := len(r.Types()); got != int(numTypes) {
		t.Fatalf("Types() returned %d types, want %d", got, numTypes)
	}

	names := make(map[string]bool)
	for i, typ := range r.Types() {
		if typ.ID() != TypeID(i) {
			t.Errorf("Types()[%d].ID() = %d", i, typ.ID())
		}
		if names[typ.Name()] {
			t.Errorf("duplicate type name %q", typ.Name())
		}
		names[typ.Name()] = true

		byName, err := r.TypeByName(strings.ToUpper(typ.Name()))
		if err != nil {
			t.Errorf("TypeByName(%q) error = %v", typ.Name(), err)
		} else if byName != typ {
			t.Errorf("TypeByName(%q) returned a different type", typ.Name())
		}
	}
}

func TestRegistry_UnknownType(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		call func() error
	}{
		{"negative id", func() error { _, err := r.Type(-1); return err }},
		{"id past catalog", func() error { _, err := r.Type(numTypes); return err }},
		{"unknown name", func() error { _, err := r.TypeByName("varchar"); return err }},
		{"foreign type", func() error {
			_, err := r.Parse(NewRegistry().MustType(TypeInt), "1")
			return err
		}},
		{"zero value compare", func() error { _, err := r.Compare(Value{}, Value{}); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrUnknownType) {
				t.Errorf("error = %v, want ErrUnknownType", err)
			}
		})
	}
}

func TestRegistry_TypeTraits(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		id              TypeID
		alignRight      bool
		caseInsensitive bool
		maxPrecision    int
	}{
		{TypeInt, true, false, Unbounded},
		{TypeTime, true, false, PrecisionNanoseconds},
		{TypeDate, true, false, Unbounded},
		{TypeString, false, true, Unbounded},
		{TypeEmail, false, true, Unbounded},
		{TypeUsername, false, false, Unbounded},
		{TypeMoney, true, false, Unbounded},
	}

	for _, tt := range tests {
		typ := r.MustType(tt.id)
		t.Run(typ.Name(), func(t *testing.T) {
			if typ.AlignRight() != tt.alignRight {
				t.Errorf("AlignRight() = %v, want %v", typ.AlignRight(), tt.alignRight)
			}
			if typ.CaseInsensitive() != tt.caseInsensitive {
				t.Errorf("CaseInsensitive() = %v, want %v", typ.CaseInsensitive(), tt.caseInsensitive)
			}
			if typ.MaxPrecision() != tt.maxPrecision {
				t.Errorf("MaxPrecision() = %d, want %d", typ.MaxPrecision(), tt.maxPrecision)
			}
			if typ.SupportsPrecision() != (tt.maxPrecision != Unbounded) {
				t.Errorf("SupportsPrecision() = %v", typ.SupportsPrecision())
			}
		})
	}
}

func TestRegistry_CastTargets(t *testing.T) {
	r := NewRegistry()

	for _, typ := range r.Types() {
		targets := typ.CastTargets()
		hasSelf, hasString := false, false
		for _, id := range targets {
			hasSelf = hasSelf || id == typ.ID()
			hasString = hasString || id == TypeString
		}
		if !hasSelf || !hasString {
			t.Errorf("%s.CastTargets() = %v, want self and string", typ, targets)
		}
	}

	moneyFromString := r.CanCast(r.MustType(TypeString), r.MustType(TypeMoney))
	if moneyFromString {
		t.Error("CanCast(string, money) = true, want false")
	}
}

func TestRegistry_NewValue(t *testing.T) {
	r := NewRegistry()

	if _, err := r.NewValue(TypeInt, Text("5")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("NewValue(int, Text) error = %v, want ErrTypeMismatch", err)
	}

	v, err := r.NewValue(TypeInt, nil)
	if err != nil {
		t.Fatalf("NewValue(int, nil) error = %v", err)
	}
	if !v.IsNull() || v.Type() != r.MustType(TypeInt) {
		t.Errorf("NewValue(int, nil) = %v, want null int", v)
	}

	v = r.MustValue(TypeLong, Int(7))
	if got := format(t, r, v, Natural); got != "7" {
		t.Errorf("Format() = %q, want %q", got, "7")
	}
}

func TestRegistry_NewValue_Domain(t *testing.T) {
	r := NewRegistry()

	invalid := []struct {
		id TypeID
		p  Payload
	}{
		{TypeNetPort, Int(0)},
		{TypeNetPort, Int(65536)},
		{TypeLinuxID, Int(-1)},
		{TypeByte, Int(300)},
		{TypeEmail, Text("not an email")},
		{TypeDomainName, Text("example.123")},
		{TypeAccount, Text("acme")},
		{TypeInetAddress, Addr{}},
	}
	for _, tt := range invalid {
		t.Run(r.MustType(tt.id).Name(), func(t *testing.T) {
			_, err := r.NewValue(tt.id, tt.p)
			if !errors.Is(err, ErrParse) {
				t.Fatalf("NewValue(%v) error = %v, want ErrParse", tt.p, err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) || parseErr.Type != r.MustType(tt.id).Name() {
				t.Errorf("NewValue(%v) error = %#v", tt.p, err)
			}
		})
	}

	valid := []struct {
		id   TypeID
		p    Payload
		want string
	}{
		{TypeNetPort, Int(443), "443"},
		{TypeEmail, Text("info@example.com"), "info@example.com"},
		{TypeDomainName, Text("Example.com."), "Example.com"},
		{TypeMACAddress, Text("00:1a:2b:3c:4d:5e"), "00:1A:2B:3C:4D:5E"},
		{TypeString, Text("anything goes"), "anything goes"},
	}
	for _, tt := range valid {
		v, err := r.NewValue(tt.id, tt.p)
		if err != nil {
			t.Errorf("NewValue(%s, %v) error = %v", r.MustType(tt.id).Name(), tt.p, err)
			continue
		}
		if got := format(t, r, v, Natural); got != tt.want {
			t.Errorf("NewValue(%s, %v) = %q, want %q", r.MustType(tt.id).Name(), tt.p, got, tt.want)
		}
	}

	// A rejected email never reaches the cast graph.
	if _, err := r.NewValue(TypeEmail, Text("junk")); err == nil {
		t.Error("NewValue(email, junk) succeeded")
	}
}

func TestCatalog(t *testing.T) {
	r := NewRegistry()

	accounts := MustTable("accounts",
		Column{Name: "name", Type: r.MustType(TypeAccount)},
		Column{Name: "created", Type: r.MustType(TypeTime)},
	)
	catalog, err := NewCatalog(r, accounts)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	got, err := catalog.Table("ACCOUNTS")
	if err != nil || got != accounts {
		t.Fatalf("Table(ACCOUNTS) = %v, %v", got, err)
	}

	cols, err := catalog.Columns("accounts")
	if err != nil {
		t.Fatalf("Columns() error = %v", err)
	}
	if strings.Join(cols, ",") != "name,created" {
		t.Errorf("Columns() = %v", cols)
	}

	if _, err := catalog.Table("servers"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("Table(servers) error = %v, want ErrUnknownTable", err)
	}

	col, idx, err := accounts.Column("Created")
	if err != nil || idx != 1 || col.Name != "created" {
		t.Errorf("Column(Created) = %v, %d, %v", col, idx, err)
	}
	if _, _, err := accounts.Column("missing"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Column(missing) error = %v, want ErrUnknownColumn", err)
	}

	if _, err := NewTable("dup", Column{Name: "a", Type: r.MustType(TypeInt)}, Column{Name: "a", Type: r.MustType(TypeInt)}); err == nil {
		t.Error("NewTable() with duplicate columns succeeded")
	}
	if _, err := NewCatalog(r, accounts, accounts); err == nil {
		t.Error("NewCatalog() with duplicate tables succeeded")
	}
	if _, err := NewCatalog(r, MustTable("foreign", Column{Name: "x", Type: NewRegistry().MustType(TypeInt)})); !errors.Is(err, ErrUnknownType) {
		t.Errorf("NewCatalog() with foreign type error = %v, want ErrUnknownType", err)
	}
}
