package dialect

// For returns the Introspector for a SQL family name, or nil for families
// without one (the document family is introspected through its own client,
// not through catalog SQL).
func For(family string) Introspector {
	switch family {
	case "postgres":
		return &Postgres{}
	case "mysql":
		return &MySQL{}
	case "sqlserver", "mssql":
		return &MSSQL{}
	case "oracle":
		return &Oracle{}
	case "snowflake":
		return &Snowflake{}
	default:
		return nil
	}
}

// Ensure interface implementation
var _ Introspector = (*Postgres)(nil)
var _ Introspector = (*MySQL)(nil)
var _ Introspector = (*MSSQL)(nil)
var _ Introspector = (*Oracle)(nil)
var _ Introspector = (*Snowflake)(nil)
