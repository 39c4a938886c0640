package schema

// Dataset definitions for the streaming-service extracts. Column order here
// is the contract: a source file whose header deviates in name, order, or
// count is rejected as a whole.

// Customers is the subscriber master dataset.
var Customers = Dataset{
	Name: "customers",
	File: "customers.csv",
	Columns: []ColumnSpec{
		{Name: "customer_id", Kind: KindInt},
		{Name: "name", Kind: KindText},
		{Name: "email", Kind: KindText},
		{Name: "signup_date", Kind: KindDate},
		{Name: "device_type", Kind: KindText},
		{Name: "country", Kind: KindText},
	},
}

// Plans is the subscription plan catalog.
var Plans = Dataset{
	Name: "plans",
	File: "plans.csv",
	Columns: []ColumnSpec{
		{Name: "plan_id", Kind: KindInt},
		{Name: "name", Kind: KindText},
		{Name: "price", Kind: KindReal},
	},
}

// Content is the content catalog.
var Content = Dataset{
	Name: "content",
	File: "content.csv",
	Columns: []ColumnSpec{
		{Name: "content_id", Kind: KindInt},
		{Name: "title", Kind: KindText},
		{Name: "genre", Kind: KindText},
		{Name: "duration_minutes", Kind: KindInt},
	},
}

// Subscriptions links customers to plans. end_date is empty for
// subscriptions that are still open.
var Subscriptions = Dataset{
	Name: "subscriptions",
	File: "subscriptions.csv",
	Columns: []ColumnSpec{
		{Name: "subscription_id", Kind: KindInt},
		{Name: "customer_id", Kind: KindInt},
		{Name: "plan_id", Kind: KindInt},
		{Name: "start_date", Kind: KindDate},
		{Name: "end_date", Kind: KindOptionalDate},
		{Name: "auto_renew", Kind: KindBool},
	},
}

// UsageLogs records individual playback events.
var UsageLogs = Dataset{
	Name: "usage_logs",
	File: "usage_logs.csv",
	Columns: []ColumnSpec{
		{Name: "usage_id", Kind: KindInt},
		{Name: "customer_id", Kind: KindInt},
		{Name: "content_id", Kind: KindInt},
		{Name: "timestamp", Kind: KindDateTime},
		{Name: "duration_watched", Kind: KindInt},
		{Name: "completion_rate", Kind: KindReal},
	},
}

// Default returns the standard registry in dependency order: customers,
// plans, and content are referential sources and must validate before
// subscriptions and usage_logs are checked against them.
func Default() Registry {
	return NewRegistry(Customers, Plans, Content, Subscriptions, UsageLogs)
}
