package schema

var Tenants = Table{
	Name: "tenants",
	Columns: []Column{
		{Name: "id", Type: "UUID", PrimaryKey: true},
		{Name: "name", Type: "TEXT"},
		{Name: "status", Type: "TEXT", Default: "'active'"},
		{Name: "created_at", Type: "TIMESTAMPTZ", Default: "NOW()"},
		{Name: "updated_at", Type: "TIMESTAMPTZ", Default: "NOW()"},
	},
	Indexes: []Index{
		{Name: "tenants_name_lower_key", Columns: []string{"LOWER(name)"}, Unique: true},
	},
	Constraints: []string{
		"CONSTRAINT tenants_status_check CHECK (status IN ('active', 'inactive'))",
	},
}

var Users = Table{
	Name: "users",
	Columns: []Column{
		{Name: "id", Type: "UUID", PrimaryKey: true},
		{Name: "tenant_id", Type: "UUID", References: "tenants(id)"},
		{Name: "first_name", Type: "TEXT"},
		{Name: "last_name", Type: "TEXT"},
		{Name: "email", Type: "TEXT"},
		{Name: "phone", Type: "TEXT"},
		{Name: "password_hash", Type: "TEXT"},
		{Name: "email_verified", Type: "BOOLEAN", Default: "FALSE"},
		{Name: "phone_verified", Type: "BOOLEAN", Default: "FALSE"},
		{Name: "created_at", Type: "TIMESTAMPTZ", Default: "NOW()"},
		{Name: "updated_at", Type: "TIMESTAMPTZ", Default: "NOW()"},
	},
	Indexes: []Index{
		{Name: "users_email_key", Columns: []string{"email"}, Unique: true},
		{Name: "users_phone_key", Columns: []string{"phone"}, Unique: true},
		{Name: "users_tenant_id_idx", Columns: []string{"tenant_id"}},
	},
}

var Verifications = Table{
	Name: "verifications",
	Columns: []Column{
		{Name: "id", Type: "UUID", PrimaryKey: true},
		{Name: "user_id", Type: "UUID", Nullable: true, References: "users(id) ON DELETE SET NULL"},
		{Name: "reference", Type: "TEXT"},
		{Name: "identifier", Type: "TEXT"},
		{Name: "type", Type: "TEXT"},
		{Name: "status", Type: "TEXT", Default: "'PENDING'"},
		{Name: "token", Type: "TEXT", Nullable: true},
		{Name: "otp_code_hash", Type: "TEXT"},
		{Name: "otp_attempts", Type: "INTEGER", Default: "0"},
		{Name: "otp_expires_at", Type: "TIMESTAMPTZ"},
		{Name: "otp_last_attempt_at", Type: "TIMESTAMPTZ", Nullable: true},
		{Name: "otp_verified", Type: "BOOLEAN", Default: "FALSE"},
		{Name: "expires_at", Type: "TIMESTAMPTZ"},
		{Name: "created_at", Type: "TIMESTAMPTZ", Default: "NOW()"},
		{Name: "updated_at", Type: "TIMESTAMPTZ", Default: "NOW()"},
	},
	Indexes: []Index{
		{Name: "verifications_reference_key", Columns: []string{"reference"}, Unique: true},
		// At most one outstanding code per identifier and channel.
		{Name: "verifications_pending_identifier_key", Columns: []string{"identifier", "type"}, Unique: true, Where: "status = 'PENDING'"},
		{Name: "verifications_identifier_type_created_idx", Columns: []string{"identifier", "type", "created_at DESC"}},
		{Name: "verifications_expires_at_idx", Columns: []string{"expires_at"}},
	},
	Constraints: []string{
		"CONSTRAINT verifications_type_check CHECK (type IN ('PHONE', 'EMAIL', 'OAUTH'))",
		"CONSTRAINT verifications_status_check CHECK (status IN ('PENDING', 'VERIFIED', 'COMPLETED', 'EXPIRED'))",
		"CONSTRAINT verifications_otp_expiry_check CHECK (otp_expires_at <= expires_at)",
		"CONSTRAINT verifications_attempts_check CHECK (otp_attempts >= 0)",
	},
}

var UserKYC = Table{
	Name: "user_kyc",
	Columns: []Column{
		{Name: "id", Type: "UUID", PrimaryKey: true},
		{Name: "user_id", Type: "UUID", References: "users(id) ON DELETE CASCADE"},
		{Name: "current_stage", Type: "TEXT"},
		{Name: "status", Type: "TEXT", Default: "'PENDING'"},
		{Name: "failure_reason", Type: "TEXT", Nullable: true},
		{Name: "stage_metadata", Type: "JSONB", Default: "'{}'::jsonb"},
		{Name: "last_updated", Type: "TIMESTAMPTZ", Default: "NOW()"},
		{Name: "created_at", Type: "TIMESTAMPTZ", Default: "NOW()"},
	},
	Indexes: []Index{
		{Name: "user_kyc_user_id_key", Columns: []string{"user_id"}, Unique: true},
	},
	Constraints: []string{
		"CONSTRAINT user_kyc_status_check CHECK (status IN ('PENDING', 'IN_PROGRESS', 'COMPLETED', 'FAILED'))",
		"CONSTRAINT user_kyc_completed_check CHECK (status <> 'COMPLETED' OR current_stage = 'COMPLETED')",
	},
}

var PaymentMethods = Table{
	Name: "payment_methods",
	Columns: []Column{
		{Name: "id", Type: "UUID", PrimaryKey: true},
		{Name: "user_id", Type: "UUID", References: "users(id) ON DELETE CASCADE"},
		{Name: "provider", Type: "TEXT"},
		{Name: "provider_token", Type: "TEXT"},
		{Name: "brand", Type: "TEXT"},
		{Name: "last4", Type: "CHAR(4)"},
		{Name: "exp_month", Type: "SMALLINT"},
		{Name: "exp_year", Type: "SMALLINT"},
		{Name: "is_default", Type: "BOOLEAN", Default: "FALSE"},
		{Name: "created_at", Type: "TIMESTAMPTZ", Default: "NOW()"},
	},
	Indexes: []Index{
		{Name: "payment_methods_user_id_idx", Columns: []string{"user_id"}},
		{Name: "payment_methods_default_key", Columns: []string{"user_id"}, Unique: true, Where: "is_default"},
		{Name: "payment_methods_provider_token_key", Columns: []string{"provider", "provider_token"}, Unique: true},
	},
	Constraints: []string{
		"CONSTRAINT payment_methods_exp_month_check CHECK (exp_month BETWEEN 1 AND 12)",
	},
}

var Outbox = Table{
	Name: "outbox",
	Columns: []Column{
		{Name: "id", Type: "UUID", PrimaryKey: true},
		{Name: "aggregate_type", Type: "TEXT"},
		{Name: "aggregate_id", Type: "TEXT"},
		{Name: "event_type", Type: "TEXT"},
		{Name: "payload", Type: "JSONB"},
		{Name: "created_at", Type: "TIMESTAMPTZ", Default: "NOW()"},
		{Name: "published_at", Type: "TIMESTAMPTZ", Nullable: true},
	},
	Indexes: []Index{
		{Name: "outbox_unpublished_idx", Columns: []string{"created_at"}, Where: "published_at IS NULL"},
	},
}
