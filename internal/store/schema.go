package store

// schemaStatements mirrors the schema the original offline transform
// step creates: one denormalized fact table, three master tables and
// the indexes the dashboard queries rely on.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS transactions_denormalized (
		year          INTEGER NOT NULL,
		month         INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		segment       TEXT    NOT NULL,
		division      TEXT    NOT NULL,
		dept_code     TEXT    NOT NULL,
		dept_name     TEXT    NOT NULL,
		customer_code TEXT    NOT NULL,
		customer_name TEXT    NOT NULL,
		industry      TEXT    NOT NULL,
		account       TEXT    NOT NULL,
		amount        INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS m_customers (
		customer_code TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		industry      TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS m_departments (
		dept_code TEXT NOT NULL,
		dept_name TEXT NOT NULL,
		division  TEXT NOT NULL,
		segment   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS m_accounts (
		account_code INTEGER NOT NULL,
		account      TEXT    NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_facts_year_month ON transactions_denormalized (year, month)`,
	`CREATE INDEX IF NOT EXISTS idx_facts_customer ON transactions_denormalized (customer_code)`,
	`CREATE INDEX IF NOT EXISTS idx_facts_dept ON transactions_denormalized (dept_code)`,
	`CREATE INDEX IF NOT EXISTS idx_facts_account ON transactions_denormalized (account)`,
}
