package postgresql

import _ "embed"

// Schema creates the employees table. It is idempotent and applied out of band.
//
//go:embed schema.sql
var Schema string
