package loan

import "github.com/mathrent/MathRent-LoanService/pkg/dbmetrics"

// DBExecutor is the database surface the repository runs on. Satisfied by
// *sql.DB and *dbmetrics.DB; transactions are picked up from the context.
type DBExecutor = dbmetrics.DBExecutor
