package slot

import "github.com/Ash469/ccd-training-skilling-sub000/pkg/dbmetrics"

// Reuse the dbmetrics executor interfaces for database access
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor
