// Package repo provides record access over the database executor.
//
// Table[T] gives a struct type CRUD operations against one table. Columns
// come from the struct's db tags:
//
//	type Part struct {
//	    ID   int64  `db:"id"`
//	    Name string `db:"name"`
//	}
//
//	parts := repo.NewTable[Part](q, "parts", log)
//	p, err := parts.FindByID(ctx, int64(1))
//
// Failures are logged once with component "model" and returned wrapped.
package repo
