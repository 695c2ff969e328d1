package archive

import (
	"fmt"
	"strings"
	"time"
)

// sqliteInstantLayout is what strftime('%Y-%m-%d %H:%M:%f', ...) produces:
// UTC, millisecond precision, ordered the same as text and as time.
const sqliteInstantLayout = "2006-01-02 15:04:05.000"

// dialect covers where the engines differ: comparing and ordering timestamps.
//
// PostgreSQL keeps TIMESTAMPTZ and compares instants natively. SQLite keeps
// whatever text the importer wrote, so every timestamp column is normalised
// with strftime and every bound time is written in the same layout. Text that
// SQLite's date functions cannot read normalises to NULL and matches nothing.
type dialect struct {
	sqlite bool
}

func dialectFor(driver string) dialect {
	return dialect{sqlite: driver == DriverSqlite}
}

// instant is col as an expression that compares and sorts by instant.
func (d dialect) instant(col string) string {
	if d.sqlite {
		return fmt.Sprintf("strftime('%%Y-%%m-%%d %%H:%%M:%%f', %s)", col)
	}
	return col
}

// bind is t as an argument comparable with instant expressions.
func (d dialect) bind(t time.Time) any {
	if d.sqlite {
		return t.UTC().Format(sqliteInstantLayout)
	}
	return t
}

// sqliteDSN makes the driver write time values as "2006-01-02 15:04:05.999999999-07:00",
// a layout SQLite's date functions read, instead of time.Time.String.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_time_format=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_time_format=sqlite"
}
