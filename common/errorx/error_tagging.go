package errorx

import "fmt"

const errTagPrefix = "TAG-ERR"

type errTagCode int

type errTag struct {
	code errTagCode
}

func (err errTag) Error() string {
	return fmt.Sprintf("%d", err.code)
}

func (err errTag) Code() string {
	return errTagPrefix + "-" + fmt.Sprintf("%d", err.code)
}

func (err errTag) CustomError() CustomError {
	return CustomError{
		Prefix: errTagPrefix,
		Code:   int(err.code),
	}
}

const (
	errNoTagColumns = iota

	errColumnNotTagged
	errBlankTagColumn
)

var (
	// --- TAG-ERR-xxx: tag scope configuration ---

	// no tag column configured at scope construction
	ErrNoTagColumns = errTag{code: errNoTagColumns}
	// query refers to a column the scope was not built with
	ErrColumnNotTagged = errTag{code: errColumnNotTagged}
	// configured column name is blank
	ErrBlankTagColumn = errTag{code: errBlankTagColumn}
)

var errTagMap = map[errTagCode]error{
	errNoTagColumns:    ErrNoTagColumns,
	errColumnNotTagged: ErrColumnNotTagged,
	errBlankTagColumn:  ErrBlankTagColumn,
}

// NoTagColumns reports a scope built without any tag column.
func NoTagColumns(table string) error {
	custom := ErrNoTagColumns.CustomError()
	custom.Context = Ctx().Set("table", table)
	return custom
}

// ColumnNotTagged reports a query against an unconfigured column.
func ColumnNotTagged(table, column string) error {
	custom := ErrColumnNotTagged.CustomError()
	custom.Context = Ctx().Set("table", table).Set("column", column)
	return custom
}

// BlankTagColumn reports a blank column name in the configuration.
func BlankTagColumn(table string) error {
	custom := ErrBlankTagColumn.CustomError()
	custom.Context = Ctx().Set("table", table)
	return custom
}
