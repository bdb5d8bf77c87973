package rules

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes v as an indented tree, one value per line.
func Dump(w io.Writer, v Value) error {
	return dump(w, v, 0)
}

func dump(w io.Writer, v Value, indent int) error {
	pad := strings.Repeat(" ", indent)
	var err error
	switch v.Kind {
	case KindNil:
		_, err = fmt.Fprintf(w, "%sNIL\n", pad)
	case KindNumber:
		_, err = fmt.Fprintf(w, "%sNUM %d\n", pad, v.Num)
	case KindString:
		_, err = fmt.Fprintf(w, "%sSTR %s\n", pad, strconv.Quote(v.Str))
	case KindSymbol:
		_, err = fmt.Fprintf(w, "%sSYM %s\n", pad, strconv.Quote(v.Str))
	case KindList:
		if _, err = fmt.Fprintf(w, "%sLST %d\n", pad, len(v.List)); err != nil {
			return err
		}
		for _, elem := range v.List {
			if err := dump(w, elem, indent+2); err != nil {
				return err
			}
		}
	}
	return err
}
