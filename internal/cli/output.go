package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

func writeMaybeJSON(g globalFlags, v any) error {
	if g.JSON {
		return writeJSON(v)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func writeJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func writePlainRow(cols ...string) {
	fmt.Println(strings.Join(cols, "\t"))
}

func formatMoney(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}

func firstOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
