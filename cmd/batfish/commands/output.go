package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/fivetwenty-io/batfish/internal/constants"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultJSONIndent = 2

// render writes data in the configured output format. table draws the
// default human readable form.
func render(cmd *cobra.Command, data interface{}, table func(w io.Writer) error) error {
	out := cmd.OutOrStdout()

	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

		return encoder.Encode(data)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(out)
		defer func() { _ = encoder.Close() }()

		return encoder.Encode(data)
	case constants.FormatTable, "":
		return table(out)
	default:
		return fmt.Errorf("%w: %q (use table, json or yaml)", constants.ErrInvalidOutputType, output)
	}
}

type property struct {
	name  string
	value string
}

func renderProperties(w io.Writer, properties []property) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, p := range properties {
		_ = table.Append(p.name, p.value)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(lo.ToAnySlice(header)...)

	for _, row := range rows {
		_ = table.Append(lo.ToAnySlice(row)...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func humanMemory(megabytes int) string {
	return (datasize.ByteSize(megabytes) * datasize.MB).HR()
}

func humanDisk(gigabytes int) string {
	return (datasize.ByteSize(gigabytes) * datasize.GB).HR()
}

func formatBool(value bool) string {
	if value {
		return constants.BooleanTrue
	}

	return constants.BooleanFalse
}

func formatPrice(price float64) string {
	return "$" + strconv.FormatFloat(price, 'f', 2, 64)
}

func orNone(value string) string {
	if value == "" {
		return constants.None
	}

	return value
}

func joinOrNone(values []string) string {
	return orNone(strings.Join(values, ", "))
}
