package orders

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var sample = []Record{
	{OrderNumber: "100", Company: "Acme"},
	{OrderNumber: "2001", Company: "Beta, Inc."},
}

func TestFormatTable(t *testing.T) {
	out := FormatTable(sample)
	lines := strings.Split(out, "\n")

	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "Order#"))
	require.Contains(t, lines[0], "Company")
	require.True(t, strings.HasPrefix(lines[2], "2001"))
	require.Contains(t, lines[2], "Beta, Inc.")
	require.Equal(t, strings.Index(lines[0], "Company"), strings.Index(lines[1], "Acme"), "columns should align")
}

func TestFormatCSV(t *testing.T) {
	out, err := FormatCSV(sample)
	require.NoError(t, err)
	require.Equal(t, "order_number,company\n100,Acme\n2001,\"Beta, Inc.\"\n", out)
}

func TestFormatJSON(t *testing.T) {
	out, err := FormatJSON(sample)
	require.NoError(t, err)
	require.JSONEq(t, `[{"order_number":"100","company":"Acme"},{"order_number":"2001","company":"Beta, Inc."}]`, out)

	empty, err := FormatJSON(nil)
	require.NoError(t, err)
	require.Equal(t, "[]", empty)
}

func TestRender(t *testing.T) {
	for _, f := range Formats {
		_, err := Render(f, sample)
		require.NoError(t, err, f)
	}
	_, err := Render("yaml", sample)
	require.Error(t, err)
}
